package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanmahr/ganttline/internal/commit"
	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/selection"
	"github.com/evanmahr/ganttline/internal/store"
	"github.com/evanmahr/ganttline/internal/testutil"
)

func TestHandleKey_ArrowRightNudgesSelectionForwardOneDay(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)

	prevented := false
	err := e.HandleKey(KeyEvent{
		Key:            KeyArrowRight,
		PreventDefault: func() { prevented = true },
	})
	require.NoError(t, err)

	assert.True(t, prevented, "native scrolling must be suppressed")
	start, end := itemDays(t, s, "item-1")
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)
}

func TestHandleKey_ArrowLeftNudgesBack(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-2", selection.Replace)

	require.NoError(t, e.HandleKey(KeyEvent{Key: KeyArrowLeft}))

	start, end := itemDays(t, s, "item-2")
	assert.Equal(t, 4, start)
	assert.Equal(t, 7, end)
}

func TestHandleKey_NudgesEverySelectedItem(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)
	sel.Select("item-2", selection.Add)

	require.NoError(t, e.HandleKey(KeyEvent{Key: KeyArrowRight}))

	s1, _ := itemDays(t, s, "item-1")
	s2, _ := itemDays(t, s, "item-2")
	assert.Equal(t, 1, s1)
	assert.Equal(t, 6, s2)
}

func TestHandleKey_ShiftScalesDayGridToWeek(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)

	require.NoError(t, e.HandleKey(KeyEvent{Key: KeyArrowRight, Shift: true}))

	start, end := itemDays(t, s, "item-1")
	assert.Equal(t, 7, start)
	assert.Equal(t, 10, end)
}

func TestHandleKey_ShiftScalesHourGridToDay(t *testing.T) {
	s := store.New()
	prefs := domain.Preferences{GridUnit: domain.UnitHour, PixelsPerUnit: 30, GroupBy: domain.GroupByGroup, Sort: domain.SortByStart}
	s.Replace(testutil.NewSnapshot(
		[]domain.Item{testutil.ItemSpanningDays("item-1", "First", "g-1", 0, 1)},
		testutil.WithPreferences(prefs),
	))
	sel := selection.NewManager()
	sel.Select("item-1", selection.Replace)
	e := NewEngine(s, commit.NewCommitter(s, nil), sel)

	require.NoError(t, e.HandleKey(KeyEvent{Key: KeyArrowLeft, Shift: true}))

	it, _ := s.Snapshot().Item("item-1")
	assert.Equal(t, testutil.Day0.Add(-24*time.Hour), it.Start)
}

func TestHandleKey_UnhandledKeyIsIgnored(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)
	before := s.Snapshot().Revision

	prevented := false
	require.NoError(t, e.HandleKey(KeyEvent{
		Key:            "a",
		PreventDefault: func() { prevented = true },
	}))

	assert.False(t, prevented)
	assert.Equal(t, before, s.Snapshot().Revision)
}

func TestHandleKey_EmptySelectionMutatesNothing(t *testing.T) {
	e, s, _ := setup(t)
	before := s.Snapshot().Revision

	prevented := false
	require.NoError(t, e.HandleKey(KeyEvent{
		Key:            KeyArrowRight,
		PreventDefault: func() { prevented = true },
	}))

	assert.True(t, prevented, "arrow handling still suppresses scrolling")
	assert.Equal(t, before, s.Snapshot().Revision)
}

func TestHandleKey_IgnoredWhileGestureActive(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)
	require.NoError(t, e.BeginDrag("item-1"))
	before := s.Snapshot().Revision

	require.NoError(t, e.HandleKey(KeyEvent{Key: KeyArrowRight}))

	assert.Equal(t, before, s.Snapshot().Revision)
	assert.Equal(t, PhaseDragging, e.State().Phase)
}

func TestHandleKey_NudgeCommitsImmediately(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)
	before := s.Snapshot().Revision

	require.NoError(t, e.HandleKey(KeyEvent{Key: KeyArrowRight}))
	require.NoError(t, e.HandleKey(KeyEvent{Key: KeyArrowRight}))

	assert.Equal(t, before+2, s.Snapshot().Revision, "one snapshot swap per nudge")
	start, _ := itemDays(t, s, "item-1")
	assert.Equal(t, 2, start)
}
