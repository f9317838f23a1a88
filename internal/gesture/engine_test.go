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

// The fixture uses a day grid at 120 px/unit: dragging 120px shifts one day.

func setup(t *testing.T) (*Engine, *store.Store, *selection.Manager) {
	t.Helper()
	s := store.New()
	s.Replace(testutil.TwoItemSnapshot())
	sel := selection.NewManager()
	return NewEngine(s, commit.NewCommitter(s, nil), sel), s, sel
}

func itemDays(t *testing.T, s *store.Store, id string) (int, int) {
	t.Helper()
	snap := s.Snapshot()
	it, ok := snap.Item(id)
	require.True(t, ok)
	day := 24 * time.Hour
	return int(it.Start.Sub(testutil.Day0) / day), int(it.End.Sub(testutil.Day0) / day)
}

func TestDragThenResize_Scenario(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)

	// Drag item-1 by 120px at 120px/day: day 0–3 becomes 1–4.
	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(120))
	require.NoError(t, e.Complete())

	start, end := itemDays(t, s, "item-1")
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)

	// Resize the end edge by another 120px: day 1–4 becomes 1–5.
	require.NoError(t, e.BeginResize("item-1", domain.EdgeEnd))
	require.NoError(t, e.UpdateResize(120))
	require.NoError(t, e.Complete())

	start, end = itemDays(t, s, "item-1")
	assert.Equal(t, 1, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, PhaseIdle, e.State().Phase)
}

func TestSequentialResizesCompound(t *testing.T) {
	e, s, _ := setup(t)

	for i := 0; i < 2; i++ {
		require.NoError(t, e.BeginResize("item-1", domain.EdgeEnd))
		require.NoError(t, e.UpdateResize(120))
		require.NoError(t, e.Complete())
	}

	start, end := itemDays(t, s, "item-1")
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
}

func TestDrag_PreviewDoesNotTouchSnapshot(t *testing.T) {
	e, s, _ := setup(t)
	before := s.Snapshot().Revision

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(240))
	require.NoError(t, e.UpdateDrag(360))

	assert.Equal(t, before, s.Snapshot().Revision, "updates must not mutate the canonical snapshot")

	preview := e.Preview()
	require.Len(t, preview, 1)
	assert.Equal(t, testutil.Day0.AddDate(0, 0, 3), preview[0].Start)

	// One snapshot swap for the whole gesture.
	require.NoError(t, e.Complete())
	assert.Equal(t, before+1, s.Snapshot().Revision)
}

func TestDrag_SubThresholdDeltaCommitsNothing(t *testing.T) {
	e, s, _ := setup(t)
	before := s.Snapshot().Revision

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(119))
	require.NoError(t, e.Complete())

	assert.Equal(t, before, s.Snapshot().Revision)
	start, end := itemDays(t, s, "item-1")
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestComplete_WithNoUpdatesIsIdempotent(t *testing.T) {
	e, s, _ := setup(t)
	before := s.Snapshot().Revision

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.Complete())
	require.NoError(t, e.Complete()) // already Idle

	assert.Equal(t, before, s.Snapshot().Revision)
	assert.Equal(t, PhaseIdle, e.State().Phase)
}

func TestMultiSelectDrag_MovesWholeSelection(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-1", selection.Replace)
	sel.Select("item-2", selection.Add)

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(120))
	require.NoError(t, e.Complete())

	s1, e1 := itemDays(t, s, "item-1")
	s2, e2 := itemDays(t, s, "item-2")
	assert.Equal(t, []int{1, 4}, []int{s1, e1})
	assert.Equal(t, []int{6, 9}, []int{s2, e2})
}

func TestDragOutsideSelection_MovesOnlyGrabbedItem(t *testing.T) {
	e, s, sel := setup(t)
	sel.Select("item-2", selection.Replace)

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(120))
	require.NoError(t, e.Complete())

	s1, _ := itemDays(t, s, "item-1")
	s2, _ := itemDays(t, s, "item-2")
	assert.Equal(t, 1, s1)
	assert.Equal(t, 5, s2)
}

func TestBeginDrag_UnknownIDStaysIdle(t *testing.T) {
	e, _, _ := setup(t)

	require.NoError(t, e.BeginDrag("ghost"))
	assert.Equal(t, PhaseIdle, e.State().Phase)
	assert.ErrorIs(t, e.UpdateDrag(120), ErrNoGesture)
}

func TestBeginDrag_WhileActiveIsRejected(t *testing.T) {
	e, _, _ := setup(t)

	require.NoError(t, e.BeginDrag("item-1"))
	assert.ErrorIs(t, e.BeginDrag("item-2"), ErrGestureActive)
	assert.ErrorIs(t, e.BeginResize("item-2", domain.EdgeEnd), ErrGestureActive)
}

func TestUpdateWhileIdle_IsACallerError(t *testing.T) {
	e, _, _ := setup(t)

	assert.ErrorIs(t, e.UpdateDrag(120), ErrNoGesture)
	assert.ErrorIs(t, e.UpdateResize(120), ErrNoGesture)
	assert.ErrorIs(t, e.CompleteLink("item-2"), ErrNoGesture)
}

func TestCancel_DiscardsPendingState(t *testing.T) {
	e, s, _ := setup(t)
	before := s.Snapshot().Revision

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(480))
	e.Cancel()

	assert.Equal(t, PhaseIdle, e.State().Phase)
	assert.Equal(t, before, s.Snapshot().Revision)

	// A later Complete has nothing left to commit.
	require.NoError(t, e.Complete())
	assert.Equal(t, before, s.Snapshot().Revision)
}

func TestResizePreview_ClampsInsteadOfInverting(t *testing.T) {
	e, _, _ := setup(t)

	require.NoError(t, e.BeginResize("item-1", domain.EdgeEnd))
	require.NoError(t, e.UpdateResize(-1200)) // 10 days back on a 3-day item

	preview := e.Preview()
	require.Len(t, preview, 1)
	assert.Equal(t, preview[0].Start, preview[0].End)
}

func TestResizeCommit_ClampsToZeroLength(t *testing.T) {
	e, s, _ := setup(t)

	require.NoError(t, e.BeginResize("item-1", domain.EdgeEnd))
	require.NoError(t, e.UpdateResize(-1200))
	require.NoError(t, e.Complete())

	start, end := itemDays(t, s, "item-1")
	assert.Equal(t, start, end)
}

func TestBeginResize_MilestoneStaysIdle(t *testing.T) {
	s := store.New()
	cut := testutil.ItemSpanningDays("cut", "Code Cut", "g-1", 4, 4)
	cut.Kind = domain.KindMilestone
	s.Replace(testutil.NewSnapshot([]domain.Item{cut}))
	e := NewEngine(s, commit.NewCommitter(s, nil), selection.NewManager())

	require.NoError(t, e.BeginResize("cut", domain.EdgeEnd))
	assert.Equal(t, PhaseIdle, e.State().Phase)
	assert.Empty(t, e.Preview())
	assert.ErrorIs(t, e.UpdateResize(120), ErrNoGesture)
}

func TestLinkGesture_AddsExactlyOneDependency(t *testing.T) {
	e, s, _ := setup(t)

	require.NoError(t, e.BeginLink("item-1"))
	assert.Equal(t, PhaseLinking, e.State().Phase)
	require.NoError(t, e.CompleteLink("item-2"))

	deps := s.Snapshot().Dependencies
	require.Len(t, deps, 1)
	assert.Equal(t, domain.Dependency{FromID: "item-1", ToID: "item-2"}, deps[0])
	assert.Equal(t, PhaseIdle, e.State().Phase)
}

func TestLinkGesture_SelfLinkAddsNothing(t *testing.T) {
	e, s, _ := setup(t)

	require.NoError(t, e.BeginLink("item-1"))
	require.NoError(t, e.CompleteLink("item-1"))

	assert.Empty(t, s.Snapshot().Dependencies)
	assert.Equal(t, PhaseIdle, e.State().Phase)
}

func TestLinkGesture_UnknownSourceStaysIdle(t *testing.T) {
	e, _, _ := setup(t)

	require.NoError(t, e.BeginLink("ghost"))
	assert.Equal(t, PhaseIdle, e.State().Phase)
}

func TestRefreshMidGesture_LastWriteWins(t *testing.T) {
	e, s, _ := setup(t)

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(120))

	// A refetch lands mid-gesture: item-1 now spans day 10–13.
	refreshed := testutil.NewSnapshot([]domain.Item{
		testutil.ItemSpanningDays("item-1", "First", "g-1", 10, 13),
	})
	s.Replace(refreshed)

	// The in-flight gesture applies its one-day delta on top.
	require.NoError(t, e.Complete())
	start, end := itemDays(t, s, "item-1")
	assert.Equal(t, 11, start)
	assert.Equal(t, 14, end)
}

func TestHourGrid_SnapsToHours(t *testing.T) {
	s := store.New()
	prefs := domain.Preferences{GridUnit: domain.UnitHour, PixelsPerUnit: 30, GroupBy: domain.GroupByGroup, Sort: domain.SortByStart}
	snap := testutil.NewSnapshot(
		[]domain.Item{testutil.ItemSpanningDays("item-1", "First", "g-1", 0, 1)},
		testutil.WithPreferences(prefs),
	)
	s.Replace(snap)
	e := NewEngine(s, commit.NewCommitter(s, nil), selection.NewManager())

	require.NoError(t, e.BeginDrag("item-1"))
	require.NoError(t, e.UpdateDrag(95)) // 3 whole hours at 30px/hour
	require.NoError(t, e.Complete())

	it, _ := s.Snapshot().Item("item-1")
	assert.Equal(t, testutil.Day0.Add(3*time.Hour), it.Start)
}
