package commit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/store"
	"github.com/evanmahr/ganttline/internal/testutil"
)

type recordingObserver struct {
	events []CommitEvent
}

func (r *recordingObserver) ObserveCommit(e CommitEvent) {
	r.events = append(r.events, e)
}

func setup(t *testing.T) (*Committer, *store.Store, *recordingObserver) {
	t.Helper()
	s := store.New()
	s.Replace(testutil.TwoItemSnapshot())
	obs := &recordingObserver{}
	return NewCommitter(s, obs), s, obs
}

func TestShiftItems_MovesBothEdgesPreservingDuration(t *testing.T) {
	c, s, _ := setup(t)

	snap, err := c.ShiftItems([]string{"item-1"}, 24*time.Hour)
	require.NoError(t, err)

	it, ok := snap.Item("item-1")
	require.True(t, ok)
	assert.Equal(t, testutil.Day0.AddDate(0, 0, 1), it.Start)
	assert.Equal(t, testutil.Day0.AddDate(0, 0, 4), it.End)
	assert.Equal(t, 3*24*60, it.DurationMinutes)
	assert.False(t, s.Snapshot().LastUpdated.IsZero())

	// Untouched items keep their dates.
	other, _ := snap.Item("item-2")
	assert.Equal(t, testutil.Day0.AddDate(0, 0, 5), other.Start)
}

func TestShiftItems_UnknownIDIsSkipped(t *testing.T) {
	c, s, _ := setup(t)
	before := s.Snapshot()

	snap, err := c.ShiftItems([]string{"ghost", "item-2"}, 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, len(before.Items), len(snap.Items))
	it, _ := snap.Item("item-2")
	assert.Equal(t, testutil.Day0.AddDate(0, 0, 6), it.Start)
}

func TestShiftItems_BatchMovesEveryItemBySameDelta(t *testing.T) {
	c, _, _ := setup(t)

	snap, err := c.ShiftItems([]string{"item-1", "item-2"}, -24*time.Hour)
	require.NoError(t, err)

	one, _ := snap.Item("item-1")
	two, _ := snap.Item("item-2")
	assert.Equal(t, testutil.Day0.AddDate(0, 0, -1), one.Start)
	assert.Equal(t, testutil.Day0.AddDate(0, 0, 4), two.Start)
}

func TestShiftEdge_ExtendsEndWithoutMovingStart(t *testing.T) {
	c, _, _ := setup(t)

	snap, err := c.ShiftEdge("item-1", domain.EdgeEnd, 24*time.Hour)
	require.NoError(t, err)

	it, _ := snap.Item("item-1")
	assert.Equal(t, testutil.Day0, it.Start)
	assert.Equal(t, testutil.Day0.AddDate(0, 0, 4), it.End)
	assert.Equal(t, 4*24*60, it.DurationMinutes)
}

func TestShiftEdge_InversionClampsToZeroLength(t *testing.T) {
	c, _, _ := setup(t)

	snap, err := c.ShiftEdge("item-1", domain.EdgeEnd, -10*24*time.Hour)
	require.NoError(t, err)

	it, _ := snap.Item("item-1")
	assert.Equal(t, it.Start, it.End)
	assert.Equal(t, 0, it.DurationMinutes)
}

func TestShiftEdge_MilestoneIsNoOp(t *testing.T) {
	s := store.New()
	cut := testutil.ItemSpanningDays("cut", "Cut", "g-1", 4, 4)
	cut.Kind = domain.KindMilestone
	s.Replace(testutil.NewSnapshot([]domain.Item{cut}))
	c := NewCommitter(s, nil)

	snap, err := c.ShiftEdge("cut", domain.EdgeEnd, 24*time.Hour)
	require.NoError(t, err)

	it, _ := snap.Item("cut")
	assert.Equal(t, it.Start, it.End)
}

func TestShiftItems_PreservesAuxiliaryPayloads(t *testing.T) {
	s := store.New()
	snap := testutil.TwoItemSnapshot()
	snap.Auxiliary = map[string]json.RawMessage{
		"constraints": json.RawMessage(`[{"item":"item-1","type":"must-start-on"}]`),
		"presence":    json.RawMessage(`{"u-1":"item-2"}`),
	}
	s.Replace(snap)
	c := NewCommitter(s, nil)

	next, err := c.ShiftItems([]string{"item-1"}, 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, snap.Auxiliary, next.Auxiliary)
}

func TestAddDependency_AddsExactlyOne(t *testing.T) {
	c, _, _ := setup(t)

	snap, err := c.AddDependency("item-1", "item-2")
	require.NoError(t, err)
	require.Len(t, snap.Dependencies, 1)
	assert.Equal(t, domain.Dependency{FromID: "item-1", ToID: "item-2"}, snap.Dependencies[0])
}

func TestAddDependency_SelfLinkIsNoOp(t *testing.T) {
	c, _, _ := setup(t)

	snap, err := c.AddDependency("item-1", "item-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Dependencies)
}

func TestAddDependency_DuplicateIsNoOp(t *testing.T) {
	c, _, _ := setup(t)

	_, err := c.AddDependency("item-1", "item-2")
	require.NoError(t, err)
	snap, err := c.AddDependency("item-1", "item-2")
	require.NoError(t, err)
	assert.Len(t, snap.Dependencies, 1)
}

func TestAddDependency_UnknownEndpointIsNoOp(t *testing.T) {
	c, _, _ := setup(t)

	snap, err := c.AddDependency("item-1", "ghost")
	require.NoError(t, err)
	assert.Empty(t, snap.Dependencies)
}

func TestRemoveDependency_DeletesMatchingEdge(t *testing.T) {
	c, _, _ := setup(t)
	_, err := c.AddDependency("item-1", "item-2")
	require.NoError(t, err)

	snap, err := c.RemoveDependency("item-1", "item-2")
	require.NoError(t, err)
	assert.Empty(t, snap.Dependencies)

	// Removing again is harmless.
	snap, err = c.RemoveDependency("item-1", "item-2")
	require.NoError(t, err)
	assert.Empty(t, snap.Dependencies)
}

func TestCommitter_EmitsObserverEvents(t *testing.T) {
	c, _, obs := setup(t)

	_, err := c.ShiftItems([]string{"item-1"}, 24*time.Hour)
	require.NoError(t, err)
	_, err = c.AddDependency("item-1", "item-2")
	require.NoError(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "shift_items", obs.events[0].Op)
	assert.Equal(t, 24*time.Hour, obs.events[0].Delta)
	assert.NoError(t, obs.events[0].Err)
	assert.Equal(t, "add_dependency", obs.events[1].Op)
}

func TestInvariant_StartNeverAfterEndAcrossGestureSequences(t *testing.T) {
	c, s, _ := setup(t)

	deltas := []time.Duration{
		24 * time.Hour, -72 * time.Hour, 48 * time.Hour, -5 * 24 * time.Hour,
	}
	for _, d := range deltas {
		_, err := c.ShiftItems([]string{"item-1", "item-2"}, d)
		require.NoError(t, err)
		_, err = c.ShiftEdge("item-1", domain.EdgeEnd, d)
		require.NoError(t, err)
		_, err = c.ShiftEdge("item-2", domain.EdgeStart, d)
		require.NoError(t, err)

		for _, it := range s.Snapshot().Items {
			assert.False(t, it.End.Before(it.Start),
				"item %s inverted after delta %s", it.ID, d)
			assert.Equal(t, int(it.End.Sub(it.Start)/time.Minute), it.DurationMinutes)
		}
	}
}
