package baseline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/events"
	"github.com/kpoppel/PlannerTool-sub004/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testProvider() *provider.StaticProvider {
	p := provider.NewStaticProvider()
	p.Projects = []domain.Project{{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"}}
	p.Teams = []domain.Team{{ID: "t1", Name: "Core"}}
	p.Features = []domain.Feature{
		{ID: "e1", Type: domain.TypeEpic, Title: "Epic", Project: "p1",
			Start: day(2025, 1, 1), End: day(2025, 3, 1)},
		{ID: "f1", Type: domain.TypeFeature, Title: "Child", Project: "p1",
			Start: day(2025, 1, 10), End: day(2025, 2, 15), ParentEpic: "e1"},
		{ID: "f2", Type: domain.TypeFeature, Title: "Other", Project: "p2",
			Start: day(2025, 2, 1), End: day(2025, 2, 10)},
	}
	return p
}

func TestLoad_AssignsOriginalRankInFetchOrder(t *testing.T) {
	store := NewStore(testProvider(), events.NewBus())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	features := snap.Features()
	require.Len(t, features, 3)
	for i, f := range features {
		assert.Equal(t, i, f.OriginalRank)
	}
}

func TestLoad_BuildsIndexes(t *testing.T) {
	store := NewStore(testProvider(), events.NewBus())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	f, ok := snap.Feature("f1")
	require.True(t, ok)
	assert.Equal(t, "e1", f.ParentEpic)
	assert.Equal(t, []string{"f1"}, snap.Children("e1"))
	assert.Empty(t, snap.Children("f2"))
}

func TestLoad_EmitsBaselineChanged(t *testing.T) {
	bus := events.NewBus()
	var payloads []any
	bus.Subscribe(events.TopicBaselineChanged, func(p any) { payloads = append(payloads, p) })
	store := NewStore(testProvider(), bus)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, payloads, 1)
	assert.Same(t, snap, payloads[0])
}

func TestLoad_RejectsDanglingParentEpic(t *testing.T) {
	p := testProvider()
	p.Features = append(p.Features, domain.Feature{
		ID: "f3", Type: domain.TypeFeature, Project: "p1", ParentEpic: "missing",
	})
	store := NewStore(p, events.NewBus())

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Nil(t, store.Snapshot(), "no partial snapshot is kept")
}

func TestLoad_RejectsNonEpicParent(t *testing.T) {
	p := testProvider()
	p.Features = append(p.Features, domain.Feature{
		ID: "f3", Type: domain.TypeFeature, Project: "p1", ParentEpic: "f1",
	})
	store := NewStore(p, events.NewBus())

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoad_FetchFailurePropagates(t *testing.T) {
	boom := errors.New("backend down")
	store := NewStore(&failingProvider{StaticProvider: testProvider(), err: boom}, events.NewBus())

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRefresh_PreservesSelectionByID(t *testing.T) {
	p := testProvider()
	store := NewStore(p, events.NewBus())
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	store.SetProjectSelected("p1", true)
	store.SetTeamSelected("t1", true)

	snap, err := store.Refresh(context.Background())
	require.NoError(t, err)

	projects := snap.Projects()
	assert.True(t, projects[0].Selected, "p1 stays selected across refresh")
	assert.False(t, projects[1].Selected)
	assert.True(t, snap.Teams()[0].Selected)
}

func TestRefresh_ReplacesSnapshotWholesale(t *testing.T) {
	p := testProvider()
	store := NewStore(p, events.NewBus())
	first, err := store.Load(context.Background())
	require.NoError(t, err)

	p.Features = p.Features[:1]
	second, err := store.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Len(t, second.Features(), 1)
	assert.Len(t, first.Features(), 3, "old snapshot is untouched")
}

func TestSnapshot_AccessorsReturnCopies(t *testing.T) {
	store := NewStore(testProvider(), events.NewBus())
	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	features := snap.Features()
	features[0].Title = "mutated"
	again, _ := snap.Feature(features[0].ID)
	assert.Equal(t, "Epic", again.Title)

	children := snap.Children("e1")
	children[0] = "mutated"
	assert.Equal(t, []string{"f1"}, snap.Children("e1"))
}

type failingProvider struct {
	*provider.StaticProvider
	err error
}

func (f *failingProvider) FetchFeatures(ctx context.Context) ([]domain.Feature, error) {
	return nil, f.err
}
