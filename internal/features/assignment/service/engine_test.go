package service

import (
	"context"
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secret-santa-backend/internal/utils/random"
)

func newEngine(repo *fakeRepository, cache *fakeCache, pub *fakePublisher) AssignmentEngine {
	e := &engine{repo: repo, src: random.NewSeededSource(11)}
	if cache != nil {
		e.cache = cache
	}
	if pub != nil {
		e.publisher = pub
	}
	return e
}

func seedTeam(repo *fakeRepository, teamID int64, names ...string) []int64 {
	repo.addTeam(teamID, "Office2024", "Budget 1000")
	ids := make([]int64, len(names))
	for i, name := range names {
		id := teamID*100 + int64(i) + 1
		repo.addParticipant(id, teamID, id*10, name)
		ids[i] = id
	}
	return ids
}

func TestAssign_FormsSingleCycle(t *testing.T) {
	repo := newFakeRepository()
	ids := seedTeam(repo, 1, "Anna", "Boris", "Clara", "Dmitri", "Eva")
	pub := &fakePublisher{}

	res, err := newEngine(repo, nil, pub).Assign(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Pairs)
	requireSingleCycle(t, ids, repo.giftTo)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventAssignmentCompleted, pub.events[0]["type"])
	assert.Equal(t, "1", pub.events[0]["team_id"])
	assert.Equal(t, "5", pub.events[0]["pairs"])
}

func TestAssign_OnlyTouchesOwnTeam(t *testing.T) {
	repo := newFakeRepository()
	ids := seedTeam(repo, 1, "Anna", "Boris", "Clara")
	other := seedTeam(repo, 2, "Xenia", "Yuri")

	_, err := newEngine(repo, nil, nil).Assign(context.Background(), 1)
	require.NoError(t, err)

	requireSingleCycle(t, ids, repo.giftTo)
	for _, id := range other {
		assert.NotContains(t, repo.giftTo, id)
	}
}

func TestAssign_InsufficientParticipants(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "empty team"},
		{name: "single participant", names: []string{"Anna"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			seedTeam(repo, 1, tt.names...)
			pub := &fakePublisher{}

			_, err := newEngine(repo, nil, pub).Assign(context.Background(), 1)
			assert.ErrorIs(t, err, ErrInsufficientParticipants)
			assert.Empty(t, repo.giftTo)
			assert.Empty(t, pub.events)
		})
	}
}

func TestAssign_RerunReplacesEdges(t *testing.T) {
	repo := newFakeRepository()
	ids := seedTeam(repo, 1, "Anna", "Boris", "Clara", "Dmitri", "Eva", "Fedor")
	e := newEngine(repo, nil, nil)

	changed := false
	_, err := e.Assign(context.Background(), 1)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		before := maps.Clone(repo.giftTo)
		_, err := e.Assign(context.Background(), 1)
		require.NoError(t, err)
		requireSingleCycle(t, ids, repo.giftTo)
		if !maps.Equal(before, repo.giftTo) {
			changed = true
		}
	}
	assert.True(t, changed, "reassignment should eventually draw a different cycle")
}

func TestAssign_WriteFailureRollsBack(t *testing.T) {
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris", "Clara", "Dmitri")
	e := newEngine(repo, nil, nil)

	_, err := e.Assign(context.Background(), 1)
	require.NoError(t, err)
	before := maps.Clone(repo.giftTo)

	repo.failSetAfter = 2
	_, err = e.Assign(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, before, repo.giftTo, "partial writes must be rolled back")
}

func TestAssign_InvalidTeamID(t *testing.T) {
	_, err := newEngine(newFakeRepository(), nil, nil).Assign(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssign_InvalidatesCache(t *testing.T) {
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris")
	cache := newFakeCache()
	e := newEngine(repo, cache, nil)

	before, err := e.LookupByTelegramID(context.Background(), 1010)
	require.NoError(t, err)
	assert.Nil(t, before.GiftTo)
	require.True(t, cache.cached(1010))

	_, err = e.Assign(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1010, 1020}, cache.invalidated)

	after, err := e.LookupByTelegramID(context.Background(), 1010)
	require.NoError(t, err)
	require.NotNil(t, after.GiftTo)
	assert.Equal(t, "Boris", *after.GiftTo)
}

func TestLookupByTelegramID_AssignDuringLookup(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris")
	cache := newFakeCache()

	racing := &assignDuringLookup{fakeRepository: repo}
	e := &engine{repo: racing, cache: cache, src: random.NewSeededSource(11)}
	racing.during = func() {
		_, err := e.Assign(ctx, 1)
		require.NoError(t, err)
	}

	stale, err := e.LookupByTelegramID(ctx, 1010)
	require.NoError(t, err)
	assert.Nil(t, stale.GiftTo)

	a, err := e.LookupByTelegramID(ctx, 1010)
	require.NoError(t, err)
	require.NotNil(t, a.GiftTo, "row read before the assignment must not be served after it")
	assert.Equal(t, "Boris", *a.GiftTo)
	assert.Equal(t, 2, repo.lookups)

	_, err = e.LookupByTelegramID(ctx, 1010)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lookups, "fresh row is cached")
}

func TestLookupByTelegramID_ReassignDuringLookup(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris", "Clara", "Dmitri")
	cache := newFakeCache()

	racing := &assignDuringLookup{fakeRepository: repo}
	e := &engine{repo: racing, cache: cache, src: random.NewSeededSource(5)}
	_, err := e.Assign(ctx, 1)
	require.NoError(t, err)

	racing.during = func() {
		_, err := e.Assign(ctx, 1)
		require.NoError(t, err)
	}
	_, err = e.LookupByTelegramID(ctx, 1010)
	require.NoError(t, err)

	a, err := e.LookupByTelegramID(ctx, 1010)
	require.NoError(t, err)
	require.NotNil(t, a.GiftTo)
	assert.Equal(t, repo.participants[repo.giftTo[101]].name, *a.GiftTo)
}

func TestAssign_SideEffectFailuresDoNotFail(t *testing.T) {
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris")
	cache := newFakeCache()
	cache.err = errors.New("redis down")

	_, err := newEngine(repo, cache, &fakePublisher{err: errors.New("redis down")}).Assign(context.Background(), 1)
	assert.NoError(t, err)
}

func TestLookupByTelegramID(t *testing.T) {
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris", "Clara")
	e := newEngine(repo, nil, nil)

	_, err := e.Assign(context.Background(), 1)
	require.NoError(t, err)

	a, err := e.LookupByTelegramID(context.Background(), 1010)
	require.NoError(t, err)
	assert.Equal(t, "Anna", a.Name)
	assert.Equal(t, "Office2024", a.TeamName)
	assert.Equal(t, "Budget 1000", a.Rules)
	require.NotNil(t, a.GiftTo)
	assert.NotEqual(t, "Anna", *a.GiftTo)
}

func TestLookupByTelegramID_CacheHitSkipsStore(t *testing.T) {
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris")
	cache := newFakeCache()
	e := newEngine(repo, cache, nil)

	_, err := e.LookupByTelegramID(context.Background(), 1010)
	require.NoError(t, err)
	_, err = e.LookupByTelegramID(context.Background(), 1010)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lookups)
}

func TestLookupByTelegramID_CacheFailureFallsBack(t *testing.T) {
	repo := newFakeRepository()
	seedTeam(repo, 1, "Anna", "Boris")
	cache := newFakeCache()
	cache.err = errors.New("redis down")

	a, err := newEngine(repo, cache, nil).LookupByTelegramID(context.Background(), 1010)
	require.NoError(t, err)
	assert.Equal(t, "Anna", a.Name)
}

func TestLookup_NotFound(t *testing.T) {
	repo := newFakeRepository()
	cache := newFakeCache()
	e := newEngine(repo, cache, nil)

	_, err := e.LookupByTelegramID(context.Background(), 777)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.Empty(t, cache.entries, "misses are not cached")

	_, err = e.LookupByParticipantID(context.Background(), 777)
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	_, err = e.LookupByTelegramID(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLookupByParticipantID_Unassigned(t *testing.T) {
	repo := newFakeRepository()
	ids := seedTeam(repo, 1, "Anna")

	a, err := newEngine(repo, nil, nil).LookupByParticipantID(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Anna", a.Name)
	assert.Nil(t, a.GiftTo)
}
