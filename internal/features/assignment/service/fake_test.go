package service

import (
	"context"
	"errors"
	"maps"
	"sync"

	"secret-santa-backend/internal/features/assignment/models"
	"secret-santa-backend/internal/features/assignment/repository"
	"secret-santa-backend/internal/platform/postgres"
)

type fakeParticipant struct {
	teamID     int64
	telegramID int64
	name       string
}

// fakeRepository keeps gift edges in memory and restores them on rollback.
type fakeRepository struct {
	participants map[int64]fakeParticipant
	order        []int64
	giftTo       map[int64]int64
	teams        map[int64][2]string

	failSetAfter int
	lookups      int
}

type fakeTx struct {
	repo     *fakeRepository
	snapshot map[int64]int64
	done     bool
}

func (t *fakeTx) Commit() error {
	t.done = true
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.repo.giftTo = t.snapshot
	return nil
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		participants: map[int64]fakeParticipant{},
		giftTo:       map[int64]int64{},
		teams:        map[int64][2]string{},
	}
}

func (r *fakeRepository) addTeam(id int64, name, rules string) {
	r.teams[id] = [2]string{name, rules}
}

func (r *fakeRepository) addParticipant(id, teamID, telegramID int64, name string) {
	r.participants[id] = fakeParticipant{teamID: teamID, telegramID: telegramID, name: name}
	r.order = append(r.order, id)
}

func (r *fakeRepository) BeginTx(context.Context) (postgres.Transaction, error) {
	return &fakeTx{repo: r, snapshot: maps.Clone(r.giftTo)}, nil
}

func (r *fakeRepository) ListMembersForUpdateTx(_ context.Context, _ postgres.Transaction, teamID int64) ([]models.Member, error) {
	var out []models.Member
	for _, id := range r.order {
		if p := r.participants[id]; p.teamID == teamID {
			out = append(out, models.Member{ID: id, TelegramID: p.telegramID})
		}
	}
	return out, nil
}

func (r *fakeRepository) SetGiftToTx(_ context.Context, _ postgres.Transaction, teamID int64, pairs map[int64]int64) error {
	written := 0
	for giver, recipient := range pairs {
		if r.failSetAfter > 0 && written >= r.failSetAfter {
			return errors.New("connection reset")
		}
		if r.participants[giver].teamID != teamID {
			return errors.New("giver outside team")
		}
		r.giftTo[giver] = recipient
		written++
	}
	return nil
}

func (r *fakeRepository) assignment(id int64) *models.Assignment {
	p := r.participants[id]
	team := r.teams[p.teamID]
	a := &models.Assignment{ParticipantID: id, Name: p.name, TeamID: p.teamID, TeamName: team[0], Rules: team[1]}
	if to, ok := r.giftTo[id]; ok {
		name := r.participants[to].name
		a.GiftTo = &name
	}
	return a
}

func (r *fakeRepository) GetByTelegramID(_ context.Context, telegramID int64) (*models.Assignment, error) {
	r.lookups++
	for id, p := range r.participants {
		if p.telegramID == telegramID {
			return r.assignment(id), nil
		}
	}
	return nil, repository.ErrParticipantNotFound
}

func (r *fakeRepository) GetByParticipantID(_ context.Context, participantID int64) (*models.Assignment, error) {
	r.lookups++
	if _, ok := r.participants[participantID]; !ok {
		return nil, repository.ErrParticipantNotFound
	}
	return r.assignment(participantID), nil
}

type cacheKey struct {
	telegramID int64
	generation int64
}

type fakeCache struct {
	entries     map[cacheKey]*models.Assignment
	generations map[int64]int64
	invalidated []int64
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[cacheKey]*models.Assignment{}, generations: map[int64]int64{}}
}

// cached reports whether a lookup of telegramID would hit.
func (c *fakeCache) cached(telegramID int64) bool {
	_, ok := c.entries[cacheKey{telegramID, c.generations[telegramID]}]
	return ok
}

func (c *fakeCache) Generation(_ context.Context, telegramID int64) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.generations[telegramID], nil
}

func (c *fakeCache) Get(_ context.Context, telegramID, generation int64) (*models.Assignment, error) {
	if c.err != nil {
		return nil, c.err
	}
	a, ok := c.entries[cacheKey{telegramID, generation}]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return a, nil
}

func (c *fakeCache) Set(_ context.Context, telegramID, generation int64, a *models.Assignment) error {
	if c.err != nil {
		return c.err
	}
	c.entries[cacheKey{telegramID, generation}] = a
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, telegramIDs ...int64) error {
	c.invalidated = append(c.invalidated, telegramIDs...)
	if c.err != nil {
		return c.err
	}
	for _, id := range telegramIDs {
		c.generations[id]++
	}
	return nil
}

// assignDuringLookup runs during once, after the row has been read from the
// store and before it is returned, so the caller holds a row that predates
// the assignment.
type assignDuringLookup struct {
	*fakeRepository
	during func()
}

func (r *assignDuringLookup) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Assignment, error) {
	a, err := r.fakeRepository.GetByTelegramID(ctx, telegramID)
	if r.during != nil {
		during := r.during
		r.during = nil
		during()
	}
	return a, err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []map[string]interface{}
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, fields map[string]interface{}) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	e := maps.Clone(fields)
	e["type"] = eventType
	p.events = append(p.events, e)
	return "1-0", nil
}
