package service

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"

	"secret-santa-backend/internal/features/codes/models"
	"secret-santa-backend/internal/features/codes/repository"
	"secret-santa-backend/internal/platform/postgres"
)

type fakeState struct {
	codes        map[string]*models.Code
	participants map[int64]*models.NewParticipant
	nextID       int64
}

func (s fakeState) clone() fakeState {
	out := fakeState{
		codes:        make(map[string]*models.Code, len(s.codes)),
		participants: maps.Clone(s.participants),
		nextID:       s.nextID,
	}
	for k, v := range s.codes {
		c := *v
		out.codes[k] = &c
	}
	return out
}

// fakeRepository is an in-memory CodeRepository whose transactions restore
// a snapshot on rollback.
type fakeRepository struct {
	state fakeState
	teams map[int64][2]string

	// stolen codes are reported as conflicts on insert, imitating a
	// concurrent transaction that won the unique constraint.
	stolen map[string]bool

	failCreateParticipant error
	failInsertAfter       int
	inserts               int
	commits, rollbacks    int
}

type fakeTx struct {
	repo     *fakeRepository
	snapshot fakeState
	done     bool
}

func (t *fakeTx) Commit() error {
	t.done = true
	t.repo.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.repo.state = t.snapshot
	t.repo.rollbacks++
	return nil
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		state: fakeState{
			codes:        map[string]*models.Code{},
			participants: map[int64]*models.NewParticipant{},
		},
		teams:  map[int64][2]string{},
		stolen: map[string]bool{},
	}
}

func (r *fakeRepository) addTeam(id int64, name, rules string) {
	r.teams[id] = [2]string{name, rules}
}

func (r *fakeRepository) addCode(teamID int64, code string, used bool) {
	r.state.nextID++
	r.state.codes[code] = &models.Code{ID: r.state.nextID, TeamID: teamID, Code: code, IsUsed: used, CreatedAt: time.Now()}
}

func (r *fakeRepository) BeginTx(context.Context) (postgres.Transaction, error) {
	return &fakeTx{repo: r, snapshot: r.state.clone()}, nil
}

func (r *fakeRepository) ListByPrefixTx(_ context.Context, _ postgres.Transaction, prefix string) ([]string, error) {
	var out []string
	for code := range r.state.codes {
		if strings.HasPrefix(code, prefix) {
			out = append(out, code)
		}
	}
	return out, nil
}

func (r *fakeRepository) InsertTx(_ context.Context, _ postgres.Transaction, teamID int64, code string) (bool, error) {
	r.inserts++
	if r.failInsertAfter > 0 && r.inserts > r.failInsertAfter {
		return false, errors.New("connection reset")
	}
	if r.stolen[code] {
		return false, nil
	}
	if _, ok := r.state.codes[code]; ok {
		return false, nil
	}
	r.addCode(teamID, code, false)
	return true, nil
}

func (r *fakeRepository) GetForUpdateTx(_ context.Context, _ postgres.Transaction, code string) (*models.Code, error) {
	c, ok := r.state.codes[code]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepository) MarkUsedTx(_ context.Context, _ postgres.Transaction, codeID int64) error {
	for _, c := range r.state.codes {
		if c.ID == codeID {
			c.IsUsed = true
			return nil
		}
	}
	return repository.ErrCodeNotFound
}

func (r *fakeRepository) TelegramIDExistsTx(_ context.Context, _ postgres.Transaction, telegramID int64) (bool, error) {
	for _, p := range r.state.participants {
		if p.TelegramID == telegramID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) CreateParticipantTx(_ context.Context, _ postgres.Transaction, p *models.NewParticipant) (int64, error) {
	if r.failCreateParticipant != nil {
		return 0, r.failCreateParticipant
	}
	r.state.nextID++
	cp := *p
	r.state.participants[r.state.nextID] = &cp
	return r.state.nextID, nil
}

func (r *fakeRepository) GetTeamTx(_ context.Context, _ postgres.Transaction, teamID int64) (string, string, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return "", "", repository.ErrTeamNotFound
	}
	return t[0], t[1], nil
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
