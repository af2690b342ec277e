package repository

import (
	"context"
	"errors"

	"secret-santa-backend/internal/features/assignment/models"
	"secret-santa-backend/internal/platform/postgres"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrCacheMiss           = errors.New("assignment not cached")
)

type AssignmentRepository interface {
	BeginTx(ctx context.Context) (postgres.Transaction, error)
	// ListMembersForUpdateTx locks the team's participants and returns them
	// in registration order.
	ListMembersForUpdateTx(ctx context.Context, tx postgres.Transaction, teamID int64) ([]models.Member, error)
	// SetGiftToTx writes giver -> recipient for every entry of pairs. All
	// givers must belong to teamID.
	SetGiftToTx(ctx context.Context, tx postgres.Transaction, teamID int64, pairs map[int64]int64) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.Assignment, error)
	GetByParticipantID(ctx context.Context, participantID int64) (*models.Assignment, error)
}

// LookupCache keeps recently read assignments keyed by Telegram user id.
// Entries are stored under the generation current when the read began;
// Invalidate moves every given id to a new generation, so a row read before
// an assignment committed is never served after it.
type LookupCache interface {
	Generation(ctx context.Context, telegramID int64) (int64, error)
	Get(ctx context.Context, telegramID, generation int64) (*models.Assignment, error)
	Set(ctx context.Context, telegramID, generation int64, a *models.Assignment) error
	Invalidate(ctx context.Context, telegramIDs ...int64) error
}
