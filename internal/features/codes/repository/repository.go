package repository

import (
	"context"
	"errors"

	"secret-santa-backend/internal/features/codes/models"
	"secret-santa-backend/internal/platform/postgres"
)

var (
	ErrCodeNotFound              = errors.New("code not found")
	ErrTeamNotFound              = errors.New("team not found")
	ErrTelegramIDAlreadyExists   = errors.New("telegram id already registered")
	ErrCodeAlreadyHasParticipant = errors.New("code already has a participant")
)

// CodeRepository stores invite codes and the participants created from them.
// All *Tx methods run inside a transaction obtained from BeginTx (or from
// another repository sharing the same database).
type CodeRepository interface {
	BeginTx(ctx context.Context) (postgres.Transaction, error)

	// ListByPrefixTx returns every existing code starting with prefix.
	ListByPrefixTx(ctx context.Context, tx postgres.Transaction, prefix string) ([]string, error)
	// InsertTx stores code for teamID. It returns false without error when
	// the code already exists.
	InsertTx(ctx context.Context, tx postgres.Transaction, teamID int64, code string) (bool, error)

	// GetForUpdateTx loads and row-locks a code.
	GetForUpdateTx(ctx context.Context, tx postgres.Transaction, code string) (*models.Code, error)
	MarkUsedTx(ctx context.Context, tx postgres.Transaction, codeID int64) error

	TelegramIDExistsTx(ctx context.Context, tx postgres.Transaction, telegramID int64) (bool, error)
	CreateParticipantTx(ctx context.Context, tx postgres.Transaction, p *models.NewParticipant) (int64, error)
	GetTeamTx(ctx context.Context, tx postgres.Transaction, teamID int64) (name, rules string, err error)
}
