package repository

import (
	"context"

	"secret-santa-backend/internal/features/team/models"
	"secret-santa-backend/internal/platform/postgres"
)

type TeamRepository interface {
	BeginTx(ctx context.Context) (postgres.Transaction, error)
	CreateTx(ctx context.Context, tx postgres.Transaction, name, rules string) (*models.Team, error)
	// List returns every team newest first with codes in mint order and
	// participants in registration order.
	List(ctx context.Context) ([]*models.TeamSummary, error)
}
