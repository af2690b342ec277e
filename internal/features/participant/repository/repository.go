package repository

import (
	"context"

	"secret-santa-backend/internal/features/participant/models"
)

type ParticipantRepository interface {
	// List returns all participants newest first.
	List(ctx context.Context) ([]*models.Participant, error)
}
