package service

import (
	"context"

	"secret-santa-backend/internal/features/participant/models"
	"secret-santa-backend/internal/features/participant/repository"
)

type ParticipantService interface {
	List(ctx context.Context) ([]*models.Participant, error)
}

type participantService struct {
	repo repository.ParticipantRepository
}

func NewParticipantService(repo repository.ParticipantRepository) ParticipantService {
	return &participantService{repo: repo}
}

func (s *participantService) List(ctx context.Context) ([]*models.Participant, error) {
	return s.repo.List(ctx)
}
