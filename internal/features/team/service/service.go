package service

import (
	"context"
	"errors"
	"fmt"

	"secret-santa-backend/internal/common/logger"
	"secret-santa-backend/internal/common/validation"
	codesvc "secret-santa-backend/internal/features/codes/service"
	"secret-santa-backend/internal/features/team/models"
	"secret-santa-backend/internal/features/team/repository"
	"secret-santa-backend/internal/platform/postgres"
)

var ErrInvalidInput = errors.New("invalid input")

type TeamService interface {
	Create(ctx context.Context, in models.TeamCreate) (*models.CreatedTeam, error)
	List(ctx context.Context) ([]*models.TeamSummary, error)
}

// Defaults fill in the fields an admin may omit when creating a team.
type Defaults struct {
	Rules            string
	ParticipantCount int
}

type teamService struct {
	repo     repository.TeamRepository
	issuer   codesvc.CodeIssuer
	defaults Defaults
}

func NewTeamService(repo repository.TeamRepository, issuer codesvc.CodeIssuer, defaults Defaults) TeamService {
	return &teamService{repo: repo, issuer: issuer, defaults: defaults}
}

// Create inserts the team and mints its invite codes in one transaction.
func (s *teamService) Create(ctx context.Context, in models.TeamCreate) (*models.CreatedTeam, error) {
	name, err := validation.ValidateTeamName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	rules, err := validation.ValidateRules(in.Rules, s.defaults.Rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	count := s.defaults.ParticipantCount
	if in.ParticipantCount != nil {
		count = *in.ParticipantCount
	}
	if count < 1 || count > validation.MaxParticipantCount {
		return nil, fmt.Errorf("%w: participantCount must be between 1 and %d", ErrInvalidInput, validation.MaxParticipantCount)
	}

	var created *models.CreatedTeam
	err = postgres.RunInTx(ctx, s.repo.BeginTx, func(tx postgres.Transaction) error {
		team, err := s.repo.CreateTx(ctx, tx, name, rules)
		if err != nil {
			return err
		}
		codes, err := s.issuer.Mint(ctx, tx, team.ID, count)
		if err != nil {
			return err
		}
		created = &models.CreatedTeam{Team: *team, Codes: codes}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("team_id", created.ID).
		Str("name", created.Name).
		Int("codes", len(created.Codes)).
		Msg("Team created")
	return created, nil
}

func (s *teamService) List(ctx context.Context) ([]*models.TeamSummary, error) {
	return s.repo.List(ctx)
}
