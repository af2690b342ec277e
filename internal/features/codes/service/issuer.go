package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"secret-santa-backend/internal/common/logger"
	"secret-santa-backend/internal/common/validation"
	"secret-santa-backend/internal/features/codes/models"
	"secret-santa-backend/internal/features/codes/repository"
	"secret-santa-backend/internal/platform/postgres"
)

const EventParticipantRegistered = "participant_registered"

// EventPublisher delivers domain events to the chat bot.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, fields map[string]interface{}) (string, error)
}

// CodeIssuer mints invite codes for new teams and redeems them into
// participants.
type CodeIssuer interface {
	Mint(ctx context.Context, tx postgres.Transaction, teamID int64, count int) ([]string, error)
	Redeem(ctx context.Context, in models.Redemption) (*models.RedeemResult, error)
}

type codeIssuer struct {
	repo      repository.CodeRepository
	gen       *Generator
	publisher EventPublisher
}

// NewCodeIssuer builds a CodeIssuer. publisher may be nil.
func NewCodeIssuer(repo repository.CodeRepository, gen *Generator, publisher EventPublisher) CodeIssuer {
	return &codeIssuer{repo: repo, gen: gen, publisher: publisher}
}

// Mint creates count unique codes for teamID inside tx. The caller owns tx
// and must roll it back if Mint fails, so a team never ends up partially
// coded. Codes are returned in mint order.
func (s *codeIssuer) Mint(ctx context.Context, tx postgres.Transaction, teamID int64, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: participant count must be at least 1", ErrInvalidInput)
	}

	existing, err := s.repo.ListByPrefixTx(ctx, tx, s.gen.Prefix())
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing)+count)
	for _, c := range existing {
		taken[c] = struct{}{}
	}
	if free := s.gen.Capacity() - len(taken); count > free {
		return nil, fmt.Errorf("%w: requested %d, %d available", ErrCodeSpaceExhausted, count, free)
	}

	codes := make([]string, 0, count)
	for len(codes) < count {
		code, ok := s.gen.Pick(taken)
		if !ok {
			return nil, ErrCodeSpaceExhausted
		}
		taken[code] = struct{}{}

		// The unique constraint is authoritative: a concurrent mint may have
		// claimed the code after ListByPrefixTx, in which case draw again.
		inserted, err := s.repo.InsertTx(ctx, tx, teamID, code)
		if err != nil {
			return nil, err
		}
		if !inserted {
			logger.Debug().Str("code", code).Int64("team_id", teamID).Msg("code collision, redrawing")
			continue
		}
		codes = append(codes, code)
	}

	return codes, nil
}

// Redeem converts an unused code into a participant. Locking the code row,
// creating the participant and marking the code used happen in a single
// transaction.
func (s *codeIssuer) Redeem(ctx context.Context, in models.Redemption) (*models.RedeemResult, error) {
	name, err := validation.ValidateParticipantName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validation.ValidatePositiveInt(in.TelegramID, "telegramId"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	code := validation.NormalizeCode(in.Code)
	if !validation.IsValidCode(code, s.gen.Prefix()) {
		return nil, ErrCodeNotFound
	}

	var result *models.RedeemResult
	err = postgres.RunInTx(ctx, s.repo.BeginTx, func(tx postgres.Transaction) error {
		c, err := s.repo.GetForUpdateTx(ctx, tx, code)
		if err != nil {
			return err
		}
		if c.IsUsed {
			return ErrCodeAlreadyUsed
		}

		exists, err := s.repo.TelegramIDExistsTx(ctx, tx, in.TelegramID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyRegistered
		}

		participantID, err := s.repo.CreateParticipantTx(ctx, tx, &models.NewParticipant{
			TeamID:     c.TeamID,
			CodeID:     c.ID,
			Name:       name,
			TelegramID: in.TelegramID,
		})
		if err != nil {
			return err
		}
		if err := s.repo.MarkUsedTx(ctx, tx, c.ID); err != nil {
			return err
		}

		teamName, rules, err := s.repo.GetTeamTx(ctx, tx, c.TeamID)
		if err != nil {
			return err
		}

		result = &models.RedeemResult{
			ParticipantID: participantID,
			TeamID:        c.TeamID,
			TeamName:      teamName,
			TeamRules:     rules,
		}
		return nil
	})
	if err != nil {
		return nil, translateRepoError(err)
	}

	logger.Info().
		Str("code", code).
		Int64("team_id", result.TeamID).
		Int64("participant_id", result.ParticipantID).
		Int64("telegram_id", in.TelegramID).
		Msg("Code redeemed")

	s.publish(ctx, result, in.TelegramID)
	return result, nil
}

func (s *codeIssuer) publish(ctx context.Context, r *models.RedeemResult, telegramID int64) {
	if s.publisher == nil {
		return
	}
	_, err := s.publisher.Publish(ctx, EventParticipantRegistered, map[string]interface{}{
		"team_id":        strconv.FormatInt(r.TeamID, 10),
		"participant_id": strconv.FormatInt(r.ParticipantID, 10),
		"telegram_id":    strconv.FormatInt(telegramID, 10),
	})
	if err != nil {
		logger.Warn().Err(err).Int64("participant_id", r.ParticipantID).Msg("failed to publish registration event")
	}
}

func translateRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCodeNotFound):
		return ErrCodeNotFound
	case errors.Is(err, repository.ErrCodeAlreadyHasParticipant):
		return ErrCodeAlreadyUsed
	case errors.Is(err, repository.ErrTelegramIDAlreadyExists):
		return ErrAlreadyRegistered
	default:
		return err
	}
}
