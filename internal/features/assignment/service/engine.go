package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"secret-santa-backend/internal/common/logger"
	"secret-santa-backend/internal/features/assignment/models"
	"secret-santa-backend/internal/features/assignment/repository"
	"secret-santa-backend/internal/platform/postgres"
	"secret-santa-backend/internal/utils/random"
)

const EventAssignmentCompleted = "assignment_completed"

// EventPublisher delivers domain events to the chat bot.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, fields map[string]interface{}) (string, error)
}

type AssignmentEngine interface {
	Assign(ctx context.Context, teamID int64) (*models.AssignResult, error)
	LookupByTelegramID(ctx context.Context, telegramID int64) (*models.Assignment, error)
	LookupByParticipantID(ctx context.Context, participantID int64) (*models.Assignment, error)
}

type engine struct {
	repo      repository.AssignmentRepository
	cache     repository.LookupCache
	publisher EventPublisher
	src       random.Source
}

// NewAssignmentEngine builds an AssignmentEngine. cache and publisher may be nil.
func NewAssignmentEngine(repo repository.AssignmentRepository, cache repository.LookupCache, publisher EventPublisher, src random.Source) AssignmentEngine {
	return &engine{repo: repo, cache: cache, publisher: publisher, src: src}
}

// Assign draws a new gift cycle for the team and replaces every previous
// recipient. The participants stay locked from read to write.
func (e *engine) Assign(ctx context.Context, teamID int64) (*models.AssignResult, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: teamId must be positive", ErrInvalidInput)
	}

	var members []models.Member
	err := postgres.RunInTx(ctx, e.repo.BeginTx, func(tx postgres.Transaction) error {
		var err error
		members, err = e.repo.ListMembersForUpdateTx(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if len(members) < 2 {
			return fmt.Errorf("%w: team %d has %d", ErrInsufficientParticipants, teamID, len(members))
		}

		ids := make([]int64, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
		return e.repo.SetGiftToTx(ctx, tx, teamID, BuildCycle(e.src, ids))
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("team_id", teamID).Int("pairs", len(members)).Msg("Assignment completed")

	e.invalidate(ctx, members)
	e.publish(ctx, teamID, len(members))
	return &models.AssignResult{TeamID: teamID, Pairs: len(members)}, nil
}

// LookupByTelegramID is served from the cache when possible. Cache errors
// fall through to the database. The generation is read before the database
// so that a row loaded ahead of a concurrent Assign is cached under a
// generation Assign has already retired.
func (e *engine) LookupByTelegramID(ctx context.Context, telegramID int64) (*models.Assignment, error) {
	if telegramID <= 0 {
		return nil, fmt.Errorf("%w: telegramId must be positive", ErrInvalidInput)
	}

	var (
		generation int64
		cacheable  bool
	)
	if e.cache != nil {
		gen, err := e.cache.Generation(ctx, telegramID)
		if err != nil {
			logger.Warn().Err(err).Int64("telegram_id", telegramID).Msg("assignment cache read failed")
		} else {
			generation, cacheable = gen, true
			a, err := e.cache.Get(ctx, telegramID, generation)
			if err == nil {
				return a, nil
			}
			if !errors.Is(err, repository.ErrCacheMiss) {
				logger.Warn().Err(err).Int64("telegram_id", telegramID).Msg("assignment cache read failed")
			}
		}
	}

	a, err := e.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if cacheable {
		if err := e.cache.Set(ctx, telegramID, generation, a); err != nil {
			logger.Warn().Err(err).Int64("telegram_id", telegramID).Msg("assignment cache write failed")
		}
	}
	return a, nil
}

func (e *engine) LookupByParticipantID(ctx context.Context, participantID int64) (*models.Assignment, error) {
	if participantID <= 0 {
		return nil, fmt.Errorf("%w: participant id must be positive", ErrInvalidInput)
	}

	a, err := e.repo.GetByParticipantID(ctx, participantID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return a, nil
}

func (e *engine) invalidate(ctx context.Context, members []models.Member) {
	if e.cache == nil {
		return
	}
	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.TelegramID
	}
	if err := e.cache.Invalidate(ctx, ids...); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate assignment cache")
	}
}

func (e *engine) publish(ctx context.Context, teamID int64, pairs int) {
	if e.publisher == nil {
		return
	}
	_, err := e.publisher.Publish(ctx, EventAssignmentCompleted, map[string]interface{}{
		"team_id": strconv.FormatInt(teamID, 10),
		"pairs":   strconv.Itoa(pairs),
	})
	if err != nil {
		logger.Warn().Err(err).Int64("team_id", teamID).Msg("failed to publish assignment event")
	}
}

func translateRepoError(err error) error {
	if errors.Is(err, repository.ErrParticipantNotFound) {
		return ErrParticipantNotFound
	}
	return err
}
