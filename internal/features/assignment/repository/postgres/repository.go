package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/lib/pq"

	"secret-santa-backend/internal/features/assignment/models"
	"secret-santa-backend/internal/features/assignment/repository"
	pgplatform "secret-santa-backend/internal/platform/postgres"
)

const lookupQuery = `
	SELECT p.id, p.name, t.id, t.name, t.rules, g.name
	FROM participants p
	JOIN teams t ON t.id = p.team_id
	LEFT JOIN participants g ON g.id = p.gift_to_id
`

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.AssignmentRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) BeginTx(ctx context.Context) (pgplatform.Transaction, error) {
	return pgplatform.BeginTx(ctx, r.db)
}

func (r *postgresRepository) ListMembersForUpdateTx(ctx context.Context, tx pgplatform.Transaction, teamID int64) ([]models.Member, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	rows, err := sqlTx.QueryContext(ctx, `
		SELECT id, telegram_id
		FROM participants
		WHERE team_id = $1
		ORDER BY created_at, id
		FOR UPDATE
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock participants: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.TelegramID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresRepository) SetGiftToTx(ctx context.Context, tx pgplatform.Transaction, teamID int64, pairs map[int64]int64) error {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return err
	}

	givers := make([]int64, 0, len(pairs))
	for id := range pairs {
		givers = append(givers, id)
	}
	slices.Sort(givers)
	recipients := make([]int64, len(givers))
	for i, id := range givers {
		recipients[i] = pairs[id]
	}

	res, err := sqlTx.ExecContext(ctx, `
		UPDATE participants AS p
		SET gift_to_id = v.gift_to_id
		FROM unnest($1::bigint[], $2::bigint[]) AS v(id, gift_to_id)
		WHERE p.id = v.id AND p.team_id = $3
	`, pq.Array(givers), pq.Array(recipients), teamID)
	if err != nil {
		return fmt.Errorf("failed to set gift recipients: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set gift recipients: %w", err)
	}
	if n != int64(len(givers)) {
		return fmt.Errorf("failed to set gift recipients: updated %d of %d participants", n, len(givers))
	}
	return nil
}

func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Assignment, error) {
	return r.get(ctx, lookupQuery+`WHERE p.telegram_id = $1`, telegramID)
}

func (r *postgresRepository) GetByParticipantID(ctx context.Context, participantID int64) (*models.Assignment, error) {
	return r.get(ctx, lookupQuery+`WHERE p.id = $1`, participantID)
}

func (r *postgresRepository) get(ctx context.Context, query string, arg int64) (*models.Assignment, error) {
	var a models.Assignment
	var giftTo sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&a.ParticipantID, &a.Name, &a.TeamID, &a.TeamName, &a.Rules, &giftTo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if giftTo.Valid {
		a.GiftTo = &giftTo.String
	}
	return &a, nil
}
