package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"secret-santa-backend/internal/features/team/models"
	"secret-santa-backend/internal/features/team/repository"
	pgplatform "secret-santa-backend/internal/platform/postgres"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.TeamRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) BeginTx(ctx context.Context) (pgplatform.Transaction, error) {
	return pgplatform.BeginTx(ctx, r.db)
}

func (r *postgresRepository) CreateTx(ctx context.Context, tx pgplatform.Transaction, name, rules string) (*models.Team, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	t := &models.Team{Name: name, Rules: rules}
	err = sqlTx.QueryRowContext(ctx, `
		INSERT INTO teams (name, rules)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, name, rules).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.TeamSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, rules, created_at
		FROM teams
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.TeamSummary
	byID := make(map[int64]*models.TeamSummary)
	for rows.Next() {
		t := &models.TeamSummary{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Rules, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if len(teams) == 0 {
		return teams, nil
	}

	if err := r.attachCodes(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.attachParticipants(ctx, byID); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresRepository) attachCodes(ctx context.Context, byID map[int64]*models.TeamSummary) error {
	rows, err := r.db.QueryContext(ctx, `SELECT team_id, code, is_used FROM codes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to list codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var c models.TeamCode
		if err := rows.Scan(&teamID, &c.Code, &c.IsUsed); err != nil {
			return fmt.Errorf("failed to scan code: %w", err)
		}
		if t, ok := byID[teamID]; ok {
			t.Codes = append(t.Codes, c)
		}
	}
	return rows.Err()
}

func (r *postgresRepository) attachParticipants(ctx context.Context, byID map[int64]*models.TeamSummary) error {
	rows, err := r.db.QueryContext(ctx, `SELECT team_id, name FROM participants ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var name string
		if err := rows.Scan(&teamID, &name); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if t, ok := byID[teamID]; ok {
			t.Participants = append(t.Participants, name)
		}
	}
	return rows.Err()
}
