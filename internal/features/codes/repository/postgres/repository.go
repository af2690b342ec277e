package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"secret-santa-backend/internal/features/codes/models"
	"secret-santa-backend/internal/features/codes/repository"
	pgplatform "secret-santa-backend/internal/platform/postgres"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.CodeRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) BeginTx(ctx context.Context) (pgplatform.Transaction, error) {
	return pgplatform.BeginTx(ctx, r.db)
}

func (r *postgresRepository) ListByPrefixTx(ctx context.Context, tx pgplatform.Transaction, prefix string) ([]string, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	rows, err := sqlTx.QueryContext(ctx,
		`SELECT code FROM codes WHERE substr(code, 1, length($1)) = $1`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *postgresRepository) InsertTx(ctx context.Context, tx pgplatform.Transaction, teamID int64, code string) (bool, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return false, err
	}

	// ON CONFLICT keeps the transaction usable when a concurrent mint won the code.
	var id int64
	err = sqlTx.QueryRowContext(ctx, `
		INSERT INTO codes (team_id, code)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
		RETURNING id
	`, teamID, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert code: %w", err)
	}
	return true, nil
}

func (r *postgresRepository) GetForUpdateTx(ctx context.Context, tx pgplatform.Transaction, code string) (*models.Code, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return nil, err
	}

	var c models.Code
	err = sqlTx.QueryRowContext(ctx, `
		SELECT id, team_id, code, is_used, created_at
		FROM codes
		WHERE code = $1
		FOR UPDATE
	`, code).Scan(&c.ID, &c.TeamID, &c.Code, &c.IsUsed, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get code: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) MarkUsedTx(ctx context.Context, tx pgplatform.Transaction, codeID int64) error {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return err
	}

	res, err := sqlTx.ExecContext(ctx, `UPDATE codes SET is_used = TRUE WHERE id = $1`, codeID)
	if err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}
	if n == 0 {
		return repository.ErrCodeNotFound
	}
	return nil
}

func (r *postgresRepository) TelegramIDExistsTx(ctx context.Context, tx pgplatform.Transaction, telegramID int64) (bool, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = sqlTx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM participants WHERE telegram_id = $1)`, telegramID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreateParticipantTx(ctx context.Context, tx pgplatform.Transaction, p *models.NewParticipant) (int64, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = sqlTx.QueryRowContext(ctx, `
		INSERT INTO participants (team_id, code_id, name, telegram_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.TeamID, p.CodeID, p.Name, p.TelegramID).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case "participants_telegram_id_key":
				return 0, repository.ErrTelegramIDAlreadyExists
			case "participants_code_id_key":
				return 0, repository.ErrCodeAlreadyHasParticipant
			}
		}
		return 0, fmt.Errorf("failed to create participant: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) GetTeamTx(ctx context.Context, tx pgplatform.Transaction, teamID int64) (string, string, error) {
	sqlTx, err := pgplatform.Unwrap(tx)
	if err != nil {
		return "", "", err
	}

	var name, rules string
	err = sqlTx.QueryRowContext(ctx, `SELECT name, rules FROM teams WHERE id = $1`, teamID).Scan(&name, &rules)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", repository.ErrTeamNotFound
		}
		return "", "", fmt.Errorf("failed to get team: %w", err)
	}
	return name, rules, nil
}
