package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"secret-santa-backend/internal/features/participant/models"
	"secret-santa-backend/internal/features/participant/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ParticipantRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, c.code, p.team_id, p.telegram_id, g.name, p.created_at
		FROM participants p
		JOIN codes c ON c.id = p.code_id
		LEFT JOIN participants g ON g.id = p.gift_to_id
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		var giftTo sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.TeamID, &p.TelegramID, &giftTo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if giftTo.Valid {
			p.GiftTo = &giftTo.String
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}
