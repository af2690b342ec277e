package models

import (
	"time"

	"secret-santa-backend/internal/common/types"
)

type Participant struct {
	ID         int64
	Name       string
	Code       string
	TeamID     int64
	TelegramID int64
	GiftTo     *string
	CreatedAt  time.Time
}

type ParticipantResponse struct {
	ID         types.ID  `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	TeamID     types.ID  `json:"teamId"`
	TelegramID int64     `json:"telegramId"`
	GiftTo     *string   `json:"giftTo"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewParticipantResponse(p *Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:         types.ID(p.ID),
		Name:       p.Name,
		Code:       p.Code,
		TeamID:     types.ID(p.TeamID),
		TelegramID: p.TelegramID,
		GiftTo:     p.GiftTo,
		CreatedAt:  p.CreatedAt,
	}
}
