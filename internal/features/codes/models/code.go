package models

import (
	"time"

	"secret-santa-backend/internal/common/types"
)

// Code is a single-use invite bound to one team.
type Code struct {
	ID        int64
	TeamID    int64
	Code      string
	IsUsed    bool
	CreatedAt time.Time
}

// NewParticipant is the row created when a code is redeemed.
type NewParticipant struct {
	TeamID     int64
	CodeID     int64
	Name       string
	TelegramID int64
}

// Redemption is the input of a code redemption.
type Redemption struct {
	Code       string
	Name       string
	TelegramID int64
}

// RedeemResult describes the participant created by a redemption.
type RedeemResult struct {
	ParticipantID int64
	TeamID        int64
	TeamName      string
	TeamRules     string
}

// RegisterRequest is the bot registration body.
type RegisterRequest struct {
	Code       string   `json:"code" binding:"required" example:"MVT104"`
	Name       string   `json:"name" binding:"required" example:"Anna"`
	TelegramID types.ID `json:"telegramId" binding:"required" swaggertype:"string" example:"123456789"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	ParticipantID types.ID `json:"participantId" swaggertype:"string" example:"17"`
	TeamName      string   `json:"teamName" example:"Office2024"`
	TeamRules     string   `json:"teamRules" example:"Budget up to 1000"`
}
