package models

import "secret-santa-backend/internal/common/types"

// Member is a participant row as seen by the assignment engine.
type Member struct {
	ID         int64
	TelegramID int64
}

// Assignment is what a participant needs to know about their gift exchange.
// GiftTo is nil until the team has been assigned.
type Assignment struct {
	ParticipantID int64   `json:"participant_id"`
	Name          string  `json:"name"`
	TeamID        int64   `json:"team_id"`
	TeamName      string  `json:"team_name"`
	Rules         string  `json:"rules"`
	GiftTo        *string `json:"gift_to"`
}

type AssignResult struct {
	TeamID int64
	Pairs  int
}

type AssignRequest struct {
	TeamID types.ID `json:"teamId" binding:"required"`
}

type AssignResponse struct {
	Success bool `json:"success"`
	Pairs   int  `json:"pairs"`
}

type AssignmentResponse struct {
	ParticipantID types.ID `json:"participantId"`
	Name          string   `json:"name"`
	TeamID        types.ID `json:"teamId"`
	TeamName      string   `json:"teamName"`
	Rules         string   `json:"rules"`
	GiftTo        *string  `json:"giftTo"`
}

func NewAssignmentResponse(a *Assignment) AssignmentResponse {
	return AssignmentResponse{
		ParticipantID: types.ID(a.ParticipantID),
		Name:          a.Name,
		TeamID:        types.ID(a.TeamID),
		TeamName:      a.TeamName,
		Rules:         a.Rules,
		GiftTo:        a.GiftTo,
	}
}
