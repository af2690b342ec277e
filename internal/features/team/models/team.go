package models

import (
	"time"

	"secret-santa-backend/internal/common/types"
)

type Team struct {
	ID        int64
	Name      string
	Rules     string
	CreatedAt time.Time
}

type TeamCode struct {
	Code   string `json:"code"`
	IsUsed bool   `json:"isUsed"`
}

// TeamSummary is a team with its codes and the names of registered participants.
type TeamSummary struct {
	Team
	Codes        []TeamCode
	Participants []string
}

// CreatedTeam is a freshly created team together with the codes minted for it.
type CreatedTeam struct {
	Team
	Codes []string
}

type TeamCreate struct {
	Name             string `json:"name" binding:"required"`
	Rules            string `json:"rules"`
	ParticipantCount *int   `json:"participantCount" binding:"omitempty,min=1,max=900"`
}

type TeamCreateResponse struct {
	ID        types.ID  `json:"id"`
	Name      string    `json:"name"`
	Rules     string    `json:"rules"`
	Codes     []string  `json:"codes"`
	CreatedAt time.Time `json:"createdAt"`
}

type TeamResponse struct {
	ID           types.ID   `json:"id"`
	Name         string     `json:"name"`
	Rules        string     `json:"rules"`
	Codes        []string   `json:"codes"`
	CodeStatus   []TeamCode `json:"codeStatus"`
	Participants []string   `json:"participants"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func NewTeamCreateResponse(t *CreatedTeam) TeamCreateResponse {
	codes := t.Codes
	if codes == nil {
		codes = []string{}
	}
	return TeamCreateResponse{
		ID:        types.ID(t.ID),
		Name:      t.Name,
		Rules:     t.Rules,
		Codes:     codes,
		CreatedAt: t.CreatedAt,
	}
}

func NewTeamResponse(t *TeamSummary) TeamResponse {
	resp := TeamResponse{
		ID:           types.ID(t.ID),
		Name:         t.Name,
		Rules:        t.Rules,
		Codes:        make([]string, 0, len(t.Codes)),
		CodeStatus:   make([]TeamCode, 0, len(t.Codes)),
		Participants: make([]string, 0, len(t.Participants)),
		CreatedAt:    t.CreatedAt,
	}
	for _, c := range t.Codes {
		resp.Codes = append(resp.Codes, c.Code)
		resp.CodeStatus = append(resp.CodeStatus, c)
	}
	resp.Participants = append(resp.Participants, t.Participants...)
	return resp
}
