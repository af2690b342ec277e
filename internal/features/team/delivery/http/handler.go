package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "secret-santa-backend/internal/common/errors"
	codesvc "secret-santa-backend/internal/features/codes/service"
	"secret-santa-backend/internal/features/team/models"
	"secret-santa-backend/internal/features/team/service"
)

type TeamHandler struct {
	service service.TeamService
}

func NewTeamHandler(service service.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

func (h *TeamHandler) RegisterRoutes(router *gin.RouterGroup) {
	teams := router.Group("/teams")
	{
		teams.GET("", h.List)
		teams.POST("", h.Create)
	}
}

// @Summary List teams
// @Description Returns every team newest first with its invite codes and participant names.
// @Tags teams
// @Produce json
// @Success 200 {array} models.TeamResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeInternal, err.Error()))
		return
	}

	response := make([]models.TeamResponse, 0, len(teams))
	for _, t := range teams {
		response = append(response, models.NewTeamResponse(t))
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Create team
// @Description Creates a team and mints one invite code per expected participant.
// @Tags teams
// @Accept json
// @Produce json
// @Param input body models.TeamCreate true "Team"
// @Success 201 {object} models.TeamCreateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Invite code space exhausted"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req models.TeamCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error()))
		return
	}

	team, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, codesvc.ErrInvalidInput):
			_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error()))
		case errors.Is(err, codesvc.ErrCodeSpaceExhausted):
			_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeCodeSpaceExhausted, err.Error()))
		default:
			_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeInternal, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, models.NewTeamCreateResponse(team))
}
