package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "secret-santa-backend/internal/common/errors"
	"secret-santa-backend/internal/common/middleware"
	"secret-santa-backend/internal/common/types"
	"secret-santa-backend/internal/features/assignment/models"
	"secret-santa-backend/internal/features/assignment/service"
)

type AssignmentHandler struct {
	engine service.AssignmentEngine
}

func NewAssignmentHandler(engine service.AssignmentEngine) *AssignmentHandler {
	return &AssignmentHandler{engine: engine}
}

// RegisterRoutes mounts the assignment endpoints. telegramAuth guards the
// Mini App endpoint.
func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup, telegramAuth gin.HandlerFunc) {
	router.POST("/teams/:id/assign", h.AssignTeam)
	router.GET("/participants/:id/assignment", h.GetParticipantAssignment)
	router.GET("/bot/info", h.BotInfo)
	router.GET("/me/assignment", telegramAuth, h.MyAssignment)
}

// Assign is the action gateway variant of AssignTeam, taking the team id
// from the JSON body.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error()))
		return
	}
	h.assign(c, int64(req.TeamID))
}

// @Summary Assign gift recipients
// @Description Draws a new gift cycle for the team. Replaces any previous assignment.
// @Tags assignment
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} models.AssignResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input or not enough participants"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /teams/{id}/assign [post]
func (h *AssignmentHandler) AssignTeam(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("id", err.Error()))
		return
	}
	h.assign(c, int64(id))
}

func (h *AssignmentHandler) assign(c *gin.Context, teamID int64) {
	res, err := h.engine.Assign(c.Request.Context(), teamID)
	if err != nil {
		_ = c.Error(toAppError(err))
		return
	}
	c.JSON(http.StatusOK, models.AssignResponse{Success: true, Pairs: res.Pairs})
}

// @Summary Bot assignment lookup
// @Description Returns the participant's team, rules and gift recipient for a Telegram user id.
// @Tags bot
// @Produce json
// @Param telegramId query string true "Telegram user ID"
// @Success 200 {object} models.AssignmentResponse
// @Failure 400 {object} middleware.ErrorResponse "telegramId missing or malformed"
// @Failure 404 {object} middleware.ErrorResponse "Participant not found"
// @Router /bot/info [get]
func (h *AssignmentHandler) BotInfo(c *gin.Context) {
	raw := c.Query("telegramId")
	if raw == "" {
		_ = c.Error(apperrors.New(apperrors.ErrCodeValidation, "telegramId is required"))
		return
	}
	telegramID, err := types.ParseID(raw)
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("telegramId", err.Error()))
		return
	}
	h.lookupByTelegramID(c, int64(telegramID))
}

// @Summary Participant assignment
// @Tags assignment
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} models.AssignmentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Participant not found"
// @Router /participants/{id}/assignment [get]
func (h *AssignmentHandler) GetParticipantAssignment(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("id", err.Error()))
		return
	}

	a, err := h.engine.LookupByParticipantID(c.Request.Context(), int64(id))
	if err != nil {
		_ = c.Error(toAppError(err))
		return
	}
	c.JSON(http.StatusOK, models.NewAssignmentResponse(a))
}

// @Summary My assignment
// @Description Assignment of the Telegram Mini App user identified by init data.
// @Tags assignment
// @Produce json
// @Param X-Telegram-Init-Data header string true "Telegram Mini App init data"
// @Success 200 {object} models.AssignmentResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Participant not found"
// @Router /me/assignment [get]
func (h *AssignmentHandler) MyAssignment(c *gin.Context) {
	telegramID, ok := middleware.TelegramUserID(c)
	if !ok {
		_ = c.Error(apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram user required"))
		return
	}
	h.lookupByTelegramID(c, telegramID)
}

func (h *AssignmentHandler) lookupByTelegramID(c *gin.Context, telegramID int64) {
	a, err := h.engine.LookupByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		_ = c.Error(toAppError(err))
		return
	}
	c.JSON(http.StatusOK, models.NewAssignmentResponse(a))
}

func toAppError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	case errors.Is(err, service.ErrInsufficientParticipants):
		return apperrors.Wrap(err, apperrors.ErrCodeInsufficientParticipants, "Not enough participants")
	case errors.Is(err, service.ErrParticipantNotFound):
		return apperrors.New(apperrors.ErrCodeNotFound, "Participant not found")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, err.Error())
	}
}
