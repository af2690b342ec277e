package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "secret-santa-backend/internal/common/errors"
	"secret-santa-backend/internal/common/types"
	"secret-santa-backend/internal/features/codes/models"
	"secret-santa-backend/internal/features/codes/service"
)

type CodeHandler struct {
	issuer service.CodeIssuer
}

func NewCodeHandler(issuer service.CodeIssuer) *CodeHandler {
	return &CodeHandler{issuer: issuer}
}

func (h *CodeHandler) RegisterRoutes(router *gin.RouterGroup) {
	bot := router.Group("/bot")
	{
		bot.POST("/register", h.Register)
	}
}

// @Summary Register a participant by invite code
// @Description Redeems a single-use invite code on behalf of a chat bot user and creates the participant.
// @Tags bot
// @Accept json
// @Produce json
// @Param input body models.RegisterRequest true "Invite code and user"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input, code already used or user already registered"
// @Failure 404 {object} middleware.ErrorResponse "Code not found"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /bot/register [post]
func (h *CodeHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error()))
		return
	}

	res, err := h.issuer.Redeem(c.Request.Context(), models.Redemption{
		Code:       req.Code,
		Name:       req.Name,
		TelegramID: int64(req.TelegramID),
	})
	if err != nil {
		_ = c.Error(toAppError(err))
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		ParticipantID: types.ID(res.ParticipantID),
		TeamName:      res.TeamName,
		TeamRules:     res.TeamRules,
	})
}

func toAppError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	case errors.Is(err, service.ErrCodeNotFound):
		return apperrors.New(apperrors.ErrCodeNotFound, "Code not found")
	case errors.Is(err, service.ErrCodeAlreadyUsed):
		return apperrors.New(apperrors.ErrCodeCodeAlreadyUsed, "Code already used")
	case errors.Is(err, service.ErrAlreadyRegistered):
		return apperrors.New(apperrors.ErrCodeAlreadyRegistered, "Participant already registered")
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		return apperrors.Wrap(err, apperrors.ErrCodeCodeSpaceExhausted, err.Error())
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, err.Error())
	}
}
