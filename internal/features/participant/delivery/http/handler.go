package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "secret-santa-backend/internal/common/errors"
	"secret-santa-backend/internal/features/participant/models"
	"secret-santa-backend/internal/features/participant/service"
)

type ParticipantHandler struct {
	service service.ParticipantService
}

func NewParticipantHandler(service service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{service: service}
}

func (h *ParticipantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/participants", h.List)
}

// @Summary List participants
// @Description Returns every participant newest first with the name of the person they gift to.
// @Tags participants
// @Produce json
// @Success 200 {array} models.ParticipantResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /participants [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeInternal, err.Error()))
		return
	}

	response := make([]models.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		response = append(response, models.NewParticipantResponse(p))
	}
	c.JSON(http.StatusOK, response)
}
