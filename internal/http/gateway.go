package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "secret-santa-backend/internal/common/errors"
)

type action struct {
	method  string
	handler gin.HandlerFunc
}

// ActionGateway serves the single-endpoint API used by the admin panel and
// the chat bot, where the operation is picked by the action query parameter.
type ActionGateway struct {
	actions map[string]action
}

func NewActionGateway(h Handlers) *ActionGateway {
	return &ActionGateway{actions: map[string]action{
		"teams":        {method: http.MethodGet, handler: h.Team.List},
		"createTeam":   {method: http.MethodPost, handler: h.Team.Create},
		"participants": {method: http.MethodGet, handler: h.Participant.List},
		"assign":       {method: http.MethodPost, handler: h.Assignment.Assign},
		"botRegister":  {method: http.MethodPost, handler: h.Codes.Register},
		"botInfo":      {method: http.MethodGet, handler: h.Assignment.BotInfo},
	}}
}

func (g *ActionGateway) RegisterRoutes(router gin.IRouter) {
	router.GET("/api", g.Handle)
	router.POST("/api", g.Handle)
}

// Handle dispatches on ?action=. An unknown action, or a known one called
// with the wrong method, is answered with 404.
func (g *ActionGateway) Handle(c *gin.Context) {
	a, ok := g.actions[c.Query("action")]
	if !ok || a.method != c.Request.Method {
		_ = c.Error(apperrors.New(apperrors.ErrCodeNotFound, "Action not found"))
		return
	}
	a.handler(c)
}
