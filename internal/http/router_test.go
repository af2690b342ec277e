package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secret-santa-backend/internal/common/config"
	"secret-santa-backend/internal/common/middleware"
	assignmenthttp "secret-santa-backend/internal/features/assignment/delivery/http"
	assignmentmodels "secret-santa-backend/internal/features/assignment/models"
	codeshttp "secret-santa-backend/internal/features/codes/delivery/http"
	codesmodels "secret-santa-backend/internal/features/codes/models"
	participanthttp "secret-santa-backend/internal/features/participant/delivery/http"
	participantmodels "secret-santa-backend/internal/features/participant/models"
	teamhttp "secret-santa-backend/internal/features/team/delivery/http"
	teammodels "secret-santa-backend/internal/features/team/models"
	"secret-santa-backend/internal/platform/postgres"
)

type teamStub struct{}

func (teamStub) Create(_ context.Context, in teammodels.TeamCreate) (*teammodels.CreatedTeam, error) {
	return &teammodels.CreatedTeam{Team: teammodels.Team{ID: 1, Name: in.Name}, Codes: []string{"MVT100"}}, nil
}

func (teamStub) List(context.Context) ([]*teammodels.TeamSummary, error) {
	return nil, nil
}

type issuerStub struct{}

func (issuerStub) Mint(context.Context, postgres.Transaction, int64, int) ([]string, error) {
	return nil, nil
}

func (issuerStub) Redeem(context.Context, codesmodels.Redemption) (*codesmodels.RedeemResult, error) {
	return &codesmodels.RedeemResult{ParticipantID: 3, TeamID: 1, TeamName: "Office2024"}, nil
}

type participantStub struct{}

func (participantStub) List(context.Context) ([]*participantmodels.Participant, error) {
	return nil, nil
}

type engineStub struct{}

func (engineStub) Assign(_ context.Context, teamID int64) (*assignmentmodels.AssignResult, error) {
	return &assignmentmodels.AssignResult{TeamID: teamID, Pairs: 2}, nil
}

func (engineStub) LookupByTelegramID(context.Context, int64) (*assignmentmodels.Assignment, error) {
	return &assignmentmodels.Assignment{Name: "Anna"}, nil
}

func (engineStub) LookupByParticipantID(context.Context, int64) (*assignmentmodels.Assignment, error) {
	return &assignmentmodels.Assignment{Name: "Anna"}, nil
}

func newTestRouter(checks ...ReadinessCheck) *gin.Engine {
	cfg := &config.Config{}
	cfg.Server.AllowOrigins = []string{"*"}

	return NewRouter(cfg, Handlers{
		Team:        teamhttp.NewTeamHandler(teamStub{}),
		Codes:       codeshttp.NewCodeHandler(issuerStub{}),
		Participant: participanthttp.NewParticipantHandler(participantStub{}),
		Assignment:  assignmenthttp.NewAssignmentHandler(engineStub{}),
	}, checks...)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPreflight_EmptyOK(t *testing.T) {
	r := newTestRouter()

	plain := serve(r, httptest.NewRequest(http.MethodOptions, "/api?action=createTeam", nil))
	assert.Equal(t, http.StatusOK, plain.Code)
	assert.Empty(t, plain.Body.String())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/teams", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	cors := serve(r, req)
	assert.Equal(t, http.StatusOK, cors.Code)
	assert.Empty(t, cors.Body.String())
	assert.Equal(t, "*", cors.Header().Get("Access-Control-Allow-Origin"))
}

func TestGateway_Dispatch(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api?action=teams", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/api?action=createTeam", strings.NewReader(`{"name":"Office2024"}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api?action=botRegister", strings.NewReader(`{"code":"MVT100","name":"Anna","telegramId":"42"}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api?action=assign", strings.NewReader(`{"teamId":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"pairs":2}`, w.Body.String())
}

func TestGateway_ActionNotFound(t *testing.T) {
	r := newTestRouter()

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api?action=unknown", nil),
		httptest.NewRequest(http.MethodGet, "/api", nil),
		httptest.NewRequest(http.MethodPost, "/api?action=teams", nil),
	} {
		w := serve(r, req)
		assert.Equal(t, http.StatusNotFound, w.Code, req.URL.String())

		var body middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Action not found", body.Error)
	}
}

func TestGateway_BotInfoRequiresTelegramID(t *testing.T) {
	w := serve(newTestRouter(), httptest.NewRequest(http.MethodGet, "/api?action=botInfo", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "telegramId is required")
}

func TestMeAssignment_NotConfigured(t *testing.T) {
	w := serve(newTestRouter(), httptest.NewRequest(http.MethodGet, "/api/v1/me/assignment", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProbes(t *testing.T) {
	healthy := newTestRouter(ReadinessCheck{Name: "postgres", Check: func(context.Context) error { return nil }})

	assert.Equal(t, http.StatusOK, serve(healthy, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(healthy, httptest.NewRequest(http.MethodGet, "/live", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(healthy, httptest.NewRequest(http.MethodGet, "/ready", nil)).Code)

	unready := newTestRouter(ReadinessCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }})
	w := serve(unready, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis unavailable")
}

func TestUnknownRoute(t *testing.T) {
	w := serve(newTestRouter(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
