package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"course-rag-be/internal/dto"
	"course-rag-be/internal/pkg/serverutils"
	"course-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRagService struct {
	res *dto.QueryResponse
	err error
}

func (s *stubRagService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	return s.res, s.err
}

func (s *stubRagService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	return &dto.CreateSessionResponse{SessionId: "session-1"}, s.err
}

func (s *stubRagService) ClearSession(ctx context.Context, sessionID string) error {
	return s.err
}

func newTestApp(svc service.IRagService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(svc).RegisterRoutes(api)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body []byte) (*http.Response, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestQueryEndpointReturnsAnswerEnvelope(t *testing.T) {
	app := newTestApp(&stubRagService{
		res: &dto.QueryResponse{
			Answer:    "MCP servers expose tools.",
			Sources:   []dto.SourceDTO{{Text: "Intro to MCP - Lesson 2", Link: "https://example.com/2"}},
			SessionId: "session-1",
		},
	})

	resp, env := doJSON(t, app, "POST", "/api/chat/v1/query", []byte(`{"query":"What is an MCP server?"}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, 200, env.Code)

	var data dto.QueryResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "MCP servers expose tools.", data.Answer)
	require.Len(t, data.Sources, 1)
	assert.Equal(t, "Intro to MCP - Lesson 2", data.Sources[0].Text)
	assert.Equal(t, "session-1", data.SessionId)
}

func TestQueryEndpointMissingQueryIs422(t *testing.T) {
	app := newTestApp(&stubRagService{res: &dto.QueryResponse{}})

	resp, env := doJSON(t, app, "POST", "/api/chat/v1/query", []byte(`{}`))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusUnprocessableEntity, env.Code)
	assert.Contains(t, env.Message, "Query")
}

func TestQueryEndpointMalformedBodyIs422(t *testing.T) {
	app := newTestApp(&stubRagService{res: &dto.QueryResponse{}})

	resp, env := doJSON(t, app, "POST", "/api/chat/v1/query", []byte(`{not json`))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestQueryEndpointServiceErrorIsGeneric500(t *testing.T) {
	app := newTestApp(&stubRagService{err: errors.New("upstream api exploded")})

	resp, env := doJSON(t, app, "POST", "/api/chat/v1/query", []byte(`{"query":"anything"}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusInternalServerError, env.Code)
	// Internal details never leak into the envelope.
	assert.Equal(t, "Internal server error", env.Message)
}

func TestCreateAndClearSessionEndpoints(t *testing.T) {
	app := newTestApp(&stubRagService{})

	resp, env := doJSON(t, app, "POST", "/api/chat/v1/session", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var data dto.CreateSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "session-1", data.SessionId)

	resp, env = doJSON(t, app, "DELETE", "/api/chat/v1/session/session-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}
