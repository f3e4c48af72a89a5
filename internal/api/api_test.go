package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/playeradmin/internal/api"
	"github.com/mcoot/playeradmin/internal/api/apierr"
	"github.com/mcoot/playeradmin/internal/api/response"
	"github.com/mcoot/playeradmin/internal/factory"
	"github.com/mcoot/playeradmin/internal/services/auth"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithAuth(t, &auth.Service{})
}

func newTestServerWithAuth(t *testing.T, authService *auth.Service) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app := factory.NewTestAppWithAuth(authService)

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		AuthService:   app.AuthService,
		PlayerService: app.PlayerService,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

var birthday2010 = time.Date(2010, time.May, 5, 0, 0, 0, 0, time.Local).UnixMilli()

func playerBody(name string, exp int) map[string]any {
	return map[string]any{
		"name":       name,
		"title":      "Adventurer",
		"race":       "HUMAN",
		"profession": "WARRIOR",
		"birthday":   birthday2010,
		"experience": exp,
	}
}

func (ts *testServer) create(t *testing.T, name string, exp int) response.Player {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/players", playerBody(name, exp), "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var p response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreatePlayer(t *testing.T) {
	ts := newTestServer(t)

	p := ts.create(t, "Alice", 5000)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "HUMAN", p.Race)
	assert.Equal(t, birthday2010, p.Birthday)
	assert.False(t, p.Banned)
	assert.Equal(t, 9, p.Level)
	assert.Equal(t, 500, p.UntilNextLevel)
}

func TestCreatePlayerJSONFieldNames(t *testing.T) {
	ts := newTestServer(t)
	ts.create(t, "Alice", 0)

	rr := ts.request(http.MethodGet, "/api/v1/players/1", nil, "")
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	for _, key := range []string{"id", "name", "title", "race", "profession", "birthday", "banned", "experience", "level", "untilNextLevel"} {
		assert.Contains(t, raw, key)
	}
}

func TestCreatePlayerInvalid(t *testing.T) {
	ts := newTestServer(t)

	cases := map[string]func(map[string]any){
		"missing name":     func(b map[string]any) { delete(b, "name") },
		"long name":        func(b map[string]any) { b["name"] = "ThirteenChars" },
		"negative exp":     func(b map[string]any) { b["experience"] = -1 },
		"too much exp":     func(b map[string]any) { b["experience"] = 10_000_001 },
		"unknown race":     func(b map[string]any) { b["race"] = "ANGEL" },
		"birthday too old": func(b map[string]any) { b["birthday"] = time.Date(1999, 6, 1, 0, 0, 0, 0, time.Local).UnixMilli() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := playerBody("Alice", 10)
			mutate(body)

			rr := ts.request(http.MethodPost, "/api/v1/players", body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidPlayer, decodeError(t, rr).Code)
		})
	}

	rr := ts.request(http.MethodGet, "/api/v1/players/count", nil, "")
	assert.Equal(t, "0", strings.TrimSpace(rr.Body.String()), "nothing was stored")
}

func TestCreatePlayerMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/players", `{"experience":"lots"}`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestGetPlayer(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, "Alice", 100)

	rr := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/players/%d", created.ID), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestPlayerIDCheckedBeforeBody(t *testing.T) {
	ts := newTestServer(t)

	for _, method := range []string{http.MethodPost, http.MethodPatch} {
		rr := ts.request(method, "/api/v1/players/0", "{not json", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, method)
		assert.Equal(t, apierr.CodeInvalidPlayerID, decodeError(t, rr).Code, method)
	}
}

func TestPlayerIDErrors(t *testing.T) {
	ts := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete} {
		for _, id := range []string{"0", "-4", "abc"} {
			rr := ts.request(method, "/api/v1/players/"+id, map[string]any{}, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, "%s %s", method, id)
			assert.Equal(t, apierr.CodeInvalidPlayerID, decodeError(t, rr).Code)
		}

		rr := ts.request(method, "/api/v1/players/77", map[string]any{}, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, method)
		assert.Equal(t, apierr.CodePlayerNotFound, decodeError(t, rr).Code)
	}
}

func TestUpdatePlayerPartial(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, "Alice", 0)

	for _, method := range []string{http.MethodPost, http.MethodPatch} {
		rr := ts.request(method, "/api/v1/players/1", map[string]any{"experience": 5000}, "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var updated response.Player
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
		assert.Equal(t, 5000, updated.Experience)
		assert.Equal(t, 9, updated.Level)
		assert.Equal(t, 500, updated.UntilNextLevel)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Birthday, updated.Birthday)
	}
}

func TestUpdatePlayerEmptyBodyKeepsPlayer(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, "Alice", 100)

	rr := ts.request(http.MethodPatch, "/api/v1/players/1", map[string]any{}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestUpdatePlayerInvalidIsAllOrNothing(t *testing.T) {
	ts := newTestServer(t)
	ts.create(t, "Alice", 100)

	rr := ts.request(http.MethodPost, "/api/v1/players/1", map[string]any{"name": "Bob", "title": strings.Repeat("t", 31)}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeInvalidPlayer, apiErr.Code)
	assert.Contains(t, apiErr.Message, "title")

	rr = ts.request(http.MethodGet, "/api/v1/players/1", nil, "")
	var got response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Alice", got.Name)
}

func TestDeletePlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.create(t, "Alice", 100)

	rr := ts.request(http.MethodDelete, "/api/v1/players/1", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/players/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func listNames(t *testing.T, rr *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}

func TestListPlayers(t *testing.T) {
	ts := newTestServer(t)
	ts.create(t, "Dora", 150)
	ts.create(t, "Bob", 120)
	ts.create(t, "Cid", 50)
	ts.create(t, "Ann", 200)
	ts.create(t, "Eve", 180)

	// Default paging is the first three by id
	assert.Equal(t, []string{"Dora", "Bob", "Cid"}, listNames(t, ts.request(http.MethodGet, "/api/v1/players", nil, "")))

	path := "/api/v1/players?minExperience=100&maxExperience=200&order=NAME&pageSize=2&pageNumber=1"
	assert.Equal(t, []string{"Dora", "Eve"}, listNames(t, ts.request(http.MethodGet, path, nil, "")))

	path = "/api/v1/players?order=EXPERIENCE&pageSize=10"
	assert.Equal(t, []string{"Cid", "Bob", "Dora", "Eve", "Ann"}, listNames(t, ts.request(http.MethodGet, path, nil, "")))

	path = "/api/v1/players?pageNumber=7"
	assert.Empty(t, listNames(t, ts.request(http.MethodGet, path, nil, "")))

	rr := ts.request(http.MethodGet, "/api/v1/players?pageNumber=7", nil, "")
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestListAndCountFilterErrors(t *testing.T) {
	ts := newTestServer(t)

	for _, query := range []string{"race=ANGEL", "profession=bard", "order=AGE", "minLevel=high", "banned=perhaps"} {
		rr := ts.request(http.MethodGet, "/api/v1/players?"+query, nil, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, query)
		assert.Equal(t, apierr.CodeInvalidFilter, decodeError(t, rr).Code, query)
	}

	rr := ts.request(http.MethodGet, "/api/v1/players/count?race=ANGEL", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCountPlayers(t *testing.T) {
	ts := newTestServer(t)
	for i := range 5 {
		ts.create(t, fmt.Sprintf("P%d", i), i*100)
	}

	rr := ts.request(http.MethodGet, "/api/v1/players/count", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "5", strings.TrimSpace(rr.Body.String()))

	rr = ts.request(http.MethodGet, "/api/v1/players/count?minExperience=200&pageSize=1", nil, "")
	assert.Equal(t, "3", strings.TrimSpace(rr.Body.String()))
}

func TestAdminAuth(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	authService, err := auth.New(hash)
	require.NoError(t, err)
	ts := newTestServerWithAuth(t, authService)

	rr := ts.request(http.MethodPost, "/api/v1/players", playerBody("Alice", 10), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/players", playerBody("Alice", 10), "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/players", playerBody("Alice", 10), "s3cret")
	assert.Equal(t, http.StatusOK, rr.Code)

	// Reads stay public
	rr = ts.request(http.MethodGet, "/api/v1/players/1", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/players/1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/players/1", nil, "s3cret")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/players/1", "/api/v1/players"} {
		rr := ts.request(http.MethodPut, path, nil, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
		assert.Equal(t, apierr.CodeMethodNotAllowed, decodeError(t, rr).Code)
	}

	rr := ts.request(http.MethodGet, "/api/v1/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestResponsesCarryRequestID(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         slog.New(slog.DiscardHandler),
		AuthService:    app.AuthService,
		PlayerService:  app.PlayerService,
		AllowedOrigins: []string{"http://admin.local"},
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players", nil)
		req.Header.Set("Origin", "http://admin.local")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "http://admin.local", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players", nil)
		req.Header.Set("Origin", "http://evil.local")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/players", nil)
		req.Header.Set("Origin", "http://admin.local")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "http://admin.local", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	})
}
