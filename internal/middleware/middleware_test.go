package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/playeradmin/internal/testutil"
)

func TestLoggingRecordsStatusAndLevel(t *testing.T) {
	var buf bytes.Buffer
	h := Logging(testutil.JSONLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/players/9?x=1", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/api/v1/players/9", entry["path"])
	assert.Equal(t, "x=1", entry["query"])
	assert.EqualValues(t, 404, entry["status"])
	assert.EqualValues(t, 4, entry["size"])
}

func TestLoggingIncludesRouteTemplate(t *testing.T) {
	var buf bytes.Buffer
	r := mux.NewRouter()
	r.Use(Logging(testutil.JSONLogger(&buf)))
	r.HandleFunc("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/players/3", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "/players/{id}", entry["route"])
	assert.NotContains(t, entry, "query")
}

func TestRequestIDGeneratedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	var seen string
	h := RequestID(Logging(testutil.JSONLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, seen, 36)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, seen, entry["request_id"])
}

func TestRequestIDReusesCallerValue(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc-123", RequestIDFromContext(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	assert.Empty(t, RequestIDFromContext(req.Context()))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelFor(http.StatusOK))
	assert.Equal(t, slog.LevelWarn, levelFor(http.StatusUnauthorized))
	assert.Equal(t, slog.LevelError, levelFor(http.StatusServiceUnavailable))
}

func TestRecoveryInvokesHandler(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(testutil.JSONLogger(&buf), PlainPanicHandler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "kaboom")
}

func TestRecoveryReraisesAbortHandler(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(testutil.JSONLogger(&buf), PlainPanicHandler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Empty(t, buf.String())
}
