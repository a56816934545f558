package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civic-qa/internal/common/config"
	"civic-qa/internal/common/logger"
)

type stubEngine struct {
	answer string
	err    error
	gotQ   string
	gotSID string
}

func (s *stubEngine) Answer(_ context.Context, query, sessionID string) (string, error) {
	s.gotQ = query
	s.gotSID = sessionID
	return s.answer, s.err
}

type stubPinger struct{ err error }

func (s *stubPinger) Ping(context.Context) error { return s.err }

func newTestServer(t *testing.T, engine Answerer, db Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.ServerConfig{Port: 0, CORSOrigins: []string{"*"}}
	return New(cfg, engine, db, nil, logger.NewNoOpLogger()).Router()
}

func postAsk(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAskReturnsAnswer(t *testing.T) {
	engine := &stubEngine{answer: "Michelle Wu is the Mayor."}
	router := newTestServer(t, engine, &stubPinger{})

	w := postAsk(t, router, `{"query":"who is the mayor","session_id":"s1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp askResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Michelle Wu is the Mayor.", resp.Response)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "who is the mayor", engine.gotQ)
}

func TestAskGeneratesSessionIDWhenMissing(t *testing.T) {
	engine := &stubEngine{answer: "ok"}
	router := newTestServer(t, engine, &stubPinger{})

	w := postAsk(t, router, `{"query":"who is the mayor"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp askResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, resp.SessionID, engine.gotSID)
}

func TestAskRejectsEmptyQuery(t *testing.T) {
	router := newTestServer(t, &stubEngine{}, &stubPinger{})

	for _, body := range []string{`{}`, `{"query":"  "}`, `not json`} {
		w := postAsk(t, router, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestAskEngineFailureIsGenericError(t *testing.T) {
	engine := &stubEngine{err: fmt.Errorf("pq: connection refused")}
	router := newTestServer(t, engine, &stubPinger{})

	w := postAsk(t, router, `{"query":"who is the mayor"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal failure details must not reach the caller.
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHealthz(t *testing.T) {
	router := newTestServer(t, &stubEngine{}, &stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthzDegradedWhenDatabaseDown(t *testing.T) {
	router := newTestServer(t, &stubEngine{}, &stubPinger{err: fmt.Errorf("down")})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWelcome(t *testing.T) {
	router := newTestServer(t, &stubEngine{}, &stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "civic-qa")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestServer(t, &stubEngine{}, &stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
