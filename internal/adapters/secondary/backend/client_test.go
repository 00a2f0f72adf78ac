package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&Config{BaseURL: srv.URL + "/"}, logger.NewNop())
}

func TestRequestSendsJSONWithoutContentType(t *testing.T) {
	var (
		gotMethod      string
		gotPath        string
		gotContentType []string
		gotBody        map[string]any
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Values("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"reply":"ok"}`))
	})

	resp, err := client.Request(context.Background(), DailyAdvice, http.MethodPost, ChatRequest{UserID: 42, Message: MessageAdvice})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, `{"reply":"ok"}`, string(resp.Body))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/daily_advice", gotPath)
	assert.Empty(t, gotContentType)
	assert.Equal(t, map[string]any{"user_id": float64(42), "message": "advice"}, gotBody)
}

func TestRequestWithoutBody(t *testing.T) {
	var gotLength int64 = -1
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLength = r.ContentLength
		w.WriteHeader(http.StatusOK)
	})

	resp, err := client.Request(context.Background(), "/api/get_profile/7", http.MethodGet, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, int64(0), gotLength)
}

func TestRequestNon2xxIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"bad"}`))
	})

	resp, err := client.Request(context.Background(), AnalyzeNatalChart, http.MethodPost, ChatRequest{UserID: 1})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRequestSurvivesCallerCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := client.Request(ctx, UpdateProfile, http.MethodPost, UpdateProfileRequest{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRequestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(&Config{BaseURL: srv.URL}, logger.NewNop())
	srv.Close()

	_, err := client.Request(context.Background(), Health, http.MethodGet, nil)
	assert.Error(t, err)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/get_profile/:user_id", routeLabel("/api/get_profile/999"))
	assert.Equal(t, "/api/daily_advice", routeLabel("/api/daily_advice"))
	assert.Equal(t, "health", routeLabel("health"))
}
