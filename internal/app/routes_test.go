package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/config"
	"github.com/neurotracker/neurotracker-go/internal/middleware"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
	"github.com/neurotracker/neurotracker-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newAPI(t *testing.T, rps float64, burst int) *apiClient {
	t.Helper()
	cfg := &config.Config{
		Env:     "development",
		Session: config.SessionConfig{Secret: "test-secret", Expiry: time.Hour},
		Auth:    config.AuthConfig{Verifier: "mock"},
	}
	log := zap.NewNop()

	svc, err := NewServices(repository.NewMemoryStore(), cfg.Auth, 7, log)
	require.NoError(t, err)

	sessions := navigation.NewSessionManager(func() *navigation.Controller {
		return svc.NewController(log)
	}, time.Hour, log)

	return &apiClient{
		t:      t,
		router: NewRouter(cfg, svc, sessions, middleware.NewLimiter(rps, burst), log),
	}
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func (c *apiClient) startSession() navigation.View {
	c.t.Helper()
	rr := c.do(http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(c.t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decodeBody[struct {
		Token string          `json:"token"`
		View  navigation.View `json:"view"`
	}](c.t, rr)
	require.NotEmpty(c.t, resp.Token)
	c.token = resp.Token
	return resp.View
}

func (c *apiClient) event(ev map[string]any) navigation.View {
	c.t.Helper()
	rr := c.do(http.MethodPost, "/api/v1/events", ev)
	require.Equal(c.t, http.StatusOK, rr.Code, "%v: %s", ev["type"], rr.Body.String())
	return decodeBody[navigation.View](c.t, rr)
}

// finishAssessment signs up a new account and submits answers worth 12.
func (c *apiClient) finishAssessment(email string) navigation.View {
	c.t.Helper()
	c.event(map[string]any{"type": "get_started"})
	c.event(map[string]any{"type": "switch_auth_mode", "mode": "signup"})
	c.event(map[string]any{"type": "sign_up", "email": email, "password": "secret1", "confirm_password": "secret1", "name": "Dana Scully"})
	c.event(map[string]any{"type": "verify_code", "code": "123456"})
	c.event(map[string]any{"type": "choose_username", "username": "dana_s"})
	c.event(map[string]any{"type": "accept_disclaimer", "accepted": true})

	answers := []int{2, 3, 1, 4, 0, 2}
	for i, a := range answers {
		c.event(map[string]any{"type": "answer_question", "value": a})
		if i < len(answers)-1 {
			c.event(map[string]any{"type": "next_question"})
		}
	}
	c.event(map[string]any{"type": "request_submit"})
	return c.event(map[string]any{"type": "confirm_submit"})
}

func TestHealth(t *testing.T) {
	api := newAPI(t, 100, 100)
	rr := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestSessionFlowOverHTTP(t *testing.T) {
	api := newAPI(t, 100, 100)

	v := api.startSession()
	assert.Equal(t, navigation.ScreenLanding, v.Screen)

	// tools are closed until the survey is behind the user
	rr := api.do(http.MethodGet, "/api/v1/tools/attention", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	v = api.finishAssessment("dana@fbi.gov")
	assert.Equal(t, navigation.ScreenResults, v.Screen)
	require.NotNil(t, v.Result)
	assert.Equal(t, 12, v.Result.Score)
	assert.Equal(t, "High Negative", v.Result.Band.Name)

	v = api.event(map[string]any{"type": "continue"})
	assert.Equal(t, navigation.ScreenUserHome, v.Screen)
	assert.Equal(t, "dana_s", v.DisplayName)

	rr = api.do(http.MethodGet, "/api/v1/view", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, navigation.ScreenUserHome, decodeBody[navigation.View](t, rr).Screen)

	t.Run("invalid transition keeps the view", func(t *testing.T) {
		rr := api.do(http.MethodPost, "/api/v1/events", map[string]any{"type": "get_started"})
		require.Equal(t, http.StatusConflict, rr.Code)
		resp := decodeBody[struct {
			Error string          `json:"error"`
			View  navigation.View `json:"view"`
		}](t, rr)
		assert.NotEmpty(t, resp.Error)
		assert.Equal(t, navigation.ScreenUserHome, resp.View.Screen)
	})

	t.Run("unknown event", func(t *testing.T) {
		rr := api.do(http.MethodPost, "/api/v1/events", map[string]any{"type": "teleport"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unavailable tool", func(t *testing.T) {
		rr := api.do(http.MethodPost, "/api/v1/events", map[string]any{"type": "open_tool", "tool": "progress-tracker"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("profile", func(t *testing.T) {
		rr := api.do(http.MethodGet, "/api/v1/profile", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		p := decodeBody[map[string]string](t, rr)
		assert.Equal(t, "dana@fbi.gov", p["email"])
		assert.Equal(t, "dana_s", p["username"])
	})

	t.Run("attention settings", func(t *testing.T) {
		rr := api.do(http.MethodGet, "/api/v1/tools/attention", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"camera":"camera1"`)

		bad := map[string]any{"camera": "camera9", "pitch_min": -10, "pitch_max": 10, "strictness": 5, "yaw_min": -10, "yaw_max": 10, "eye_threshold": 0.2}
		rr = api.do(http.MethodPut, "/api/v1/tools/attention", bad)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = api.do(http.MethodPost, "/api/v1/tools/attention/classify", map[string]any{"pitch": 0, "yaw": 0, "ear": 0.3})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "FOCUSED", decodeBody[map[string]string](t, rr)["status"])
	})

	t.Run("meeting suggestion", func(t *testing.T) {
		rr := api.do(http.MethodPost, "/api/v1/tools/meeting/suggest", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"summarization_level":"medium"`)
	})

	t.Run("calendar", func(t *testing.T) {
		rr := api.do(http.MethodGet, "/api/v1/tools/calendar?month=2024-02", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		resp := decodeBody[struct {
			Month struct {
				Year int               `json:"year"`
				Days []json.RawMessage `json:"days"`
			} `json:"month"`
		}](t, rr)
		assert.Equal(t, 2024, resp.Month.Year)
		assert.Len(t, resp.Month.Days, 29)

		rr = api.do(http.MethodGet, "/api/v1/tools/calendar?month=February", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ai models", func(t *testing.T) {
		rr := api.do(http.MethodGet, "/api/v1/tools/ai-models?renderer=NVIDIA+GeForce+RTX+4090&memory=32", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		resp := decodeBody[struct {
			Compatibility struct {
				Config struct {
					RAM  int `json:"ram"`
					VRAM int `json:"vram"`
				} `json:"config"`
			} `json:"compatibility"`
		}](t, rr)
		assert.Equal(t, 32, resp.Compatibility.Config.RAM)
		assert.Equal(t, 24, resp.Compatibility.Config.VRAM)

		rr = api.do(http.MethodGet, "/api/v1/tools/ai-models/chart", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "series")
	})

	t.Run("logout ends the session", func(t *testing.T) {
		rr := api.do(http.MethodDelete, "/api/v1/sessions", nil)
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = api.do(http.MethodGet, "/api/v1/view", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSecondAttemptIsRefused(t *testing.T) {
	api := newAPI(t, 100, 100)
	api.startSession()
	api.finishAssessment("fox@fbi.gov")

	other := &apiClient{t: t, router: api.router}
	other.startSession()
	other.event(map[string]any{"type": "get_started"})
	v := other.event(map[string]any{"type": "login", "email": "fox@fbi.gov", "password": "secret1"})

	assert.Equal(t, navigation.ScreenAuth, v.Screen)
	require.Len(t, v.Notices, 1)
	assert.Equal(t, navigation.NoticeAlreadyCompleted, v.Notices[0].Kind)
	require.NotNil(t, v.Notices[0].Score)
	assert.Equal(t, 12, *v.Notices[0].Score)

	v = other.event(map[string]any{"type": "dismiss_notice"})
	assert.Equal(t, navigation.ScreenUserHome, v.Screen)
}

func TestEventsNeedSession(t *testing.T) {
	api := newAPI(t, 100, 100)

	rr := api.do(http.MethodPost, "/api/v1/events", map[string]any{"type": "get_started"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	api.token = "not-a-token"
	rr = api.do(http.MethodGet, "/api/v1/view", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionCreationIsRateLimited(t *testing.T) {
	api := newAPI(t, 0.001, 2)

	for range 2 {
		rr := api.do(http.MethodPost, "/api/v1/sessions", nil)
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	rr := api.do(http.MethodPost, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestThemeRoutes(t *testing.T) {
	api := newAPI(t, 100, 100)

	rr := api.do(http.MethodGet, "/api/v1/theme", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "light", decodeBody[map[string]string](t, rr)["theme"])

	for _, want := range []string{"dark", "colorblind", "light"} {
		rr = api.do(http.MethodPost, "/api/v1/theme/cycle", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, want, decodeBody[map[string]string](t, rr)["theme"])
	}

	rr = api.do(http.MethodGet, "/api/v1/bands", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]json.RawMessage](t, rr), 4)
}

func TestOpenStore(t *testing.T) {
	log := zap.NewNop()

	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "memory"}, log)
		require.NoError(t, err)
		assert.IsType(t, &repository.MemoryStore{}, store)
		assert.NoError(t, closeFn())
	})

	t.Run("unknown driver falls back to memory", func(t *testing.T) {
		store, closeFn, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "oracle"}, log)
		require.NoError(t, err)
		assert.IsType(t, &repository.MemoryStore{}, store)
		assert.NoError(t, closeFn())
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn := t.TempDir() + "/kv.db"
		store, closeFn, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, log)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &repository.SQLStore{}, store)
	})
}

func TestNewServicesRejectsUnknownVerifier(t *testing.T) {
	_, err := NewServices(repository.NewMemoryStore(), config.AuthConfig{Verifier: "carrier-pigeon"}, 1, zap.NewNop())
	assert.Error(t, err)
}
