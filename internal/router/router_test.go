package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimufine/elimu-backend/internal/config"
	"github.com/elimufine/elimu-backend/internal/generation"
	"github.com/elimufine/elimu-backend/internal/handler"
	"github.com/elimufine/elimu-backend/internal/i18n"
	"github.com/elimufine/elimu-backend/internal/metrics"
	"github.com/elimufine/elimu-backend/internal/middleware"
	"github.com/elimufine/elimu-backend/internal/repository"
	"github.com/elimufine/elimu-backend/internal/response"
	"github.com/elimufine/elimu-backend/internal/service"
	"github.com/elimufine/elimu-backend/internal/validator"
)

func newTestRouter(t *testing.T, ratePerMinute int) *gin.Engine {
	t.Helper()
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{GinMode: gin.TestMode, DefaultLanguage: "en", GeneratorBackend: config.BackendMock}
	log := zerolog.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	catalog := i18n.MustLoad()

	gen := generation.Instrumented(generation.NewFixture(0, 0, ""), log, m)
	genSvc := service.NewGenerationService(gen, log)
	limiter := middleware.NewRateLimiter(ctx, ratePerMinute, time.Minute)

	handlers := &Handlers{
		Generation: handler.NewGenerationHandler(genSvc, log),
		Dashboard:  handler.NewDashboardHandler(service.NewDashboardService(repository.NewDashboardRepository(), catalog)),
		Shell:      handler.NewShellHandler(service.NewShellService(catalog)),
		WS:         handler.NewWSHandler(genSvc, limiter, log, nil),
		System:     handler.NewSystemHandler(nil, cfg.GeneratorBackend, log),
	}
	return SetupRouter(handlers, &Deps{
		Catalog:  catalog,
		Limiter:  limiter,
		Metrics:  m,
		Gatherer: reg,
		Log:      log,
	}, cfg)
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorBody `json:"error"`
	List  *response.ListInfo  `json:"list"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestShellRoutes(t *testing.T) {
	r := newTestRouter(t, 100)

	w, env := do(t, r, http.MethodGet, "/api/v1/roles?lang=sw", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
	var roles service.RoleSelection
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	assert.Equal(t, "Karibu ELIMU FINE", roles.Welcome)
	assert.Len(t, roles.Roles, 4)

	w, env = do(t, r, http.MethodGet, "/api/v1/roles?lang=fr", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrUnsupportedLanguage, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/lexicons/sw", "")
	require.Equal(t, http.StatusOK, w.Code)
	var lex struct {
		Entries map[string]string `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &lex))
	assert.Equal(t, "Toka", lex.Entries["logout"])

	w, env = do(t, r, http.MethodGet, "/api/v1/lexicons/de", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrUnsupportedLanguage, env.Error.Code)
}

func TestDashboardRoutes(t *testing.T) {
	r := newTestRouter(t, 100)

	w, env := do(t, r, http.MethodGet, "/api/v1/dashboards/parent", "")
	require.Equal(t, http.StatusOK, w.Code)
	var parent struct {
		Role     string `json:"role"`
		Progress struct {
			AverageScore int `json:"averageScore"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &parent))
	assert.Equal(t, "parent", parent.Role)
	assert.Equal(t, 88, parent.Progress.AverageScore)

	w, env = do(t, r, http.MethodGet, "/api/v1/dashboards/teacher?q=fractions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var teacher struct {
		SharedResources []struct {
			ID string `json:"id"`
		} `json:"sharedResources"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &teacher))
	require.Len(t, teacher.SharedResources, 1)
	assert.Equal(t, "res3", teacher.SharedResources[0].ID)

	w, env = do(t, r, http.MethodGet, "/api/v1/dashboards/principal", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrUnknownRole, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/teacher/resources?q=science", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.List)
	assert.Equal(t, response.ListInfo{Total: 1, Query: "science"}, *env.List)
}

func TestGenerationRoutes(t *testing.T) {
	r := newTestRouter(t, 100)

	w, _ := do(t, r, http.MethodPost, "/api/v1/generate/lesson", `{"topic":"Photosynthesis","grade_level":"4"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get(response.HeaderRequestID))

	w, env := do(t, r, http.MethodPost, "/api/v1/generate/certificate", `{"student_name":"","achievement":"Art"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrValidation, env.Error.Code)
}

func TestGenerationRateLimited(t *testing.T) {
	r := newTestRouter(t, 2)

	var codes []int
	for i := 0; i < 3; i++ {
		w, _ := do(t, r, http.MethodPost, "/api/v1/generate/certificate", `{"student_name":"Jane","achievement":"Art"}`)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// reads are not limited
	w, _ := do(t, r, http.MethodGet, "/api/v1/dashboards/student", "")
	assert.Equal(t, http.StatusOK, w.Code)

	t.Run("websocket actions", func(t *testing.T) {
		srv := httptest.NewServer(newTestRouter(t, 1))
		t.Cleanup(srv.Close)

		conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/v1/generate", nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })

		type event struct {
			Event     string `json:"event"`
			RequestID string `json:"request_id"`
			Code      string `json:"code"`
		}
		read := func() event {
			require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
			var ev event
			require.NoError(t, conn.ReadJSON(&ev))
			return ev
		}

		var events []event
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, conn.WriteJSON(map[string]string{
				"action": "generate_lesson", "request_id": id, "topic": "Soil", "grade_level": "5",
			}))
			ev := read()
			events = append(events, ev)
			if ev.Event == "pending" {
				events = append(events, read())
			}
		}

		assert.Equal(t, []event{
			{Event: "pending", RequestID: "a"},
			{Event: "lesson", RequestID: "a"},
			{Event: "error", RequestID: "b", Code: string(response.ErrRateLimitExceeded)},
			{Event: "error", RequestID: "c", Code: string(response.ErrRateLimitExceeded)},
		}, events)
	})
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t, 100)

	w, env := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status    string `json:"status"`
		Generator string `json:"generator"`
		Redis     string `json:"redis"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "mock", health.Generator)
	assert.Equal(t, "disabled", health.Redis)

	do(t, r, http.MethodPost, "/api/v1/generate/lesson", `{"topic":"Soil","grade_level":"2"}`)

	w, _ = do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `elimu_generations_total{op="generate_lesson",outcome="ok"} 1`)
	assert.Contains(t, body, `elimu_http_requests_total{method="GET",route="/health",status="200"} 1`)

	w, env = do(t, r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrNotFound, env.Error.Code)
}
