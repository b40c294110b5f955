package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/app"
	"github.com/jobbuddy/api/internal/config"
	"github.com/jobbuddy/api/internal/db"
	"github.com/jobbuddy/api/internal/hunter"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/routes"
	"github.com/jobbuddy/api/internal/service"
	"github.com/jobbuddy/api/internal/storage"
)

// newTestServer wires the full route tree over an in-memory database,
// mirroring app.New but without reading the environment.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	t.Cleanup(func() { _ = conn.Close() })

	cfg := &config.Config{
		AppName:            "jobbuddy-test",
		AppEnv:             "test",
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		CORSAllowedOrigins: []string{"*"},
		HunterTimeout:      time.Second,
		MaxUploadMB:        10,
	}

	userRepository := repository.NewUserRepository(conn)
	companyRepository := repository.NewCompanyRepository(conn)
	contactRepository := repository.NewContactRepository(conn)
	applicationRepository := repository.NewApplicationRepository(conn)
	outreachRepository := repository.NewOutreachRepository(conn)
	goalRepository := repository.NewGoalRepository(conn)
	streakRepository := repository.NewStreakRepository(conn)
	notificationRepository := repository.NewNotificationRepository(conn)
	cvAnalysisRepository := repository.NewCVAnalysisRepository(conn)
	onboardingRepository := repository.NewOnboardingRepository(conn)

	fileStorage, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	lifecycleService := service.NewLifecycleService(goalRepository, streakRepository, notificationRepository, false)
	authService := service.NewAuthService(conn, userRepository, streakRepository, goalRepository, cfg.JWTSecret, cfg.JWTExpiry)

	a := &app.App{
		Cfg:                 cfg,
		DB:                  conn,
		AuthService:         authService,
		UserService:         service.NewUserService(userRepository, authService),
		CompanyService:      service.NewCompanyService(companyRepository),
		ContactService:      service.NewContactService(contactRepository, companyRepository, hunter.New("", cfg.HunterTimeout)),
		ApplicationService:  service.NewApplicationService(conn, applicationRepository, companyRepository, lifecycleService),
		OutreachService:     service.NewOutreachService(conn, outreachRepository, contactRepository, applicationRepository, companyRepository, lifecycleService),
		GoalService:         service.NewGoalService(conn, goalRepository, lifecycleService),
		StreakService:       service.NewStreakService(streakRepository),
		NotificationService: service.NewNotificationService(notificationRepository),
		CVAnalysisService:   service.NewCVAnalysisService(cvAnalysisRepository, applicationRepository, fileStorage),
		OnboardingService:   service.NewOnboardingService(onboardingRepository),
	}

	return routes.SetupRoutes(a)
}

func doJSON(t *testing.T, srv http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func registerAndLogin(t *testing.T, srv http.Handler) string {
	t.Helper()

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "tester@example.com",
		"password": "Password1",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "tester@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := body["token"].(string)
	require.True(t, ok, "login response carries a token")
	return token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/v1/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/v1/applications", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", body["message"])

	rec, _ = doJSON(t, srv, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplicationFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/v1/companies", token, map[string]any{
		"name":    "Acme",
		"website": "https://acme.example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	companyID := body["company"].(map[string]any)["id"].(string)

	rec, _ = doJSON(t, srv, http.MethodPost, "/api/v1/goals", token, map[string]any{
		"applications_goal": 5,
		"outreach_goal":     3,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, srv, http.MethodPost, "/api/v1/applications", token, map[string]any{
		"company_id": companyID,
		"job_title":  "Backend Engineer",
		"status":     "Applied",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	application := body["application"].(map[string]any)
	appID := application["id"].(string)
	assert.NotNil(t, application["applied_date"])

	// The applied event moved the weekly counter and the derived progress.
	rec, body = doJSON(t, srv, http.MethodGet, "/api/v1/goals/current", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	goal := body["goal"].(map[string]any)
	assert.Equal(t, float64(1), goal["applications_current"])
	assert.Equal(t, float64(20), goal["applications_progress"])
	assert.Equal(t, float64(0), goal["outreach_progress"])

	// And left a follow-up reminder.
	rec, body = doJSON(t, srv, http.MethodGet, "/api/v1/notifications?type=follow_up", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := body["notifications"].([]any)
	require.Len(t, notifications, 1)
	assert.Equal(t, appID, notifications[0].(map[string]any)["related_id"])
	assert.Equal(t, float64(1), body["unread_count"])

	// Streak picked up today's activity.
	rec, body = doJSON(t, srv, http.MethodGet, "/api/v1/goals/streak", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	streak := body["streak"].(map[string]any)
	assert.Equal(t, float64(1), streak["current_streak"])

	// Pipeline listing includes the new application.
	rec, body = doJSON(t, srv, http.MethodGet, "/api/v1/applications?status=Applied", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	apps := body["applications"].([]any)
	require.Len(t, apps, 1)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["total"])
}

func TestQuestCompletionFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/v1/goals/micro-quests", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, body["quests"])

	rec, body = doJSON(t, srv, http.MethodPost, "/api/v1/goals/micro-quests/2/complete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(25), body["points_earned"])
	streak := body["streak"].(map[string]any)
	assert.Equal(t, float64(25), streak["total_points"])
}

func TestGoalTargets(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/v1/goals", token, map[string]any{
		"applications_goal": 5,
		"outreach_goal":     3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	goal := body["goal"].(map[string]any)
	assert.Equal(t, float64(5), goal["applications_goal"])
	assert.Equal(t, float64(3), goal["outreach_goal"])

	// Partial update: only the provided target changes, negatives clamp to 0.
	rec, body = doJSON(t, srv, http.MethodPost, "/api/v1/goals", token, map[string]any{
		"applications_goal": -1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	goal = body["goal"].(map[string]any)
	assert.Equal(t, float64(0), goal["applications_goal"])
	assert.Equal(t, float64(3), goal["outreach_goal"])
}

func TestBulkImportEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "applications.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, strings.Join([]string{
		"company_name,job_title,job_url,status,notes",
		"Acme,Backend Engineer,,Planned,",
		",Broken Row,,,",
	}, "\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/bulk-upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	result := body["result"].(map[string]any)
	assert.Equal(t, float64(1), result["imported"])
	assert.Equal(t, float64(1), result["failed"])
}

func TestNotFoundMapsToEnvelope(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv)

	rec, body := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/applications/%s", "11111111-1111-1111-1111-111111111111"), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}
