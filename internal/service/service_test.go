package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/db"
	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
)

// testEnv wires the real repositories and services over an in-memory
// database so lifecycle effects can be asserted end to end.
type testEnv struct {
	conn          *sqlx.DB
	users         repository.UserRepository
	companies     repository.CompanyRepository
	contacts      repository.ContactRepository
	appsRepo      repository.ApplicationRepository
	cvAnalyses    repository.CVAnalysisRepository
	outreach      repository.OutreachRepository
	goals         repository.GoalRepository
	streaks       repository.StreakRepository
	notifications repository.NotificationRepository
	lifecycle     *LifecycleService
	auth          *AuthService
	applications  *ApplicationService
	goalService   *GoalService
}

func newTestEnv(t *testing.T, lazyGoal bool) *testEnv {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	t.Cleanup(func() { _ = conn.Close() })

	env := &testEnv{
		conn:          conn,
		users:         repository.NewUserRepository(conn),
		companies:     repository.NewCompanyRepository(conn),
		contacts:      repository.NewContactRepository(conn),
		appsRepo:      repository.NewApplicationRepository(conn),
		cvAnalyses:    repository.NewCVAnalysisRepository(conn),
		outreach:      repository.NewOutreachRepository(conn),
		goals:         repository.NewGoalRepository(conn),
		streaks:       repository.NewStreakRepository(conn),
		notifications: repository.NewNotificationRepository(conn),
	}
	env.lifecycle = NewLifecycleService(env.goals, env.streaks, env.notifications, lazyGoal)
	env.auth = NewAuthService(conn, env.users, env.streaks, env.goals, "test-secret", time.Hour)
	env.applications = NewApplicationService(conn, env.appsRepo, env.companies, env.lifecycle)
	env.goalService = NewGoalService(conn, env.goals, env.lifecycle)
	return env
}

// registerUser goes through the full registration flow, so the user has
// its streak and current-week goal rows seeded.
func (e *testEnv) registerUser(t *testing.T) *model.User {
	t.Helper()

	user, err := e.auth.Register(uuid.NewString()+"@example.com", "Password1", "Test User")
	require.NoError(t, err)
	return user
}

// bareUser inserts a user row directly, skipping the registration side
// effects. No streak or goal rows exist for it.
func (e *testEnv) bareUser(t *testing.T) *model.User {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Name:         "Bare User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) seedCompany(t *testing.T, userID string) *model.Company {
	return e.seedCompanyNamed(t, userID, "Acme "+uuid.NewString()[:8])
}

func (e *testEnv) seedCompanyNamed(t *testing.T, userID, name string) *model.Company {
	t.Helper()

	company := &model.Company{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, e.companies.Create(company))
	return company
}
