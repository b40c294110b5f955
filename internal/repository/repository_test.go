package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/db"
	"github.com/jobbuddy/api/internal/model"
)

// newTestDB opens an in-memory sqlite database with all migrations
// applied. MaxOpenConns(1) keeps every query on the same connection, so
// the in-memory database is shared.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	return conn
}

func seedUser(t *testing.T, conn *sqlx.DB) *model.User {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewUserRepository(conn).Create(user))
	return user
}

func seedCompany(t *testing.T, conn *sqlx.DB, userID string) *model.Company {
	t.Helper()

	company := &model.Company{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      "Acme " + uuid.NewString()[:8],
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, NewCompanyRepository(conn).Create(company))
	return company
}
