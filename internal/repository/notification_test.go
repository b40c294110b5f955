package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/model"
)

func seedNotification(t *testing.T, conn *sqlx.DB, userID, typ string) *model.Notification {
	t.Helper()

	n := NewNotification(uuid.NewString(), userID, typ, "title", nil, nil, nil)
	require.NoError(t, NewNotificationRepository(conn).Create(n))
	return n
}

func TestNotificationListFilters(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	repo := NewNotificationRepository(conn)

	seedNotification(t, conn, user.ID, model.NotificationFollowUp)
	seedNotification(t, conn, user.ID, model.NotificationFollowUp)
	read := seedNotification(t, conn, user.ID, model.NotificationMicroQuest)
	require.NoError(t, repo.MarkRead(user.ID, read.ID))

	all, total, err := repo.List(user.ID, NotificationFilter{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	unreadOnly := false
	byRead, total, err := repo.List(user.ID, NotificationFilter{IsRead: &unreadOnly, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, n := range byRead {
		assert.False(t, n.IsRead)
	}

	byType, total, err := repo.List(user.ID, NotificationFilter{Type: model.NotificationMicroQuest, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, read.ID, byType[0].ID)
}

func TestNotificationUnreadCountAndMarkAllRead(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	other := seedUser(t, conn)
	repo := NewNotificationRepository(conn)

	seedNotification(t, conn, user.ID, model.NotificationFollowUp)
	seedNotification(t, conn, user.ID, model.NotificationSystem)
	seedNotification(t, conn, other.ID, model.NotificationSystem)

	count, err := repo.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.MarkAllRead(user.ID))

	count, err = repo.UnreadCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The other user's notifications are untouched.
	count, err = repo.UnreadCount(other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotificationOwnershipScoping(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	other := seedUser(t, conn)
	repo := NewNotificationRepository(conn)

	n := seedNotification(t, conn, user.ID, model.NotificationFollowUp)

	assert.ErrorIs(t, repo.MarkRead(other.ID, n.ID), ErrNotificationNotFound)
	assert.ErrorIs(t, repo.Delete(other.ID, n.ID), ErrNotificationNotFound)

	require.NoError(t, repo.Delete(user.ID, n.ID))
	_, err := repo.ByID(user.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
