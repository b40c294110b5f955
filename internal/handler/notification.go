package handler

import (
	"net/http"
	"strconv"

	"github.com/jobbuddy/api/internal/ctxkeys"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/service"
)

type notificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *notificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

func (h *notificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	page, perPage := pageParams(r)
	q := r.URL.Query()

	filter := repository.NotificationFilter{
		Type:    q.Get("type"),
		Page:    page,
		PerPage: perPage,
	}
	if v := q.Get("is_read"); v != "" {
		isRead, err := strconv.ParseBool(v)
		if err != nil {
			Error(w, http.StatusBadRequest, CodeBadRequest, "is_read must be a boolean")
			return
		}
		filter.IsRead = &isRead
	}

	notifications, total, unread, err := h.notificationService.List(user.ID, filter)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unread_count":  unread,
		"pagination":    NewPagination(page, perPage, total),
	})
}

func (h *notificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.notificationService.MarkRead(user.ID, r.PathValue("id")); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Notification marked as read",
	})
}

func (h *notificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.notificationService.MarkAllRead(user.ID); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "All notifications marked as read",
	})
}

func (h *notificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.notificationService.Delete(user.ID, r.PathValue("id")); err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Notification deleted successfully",
	})
}
