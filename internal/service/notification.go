package service

import (
	"errors"
	"fmt"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
)

type NotificationService struct {
	notificationRepository repository.NotificationRepository
}

func NewNotificationService(notificationRepository repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepository: notificationRepository}
}

// List returns one page plus the total unread count across all pages.
func (s *NotificationService) List(userID string, f repository.NotificationFilter) ([]*model.Notification, int, int, error) {
	notifications, total, err := s.notificationRepository.List(userID, f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.notificationRepository.UnreadCount(userID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return notifications, total, unread, nil
}

func (s *NotificationService) MarkRead(userID, notificationID string) error {
	err := s.notificationRepository.MarkRead(userID, notificationID)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.notificationRepository.MarkAllRead(userID)
}

func (s *NotificationService) Delete(userID, notificationID string) error {
	err := s.notificationRepository.Delete(userID, notificationID)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return ErrNotFound
	}
	return err
}
