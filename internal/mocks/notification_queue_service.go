package mocks

import (
	"context"

	"github.com/meritus/coinledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type NotificationQueueService struct {
	mock.Mock
}

func (m *NotificationQueueService) FindNotificationsToQueue(ctx context.Context, limit int) ([]service.SendNotificationCommand, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SendNotificationCommand), args.Error(1)
}

func (m *NotificationQueueService) MarkNotificationAsQueued(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}
