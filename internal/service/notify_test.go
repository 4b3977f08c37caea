package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/meritus/coinledger/internal/mocks"
	"github.com/meritus/coinledger/internal/model"
	"github.com/meritus/coinledger/internal/repository"
	"github.com/meritus/coinledger/internal/service"
	"github.com/meritus/coinledger/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestNotificationQueue_FindNotificationsToQueue(t *testing.T) {
	logger := zap.NewNop()

	t.Run("maps outbox rows to commands", func(t *testing.T) {
		mockNotifications := &mocks.NotificationRepository{}
		svc := service.NewNotificationQueueService(mockNotifications, logger)

		mockNotifications.On("FindUnpublishedCreated", 50).Return([]model.Notification{
			{ID: 1, Recipient: "ana@uni.edu", Subject: "You received merit coins", Body: "Dr. Souza sent you 30 coins"},
			{ID: 2, Recipient: "bia@uni.edu", Subject: "You received merit coins", Body: "Dr. Souza sent you 20 coins"},
		}, nil)

		commands, err := svc.FindNotificationsToQueue(context.Background(), 50)

		assert.NoError(t, err)
		assert.Len(t, commands, 2)
		assert.Equal(t, int64(1), commands[0].NotificationID)
		assert.Equal(t, "ana@uni.edu", commands[0].Recipient)
	})

	t.Run("returns nothing when the outbox is empty", func(t *testing.T) {
		mockNotifications := &mocks.NotificationRepository{}
		svc := service.NewNotificationQueueService(mockNotifications, logger)

		mockNotifications.On("FindUnpublishedCreated", 50).Return([]model.Notification{}, nil)

		commands, err := svc.FindNotificationsToQueue(context.Background(), 50)

		assert.NoError(t, err)
		assert.Empty(t, commands)
	})
}

func TestNotificationQueue_MarkNotificationAsQueued(t *testing.T) {
	mockNotifications := &mocks.NotificationRepository{}
	svc := service.NewNotificationQueueService(mockNotifications, zap.NewNop())

	mockNotifications.On("Update", mock.MatchedBy(func(n *model.Notification) bool {
		return n.ID == 1 && n.State == model.NotificationStatePending && n.Published && n.PublishedAt != nil
	})).Return(nil)

	err := svc.MarkNotificationAsQueued(context.Background(), 1)

	assert.NoError(t, err)
	mockNotifications.AssertExpectations(t)
}

func TestNotificationSend_SendNotification(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.SendNotificationCommand{
		NotificationID: 1,
		Recipient:      "ana@uni.edu",
		Subject:        "You received merit coins",
		Body:           "Dr. Souza sent you 30 coins",
	}

	t.Run("delivers the mail and marks the row sent", func(t *testing.T) {
		mockNotifications := &mocks.NotificationRepository{}
		mockMailer := &mocks.Mailer{}

		svc := service.NewNotificationSendService(mockNotifications, mockMailer, 3, logger, nil)

		mockNotifications.On("GetByID", int64(1)).Return(&model.Notification{
			ID: 1, State: model.NotificationStatePending, AttemptCount: 0,
		}, nil)
		mockMailer.On("Send", "ana@uni.edu", "You received merit coins", "Dr. Souza sent you 30 coins").Return(nil)
		mockNotifications.On("Update", mock.MatchedBy(func(n *model.Notification) bool {
			return n.ID == 1 && n.State == model.NotificationStateSent && n.AttemptCount == 1
		})).Return(nil)

		err := svc.SendNotification(context.Background(), cmd)

		assert.NoError(t, err)
		mockMailer.AssertExpectations(t)
		mockNotifications.AssertExpectations(t)
	})

	t.Run("drops a row that no longer exists", func(t *testing.T) {
		mockNotifications := &mocks.NotificationRepository{}
		mockMailer := &mocks.Mailer{}

		svc := service.NewNotificationSendService(mockNotifications, mockMailer, 3, logger, nil)

		mockNotifications.On("GetByID", int64(1)).Return(nil, repository.ErrNotificationNotFound)

		err := svc.SendNotification(context.Background(), cmd)

		assert.NoError(t, err)
		mockMailer.AssertNotCalled(t, "Send")
	})

	t.Run("drops a row that was already sent", func(t *testing.T) {
		mockNotifications := &mocks.NotificationRepository{}
		mockMailer := &mocks.Mailer{}

		svc := service.NewNotificationSendService(mockNotifications, mockMailer, 3, logger, nil)

		mockNotifications.On("GetByID", int64(1)).Return(&model.Notification{
			ID: 1, State: model.NotificationStateSent,
		}, nil)

		err := svc.SendNotification(context.Background(), cmd)

		assert.NoError(t, err)
		mockMailer.AssertNotCalled(t, "Send")
	})

	t.Run("requeues a temporary mail failure", func(t *testing.T) {
		mockNotifications := &mocks.NotificationRepository{}
		mockMailer := &mocks.Mailer{}

		svc := service.NewNotificationSendService(mockNotifications, mockMailer, 3, logger, nil)

		mockNotifications.On("GetByID", int64(1)).Return(&model.Notification{
			ID: 1, State: model.NotificationStatePending, AttemptCount: 0,
		}, nil)
		smtpErr := errors.New("smtp timeout")
		mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(smtpErr)
		mockNotifications.On("Update", mock.MatchedBy(func(n *model.Notification) bool {
			return n.ID == 1 && n.AttemptCount == 1 && n.LastError != nil
		})).Return(nil)

		err := svc.SendNotification(context.Background(), cmd)

		assert.Error(t, err)
		var tempErr mq.TempError
		assert.ErrorAs(t, err, &tempErr)
		assert.ErrorIs(t, err, smtpErr)
	})

	t.Run("marks the row failed after the last retry", func(t *testing.T) {
		mockNotifications := &mocks.NotificationRepository{}
		mockMailer := &mocks.Mailer{}

		svc := service.NewNotificationSendService(mockNotifications, mockMailer, 3, logger, nil)

		mockNotifications.On("GetByID", int64(1)).Return(&model.Notification{
			ID: 1, State: model.NotificationStatePending, AttemptCount: 2,
		}, nil)
		mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("mailbox unavailable"))
		mockNotifications.On("Update", mock.MatchedBy(func(n *model.Notification) bool {
			return n.ID == 1 && n.State == model.NotificationStateFailed && n.AttemptCount == 3
		})).Return(nil)

		err := svc.SendNotification(context.Background(), cmd)

		// The delivery gives up but the message is dropped, not requeued.
		assert.NoError(t, err)
		mockNotifications.AssertExpectations(t)
	})
}
