package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/meritus/coinledger/internal/constants"
	"github.com/meritus/coinledger/internal/mocks"
	"github.com/meritus/coinledger/internal/model"
	"github.com/meritus/coinledger/internal/repository"
	"github.com/meritus/coinledger/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func professor(id int64) model.User {
	return model.User{ID: id, Name: "Dr. Souza", Email: "souza@uni.edu", Role: model.RoleProfessor, Active: true}
}

func studentUser(id int64, email string) model.User {
	return model.User{ID: id, Name: "Ana", Email: email, Role: model.RoleStudent, Active: true}
}

func TestTransfer_Transfer(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.TransferCommand{
		SenderID:       1,
		RecipientEmail: "ana@uni.edu",
		Amount:         30,
		Reason:         "great presentation",
	}

	t.Run("transfers successfully and records the ledger entry", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
		mockUsers.On("FindByEmail", "ana@uni.edu").Return(studentUser(2, "ana@uni.edu"), nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockLedger.On("SumByUserLocked", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(int64(100), nil)

		mockLedger.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.SenderID != nil && *tx.SenderID == 1 &&
					tx.ReceiverID != nil && *tx.ReceiverID == 2 &&
					tx.Amount == 30 &&
					tx.Reason == "great presentation" &&
					tx.TxType == model.TxTypeTransfer
			})).Run(func(args mock.Arguments) {
			tx := args.Get(1).(*model.Transaction)
			tx.ID = 42
		}).Return(nil)

		mockNotifications.On("Create", context.Background(),
			mock.MatchedBy(func(n *model.Notification) bool {
				return n.TransactionID == 42 &&
					n.Recipient == "ana@uni.edu" &&
					n.State == model.NotificationStateCreated
			})).Return(nil)

		result, err := svc.Transfer(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), result.TransactionID)
		assert.Equal(t, int64(30), result.Amount)
		assert.Equal(t, "great presentation", result.Reason)
		assert.False(t, result.Duplicate)

		mockUsers.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
		mockNotifications.AssertExpectations(t)
	})

	t.Run("fails with insufficient balance and writes nothing", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
		mockUsers.On("FindByEmail", "ana@uni.edu").Return(studentUser(2, "ana@uni.edu"), nil)
		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockLedger.On("SumByUserLocked", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(int64(10), nil)

		_, err := svc.Transfer(context.Background(), cmd)

		assert.Error(t, err)
		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeInsufficientBalance, svcErr.Code)

		mockLedger.AssertNotCalled(t, "Create")
		mockNotifications.AssertNotCalled(t, "Create")
	})

	t.Run("rejects non-professor sender regardless of balance", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		mockUsers.On("FindByID", int64(1)).Return(studentUser(1, "impostor@uni.edu"), nil)

		_, err := svc.Transfer(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeForbidden, svcErr.Code)

		mockLedger.AssertNotCalled(t, "SumByUserLocked")
		mockLedger.AssertNotCalled(t, "Create")
	})

	t.Run("rejects non-positive amount before any lookup", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		bad := cmd
		bad.Amount = -5

		_, err := svc.Transfer(context.Background(), bad)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeValidationFailed, svcErr.Code)

		mockUsers.AssertNotCalled(t, "FindByID")
		mockLedger.AssertNotCalled(t, "Create")
	})

	t.Run("rejects missing reason", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		bad := cmd
		bad.Reason = ""

		_, err := svc.Transfer(context.Background(), bad)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeValidationFailed, svcErr.Code)
	})

	t.Run("fails when recipient does not exist", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
		mockUsers.On("FindByEmail", "ana@uni.edu").Return(model.User{}, repository.ErrUserNotFound)

		_, err := svc.Transfer(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeUserNotFound, svcErr.Code)
	})

	t.Run("rejects recipient that is not a student", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
		mockUsers.On("FindByEmail", "ana@uni.edu").Return(professor(3), nil)

		_, err := svc.Transfer(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeValidationFailed, svcErr.Code)
	})

	t.Run("returns existing transaction for duplicate idempotency key", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		withKey := cmd
		withKey.IdempotencyKey = "transfer-1-abc"

		existing := &model.Transaction{ID: 7, Amount: 30, Reason: "great presentation", CreatedAt: time.Now()}

		mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
		mockUsers.On("FindByEmail", "ana@uni.edu").Return(studentUser(2, "ana@uni.edu"), nil)
		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockLedger.On("SumByUserLocked", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(int64(100), nil)
		mockLedger.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("*model.Transaction")).Return(repository.ErrTransactionExisted)
		mockLedger.On("GetByIdempotencyKey", model.TxTypeTransfer, "transfer-1-abc").
			Return(existing, nil)

		result, err := svc.Transfer(context.Background(), withKey)

		assert.NoError(t, err)
		assert.True(t, result.Duplicate)
		assert.Equal(t, int64(7), result.TransactionID)

		mockNotifications.AssertNotCalled(t, "Create")
	})

	t.Run("notification failure does not fail the transfer", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		mockNotifications := &mocks.NotificationRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewTransferService(mockTxManager, mockLedger, mockUsers, mockNotifications, logger, nil)

		mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
		mockUsers.On("FindByEmail", "ana@uni.edu").Return(studentUser(2, "ana@uni.edu"), nil)
		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockLedger.On("SumByUserLocked", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(int64(100), nil)
		mockLedger.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("*model.Transaction")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Transaction).ID = 43
		}).Return(nil)
		mockNotifications.On("Create", context.Background(),
			mock.AnythingOfType("*model.Notification")).Return(assert.AnError)

		result, err := svc.Transfer(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, int64(43), result.TransactionID)
	})
}

func TestTransfer_GetBalance(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns ledger sum", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		svc := service.NewTransferService(&mocks.TxManager{}, mockLedger, &mocks.UserRepository{},
			&mocks.NotificationRepository{}, logger, nil)

		mockLedger.On("SumByUser", int64(2)).Return(int64(70), nil)

		balance, err := svc.GetBalance(2)

		assert.NoError(t, err)
		assert.Equal(t, int64(70), balance)
	})

	t.Run("returns zero for a user with no transactions", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		svc := service.NewTransferService(&mocks.TxManager{}, mockLedger, &mocks.UserRepository{},
			&mocks.NotificationRepository{}, logger, nil)

		mockLedger.On("SumByUser", int64(999)).Return(int64(0), nil)

		balance, err := svc.GetBalance(999)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})
}

func TestTransfer_Grant(t *testing.T) {
	logger := zap.NewNop()

	t.Run("grants coins to a professor", func(t *testing.T) {
		mockLedger := &mocks.LedgerRepository{}
		mockUsers := &mocks.UserRepository{}
		svc := service.NewTransferService(&mocks.TxManager{}, mockLedger, mockUsers,
			&mocks.NotificationRepository{}, logger, nil)

		mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
		mockLedger.On("Create", context.Background(),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.SenderID == nil &&
					tx.ReceiverID != nil && *tx.ReceiverID == 1 &&
					tx.Amount == 1000 &&
					tx.TxType == model.TxTypeGrant
			})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Transaction).ID = 5
		}).Return(nil)

		result, err := svc.Grant(context.Background(), service.GrantCommand{
			ReceiverID: 1, Amount: 1000, Reason: "semester allocation",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(5), result.TransactionID)
	})

	t.Run("rejects grant to a student", func(t *testing.T) {
		mockUsers := &mocks.UserRepository{}
		svc := service.NewTransferService(&mocks.TxManager{}, &mocks.LedgerRepository{}, mockUsers,
			&mocks.NotificationRepository{}, logger, nil)

		mockUsers.On("FindByID", int64(2)).Return(studentUser(2, "ana@uni.edu"), nil)

		_, err := svc.Grant(context.Background(), service.GrantCommand{
			ReceiverID: 2, Amount: 1000, Reason: "semester allocation",
		})

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeForbidden, svcErr.Code)
	})
}

// serialTxManager emulates the serialization the row lock provides in
// MySQL: each WithTx holds the account lock for its whole duration.
type serialTxManager struct {
	mu sync.Mutex
}

func (s *serialTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

// sharedLedger applies debits at insert time, the way the real ledger's
// locked sum observes rows inserted by committed transactions.
type sharedLedger struct {
	mu      sync.Mutex
	balance int64
	created []model.Transaction
}

func (l *sharedLedger) Create(ctx context.Context, tx *model.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	tx.ID = int64(len(l.created) + 1)
	l.created = append(l.created, *tx)
	l.balance -= tx.Amount
	return nil
}

func (l *sharedLedger) GetByIdempotencyKey(txType model.TxType, key string) (*model.Transaction, error) {
	return nil, repository.ErrTransactionExisted
}

func (l *sharedLedger) SumByUser(userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance, nil
}

func (l *sharedLedger) SumByUserLocked(ctx context.Context, userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance, nil
}

func (l *sharedLedger) ListByUser(userID int64) ([]model.Transaction, error) {
	return nil, nil
}

func (l *sharedLedger) ListTransfersBySender(senderID int64) ([]model.Transaction, error) {
	return nil, nil
}

func TestTransfer_ConcurrentTransfersNeverOverdraw(t *testing.T) {
	logger := zap.NewNop()

	const (
		workers = 4
		amount  = 30
	)

	// Balance covers exactly workers-1 transfers.
	ledger := &sharedLedger{balance: (workers - 1) * amount}

	mockUsers := &mocks.UserRepository{}
	mockUsers.On("FindByID", int64(1)).Return(professor(1), nil)
	mockUsers.On("FindByEmail", "ana@uni.edu").Return(studentUser(2, "ana@uni.edu"), nil)

	mockNotifications := &mocks.NotificationRepository{}
	mockNotifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).Return(nil)

	svc := service.NewTransferService(&serialTxManager{}, ledger, mockUsers, mockNotifications, logger, nil)

	cmd := service.TransferCommand{
		SenderID:       1,
		RecipientEmail: "ana@uni.edu",
		Amount:         amount,
		Reason:         "concurrent transfer",
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Transfer(context.Background(), cmd)
		}(i)
	}
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		var svcErr service.Error
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, constants.ErrCodeInsufficientBalance, svcErr.Code)
			insufficient++
		}
	}

	assert.Equal(t, workers-1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.Len(t, ledger.created, workers-1)
	assert.Equal(t, int64(0), ledger.balance)
}
