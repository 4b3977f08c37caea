package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meritus/coinledger/internal/constants"
	"github.com/meritus/coinledger/internal/metrics"
	"github.com/meritus/coinledger/internal/model"
	"github.com/meritus/coinledger/internal/repository"
	"go.uber.org/zap"
)

type TransferService interface {
	GetBalance(userID int64) (int64, error)
	ListTransactions(userID int64) ([]TransactionEntry, error)
	Transfer(ctx context.Context, cmd TransferCommand) (TransferResult, error)
	Grant(ctx context.Context, cmd GrantCommand) (TransferResult, error)
}

type transfer struct {
	txManager        repository.TxManager
	ledgerRepo       repository.LedgerRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
	metrics          *metrics.Metrics
}

func NewTransferService(txManager repository.TxManager, ledgerRepo repository.LedgerRepository,
	userRepo repository.UserRepository, notificationRepo repository.NotificationRepository,
	logger *zap.Logger, metrics *metrics.Metrics) TransferService {
	return &transfer{
		txManager:        txManager,
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
		metrics:          metrics,
	}
}

func (t *transfer) GetBalance(userID int64) (int64, error) {
	start := time.Now()

	balance, err := t.ledgerRepo.SumByUser(userID)
	if err != nil {
		t.logger.Error("Failed to compute balance",
			zap.Int64("userID", userID),
			zap.Error(err))
		t.metrics.RecordBalanceRetrieval("error")
		return 0, NewServiceError(ErrCodeDatabase, err)
	}

	t.metrics.RecordBalanceRetrieval("success")

	t.logger.Debug("Balance computed",
		zap.Int64("userID", userID),
		zap.Int64("balance", balance),
		zap.Duration("duration", time.Since(start)))

	return balance, nil
}

func (t *transfer) ListTransactions(userID int64) ([]TransactionEntry, error) {
	txs, err := t.ledgerRepo.ListByUser(userID)
	if err != nil {
		t.logger.Error("Failed to list transactions",
			zap.Int64("userID", userID),
			zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	entries := make([]TransactionEntry, 0, len(txs))
	for _, tx := range txs {
		entries = append(entries, toTransactionEntry(tx))
	}

	return entries, nil
}

func (t *transfer) Transfer(ctx context.Context, cmd TransferCommand) (TransferResult, error) {
	if cmd.RecipientEmail == "" || cmd.Reason == "" || cmd.Amount == 0 {
		return TransferResult{}, NewServiceError(constants.ErrCodeValidationFailed, ErrMissingField)
	}

	if cmd.Amount <= 0 {
		return TransferResult{}, NewServiceError(constants.ErrCodeValidationFailed, ErrAmountNotPositive)
	}

	sender, err := t.userRepo.FindByID(cmd.SenderID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TransferResult{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return TransferResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	if sender.Role != model.RoleProfessor {
		t.logger.Warn("Transfer rejected for non-professor sender",
			zap.Int64("senderID", cmd.SenderID),
			zap.String("role", string(sender.Role)))
		return TransferResult{}, NewServiceError(constants.ErrCodeForbidden, ErrSenderNotProfessor)
	}

	recipient, err := t.userRepo.FindByEmail(cmd.RecipientEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TransferResult{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return TransferResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	if recipient.Role != model.RoleStudent {
		return TransferResult{}, NewServiceError(constants.ErrCodeValidationFailed, ErrRecipientNotStudent)
	}

	tx := model.Transaction{
		SenderID:   &sender.ID,
		ReceiverID: &recipient.ID,
		Amount:     cmd.Amount,
		Reason:     cmd.Reason,
		TxType:     model.TxTypeTransfer,
		CreatedAt:  time.Now(),
	}
	if cmd.IdempotencyKey != "" {
		tx.IdempotencyKey = &cmd.IdempotencyKey
	}

	// Balance check and insert share one DB transaction; the locked sum
	// serializes concurrent transfers from the same sender so two of them
	// cannot both pass the check before either commits.
	err = t.txManager.WithTx(ctx, func(ctx context.Context) error {
		balance, err := t.ledgerRepo.SumByUserLocked(ctx, sender.ID)
		if err != nil {
			t.logger.Error("Failed to compute sender balance", zap.Error(err))
			return NewServiceError(ErrCodeDatabase, err)
		}

		if balance < cmd.Amount {
			return NewServiceError(constants.ErrCodeInsufficientBalance, ErrInsufficientBalance)
		}

		insertStart := time.Now()
		if err := t.ledgerRepo.Create(ctx, &tx); err != nil {
			if errors.Is(err, repository.ErrTransactionExisted) {
				return NewServiceError(constants.ErrCodeDuplicateTransaction, err)
			}

			t.metrics.RecordDBQuery("insert", "transactions", "error", time.Since(insertStart))
			t.logger.Error("Failed to create transfer transaction", zap.Error(err))
			return NewServiceError(ErrCodeDatabase, err)
		}

		t.metrics.RecordDBQuery("insert", "transactions", "success", time.Since(insertStart))

		return nil
	})

	if err != nil {
		var svcErr Error
		if errors.As(err, &svcErr) && svcErr.Code == constants.ErrCodeDuplicateTransaction && cmd.IdempotencyKey != "" {
			existing, lookupErr := t.ledgerRepo.GetByIdempotencyKey(model.TxTypeTransfer, cmd.IdempotencyKey)
			if lookupErr != nil {
				t.logger.Error("Failed to resolve duplicate transfer", zap.Error(lookupErr))
				return TransferResult{}, err
			}

			t.logger.Info("Idempotent transfer already exists",
				zap.String("idempotencyKey", cmd.IdempotencyKey),
				zap.Int64("transactionID", existing.ID))

			return TransferResult{
				TransactionID: existing.ID,
				Amount:        existing.Amount,
				Reason:        existing.Reason,
				CreatedAt:     existing.CreatedAt,
				Duplicate:     true,
			}, nil
		}

		t.metrics.RecordTransactionError("transfer")
		return TransferResult{}, err
	}

	t.metrics.RecordTransactionCreated("transfer")

	t.logger.Info("Transfer completed",
		zap.Int64("transactionID", tx.ID),
		zap.Int64("senderID", sender.ID),
		zap.Int64("receiverID", recipient.ID),
		zap.Int64("amount", cmd.Amount))

	t.enqueueNotification(ctx, tx, sender, recipient)

	return TransferResult{
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Reason:        tx.Reason,
		CreatedAt:     tx.CreatedAt,
	}, nil
}

func (t *transfer) Grant(ctx context.Context, cmd GrantCommand) (TransferResult, error) {
	if cmd.Amount <= 0 {
		return TransferResult{}, NewServiceError(constants.ErrCodeValidationFailed, ErrAmountNotPositive)
	}

	if cmd.Reason == "" {
		return TransferResult{}, NewServiceError(constants.ErrCodeValidationFailed, ErrMissingField)
	}

	receiver, err := t.userRepo.FindByID(cmd.ReceiverID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TransferResult{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return TransferResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	if receiver.Role != model.RoleProfessor {
		return TransferResult{}, NewServiceError(constants.ErrCodeForbidden, ErrReceiverNotProfessor)
	}

	tx := model.Transaction{
		ReceiverID: &receiver.ID,
		Amount:     cmd.Amount,
		Reason:     cmd.Reason,
		TxType:     model.TxTypeGrant,
		CreatedAt:  time.Now(),
	}

	if err := t.ledgerRepo.Create(ctx, &tx); err != nil {
		t.logger.Error("Failed to create grant transaction",
			zap.Int64("receiverID", cmd.ReceiverID),
			zap.Error(err))
		t.metrics.RecordTransactionError("grant")
		return TransferResult{}, NewServiceError(ErrCodeDatabase, err)
	}

	t.metrics.RecordTransactionCreated("grant")

	t.logger.Info("Grant completed",
		zap.Int64("transactionID", tx.ID),
		zap.Int64("receiverID", receiver.ID),
		zap.Int64("amount", cmd.Amount))

	return TransferResult{
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Reason:        tx.Reason,
		CreatedAt:     tx.CreatedAt,
	}, nil
}

// enqueueNotification appends an outbox row for the recipient. The
// transfer is already committed; any failure here is logged and dropped.
func (t *transfer) enqueueNotification(ctx context.Context, tx model.Transaction, sender, recipient model.User) {
	notification := model.Notification{
		TransactionID: tx.ID,
		Recipient:     recipient.Email,
		Subject:       "You received merit coins",
		Body: fmt.Sprintf("%s sent you %d coins: %s",
			sender.Name, tx.Amount, tx.Reason),
		State:     model.NotificationStateCreated,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := t.notificationRepo.Create(ctx, &notification); err != nil {
		t.logger.Warn("Failed to enqueue transfer notification",
			zap.Int64("transactionID", tx.ID),
			zap.String("recipient", recipient.Email),
			zap.Error(err))
		return
	}

	t.metrics.RecordNotificationQueued()
}

func toTransactionEntry(tx model.Transaction) TransactionEntry {
	return TransactionEntry{
		TransactionID: tx.ID,
		SenderID:      tx.SenderID,
		ReceiverID:    tx.ReceiverID,
		Amount:        tx.Amount,
		Reason:        tx.Reason,
		TxType:        string(tx.TxType),
		CreatedAt:     tx.CreatedAt,
	}
}
