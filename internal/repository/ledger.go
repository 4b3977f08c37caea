package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/meritus/coinledger/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTransactionExisted = errors.New("TRANSACTION_EXISTED")

type LedgerRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByIdempotencyKey(txType model.TxType, idempotencyKey string) (*model.Transaction, error)
	SumByUser(userID int64) (int64, error)
	SumByUserLocked(ctx context.Context, userID int64) (int64, error)
	ListByUser(userID int64) ([]model.Transaction, error)
	ListTransfersBySender(senderID int64) ([]model.Transaction, error)
}

type ledger struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledger{db: db}
}

func (l *ledger) Create(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, l.db)
	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTransactionExisted
	}

	return err
}

func (l *ledger) GetByIdempotencyKey(txType model.TxType, idempotencyKey string) (*model.Transaction, error) {
	var tx model.Transaction
	err := l.db.Where("tx_type = ? AND idempotency_key = ?", txType, idempotencyKey).First(&tx).Error
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

const balanceExpr = "COALESCE(SUM(CASE WHEN receiver_id = ? THEN amount WHEN sender_id = ? THEN -amount ELSE 0 END), 0)"

func (l *ledger) SumByUser(userID int64) (int64, error) {
	var balance int64
	err := l.db.Model(&model.Transaction{}).
		Select(balanceExpr, userID, userID).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// SumByUserLocked must run inside a TxManager transaction. The FOR UPDATE
// range lock over the account's ledger rows blocks concurrent transfers
// from the same sender until this transaction commits.
func (l *ledger) SumByUserLocked(ctx context.Context, userID int64) (int64, error) {
	db := GetTx(ctx, l.db)

	var balance int64
	err := db.Model(&model.Transaction{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select(balanceExpr, userID, userID).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (l *ledger) ListByUser(userID int64) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := l.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (l *ledger) ListTransfersBySender(senderID int64) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := l.db.
		Where("sender_id = ? AND tx_type = ?", senderID, model.TxTypeTransfer).
		Order("created_at ASC, id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}
