package model

import "time"

type TxType string

const (
	TxTypeTransfer TxType = "transfer"
	TxTypeGrant    TxType = "grant"
)

// Transaction is an append-only ledger entry. Amount is always positive;
// direction is encoded by sender/receiver. A transfer has both set, a
// grant has only the receiver.
type Transaction struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;<-:create"`
	SenderID       *int64    `gorm:"column:sender_id;index;<-:create"`
	ReceiverID     *int64    `gorm:"column:receiver_id;index;<-:create"`
	Amount         int64     `gorm:"not null;<-:create"`
	Reason         string    `gorm:"type:varchar(255);not null;<-:create"`
	TxType         TxType    `gorm:"column:tx_type;type:varchar(20);not null;index:idx_tx_type_idem,unique;<-:create"`
	IdempotencyKey *string   `gorm:"column:idempotency_key;type:varchar(64);index:idx_tx_type_idem,unique;<-:create"`
	CreatedAt      time.Time `gorm:"<-:create"`
}
