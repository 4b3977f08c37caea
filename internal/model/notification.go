package model

import "time"

const (
	NotificationStateCreated = "CREATED"
	NotificationStatePending = "PENDING"
	NotificationStateSent    = "SENT"
	NotificationStateFailed  = "FAILED"
)

// Notification is an outbox row. The transfer path only appends rows;
// a publisher worker moves them onto the queue and a consumer worker
// delivers the mail.
type Notification struct {
	ID            int64      `gorm:"primaryKey;autoIncrement;<-:create"`
	TransactionID int64      `gorm:"column:transaction_id;index;not null;<-:create"`
	Recipient     string     `gorm:"type:varchar(255);not null;<-:create"`
	Subject       string     `gorm:"type:varchar(255);not null;<-:create"`
	Body          string     `gorm:"type:text;not null;<-:create"`
	State         string     `gorm:"type:enum('CREATED','PENDING','SENT','FAILED');not null"`
	Published     bool       `gorm:"default:false;not null"`
	PublishedAt   *time.Time `gorm:"type:timestamp;null"`
	AttemptCount  int        `gorm:"default:0;not null"`
	LastError     *string    `gorm:"type:text;null"`
	CreatedAt     time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}
