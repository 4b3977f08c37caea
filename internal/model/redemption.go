package model

import "time"

type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "PENDING"
	RedemptionStatusConfirmed RedemptionStatus = "CONFIRMED"
	RedemptionStatusCancelled RedemptionStatus = "CANCELLED"
)

// Redemption rows are created by the redemption flow and are read-only
// from this service's perspective.
type Redemption struct {
	ID          int64            `gorm:"primaryKey;autoIncrement;<-:create"`
	StudentID   int64            `gorm:"column:student_id;index;not null;<-:create"`
	AdvantageID int64            `gorm:"column:advantage_id;index;not null;<-:create"`
	Status      RedemptionStatus `gorm:"type:varchar(20);not null"`
	Code        string           `gorm:"type:varchar(64);not null"`
	CreatedAt   time.Time        `gorm:"<-:create"`
}
