package model

import "time"

type Company struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;<-:create"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"<-:create"`
	UpdatedAt time.Time
}

type Advantage struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;<-:create"`
	CompanyID   int64     `gorm:"column:company_id;index;not null;<-:create"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Cost        int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"<-:create"`
	UpdatedAt   time.Time
}
