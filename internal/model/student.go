package model

import "time"

type Student struct {
	UserID      int64     `gorm:"primaryKey;<-:create"`
	CPF         string    `gorm:"type:char(11);not null;uniqueIndex;<-:create"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Institution string    `gorm:"type:varchar(255);not null"`
	Course      string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"<-:create"`
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID"`
}
