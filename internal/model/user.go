package model

import "time"

type Role string

const (
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
	RoleCompany   Role = "company"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;<-:create"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role      `gorm:"type:varchar(20);not null;<-:create"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"<-:create"`
	UpdatedAt    time.Time
}
