package model

import "time"

// Роли пользователей.
const (
	RoleHead    = "head"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User — серверная модель пользователя.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null;size:25"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;size:10;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleHead, RoleTeacher, RoleStudent:
		return true
	}
	return false
}
