package domain

import "time"

// User Model
type User struct {
	ID            uint    `gorm:"primaryKey"`          // Primary key
	Username      string  `gorm:"uniqueIndex;not null"` // Unique username
	Email         string  `gorm:"uniqueIndex;not null"` // Unique email address
	PasswordHash  string  `gorm:"not null"`             // Salted bcrypt hash
	VisitCount    int     `gorm:"not null;default:0"`   // Successful login count
	LastLoginDate *string // Date of the most recent login, nil until first login
	LastLoginTime *string // Time of the most recent login, nil until first login
	CreatedAt     time.Time // Set once on creation
}
