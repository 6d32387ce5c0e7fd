package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role distinguishes the two kinds of accounts in the portal.
type Role string

const (
	// RoleUser marks a student account that uploads assignments.
	RoleUser Role = "User"
	// RoleAdmin marks an account that reviews assignments addressed to it.
	RoleAdmin Role = "Admin"
)

// User represents a portal account. The role is fixed at registration.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:20;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:10;not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
