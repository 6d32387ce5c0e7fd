package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentStatus is the review state of an assignment.
type AssignmentStatus string

const (
	// StatusPending is the initial state of every uploaded assignment.
	StatusPending AssignmentStatus = "Pending"
	// StatusAccepted and StatusRejected are the terminal states.
	StatusAccepted AssignmentStatus = "Accepted"
	StatusRejected AssignmentStatus = "Rejected"
)

// Assignment is a task uploaded by a user and addressed to one admin.
type Assignment struct {
	ID        uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:char(36);not null;index"`
	AdminID   uuid.UUID        `json:"admin_id" gorm:"type:char(36);not null;index"`
	Task      string           `json:"task" gorm:"type:text;not null"`
	Status    AssignmentStatus `json:"status" gorm:"size:10;not null;default:'Pending'"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AssignmentWithUser is the admin-facing listing row, joined with the
// uploading user's username.
type AssignmentWithUser struct {
	Assignment `gorm:"embedded"`
	Username   string `json:"username"`
}
