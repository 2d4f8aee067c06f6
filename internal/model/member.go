package model

import (
	"time"
)

// Membership status values
const (
	MemberStatusPending  = "pending"
	MemberStatusApproved = "approved"
	MemberStatusRejected = "rejected"
)

// Member represents a membership or join request on a collaboration request
type Member struct {
	ID        int        `json:"id" db:"id"`
	RequestID int        `json:"request_id" db:"request_id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Status    string     `json:"status" db:"status"`
	Message   *string    `json:"message,omitempty" db:"message"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	User *ProfileSummary `json:"user_profile,omitempty" db:"-"`
}

// JoinRequest represents data for requesting to join a collaboration
type JoinRequest struct {
	Message string `json:"message" binding:"max=250"`
}

// MemberDecision represents the creator's approve/reject decision
type MemberDecision struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
