package model

import (
	"time"
)

// Request visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Request represents a collaboration request posted by a user
type Request struct {
	ID          int        `json:"id" db:"id"`
	CreatorID   int        `json:"creator_id" db:"creator_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Visibility  string     `json:"visibility" db:"visibility"`
	Tags        TagList    `json:"tags" db:"tags"`
	MemberGoal  int        `json:"member_goal" db:"member_goal"`
	MemberCount int        `json:"member_count" db:"member_count"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// MatchScore is computed per viewer during ranking; never persisted.
	MatchScore int `json:"match_score" db:"-"`
	// MatchTier is the presentation tier derived from MatchScore.
	MatchTier string `json:"match_tier,omitempty" db:"-"`

	Creator *ProfileSummary `json:"creator_profile,omitempty" db:"-"`
}

// RequestCreate represents data for posting a new collaboration request
type RequestCreate struct {
	Title       string  `json:"title" binding:"required,min=1,max=30"`
	Description string  `json:"description" binding:"max=250"`
	Tags        TagList `json:"tags" binding:"required,min=1,max=10,dive"`
	Visibility  string  `json:"visibility" binding:"required,oneof=public private"`
	MemberGoal  int     `json:"member_goal" binding:"required,min=1"`
}

// RequestUpdate represents data for updating an existing request
type RequestUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        *TagList `json:"tags"`
	Visibility  *string  `json:"visibility"`
	MemberGoal  *int     `json:"member_goal"`
}

// RequestFilter holds the browse/search parameters for listing requests
type RequestFilter struct {
	Search   string
	TagSlugs []string
	Page     int
	Limit    int
}
