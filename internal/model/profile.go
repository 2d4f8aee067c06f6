package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

// Profile represents a user's public profile
type Profile struct {
	UserID             int            `json:"user_id" db:"user_id"`
	Name               string         `json:"name" db:"name"`
	Pronouns           *string        `json:"pronouns,omitempty" db:"pronouns"`
	ProfilePhotoURL    *string        `json:"profile_photo_url,omitempty" db:"profile_photo_url"`
	Grade              *string        `json:"grade,omitempty" db:"grade"`
	School             *string        `json:"school,omitempty" db:"school"`
	Timezone           *string        `json:"timezone,omitempty" db:"timezone"`
	Bio                *string        `json:"bio,omitempty" db:"bio"`
	Skills             TagList        `json:"skills" db:"skills"`
	Interests          TagList        `json:"interests" db:"interests"`
	Experience         *string        `json:"experience,omitempty" db:"experience"`
	PreferredWorkTimes pq.StringArray `json:"preferred_work_times" db:"preferred_work_times"`
	AllowMessages      bool           `json:"allow_messages" db:"allow_messages"`
	Contact            *ContactInfo   `json:"contact,omitempty" db:"contact"`
	Newsletter         bool           `json:"newsletter" db:"newsletter"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          *time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// ProfileUpdate represents data for updating a profile.
// All fields optional; nil leaves the stored value untouched.
type ProfileUpdate struct {
	Name               *string      `json:"name"`
	Pronouns           *string      `json:"pronouns"`
	Grade              *string      `json:"grade"`
	School             *string      `json:"school"`
	Timezone           *string      `json:"timezone"`
	Bio                *string      `json:"bio"`
	Skills             *TagList     `json:"skills" binding:"omitempty,max=20,dive"`
	Interests          *TagList     `json:"interests" binding:"omitempty,max=20,dive"`
	Experience         *string      `json:"experience"`
	PreferredWorkTimes *[]string    `json:"preferred_work_times"`
	AllowMessages      *bool        `json:"allow_messages"`
	Contact            *ContactInfo `json:"contact"`
	Newsletter         *bool        `json:"newsletter"`
}

// ContactInfo holds contact details shown only to collab members
type ContactInfo struct {
	Emails  []string    `json:"emails,omitempty"`
	Phones  []string    `json:"phones,omitempty"`
	Socials SocialLinks `json:"socials,omitempty"`
}

// SocialLinks holds optional social profile URLs
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Value implements the driver.Valuer interface for ContactInfo
func (c ContactInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for ContactInfo
func (c *ContactInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, c)
}

// ProfileSummary is the subset of profile fields embedded in request and
// conversation listings
type ProfileSummary struct {
	UserID          int     `json:"user_id" db:"user_id"`
	Name            string  `json:"name" db:"name"`
	Pronouns        *string `json:"pronouns,omitempty" db:"pronouns"`
	ProfilePhotoURL *string `json:"profile_photo_url,omitempty" db:"profile_photo_url"`
	Grade           *string `json:"grade,omitempty" db:"grade"`
	School          *string `json:"school,omitempty" db:"school"`
}
