package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Tag represents a skill, interest, or request requirement
type Tag struct {
	Label  string `json:"label" binding:"required,max=50"`
	Slug   string `json:"slug" binding:"required,max=50,slug"`
	Custom bool   `json:"custom"`
}

// TagList is a JSONB-backed list of tags
type TagList []Tag

// Value implements the driver.Valuer interface for TagList
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(TagList{})
	}
	return json.Marshal(t)
}

// Scan implements the sql.Scanner interface for TagList
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, t)
}

// CatalogTag represents a curated tag from the fixed catalog
type CatalogTag struct {
	ID         int    `json:"id" db:"id"`
	Label      string `json:"label" db:"label"`
	Slug       string `json:"slug" db:"slug"`
	Category   string `json:"category" db:"category"`
	UsageCount int    `json:"usage_count" db:"usage_count"`
}

// CatalogTagCreate represents data for adding a tag to the catalog
type CatalogTagCreate struct {
	Label    string `json:"label" binding:"required,min=1,max=50"`
	Category string `json:"category"`
}
