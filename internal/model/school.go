package model

// School represents an entry in the searchable school catalog
type School struct {
	ID     int    `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	City   string `json:"city" db:"city"`
	State  string `json:"state" db:"state"`
}
