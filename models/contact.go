package models

import (
	"fmt"
	"time"
)

// ContactDetail is one typed entry (phone number, email address, postal
// address, or social media handle) owned by a contact. Label is an optional
// free-form disambiguator such as "work" or "home"; nil means no label.
type ContactDetail struct {
	Type  string  `json:"type"` // phone, email, address, social_media
	Value string  `json:"value"`
	Label *string `json:"label"`
}

// ContactSummary is the list representation of a contact, without details.
type ContactSummary struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	IsBookmarked bool      `json:"is_bookmarked"`
	CreatedAt    time.Time `json:"created_at"`
}

// Contact is the full representation returned by detail and mutation
// endpoints. Details keep the order they were submitted in.
type Contact struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	IsBookmarked bool            `json:"is_bookmarked"`
	Details      []ContactDetail `json:"details"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ContactRecord is one portable contact as carried by the import/export
// document. It has no id; importing a record always creates a fresh contact.
type ContactRecord struct {
	Name         string          `json:"name"`
	IsBookmarked bool            `json:"is_bookmarked"`
	Details      []ContactDetail `json:"details"`
}

// ContactInput is used for creating/updating contacts.
type ContactInput struct {
	Name    string          `json:"name"`
	Details []ContactDetail `json:"details"`
}

func (c *ContactInput) Validate() string {
	if c.Name == "" {
		return "name is required"
	}
	for i, d := range c.Details {
		if d.Value == "" {
			return fmt.Sprintf("details[%d].value is required", i)
		}
		switch d.Type {
		case "phone", "email", "address", "social_media":
		default:
			return fmt.Sprintf("details[%d].type must be one of: phone, email, address, social_media", i)
		}
	}
	return ""
}
