package models

import "time"

// Guide is a published help document composed of ordered sections.
type Guide struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"` // unique URL slug, e.g. "getting-started"
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CategoryID  string    `json:"category_id"`
	Category    *Category `json:"category,omitempty"` // resolved by the repository when requested
	DateCreated time.Time `json:"date_created"`
	Sections    []Section `json:"sections,omitempty"`
}

// Section is one ordered block of a guide. Order is positional, not part of
// the section itself.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
