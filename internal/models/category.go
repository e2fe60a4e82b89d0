package models

// Category is a labeled grouping referenced by zero or more guides.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
