package models

// Admin is a privileged user capable of managing guides and categories.
type Admin struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // don’t expose hash
}
