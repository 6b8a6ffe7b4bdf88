package models

import "strings"

// UnknownAuthor is shown for posts whose author no longer resolves.
const UnknownAuthor = "Unknown Author"

// UnknownUser is shown for comments whose author no longer resolves.
const UnknownUser = "Unknown User"

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate assigns an ID and normalizes the email address.
func (u *User) BeforeCreate() {
	if u.ID == "" {
		u.ID = NewID()
	}
	u.Email = NormalizeEmail(u.Email)
	u.Username = strings.TrimSpace(u.Username)
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the credential record.
func (c *Credential) Validate() error {
	return validate.Struct(c)
}
