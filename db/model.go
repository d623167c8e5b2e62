package db

import "time"

// ===========================
// DIRECTORY MODELS
// ===========================

// User is a registered account in the directory.
// The password hash never leaves the server.
type User struct {
	ID           string    `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"-"`
	IsStaff      bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Organisation groups users. Every user belongs to at least one
// organisation (their default one, created at registration).
type Organisation struct {
	ID          string    `json:"orgId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Membership links a user to an organisation. The (user, organisation)
// pair is unique; membership carries no role.
type Membership struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	OrganisationID string    `json:"orgId"`
	CreatedAt      time.Time `json:"createdAt"`
}
