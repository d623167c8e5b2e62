package authz

import (
	"context"

	"github.com/peoplehq/orgdir/db"
)

// OrgRepository persists organisations.
type OrgRepository interface {
	// Create stores a new organisation, generating its id when empty.
	Create(ctx context.Context, org *db.Organisation) error

	// Get retrieves an organisation by ID, ErrNotFound when missing.
	Get(ctx context.Context, id string) (*db.Organisation, error)

	// ListByUser returns only the organisations the user is a member of.
	ListByUser(ctx context.Context, userID string) ([]db.Organisation, error)

	// Delete removes an organisation by ID.
	Delete(ctx context.Context, id string) error

	// Exists checks if an organisation exists.
	Exists(ctx context.Context, id string) bool
}

// UserLookup is the minimal view of the user store the org service
// needs for membership operations.
type UserLookup interface {
	// Exists checks if an active user exists.
	Exists(ctx context.Context, id string) bool
}
