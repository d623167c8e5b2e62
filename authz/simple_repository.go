package authz

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peoplehq/orgdir/db"
)

// ============================================================================
// SimpleOrgRepository - SQL implementation of OrgRepository
// ============================================================================

// SimpleOrgRepository implements OrgRepository using SQL
type SimpleOrgRepository struct {
	db *sql.DB
}

// NewSimpleOrgRepository creates a new SimpleOrgRepository
func NewSimpleOrgRepository(database *sql.DB) *SimpleOrgRepository {
	return &SimpleOrgRepository{db: database}
}

// Ensure SimpleOrgRepository implements OrgRepository
var _ OrgRepository = (*SimpleOrgRepository)(nil)

// Create creates a new organisation
func (r *SimpleOrgRepository) Create(ctx context.Context, org *db.Organisation) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	now := time.Now()
	if org.CreatedAt.IsZero() {
		org.CreatedAt = now
	}
	org.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organisations (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, org.ID, org.Name, org.Description, org.CreatedAt, org.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create organisation: %w", err)
	}
	return nil
}

// Get retrieves an organisation by ID
func (r *SimpleOrgRepository) Get(ctx context.Context, id string) (*db.Organisation, error) {
	var org db.Organisation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), created_at, updated_at
		FROM organisations
		WHERE id = $1
	`, id).Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	return &org, nil
}

// ListByUser returns only the organisations the user is a member of,
// so cross-tenant leakage is impossible at the query level.
func (r *SimpleOrgRepository) ListByUser(ctx context.Context, userID string) ([]db.Organisation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.name, COALESCE(o.description, ''), o.created_at, o.updated_at
		FROM organisations o
		JOIN memberships m ON m.organisation_id = o.id
		WHERE m.user_id = $1
		ORDER BY o.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user organisations: %w", err)
	}
	defer rows.Close()

	orgs := make([]db.Organisation, 0) // JSON: [] not null
	for rows.Next() {
		var org db.Organisation
		if err := rows.Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organisation: %w", err)
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// Delete removes an organisation by ID
func (r *SimpleOrgRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM organisations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organisation: %w", err)
	}
	return nil
}

// Exists checks if an organisation exists
func (r *SimpleOrgRepository) Exists(ctx context.Context, id string) bool {
	var exists bool
	r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM organisations WHERE id = $1)`, id).Scan(&exists)
	return exists
}

// ============================================================================
// SimpleUserLookup - SQL implementation of UserLookup
// ============================================================================

// SimpleUserLookup implements UserLookup using SQL
type SimpleUserLookup struct {
	db *sql.DB
}

// NewSimpleUserLookup creates a new SimpleUserLookup
func NewSimpleUserLookup(database *sql.DB) *SimpleUserLookup {
	return &SimpleUserLookup{db: database}
}

// Ensure SimpleUserLookup implements UserLookup
var _ UserLookup = (*SimpleUserLookup)(nil)

// Exists checks if an active user exists
func (u *SimpleUserLookup) Exists(ctx context.Context, id string) bool {
	var exists bool
	u.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND is_active = true)`, id).Scan(&exists)
	return exists
}

// ============================================================================
// Factory function for convenience
// ============================================================================

// NewSimpleBackend creates all simple implementations at once.
// Returns: Gate, MembershipLedger, OrgRepository, UserLookup
func NewSimpleBackend(database *sql.DB) (*Gate, MembershipLedger, OrgRepository, UserLookup) {
	ledger := NewSimpleMembershipLedger(database)
	return NewGate(ledger),
		ledger,
		NewSimpleOrgRepository(database),
		NewSimpleUserLookup(database)
}
