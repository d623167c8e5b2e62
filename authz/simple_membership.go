package authz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/peoplehq/orgdir/db"
)

// uniqueViolation is the Postgres error code for a broken UNIQUE constraint.
const uniqueViolation = "23505"

// SimpleMembershipLedger implements MembershipLedger using SQL
type SimpleMembershipLedger struct {
	db *sql.DB
}

// NewSimpleMembershipLedger creates a new SimpleMembershipLedger
func NewSimpleMembershipLedger(database *sql.DB) *SimpleMembershipLedger {
	return &SimpleMembershipLedger{db: database}
}

// Ensure SimpleMembershipLedger implements MembershipLedger
var _ MembershipLedger = (*SimpleMembershipLedger)(nil)

// AddMember inserts the membership row. The UNIQUE(user_id,
// organisation_id) constraint resolves concurrent duplicate adds:
// the losing insert maps to ErrAlreadyMember.
func (l *SimpleMembershipLedger) AddMember(ctx context.Context, userID, orgID string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO memberships (id, user_id, organisation_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.New().String(), userID, orgID, time.Now())

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrAlreadyMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// IsMember checks whether a user belongs to an organisation
func (l *SimpleMembershipLedger) IsMember(ctx context.Context, userID, orgID string) bool {
	var exists bool
	l.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM memberships WHERE user_id = $1 AND organisation_id = $2)
	`, userID, orgID).Scan(&exists)
	return exists
}

// SharesOrganisation checks whether two users have a common organisation
func (l *SimpleMembershipLedger) SharesOrganisation(ctx context.Context, userA, userB string) bool {
	var exists bool
	l.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM memberships a
			JOIN memberships b ON a.organisation_id = b.organisation_id
			WHERE a.user_id = $1 AND b.user_id = $2
		)
	`, userA, userB).Scan(&exists)
	return exists
}

// ListMembers returns all memberships of an organisation
func (l *SimpleMembershipLedger) ListMembers(ctx context.Context, orgID string) ([]db.Membership, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, user_id, organisation_id, created_at
		FROM memberships
		WHERE organisation_id = $1
		ORDER BY created_at
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]db.Membership, 0) // JSON: [] not null
	for rows.Next() {
		var m db.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.OrganisationID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
