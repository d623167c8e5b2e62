package authz

import (
	"context"

	"github.com/peoplehq/orgdir/db"
)

// MembershipLedger is the source of truth for user-organisation
// relationships. Visibility decisions are made against it.
//
// Uniqueness of the (user, organisation) pair is enforced at this
// boundary: a duplicate AddMember is the distinct ErrAlreadyMember
// outcome, never a silent success and never a second row.
type MembershipLedger interface {
	// AddMember links a user to an organisation.
	AddMember(ctx context.Context, userID, orgID string) error

	// IsMember checks whether a user belongs to an organisation.
	IsMember(ctx context.Context, userID, orgID string) bool

	// SharesOrganisation checks whether two users have at least one
	// organisation in common.
	SharesOrganisation(ctx context.Context, userA, userB string) bool

	// ListMembers returns all memberships of an organisation.
	ListMembers(ctx context.Context, orgID string) ([]db.Membership, error)
}
