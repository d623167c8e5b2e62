package authz

import "context"

// Gate evaluates per-request visibility policy. Decisions are pure
// given the requester, the target and the membership snapshot; a
// DENY never mutates anything.
type Gate struct {
	ledger MembershipLedger
}

// NewGate creates a new Gate
func NewGate(ledger MembershipLedger) *Gate {
	return &Gate{ledger: ledger}
}

// CanViewUser allows a user to view their own record, or the record
// of any user they share at least one organisation with.
func (g *Gate) CanViewUser(ctx context.Context, requesterID, targetID string) bool {
	if requesterID == targetID {
		return true
	}
	return g.ledger.SharesOrganisation(ctx, requesterID, targetID)
}

// CanViewOrg allows members only.
func (g *Gate) CanViewOrg(ctx context.Context, userID, orgID string) bool {
	return g.ledger.IsMember(ctx, userID, orgID)
}
