package authz

import (
	"context"
	"testing"

	"github.com/peoplehq/orgdir/db"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// MockLedger implements MembershipLedger for testing
type MockLedger struct {
	Orgs  map[string]map[string]bool // orgID -> userID -> member
	Error error
}

func NewMockLedger() *MockLedger {
	return &MockLedger{Orgs: make(map[string]map[string]bool)}
}

func (m *MockLedger) SetMember(userID, orgID string) {
	if m.Orgs[orgID] == nil {
		m.Orgs[orgID] = make(map[string]bool)
	}
	m.Orgs[orgID][userID] = true
}

func (m *MockLedger) AddMember(ctx context.Context, userID, orgID string) error {
	if m.Error != nil {
		return m.Error
	}
	if m.Orgs[orgID][userID] {
		return ErrAlreadyMember
	}
	m.SetMember(userID, orgID)
	return nil
}

func (m *MockLedger) IsMember(ctx context.Context, userID, orgID string) bool {
	return m.Orgs[orgID][userID]
}

func (m *MockLedger) SharesOrganisation(ctx context.Context, userA, userB string) bool {
	for _, members := range m.Orgs {
		if members[userA] && members[userB] {
			return true
		}
	}
	return false
}

func (m *MockLedger) ListMembers(ctx context.Context, orgID string) ([]db.Membership, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	members := make([]db.Membership, 0)
	for userID := range m.Orgs[orgID] {
		members = append(members, db.Membership{UserID: userID, OrganisationID: orgID})
	}
	return members, nil
}

// ============================================================================
// Gate Tests
// ============================================================================

func TestGate_CanViewUser(t *testing.T) {
	ledger := NewMockLedger()
	ledger.SetMember("alice", "org-1")
	ledger.SetMember("bob", "org-1")
	ledger.SetMember("carol", "org-2")

	gate := NewGate(ledger)
	ctx := context.Background()

	tests := []struct {
		name      string
		requester string
		target    string
		want      bool
	}{
		{"own record", "alice", "alice", true},
		{"shared organisation", "alice", "bob", true},
		{"shared organisation reversed", "bob", "alice", true},
		{"no shared organisation", "alice", "carol", false},
		{"unknown target", "alice", "nobody", false},
		{"unknown requester", "nobody", "alice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.CanViewUser(ctx, tt.requester, tt.target); got != tt.want {
				t.Errorf("CanViewUser(%s, %s) = %v, want %v", tt.requester, tt.target, got, tt.want)
			}
		})
	}
}

func TestGate_CanViewOrg(t *testing.T) {
	ledger := NewMockLedger()
	ledger.SetMember("alice", "org-1")

	gate := NewGate(ledger)
	ctx := context.Background()

	if !gate.CanViewOrg(ctx, "alice", "org-1") {
		t.Error("member should be able to view their organisation")
	}
	if gate.CanViewOrg(ctx, "bob", "org-1") {
		t.Error("non-member should not be able to view the organisation")
	}
	if gate.CanViewOrg(ctx, "alice", "org-2") {
		t.Error("member of another org should not be able to view this one")
	}
}

// A DENY decision must not change the membership snapshot.
func TestGate_DenyHasNoSideEffects(t *testing.T) {
	ledger := NewMockLedger()
	ledger.SetMember("alice", "org-1")

	gate := NewGate(ledger)
	ctx := context.Background()

	gate.CanViewUser(ctx, "bob", "alice")
	gate.CanViewOrg(ctx, "bob", "org-1")

	if ledger.IsMember(ctx, "bob", "org-1") {
		t.Error("deny must not create a membership")
	}
	if len(ledger.Orgs) != 1 || len(ledger.Orgs["org-1"]) != 1 {
		t.Errorf("membership snapshot changed: %v", ledger.Orgs)
	}
}
