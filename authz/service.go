package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peoplehq/orgdir/db"
)

// Common errors
var (
	ErrForbidden     = errors.New("forbidden: you don't have permission to perform this action")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyMember = errors.New("user is already a member of this organisation")
	ErrInvalidInput  = errors.New("invalid input")
)

// OrgService handles organisation business logic. It combines the
// authorization gate, the membership ledger and the repository.
type OrgService struct {
	gate   *Gate
	ledger MembershipLedger
	orgs   OrgRepository
	users  UserLookup

	// When set, only existing members may add users to an
	// organisation. Off by default to match the historical API
	// behavior; recommended on.
	RequireMemberToAdd bool
}

// NewOrgService creates a new organisation service
func NewOrgService(gate *Gate, ledger MembershipLedger, orgs OrgRepository, users UserLookup) *OrgService {
	return &OrgService{
		gate:   gate,
		ledger: ledger,
		orgs:   orgs,
		users:  users,
	}
}

// CreateOrgInput represents input for creating an organisation
type CreateOrgInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateOrg creates a new organisation and joins the creator to it.
func (s *OrgService) CreateOrg(ctx context.Context, userID string, input CreateOrgInput) (*db.Organisation, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	org := &db.Organisation{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}

	if err := s.ledger.AddMember(ctx, userID, org.ID); err != nil {
		// An organisation without its creator must not survive
		_ = s.orgs.Delete(ctx, org.ID)
		return nil, fmt.Errorf("failed to join creator to organisation: %w", err)
	}

	return org, nil
}

// GetOrg retrieves an organisation by ID, member-gated.
func (s *OrgService) GetOrg(ctx context.Context, userID, orgID string) (*db.Organisation, error) {
	org, err := s.orgs.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !s.gate.CanViewOrg(ctx, userID, orgID) {
		return nil, ErrForbidden
	}
	return org, nil
}

// ListUserOrgs returns exactly the organisations the user belongs to.
func (s *OrgService) ListUserOrgs(ctx context.Context, userID string) ([]db.Organisation, error) {
	return s.orgs.ListByUser(ctx, userID)
}

// AddMember links an existing user to an existing organisation.
// A duplicate link surfaces as ErrAlreadyMember.
func (s *OrgService) AddMember(ctx context.Context, requesterID, orgID, targetUserID string) error {
	if targetUserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if !s.orgs.Exists(ctx, orgID) {
		return fmt.Errorf("%w: organisation", ErrNotFound)
	}
	if !s.users.Exists(ctx, targetUserID) {
		return fmt.Errorf("%w: user", ErrNotFound)
	}

	if s.RequireMemberToAdd && !s.ledger.IsMember(ctx, requesterID, orgID) {
		return ErrForbidden
	}

	return s.ledger.AddMember(ctx, targetUserID, orgID)
}

// ListMembers returns the memberships of an organisation, member-gated.
func (s *OrgService) ListMembers(ctx context.Context, requesterID, orgID string) ([]db.Membership, error) {
	if !s.orgs.Exists(ctx, orgID) {
		return nil, fmt.Errorf("%w: organisation", ErrNotFound)
	}
	if !s.gate.CanViewOrg(ctx, requesterID, orgID) {
		return nil, ErrForbidden
	}
	return s.ledger.ListMembers(ctx, orgID)
}
