package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplehq/orgdir/db"
)

// ErrInvalidCredentials is the single outcome for every login
// failure. Callers cannot tell an unknown email from a wrong
// password, which prevents user enumeration.
var ErrInvalidCredentials = errors.New("authentication failed")

const uniqueViolation = "23505"

// AuthService owns registration and login.
type AuthService struct {
	PG         *sql.DB
	JWTService *JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(pg *sql.DB, jwtService *JWTService) *AuthService {
	return &AuthService{PG: pg, JWTService: jwtService}
}

// RegisterInput is the registration request payload
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// LoginInput is the login request payload
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is what a successful register or login returns
type AuthResult struct {
	AccessToken string  `json:"accessToken"`
	User        db.User `json:"user"`
}

// HashPassword creates a bcrypt hash of the password
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword verifies a password against its stored hash
func (s *AuthService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateRegister collects every field error, not just the first.
func (s *AuthService) validateRegister(ctx context.Context, in *RegisterInput) *ValidationError {
	verr := &ValidationError{}

	if strings.TrimSpace(in.FirstName) == "" {
		verr.add("firstName", msgFieldRequired)
	}
	if strings.TrimSpace(in.LastName) == "" {
		verr.add("lastName", msgFieldRequired)
	}
	if in.Password == "" {
		verr.add("password", msgFieldRequired)
	}
	if strings.TrimSpace(in.Phone) == "" {
		verr.add("phone", msgFieldRequired)
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Email == "":
		verr.add("email", msgFieldRequired)
	case !validEmail(in.Email):
		verr.add("email", msgInvalidEmail)
	case s.emailTaken(ctx, in.Email):
		verr.add("email", msgDuplicateEmail)
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *AuthService) emailTaken(ctx context.Context, email string) bool {
	var exists bool
	s.PG.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists
}

// Register creates the user, their default organisation and the
// membership linking the two in one transaction. Any failure after
// the user insert rolls everything back: no user without a default
// organisation, no organisation without its creator as member.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if verr := s.validateRegister(ctx, &in); verr != nil {
		return nil, verr
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := db.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	org := db.Organisation{
		ID:        uuid.New().String(),
		Name:      fmt.Sprintf("%s's Organisation", user.FirstName),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.PG.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, phone, password_hash, is_active, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash, user.IsActive, user.IsStaff, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		// A concurrent registration with the same email wins the
		// unique index race; surface it as the same field error.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, &ValidationError{Fields: []FieldError{{Field: "email", Message: msgDuplicateEmail}}}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO organisations (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, org.ID, org.Name, org.Description, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create default organisation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memberships (id, user_id, organisation_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.New().String(), user.ID, org.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	token, err := s.JWTService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{AccessToken: token, User: user}, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var user db.User
	err := s.PG.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, COALESCE(phone, ''), password_hash, is_active, is_staff, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.PasswordHash, &user.IsActive, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive || !s.CheckPassword(user.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.JWTService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{AccessToken: token, User: user}, nil
}
