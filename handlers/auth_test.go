package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehq/orgdir/services"
)

func newAuthRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	authService := services.NewAuthService(conn, services.NewJWTService("test-secret", time.Hour))
	h := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r, mock
}

func TestRegisterEndpoint_Created(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("j@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO organisations").
		WithArgs(sqlmock.AnyArg(), "John's Organisation", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO memberships").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := `{"firstName":"John","lastName":"Doe","email":"j@x.com","password":"p","phone":"1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AccessToken string `json:"accessToken"`
			User        struct {
				UserID    string `json:"userId"`
				FirstName string `json:"firstName"`
				Email     string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Registration successful", resp.Message)
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Equal(t, "John", resp.Data.User.FirstName)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("j@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	body := `{"firstName":"John","lastName":"Doe","email":"j@x.com","password":"p","phone":"1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors []services.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)
	assert.Equal(t, "user with this email already exists.", resp.Errors[0].Message)
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors []services.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 5)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("SELECT id, first_name").
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "first_name", "last_name", "email", "phone",
			"password_hash", "is_active", "is_staff", "created_at", "updated_at",
		}))

	body := `{"email":"ghost@x.com","password":"p"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication failed")
}

// A login request missing a field gets the same response as a
// credential mismatch.
func TestLoginEndpoint_MissingFieldSameShape(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"j@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication failed")
}
