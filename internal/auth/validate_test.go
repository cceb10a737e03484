// ABOUTME: Tests for login and registration input validation
// ABOUTME: Table-driven checks of each field rule

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markalston/portfolio-admin/internal/models"
)

func TestValidateLogin(t *testing.T) {
	assert.Empty(t, ValidateLogin("alice", "x"))

	errs := ValidateLogin("   ", "")
	assert.Equal(t, "Username or email is required", errs["usernameOrEmail"])
	assert.Equal(t, "Password is required", errs["password"])
}

func validRegister() models.RegisterRequest {
	return models.RegisterRequest{
		Username:  "alice.l",
		Email:     "alice@example.com",
		Password:  "Secr3t!x",
		FirstName: "Alice",
		LastName:  "Liddell",
	}
}

func TestValidateRegister_Valid(t *testing.T) {
	assert.Empty(t, ValidateRegister(validRegister()))
}

func TestValidateRegister_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		field  string
		want   string
	}{
		{"empty username", func(r *models.RegisterRequest) { r.Username = " " }, "username", "Username is required"},
		{"short username", func(r *models.RegisterRequest) { r.Username = "al" }, "username", "Username must be at least 3 characters"},
		{"username charset", func(r *models.RegisterRequest) { r.Username = "al ice" }, "username", "Username can only contain letters, numbers, dots, underscores and hyphens"},
		{"empty email", func(r *models.RegisterRequest) { r.Email = "" }, "email", "Email is required"},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "alice@example" }, "email", "Email is invalid"},
		{"empty password", func(r *models.RegisterRequest) { r.Password = "" }, "password", "Password is required"},
		{"short password", func(r *models.RegisterRequest) { r.Password = "Ab1!" }, "password", "Password must be at least 8 characters"},
		{"no special", func(r *models.RegisterRequest) { r.Password = "Secr3tXx" }, "password", "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character"},
		{"no upper", func(r *models.RegisterRequest) { r.Password = "secr3t!x" }, "password", "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character"},
		{"disallowed char", func(r *models.RegisterRequest) { r.Password = "Secr3t!x#" }, "password", "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character"},
		{"first name", func(r *models.RegisterRequest) { r.FirstName = "" }, "firstName", "First name is required"},
		{"last name", func(r *models.RegisterRequest) { r.LastName = "  " }, "lastName", "Last name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)
			errs := ValidateRegister(req)
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.want, errs[tt.field])
		})
	}
}
