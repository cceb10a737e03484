// ABOUTME: Client-side validation for login and registration input
// ABOUTME: Returns per-field messages before any request is sent

package auth

import (
	"regexp"
	"strings"

	"github.com/markalston/portfolio-admin/internal/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,}$`)
	emailPattern    = regexp.MustCompile(`\S+@\S+\.\S+`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
)

const passwordSpecials = "@$!%*?&"

// ValidateLogin checks that both credentials were provided
func ValidateLogin(usernameOrEmail, password string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(usernameOrEmail) == "" {
		errs["usernameOrEmail"] = "Username or email is required"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// ValidateRegister applies the registration rules, at most one message per field
func ValidateRegister(req models.RegisterRequest) map[string]string {
	errs := map[string]string{}

	switch {
	case strings.TrimSpace(req.Username) == "":
		errs["username"] = "Username is required"
	case len(req.Username) < 3:
		errs["username"] = "Username must be at least 3 characters"
	case !usernamePattern.MatchString(req.Username):
		errs["username"] = "Username can only contain letters, numbers, dots, underscores and hyphens"
	}

	switch {
	case strings.TrimSpace(req.Email) == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(req.Email):
		errs["email"] = "Email is invalid"
	}

	switch {
	case req.Password == "":
		errs["password"] = "Password is required"
	case len(req.Password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	case !strongPassword(req.Password):
		errs["password"] = "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character"
	}

	if strings.TrimSpace(req.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}

	return errs
}

// strongPassword needs a lower, an upper, a digit and a special character,
// drawn only from the allowed set. RE2 has no lookahead, so the classes are
// checked one by one.
func strongPassword(p string) bool {
	if !passwordCharset.MatchString(p) {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}
