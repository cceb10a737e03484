// ABOUTME: Navigation intents and user notifications emitted by the client
// ABOUTME: The UI layer decides how to act on them; defaults are no-ops

package client

import (
	"fmt"
	"strings"
)

// LoginRoute is the target of the intent emitted after an unrecoverable 401
const LoginRoute = "/login"

// publicPathMarkers identify endpoints that are usable without a session.
// A failed refresh on these never forces the user back to login.
var publicPathMarkers = []string{"/auth/", "/projects", "/blogs", "/skills", "/ai/"}

// IsPublicPath reports whether a request path targets a public resource
func IsPublicPath(path string) bool {
	for _, marker := range publicPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// Intent asks the UI to move to another screen
type Intent struct {
	Target string // e.g. LoginRoute
	From   string // request path that caused the intent
	Reason string
}

// Navigator receives navigation intents
type Navigator interface {
	Navigate(Intent)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(Intent)

// Navigate implements Navigator
func (f NavigatorFunc) Navigate(i Intent) { f(i) }

// Notifier receives one user-facing message per failed request
type Notifier interface {
	Error(format string, args ...interface{})
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(msg string)

// Error implements Notifier
func (f NotifierFunc) Error(format string, args ...interface{}) {
	f(fmt.Sprintf(format, args...))
}

type nopNotifier struct{}

func (nopNotifier) Error(string, ...interface{}) {}

type nopNavigator struct{}

func (nopNavigator) Navigate(Intent) {}
