// ABOUTME: Forwards API client notifications and navigation intents into the program
// ABOUTME: Messages arriving before the program starts are dropped

package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/portfolio-admin/internal/client"
)

// NotifyMsg carries a user-facing failure message from the API client
type NotifyMsg struct {
	Text string
}

// NavigateMsg carries a navigation intent from the API client
type NavigateMsg struct {
	Intent client.Intent
}

// Bridge implements client.Notifier and client.Navigator for the dashboard.
// Printing to the terminal would corrupt the alternate screen, so both
// arrive as messages instead.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewBridge creates a bridge that is not yet attached to a program
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach routes messages to send, usually (*tea.Program).Send
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

// Error implements client.Notifier
func (b *Bridge) Error(format string, args ...interface{}) {
	b.dispatch(NotifyMsg{Text: fmt.Sprintf(format, args...)})
}

// Navigate implements client.Navigator
func (b *Bridge) Navigate(i client.Intent) {
	b.dispatch(NavigateMsg{Intent: i})
}

func (b *Bridge) dispatch(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(msg)
	}
}
