package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guruai/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that hold work or devices which must
// be released when the screen leaves the stack. The router calls Close
// on pop and replace.
type Closer interface {
	Close()
}

// BackInterceptor is implemented by screens that use Esc themselves in
// some states, such as closing an overlay. While InterceptsBack is true
// the app forwards Esc to the screen instead of popping it.
type BackInterceptor interface {
	InterceptsBack() bool
}
