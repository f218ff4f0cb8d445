package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guruai/internal/ui/theme"
)

// Button is one entry in a ButtonRow.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal set of buttons navigated with left/right.
type ButtonRow struct {
	Buttons []Button
	Active  int
}

// NewButtonRow creates a row with the first button active.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles key events.
func (b ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(b.Buttons) == 0 {
		return b, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if b.Active > 0 {
			b.Active--
		}
	case "right", "l", "tab":
		if b.Active < len(b.Buttons)-1 {
			b.Active++
		}
	case "enter":
		if btn := b.Buttons[b.Active]; btn.OnPress != nil {
			return b, btn.OnPress()
		}
	}
	return b, nil
}

// View renders the row.
func (b ButtonRow) View() string {
	parts := make([]string, len(b.Buttons))
	for i, btn := range b.Buttons {
		if i == b.Active {
			parts[i] = theme.ButtonActive.Render("▸ " + btn.Label)
		} else {
			parts[i] = theme.ButtonInactive.Render(btn.Label)
		}
	}
	return strings.Join(parts, "  ")
}
