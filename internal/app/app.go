// Package app is the root Bubble Tea model. It owns the student profile
// and the screen stack: splash, then the profile gate, then the
// dashboard and the screens it opens.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/guruai/internal/camera"
	"github.com/abhisek/guruai/internal/profile"
	"github.com/abhisek/guruai/internal/progress"
	qz "github.com/abhisek/guruai/internal/quiz"
	"github.com/abhisek/guruai/internal/router"
	"github.com/abhisek/guruai/internal/screen"
	"github.com/abhisek/guruai/internal/screens/chat"
	"github.com/abhisek/guruai/internal/screens/home"
	"github.com/abhisek/guruai/internal/screens/login"
	progressscreen "github.com/abhisek/guruai/internal/screens/progress"
	quizscreen "github.com/abhisek/guruai/internal/screens/quiz"
	"github.com/abhisek/guruai/internal/screens/welcome"
	"github.com/abhisek/guruai/internal/tutor"
	"github.com/abhisek/guruai/internal/ui/layout"
)

// Options wires the orchestrators into the UI.
type Options struct {
	Tutor  *tutor.Tutor
	Solver *tutor.Solver
	Quiz   qz.Generator
	Camera camera.Device
	Logger *zap.Logger

	// Profile skips the profile gate when set.
	Profile *profile.Profile

	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx     context.Context
	opts    Options
	router  *router.Router
	profile *profile.Profile
	width   int
	height  int
}

// newAppModel creates the model and its first screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := AppModel{ctx: ctx, opts: opts}

	var first screen.Screen
	if opts.Profile != nil {
		p := *opts.Profile
		m.profile = &p
		first = m.homeScreen()
	} else {
		first = m.loginScreen()
	}

	if !opts.SkipSplash {
		next := first
		first = welcome.New(func() screen.Screen { return next })
	}
	m.router = router.New(first)
	return m
}

func (m AppModel) loginScreen() screen.Screen {
	return login.New(profile.Profile{})
}

func (m AppModel) homeScreen() screen.Screen {
	p := *m.profile
	screens := home.Screens{
		Progress: func() screen.Screen {
			return progressscreen.New(p, progress.Sample())
		},
	}
	if m.opts.Tutor != nil {
		screens.Chat = func(subject profile.Subject) screen.Screen {
			return chat.New(m.ctx, chat.Deps{
				Tutor:  m.opts.Tutor,
				Solver: m.opts.Solver,
				Camera: m.opts.Camera,
				Logger: m.opts.Logger,
			}, p, subject)
		}
	}
	if m.opts.Quiz != nil {
		screens.Quiz = func() screen.Screen {
			return quizscreen.New(m.ctx, qz.NewController(m.opts.Quiz, m.opts.Logger), p)
		}
	}
	return home.New(p, screens)
}

// Profile returns the signed-in student, or nil before login.
func (m AppModel) Profile() *profile.Profile {
	return m.profile
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case login.DoneMsg:
		p := msg.Profile
		m.profile = &p
		m.opts.Logger.Info("student signed in",
			zap.String("grade", string(p.Grade)),
			zap.String("board", string(p.Board)),
		)
		return m, m.router.Reset(m.homeScreen())

	case home.LogoutMsg:
		m.profile = nil
		m.opts.Logger.Info("student signed out")
		return m, m.router.Reset(m.loginScreen())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.Close()
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	account := ""
	if m.profile != nil {
		account = m.profile.String()
	}
	header := layout.RenderHeader(title, account, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.router.Close()
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
