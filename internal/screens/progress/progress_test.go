package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/guruai/internal/profile"
	pg "github.com/abhisek/guruai/internal/progress"
)

var student = profile.Profile{Name: "Kabir Shah", Grade: profile.Grade8, Board: profile.BoardICSE}

func TestProgressView(t *testing.T) {
	s := New(student, pg.Sample())
	view := s.View(100, 50)

	for _, want := range []string{
		"12 days", "248", "82%",
		"This Week", "Mon", "Sun", "Average 81 · Best Sat (95)",
		"Subject Mastery", "120/150", "86/150", "Strongest:", "Mathematics",
	} {
		assert.Contains(t, view, want)
	}
}

func TestProgressEmptySummary(t *testing.T) {
	s := New(student, pg.Summary{})
	view := s.View(80, 30)
	assert.Contains(t, view, "0 days")
	assert.NotContains(t, view, "Strongest:")
}

func TestProgressIsStatic(t *testing.T) {
	s := New(student, pg.Sample())
	next, cmd := s.Update(nil)
	assert.Same(t, s, next)
	assert.Nil(t, cmd)
	assert.Nil(t, s.Init())
	assert.Equal(t, "My Progress", s.Title())
}
