// Package profile defines the student's self-declared identity: display
// name, grade and board. A Profile is immutable once created.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile is returned for a blank name or an unknown grade,
// board or subject.
var ErrInvalidProfile = errors.New("invalid profile")

// Grade is the student's school standard.
type Grade string

const (
	Grade8  Grade = "8th"
	Grade9  Grade = "9th"
	Grade10 Grade = "10th"
)

// Grades returns the supported grades in ascending order.
func Grades() []Grade {
	return []Grade{Grade8, Grade9, Grade10}
}

// ParseGrade accepts "8th" or the bare number "8".
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(s)
	for _, g := range Grades() {
		if strings.EqualFold(s, string(g)) || s == strings.TrimSuffix(string(g), "th") {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown grade %q", ErrInvalidProfile, s)
}

// Board is the examination board whose curriculum is followed.
type Board string

const (
	BoardCBSE  Board = "CBSE"
	BoardICSE  Board = "ICSE"
	BoardState Board = "State Board"
)

// Boards returns the supported boards.
func Boards() []Board {
	return []Board{BoardCBSE, BoardICSE, BoardState}
}

// ParseBoard matches case-insensitively; "state" is accepted for State Board.
func ParseBoard(s string) (Board, error) {
	s = strings.TrimSpace(s)
	for _, b := range Boards() {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	if strings.EqualFold(s, "state") {
		return BoardState, nil
	}
	return "", fmt.Errorf("%w: unknown board %q", ErrInvalidProfile, s)
}

// Curriculum names the framework the board follows.
func (b Board) Curriculum() string {
	switch b {
	case BoardCBSE:
		return "NCERT"
	case BoardICSE:
		return "CISCE"
	}
	return "state board"
}

// Profile identifies the student for the session.
type Profile struct {
	Name  string
	Grade Grade
	Board Board
}

// New validates and builds a Profile. The name is trimmed.
func New(name string, grade Grade, board Board) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if _, err := ParseGrade(string(grade)); err != nil {
		return Profile{}, err
	}
	if _, err := ParseBoard(string(board)); err != nil {
		return Profile{}, err
	}
	return Profile{Name: name, Grade: grade, Board: board}, nil
}

// FirstName returns the first word of the name, used in greetings.
func (p Profile) FirstName() string {
	if f := strings.Fields(p.Name); len(f) > 0 {
		return f[0]
	}
	return p.Name
}

// String renders "Name · 9th · CBSE".
func (p Profile) String() string {
	return fmt.Sprintf("%s · %s · %s", p.Name, p.Grade, p.Board)
}
