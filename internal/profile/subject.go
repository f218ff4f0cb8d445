package profile

import (
	"fmt"
	"strings"
)

// Subject is a school subject the tutor can teach.
type Subject string

const (
	Mathematics   Subject = "Mathematics"
	Science       Subject = "Science"
	SocialScience Subject = "Social Science"
	English       Subject = "English"
	Hindi         Subject = "Hindi"
)

// Subjects returns all subjects in display order.
func Subjects() []Subject {
	return []Subject{Mathematics, Science, SocialScience, English, Hindi}
}

// QuizSubjects are the subjects offered by the quiz picker.
func QuizSubjects() []Subject {
	return []Subject{Mathematics, Science, SocialScience}
}

// ParseSubject matches case-insensitively; "maths" and "social" are
// accepted as short forms.
func ParseSubject(s string) (Subject, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "maths", "math":
		return Mathematics, nil
	case "social":
		return SocialScience, nil
	}
	for _, sub := range Subjects() {
		if strings.EqualFold(s, string(sub)) {
			return sub, nil
		}
	}
	return "", fmt.Errorf("%w: unknown subject %q", ErrInvalidProfile, s)
}

// Next cycles to the following subject, wrapping around.
func (s Subject) Next() Subject {
	all := Subjects()
	for i, sub := range all {
		if sub == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Chapters is the number of chapters in the subject's textbook.
func (s Subject) Chapters() int {
	switch s {
	case Mathematics:
		return 15
	case Science:
		return 18
	case SocialScience:
		return 22
	case English:
		return 12
	case Hindi:
		return 10
	}
	return 0
}

// Icon is a one-glyph marker used by the dashboard and chat header.
func (s Subject) Icon() string {
	switch s {
	case Mathematics:
		return "∑"
	case Science:
		return "⚗"
	case SocialScience:
		return "🌍"
	case English:
		return "✎"
	case Hindi:
		return "अ"
	}
	return "•"
}
