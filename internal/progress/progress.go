// Package progress serves the student's progress summary. There is no
// tracking yet; the numbers are a fixed sample.
package progress

import "github.com/abhisek/guruai/internal/profile"

// MasteryScale is the full mark for a subject's mastery score.
const MasteryScale = 150

// DayScore is one day of the weekly chart.
type DayScore struct {
	Day   string `json:"day"`
	Score int    `json:"score"`
}

// Mastery is a subject's score out of MasteryScale.
type Mastery struct {
	Subject profile.Subject `json:"subject"`
	Score   int             `json:"score"`
}

// Percent returns the score as a whole percentage of MasteryScale.
func (m Mastery) Percent() int {
	return m.Score * 100 / MasteryScale
}

// Summary is everything the progress screen shows.
type Summary struct {
	StreakDays        int        `json:"streakDays"`
	QuestionsAnswered int        `json:"questionsAnswered"`
	AccuracyPercent   int        `json:"accuracyPercent"`
	SyllabusPercent   int        `json:"syllabusPercent"`
	Weekly            []DayScore `json:"weekly"`
	Mastery           []Mastery  `json:"mastery"`
}

// Sample returns the canned summary. Each call returns a fresh copy.
func Sample() Summary {
	return Summary{
		StreakDays:        12,
		QuestionsAnswered: 248,
		AccuracyPercent:   82,
		SyllabusPercent:   15,
		Weekly: []DayScore{
			{"Mon", 65}, {"Tue", 72}, {"Wed", 85}, {"Thu", 78},
			{"Fri", 90}, {"Sat", 95}, {"Sun", 88},
		},
		Mastery: []Mastery{
			{profile.Mathematics, 120},
			{profile.Science, 98},
			{profile.SocialScience, 86},
			{profile.English, 99},
			{profile.Hindi, 85},
		},
	}
}

// Best returns the highest weekly score.
func (s Summary) Best() DayScore {
	var best DayScore
	for _, d := range s.Weekly {
		if d.Score > best.Score {
			best = d
		}
	}
	return best
}

// WeeklyAverage returns the mean weekly score, rounded down.
func (s Summary) WeeklyAverage() int {
	if len(s.Weekly) == 0 {
		return 0
	}
	total := 0
	for _, d := range s.Weekly {
		total += d.Score
	}
	return total / len(s.Weekly)
}

// Strongest returns the subject with the highest mastery.
func (s Summary) Strongest() (Mastery, bool) {
	if len(s.Mastery) == 0 {
		return Mastery{}, false
	}
	best := s.Mastery[0]
	for _, m := range s.Mastery[1:] {
		if m.Score > best.Score {
			best = m
		}
	}
	return best, true
}
