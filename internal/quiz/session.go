package quiz

// Phase is the state of the current question.
type Phase int

const (
	// PhaseAwaitingAnswer waits for the student to pick an option.
	PhaseAwaitingAnswer Phase = iota
	// PhaseExplaining shows feedback and the explanation.
	PhaseExplaining
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseExplaining:
		return "explaining"
	default:
		return "unknown"
	}
}

// Status is the state of the whole quiz.
type Status int

const (
	StatusInProgress Status = iota
	StatusFinished
)

func (s Status) String() string {
	if s == StatusFinished {
		return "finished"
	}
	return "in-progress"
}

// Session walks a student through one quiz, one question at a time.
// Each question is answered once; the score counts correct first picks.
type Session struct {
	questions []Question
	index     int
	selected  int // -1 until an option is picked
	score     int
	phase     Phase
	status    Status
}

// NewSession starts a quiz at the first question.
func NewSession(questions []Question) *Session {
	s := &Session{questions: questions}
	s.Restart()
	return s
}

// Restart resets the quiz to the first question with a zero score.
// The questions are kept.
func (s *Session) Restart() {
	s.index = 0
	s.selected = -1
	s.score = 0
	s.phase = PhaseAwaitingAnswer
	s.status = StatusInProgress
	if len(s.questions) == 0 {
		s.status = StatusFinished
	}
}

// Select picks an option for the current question. It reports whether
// the pick was accepted and whether it was correct. Picks after the
// first, out-of-range picks and picks on a finished quiz are ignored.
func (s *Session) Select(option int) (accepted, correct bool) {
	if s.status == StatusFinished || s.phase != PhaseAwaitingAnswer {
		return false, false
	}
	q := s.questions[s.index]
	if option < 0 || option >= len(q.Options) {
		return false, false
	}

	s.selected = option
	s.phase = PhaseExplaining
	correct = q.IsCorrect(option)
	if correct {
		s.score++
	}
	return true, correct
}

// Continue moves past the explanation to the next question, or finishes
// the quiz after the last one. It returns false outside PhaseExplaining.
func (s *Session) Continue() bool {
	if s.status == StatusFinished || s.phase != PhaseExplaining {
		return false
	}
	if s.index == len(s.questions)-1 {
		s.status = StatusFinished
		return true
	}
	s.index++
	s.selected = -1
	s.phase = PhaseAwaitingAnswer
	return true
}

// Current returns the question on screen. ok is false once finished.
func (s *Session) Current() (q Question, ok bool) {
	if s.status == StatusFinished {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Selected returns the picked option for the current question.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

func (s *Session) Index() int           { return s.index }
func (s *Session) Len() int             { return len(s.questions) }
func (s *Session) Score() int           { return s.score }
func (s *Session) Phase() Phase         { return s.phase }
func (s *Session) Status() Status       { return s.status }
func (s *Session) Finished() bool       { return s.status == StatusFinished }
func (s *Session) Questions() []Question { return s.questions }

// Percent is the score as a whole percentage of the question count.
func (s *Session) Percent() int {
	if len(s.questions) == 0 {
		return 0
	}
	return s.score * 100 / len(s.questions)
}
