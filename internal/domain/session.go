package domain

// SessionState identifies where a QuizSession is in its lifecycle.
type SessionState string

const (
	StateEmpty      SessionState = "EMPTY"
	StateInProgress SessionState = "IN_PROGRESS"
	StateFinished   SessionState = "FINISHED"
)

// QuizSession is an in-memory state machine over a fixed ordered sequence of
// question records. It exclusively owns its questions, the current index and
// the answer log; callers interact only through the methods below.
//
// A session serves exactly one logical user and carries no internal locking.
type QuizSession struct {
	questions    []QuestionRecord
	currentIndex int
	answers      []AnswerEntry
	loaded       bool
}

// NewQuizSession creates an empty session. Call Load to begin a quiz.
func NewQuizSession() *QuizSession {
	return &QuizSession{}
}

// Load fixes the question sequence and resets all progress. Loading an empty
// sequence is legal and yields an immediately finished session with zero
// questions; callers that consider that an error must check beforehand.
func (s *QuizSession) Load(questions []QuestionRecord) {
	s.questions = make([]QuestionRecord, len(questions))
	copy(s.questions, questions)
	s.currentIndex = 0
	s.answers = nil
	s.loaded = true
}

// State reports the current lifecycle state. A session loaded with zero
// questions is Finished, not Empty.
func (s *QuizSession) State() SessionState {
	switch {
	case !s.loaded:
		return StateEmpty
	case s.IsFinished():
		return StateFinished
	default:
		return StateInProgress
	}
}

// CurrentQuestion returns the record at the current index. The second return
// value is false when the session is empty or finished.
func (s *QuizSession) CurrentQuestion() (QuestionRecord, bool) {
	if s.currentIndex < 0 || s.currentIndex >= len(s.questions) {
		return QuestionRecord{}, false
	}
	return s.questions[s.currentIndex], true
}

// SubmitAnswer compares chosen against the current question's correct answer
// using exact string equality (no trimming, no case folding), appends an
// AnswerEntry and advances the index by exactly one. This is the only
// operation that advances the session.
//
// It fails soft with ok == false when no questions are loaded or the session
// is already finished; in that case nothing is recorded.
func (s *QuizSession) SubmitAnswer(chosen string) (isCorrect bool, explanation string, ok bool) {
	current, exists := s.CurrentQuestion()
	if !exists {
		return false, "", false
	}

	isCorrect = chosen == current.CorrectAnswer

	options := make([]string, len(current.Options))
	copy(options, current.Options)
	s.answers = append(s.answers, AnswerEntry{
		Question:      current.Question,
		Options:       options,
		ChosenAnswer:  chosen,
		CorrectAnswer: current.CorrectAnswer,
		IsCorrect:     isCorrect,
		Explanation:   current.Explanation,
	})
	s.currentIndex++

	return isCorrect, current.Explanation, true
}

// IsFinished reports whether every loaded question has been answered.
func (s *QuizSession) IsFinished() bool {
	return s.currentIndex >= len(s.questions)
}

// ScoreSummary returns the question total, the number of correct answers and
// the remainder. The remainder is total minus correct, so questions never
// answered count as incorrect when a session ends early; callers that need to
// distinguish the two must reconcile against Answers themselves.
func (s *QuizSession) ScoreSummary() (total, correct, incorrect int) {
	total = len(s.questions)
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
	}
	return total, correct, total - correct
}

// Progress returns the answered fraction in [0, 1]. It is computed from the
// answer log rather than the current index: the two coincide in normal flow,
// but the log is the durable record.
func (s *QuizSession) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	p := float64(len(s.answers)) / float64(len(s.questions))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// QuestionCount returns the number of loaded questions.
func (s *QuizSession) QuestionCount() int {
	return len(s.questions)
}

// AnsweredCount returns the number of entries in the answer log.
func (s *QuizSession) AnsweredCount() int {
	return len(s.answers)
}

// Answers returns a copy of the answer log in submission order.
func (s *QuizSession) Answers() []AnswerEntry {
	out := make([]AnswerEntry, len(s.answers))
	copy(out, s.answers)
	return out
}

// Reset discards all questions, answers and progress, returning the session
// to its empty state.
func (s *QuizSession) Reset() {
	s.questions = nil
	s.currentIndex = 0
	s.answers = nil
	s.loaded = false
}
