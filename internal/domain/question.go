package domain

// OptionsPerQuestion is the number of answer options every quiz item carries.
const OptionsPerQuestion = 4

// QuestionRecord represents one validated multiple-choice quiz item.
// The JSON tags match the wire contract the LLM is asked to produce.
type QuestionRecord struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Validate validates the question record. A record failing any of these
// checks must never be admitted into a quiz session.
func (q *QuestionRecord) Validate() error {
	if q.Question == "" {
		return NewValidationError("question is required")
	}
	if len(q.Options) != OptionsPerQuestion {
		return NewValidationError("exactly 4 options are required")
	}
	seen := make(map[string]bool, OptionsPerQuestion)
	for _, opt := range q.Options {
		if opt == "" {
			return NewValidationError("options must be non-empty")
		}
		if seen[opt] {
			return NewValidationError("options must be distinct")
		}
		seen[opt] = true
	}
	if !seen[q.CorrectAnswer] {
		return NewValidationError("correct answer must be one of the options")
	}
	return nil
}

// AnswerEntry records one submitted answer. Fields are copied from the
// QuestionRecord at submission time so later mutation of the source record
// cannot change the log. Entries are append-only and never mutated.
type AnswerEntry struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	ChosenAnswer  string   `json:"chosen_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Explanation   string   `json:"explanation"`
}
