package dto

// StartQuizRequest is the request body for creating a quiz session.
type StartQuizRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

// StartQuizResponse describes a freshly created quiz session. QuestionCount
// may be lower than the requested number when the model under-delivers.
type StartQuizResponse struct {
	SessionID     string `json:"session_id"`
	Topic         string `json:"topic"`
	QuestionCount int    `json:"question_count"`
}

// QuestionResponse is the current question as presented to the client.
// The correct answer and explanation are withheld until submission.
type QuestionResponse struct {
	Number   int      `json:"number"` // 1-based
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Finished bool     `json:"finished"`
}

// SubmitAnswerRequest is the request body for answering the current question.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// SubmitAnswerResponse is the feedback for a submitted answer.
type SubmitAnswerResponse struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
	Finished    bool   `json:"finished"`
}

// ProgressResponse reports quiz progress based on answered questions.
type ProgressResponse struct {
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
}

// ScoreSummaryResponse is the final (or running) score summary. Incorrect is
// total minus correct, so abandoned questions count against the score.
type ScoreSummaryResponse struct {
	Total      int `json:"total"`
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Percentage int `json:"percentage"`
}
