package quizgen

import (
	"encoding/json"

	"quizmaster/internal/domain"

	"go.uber.org/zap"
)

// rawQuestion mirrors domain.QuestionRecord for parsing model output.
// Explanation is a pointer so a record that omits the field entirely can be
// told apart from one carrying an empty explanation; only the former is
// rejected.
type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   *string  `json:"explanation"`
}

// parseQuestions parses a repaired JSON array into validated question
// records. Records beyond count are discarded; records failing validation
// are dropped with a diagnostic. Parse failure yields nil, never an error:
// model output is untrusted and content problems are normal outcomes.
func parseQuestions(jsonStr string, count int, log *zap.Logger) []domain.QuestionRecord {
	var parsed []rawQuestion
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		log.Error("Failed to unmarshal JSON array from model output",
			zap.Error(err),
			zap.String("json_string", jsonStr))
		return nil
	}

	if len(parsed) != count {
		log.Warn("Model returned a different number of questions than requested",
			zap.Int("requested", count),
			zap.Int("returned", len(parsed)))
		if len(parsed) > count {
			parsed = parsed[:count]
		}
	}

	validated := make([]domain.QuestionRecord, 0, len(parsed))
	for i, raw := range parsed {
		if raw.Explanation == nil {
			log.Warn("Dropping question missing explanation field", zap.Int("index", i))
			continue
		}
		record := domain.QuestionRecord{
			Question:      raw.Question,
			Options:       raw.Options,
			CorrectAnswer: raw.CorrectAnswer,
			Explanation:   *raw.Explanation,
		}
		if err := record.Validate(); err != nil {
			log.Warn("Dropping invalid question record",
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		validated = append(validated, record)
	}

	return validated
}
