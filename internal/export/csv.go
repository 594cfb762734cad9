package export

import (
	"bytes"
	"encoding/csv"

	"quizmaster/internal/domain"
)

// WriteCSV serializes the answer log as a CSV byte stream: a header row
// followed by one row per answer entry.
func WriteCSV(answers []domain.AnswerEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(tableHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(ToTable(answers)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
