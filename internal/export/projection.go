// Package export projects a quiz answer log into export-ready shapes and
// serializes them into downloadable CSV and DOCX artifacts.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"quizmaster/internal/domain"
)

// tableHeader is the column order of the tabular projection. Every column
// maps 1:1 onto an AnswerEntry field; options are flattened for flat formats.
var tableHeader = []string{"question", "options", "chosen_answer", "correct_answer", "is_correct", "explanation"}

// optionsDelimiter flattens the options list into a single tabular field.
const optionsDelimiter = "; "

// ToTable projects the answer log into tabular rows, one per entry, in
// submission order. The header row is not included; see WriteCSV.
func ToTable(answers []domain.AnswerEntry) [][]string {
	rows := make([][]string, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, []string{
			a.Question,
			strings.Join(a.Options, optionsDelimiter),
			a.ChosenAnswer,
			a.CorrectAnswer,
			strconv.FormatBool(a.IsCorrect),
			a.Explanation,
		})
	}
	return rows
}

// DocumentSection is one question's worth of the document projection.
type DocumentSection struct {
	Heading string
	Lines   []string
}

// ToDocument projects the answer log into document sections, one per entry,
// in submission order.
func ToDocument(answers []domain.AnswerEntry) []DocumentSection {
	sections := make([]DocumentSection, 0, len(answers))
	for i, a := range answers {
		result := "Result: Incorrect"
		if a.IsCorrect {
			result = "Result: Correct"
		}
		sections = append(sections, DocumentSection{
			Heading: fmt.Sprintf("Question %d: %s", i+1, a.Question),
			Lines: []string{
				fmt.Sprintf("Options: %s", strings.Join(a.Options, ", ")),
				fmt.Sprintf("Your Answer: %s", a.ChosenAnswer),
				fmt.Sprintf("Correct Answer: %s", a.CorrectAnswer),
				result,
				fmt.Sprintf("Explanation: %s", a.Explanation),
			},
		})
	}
	return sections
}
