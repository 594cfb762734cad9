package quizgen_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"quizmaster/internal/adapter/quizgen"
	"quizmaster/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCompleter mocks domain.TextCompleter.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newProvider(t *testing.T, completer domain.TextCompleter) domain.QuestionProvider {
	t.Helper()
	provider, err := quizgen.NewGeminiQuestionProvider(completer, zap.NewNop())
	require.NoError(t, err)
	return provider
}

func TestNewGeminiQuestionProvider_NilCompleter(t *testing.T) {
	_, err := quizgen.NewGeminiQuestionProvider(nil, zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "completer cannot be nil")
}

func TestGenerate_ValidSingleQuestion(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"question":"Q","options":["A","B","C","D"],"correct_answer":"B","explanation":"E"}]`, nil)

	provider := newProvider(t, completer)
	records, err := provider.Generate(context.Background(), "Testing", 1)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Q", records[0].Question)
	assert.Equal(t, []string{"A", "B", "C", "D"}, records[0].Options)
	assert.Equal(t, "B", records[0].CorrectAnswer)
	assert.Equal(t, "E", records[0].Explanation)
}

func TestGenerate_RepairsTrailingComma(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"question":"Q","options":["A","B","C","D"],"correct_answer":"A","explanation":"E"},]`, nil)

	provider := newProvider(t, completer)
	records, err := provider.Generate(context.Background(), "Testing", 1)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].CorrectAnswer)
}

func TestGenerate_ToleratesMarkdownFences(t *testing.T) {
	raw := "Sure! Here is your quiz:\n```json\n" +
		`[{"question":"Q","options":["A","B","C","D"],"correct_answer":"C","explanation":"E"}]` +
		"\n```\nLet me know if you need more."
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(raw, nil)

	provider := newProvider(t, completer)
	records, err := provider.Generate(context.Background(), "Testing", 1)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "C", records[0].CorrectAnswer)
}

func TestGenerate_DropsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "correct answer missing",
			raw:  `[{"question":"Q","options":["A","B","C","D"],"explanation":"E"}]`,
		},
		{
			name: "correct answer not among options",
			raw:  `[{"question":"Q","options":["A","B","C","D"],"correct_answer":"X","explanation":"E"}]`,
		},
		{
			name: "correct answer differs by case",
			raw:  `[{"question":"Q","options":["A","B","C","D"],"correct_answer":"a","explanation":"E"}]`,
		},
		{
			name: "wrong option count",
			raw:  `[{"question":"Q","options":["A","B","C"],"correct_answer":"A","explanation":"E"}]`,
		},
		{
			name: "duplicate options",
			raw:  `[{"question":"Q","options":["A","A","C","D"],"correct_answer":"A","explanation":"E"}]`,
		},
		{
			name: "explanation field absent",
			raw:  `[{"question":"Q","options":["A","B","C","D"],"correct_answer":"A"}]`,
		},
		{
			name: "empty question",
			raw:  `[{"question":"","options":["A","B","C","D"],"correct_answer":"A","explanation":"E"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := new(MockCompleter)
			completer.On("Complete", mock.Anything, mock.Anything).Return(tt.raw, nil)

			provider := newProvider(t, completer)
			records, err := provider.Generate(context.Background(), "Testing", 1)

			assert.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestGenerate_KeepsEmptyExplanation(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"question":"Q","options":["A","B","C","D"],"correct_answer":"D","explanation":""}]`, nil)

	provider := newProvider(t, completer)
	records, err := provider.Generate(context.Background(), "Testing", 1)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Explanation)
}

func TestGenerate_TruncatesSurplusQuestions(t *testing.T) {
	raw := `[
		{"question":"Q1","options":["A","B","C","D"],"correct_answer":"A","explanation":"E1"},
		{"question":"Q2","options":["A","B","C","D"],"correct_answer":"B","explanation":"E2"},
		{"question":"Q3","options":["A","B","C","D"],"correct_answer":"C","explanation":"E3"}
	]`
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return(raw, nil)

	provider := newProvider(t, completer)
	records, err := provider.Generate(context.Background(), "Testing", 2)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Q1", records[0].Question)
	assert.Equal(t, "Q2", records[1].Question)
}

func TestGenerate_ShortResultIsNotPadded(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"question":"Q1","options":["A","B","C","D"],"correct_answer":"A","explanation":"E1"}]`, nil)

	provider := newProvider(t, completer)
	records, err := provider.Generate(context.Background(), "Testing", 5)

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGenerate_ContentFailuresYieldEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "completer error", raw: "", err: errors.New("model unavailable")},
		{name: "no JSON array in output", raw: "I cannot help with that."},
		{name: "broken JSON beyond repair", raw: `[{"question": "Q", "options": [}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := new(MockCompleter)
			completer.On("Complete", mock.Anything, mock.Anything).Return(tt.raw, tt.err)

			provider := newProvider(t, completer)
			records, err := provider.Generate(context.Background(), "Testing", 3)

			assert.NoError(t, err, "content failures must not surface as errors")
			assert.Empty(t, records)
		})
	}
}

func TestGenerate_PromptMentionsTopicCountAndExamples(t *testing.T) {
	var captured string
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		captured = prompt
		return true
	})).Return("[]", nil)

	provider := newProvider(t, completer)
	_, err := provider.Generate(context.Background(), "Renaissance Art", 7)
	require.NoError(t, err)

	assert.Contains(t, captured, `"Renaissance Art"`)
	assert.Contains(t, captured, fmt.Sprintf("Generate exactly %d multiple-choice questions", 7))
	assert.Contains(t, captured, `"correct_answer"`)
	// Example block is capped at the five canonical records even for large counts.
	assert.Contains(t, captured, "What is the capital of France?")
	assert.Contains(t, captured, "Which of these is a primate?")
}
