package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"quizmaster/internal/domain"

	"go.uber.org/zap"
)

// jsonArrayPattern finds the first plausible JSON array of objects in raw
// model output. Models routinely wrap the payload in prose or markdown
// fences, so this stays deliberately permissive; anything it captures still
// has to survive parsing and per-record validation.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*(?:,\s*\{.*\}\s*)*\]`)

// trailingCommaPattern matches the one trivial malformation worth repairing
// before parsing: a dangling comma before the closing bracket.
var trailingCommaPattern = regexp.MustCompile(`,\s*\]`)

// exampleQuestions anchor the output format in the prompt. At most
// min(count, len(exampleQuestions)) of them are embedded per request.
var exampleQuestions = []domain.QuestionRecord{
	{
		Question:      "What is the capital of France?",
		Options:       []string{"London", "Paris", "Rome", "Berlin"},
		CorrectAnswer: "Paris",
		Explanation:   "Paris is the largest city and capital of France, known for its art, fashion, and culture.",
	},
	{
		Question:      "Which planet is known as the Red Planet?",
		Options:       []string{"Earth", "Mars", "Jupiter", "Venus"},
		CorrectAnswer: "Mars",
		Explanation:   "Mars is often called the Red Planet due to its reddish appearance, caused by iron oxide on its surface.",
	},
	{
		Question:      "Who painted the Mona Lisa?",
		Options:       []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Claude Monet"},
		CorrectAnswer: "Leonardo da Vinci",
		Explanation:   "Leonardo da Vinci was an Italian polymath, who created the Mona Lisa, one of the most famous paintings in the world.",
	},
	{
		Question:      "What is the largest ocean on Earth?",
		Options:       []string{"Atlantic Ocean", "Indian Ocean", "Arctic Ocean", "Pacific Ocean"},
		CorrectAnswer: "Pacific Ocean",
		Explanation:   "The Pacific Ocean is the largest and deepest of Earth's oceanic divisions, covering about a third of the surface.",
	},
	{
		Question:      "Which of these is a primate?",
		Options:       []string{"Bear", "Elephant", "Monkey", "Kangaroo"},
		CorrectAnswer: "Monkey",
		Explanation:   "Monkeys are a diverse group of primates, typically having tails and living in trees or on the ground.",
	},
}

// GeminiQuestionProvider implements domain.QuestionProvider on top of a
// domain.TextCompleter. It owns prompt construction and the
// extract/repair/parse/validate pipeline over the raw model text.
type GeminiQuestionProvider struct {
	completer domain.TextCompleter
	logger    *zap.Logger
}

// NewGeminiQuestionProvider creates a new provider instance.
func NewGeminiQuestionProvider(completer domain.TextCompleter, logger *zap.Logger) (domain.QuestionProvider, error) {
	if completer == nil {
		return nil, fmt.Errorf("text completer cannot be nil")
	}
	return &GeminiQuestionProvider{
		completer: completer,
		logger:    logger,
	}, nil
}

// Generate invokes the model once and returns whatever validated records
// survive the pipeline, in parse order. It returns a non-nil error for
// nothing: model failures, missing JSON, unparseable JSON and dropped
// records all degrade to a shorter (possibly empty) result with diagnostics
// logged. Retrying is the caller's decision.
func (p *GeminiQuestionProvider) Generate(ctx context.Context, topic string, count int) ([]domain.QuestionRecord, error) {
	prompt := buildPrompt(topic, count)

	raw, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		p.logger.Error("LLM completion failed",
			zap.Error(err),
			zap.String("topic", topic),
			zap.Int("count", count))
		return nil, nil
	}

	p.logger.Debug("Raw LLM response received", zap.String("raw_response", raw))

	arr := jsonArrayPattern.FindString(raw)
	if arr == "" {
		p.logger.Error("No valid JSON array found in LLM response",
			zap.String("topic", topic),
			zap.String("raw_response", raw))
		return nil, nil
	}

	arr = trailingCommaPattern.ReplaceAllString(arr, "]")

	records := parseQuestions(arr, count, p.logger)
	p.logger.Info("Question generation finished",
		zap.String("topic", topic),
		zap.Int("requested", count),
		zap.Int("validated", len(records)))
	return records, nil
}

// buildPrompt renders the generation instruction with the format-anchoring
// examples embedded as an indented JSON array.
func buildPrompt(topic string, count int) string {
	n := count
	if n > len(exampleQuestions) {
		n = len(exampleQuestions)
	}
	examplesJSON, err := json.MarshalIndent(exampleQuestions[:n], "", "    ")
	if err != nil {
		// Static data; cannot fail in practice.
		examplesJSON = []byte("[]")
	}

	return fmt.Sprintf(`Generate exactly %d multiple-choice questions about "%s".
Each question should have 4 options and clearly indicate the correct answer.
Also, provide a concise explanation for the correct answer.

Make sure the questions are:
- Relevant to the topic "%s"
- Vary in difficulty (mix of easy, medium, and challenging)
- Clear and unambiguous
- Have only one correct answer among the 4 options

Format the output exclusively as a JSON array of objects, like this example:
%s

IMPORTANT:
- Generate exactly %d questions
- DO NOT include any conversational text or markdown formatting outside the JSON itself
- Ensure the JSON is valid and properly formatted
- Each question must be unique and relevant to "%s"`,
		count, topic, topic, examplesJSON, count, topic)
}

var _ domain.QuestionProvider = (*GeminiQuestionProvider)(nil)
