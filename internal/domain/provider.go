package domain

import "context"

// TextCompleter is the single capability the question provider needs from a
// generative model backend: one prompt in, raw text out. The call blocks
// until the model responds or the backend's own timeout fires.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// QuestionProvider produces validated question records for a topic.
//
// Generate makes exactly one model invocation per call. It may return fewer
// records than requested, or none at all: model errors, unparseable output
// and per-record validation failures are logged and swallowed, never raised.
// Callers must treat a short or empty result as a normal outcome and decide
// whether to retry; the provider itself contains no retry logic.
type QuestionProvider interface {
	Generate(ctx context.Context, topic string, count int) ([]QuestionRecord, error)
}
