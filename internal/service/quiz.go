package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"sync"

	"quizmaster/internal/cache"
	"quizmaster/internal/config"
	"quizmaster/internal/domain"
	"quizmaster/internal/dto"
	"quizmaster/internal/export"
	"quizmaster/internal/logger"
	"quizmaster/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Export is a serialized results artifact ready to be offered as a download.
type Export struct {
	Filename string
	Data     []byte
}

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	StartQuiz(ctx context.Context, topic string, numQuestions int) (*dto.StartQuizResponse, error)
	CurrentQuestion(sessionID string) (*dto.QuestionResponse, error)
	SubmitAnswer(sessionID string, chosen string) (*dto.SubmitAnswerResponse, error)
	Progress(sessionID string) (*dto.ProgressResponse, error)
	ScoreSummary(sessionID string) (*dto.ScoreSummaryResponse, error)
	ResetQuiz(sessionID string) error
	ExportCSV(sessionID string) (*Export, error)
	ExportDOCX(sessionID string) (*Export, error)
}

// quizEntry binds a session to the topic it was generated for.
type quizEntry struct {
	topic   string
	session *domain.QuizSession
}

// quizService implements QuizService. It owns the caller-side retry loop
// around the provider, the optional question-set cache and the registry of
// live sessions. Sessions themselves are single-user and unlocked; the
// registry mutex only guards the map.
type quizService struct {
	provider domain.QuestionProvider
	cache    domain.Cache // nil disables caching
	cfg      *config.Config

	mu       sync.RWMutex
	sessions map[string]*quizEntry
	sfGroup  singleflight.Group
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(provider domain.QuestionProvider, cacheAdapter domain.Cache, cfg *config.Config) QuizService {
	return &quizService{
		provider: provider,
		cache:    cacheAdapter,
		cfg:      cfg,
		sessions: make(map[string]*quizEntry),
	}
}

// StartQuiz generates questions for the topic and opens a new session over
// them. The question count actually loaded may be lower than requested.
func (s *quizService) StartQuiz(ctx context.Context, topic string, numQuestions int) (*dto.StartQuizResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.NewInvalidInputError("Topic must not be empty")
	}
	if numQuestions < 1 || numQuestions > s.cfg.Quiz.MaxQuestions {
		return nil, domain.NewInvalidInputError("Number of questions is out of range")
	}

	questions := s.obtainQuestions(ctx, topic, numQuestions)
	if len(questions) == 0 {
		return nil, domain.NewLLMServiceError("Failed to generate questions, please try a different topic", nil)
	}
	if len(questions) < numQuestions {
		logger.Get().Warn("Starting quiz with fewer questions than requested",
			zap.String("topic", topic),
			zap.Int("requested", numQuestions),
			zap.Int("generated", len(questions)))
	}

	session := domain.NewQuizSession()
	session.Load(questions)

	id := util.NewULID()
	s.mu.Lock()
	s.sessions[id] = &quizEntry{topic: topic, session: session}
	s.mu.Unlock()

	logger.Get().Info("Quiz session started",
		zap.String("session_id", id),
		zap.String("topic", topic),
		zap.Int("question_count", session.QuestionCount()))

	return &dto.StartQuizResponse{
		SessionID:     id,
		Topic:         topic,
		QuestionCount: session.QuestionCount(),
	}, nil
}

// obtainQuestions returns a validated question set for (topic, count) from
// the cache when possible, otherwise from the provider with a bounded retry
// loop. Concurrent requests for the same key share one generation.
func (s *quizService) obtainQuestions(ctx context.Context, topic string, count int) []domain.QuestionRecord {
	key := cache.GenerateCacheKey("quiz", "questions", cache.HashString(topic), strconv.Itoa(count))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var questions []domain.QuestionRecord
			if errDecode := json.Unmarshal([]byte(cached), &questions); errDecode == nil && len(questions) > 0 {
				logger.Get().Info("Question set served from cache", zap.String("topic", topic), zap.Int("count", count))
				return questions
			}
			logger.Get().Warn("Discarding undecodable cached question set", zap.String("key", key))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Error("Question cache read failed, generating instead", zap.Error(err), zap.String("key", key))
		}
	}

	result, _, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		questions := s.generateWithRetry(ctx, topic, count)
		if len(questions) > 0 && s.cache != nil {
			if payload, err := json.Marshal(questions); err == nil {
				if err := s.cache.Set(ctx, key, string(payload), s.cfg.Quiz.CacheTTL); err != nil {
					logger.Get().Error("Failed to cache question set", zap.Error(err), zap.String("key", key))
				}
			}
		}
		return questions, nil
	})

	questions, _ := result.([]domain.QuestionRecord)
	return questions
}

// generateWithRetry retries the whole generate call while the result is
// empty, up to the configured attempt bound, with no backoff. A short but
// non-empty result is accepted without retrying.
func (s *quizService) generateWithRetry(ctx context.Context, topic string, count int) []domain.QuestionRecord {
	attempts := s.cfg.Quiz.MaxGenerateAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		questions, err := s.provider.Generate(ctx, topic, count)
		if err != nil {
			logger.Get().Error("Question provider failed", zap.Error(err), zap.Int("attempt", attempt))
			continue
		}
		if len(questions) > 0 {
			return questions
		}
		logger.Get().Warn("Generation attempt produced no valid questions",
			zap.String("topic", topic),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts))
	}
	return nil
}

// CurrentQuestion returns the question at the session's cursor, with the
// correct answer and explanation withheld. A finished session yields a
// response with Finished set and no question text.
func (s *quizService) CurrentQuestion(sessionID string) (*dto.QuestionResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	question, ok := entry.session.CurrentQuestion()
	if !ok {
		return &dto.QuestionResponse{
			Total:    entry.session.QuestionCount(),
			Finished: true,
		}, nil
	}

	options := make([]string, len(question.Options))
	copy(options, question.Options)

	return &dto.QuestionResponse{
		Number:   entry.session.AnsweredCount() + 1,
		Total:    entry.session.QuestionCount(),
		Question: question.Question,
		Options:  options,
	}, nil
}

// SubmitAnswer records the answer for the current question. The session's
// soft no-op (submit before load or after finish) is surfaced as a
// QUIZ_FINISHED domain error so HTTP clients can tell it apart from real
// feedback.
func (s *quizService) SubmitAnswer(sessionID string, chosen string) (*dto.SubmitAnswerResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	isCorrect, explanation, ok := entry.session.SubmitAnswer(chosen)
	if !ok {
		return nil, domain.NewQuizFinishedError()
	}

	return &dto.SubmitAnswerResponse{
		Correct:     isCorrect,
		Explanation: explanation,
		Finished:    entry.session.IsFinished(),
	}, nil
}

// Progress reports the answered fraction of the quiz.
func (s *quizService) Progress(sessionID string) (*dto.ProgressResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.ProgressResponse{
		Answered: entry.session.AnsweredCount(),
		Total:    entry.session.QuestionCount(),
		Fraction: entry.session.Progress(),
	}, nil
}

// ScoreSummary returns the score so far. Percentage is rounded to the
// nearest integer and zero for a zero-question session.
func (s *quizService) ScoreSummary(sessionID string) (*dto.ScoreSummaryResponse, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	total, correct, incorrect := entry.session.ScoreSummary()
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return &dto.ScoreSummaryResponse{
		Total:      total,
		Correct:    correct,
		Incorrect:  incorrect,
		Percentage: percentage,
	}, nil
}

// ResetQuiz discards the session's state and removes it from the registry.
func (s *quizService) ResetQuiz(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return domain.NewSessionNotFoundError(sessionID)
	}
	entry.session.Reset()
	delete(s.sessions, sessionID)

	logger.Get().Info("Quiz session reset", zap.String("session_id", sessionID))
	return nil
}

// ExportCSV serializes the session's answer log as a CSV download.
func (s *quizService) ExportCSV(sessionID string) (*Export, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	data, err := export.WriteCSV(entry.session.Answers())
	if err != nil {
		return nil, domain.NewExportError(err)
	}
	return &Export{
		Filename: export.Filename(entry.topic, "csv"),
		Data:     data,
	}, nil
}

// ExportDOCX serializes the session's answer log as a Word-document download.
func (s *quizService) ExportDOCX(sessionID string) (*Export, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	data, err := export.WriteDOCX(export.ToDocument(entry.session.Answers()))
	if err != nil {
		return nil, domain.NewExportError(err)
	}
	return &Export{
		Filename: export.Filename(entry.topic, "docx"),
		Data:     data,
	}, nil
}

func (s *quizService) lookup(sessionID string) (*quizEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return entry, nil
}
