package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/metrics"
)

// Service is the AI tutoring proxy
type Service interface {
	// Chat continues the user's conversation. contextText is appended to the system instruction.
	Chat(ctx context.Context, userID, message, contextText string) (*domain.ChatReply, error)
	ExplainCode(ctx context.Context, code, language string) (*domain.ChatReply, error)
	Hint(ctx context.Context, title, description, difficulty string) (*domain.ChatReply, error)
	Debug(ctx context.Context, code, errorMessage, language string) (*domain.ChatReply, error)
	LearnConcept(ctx context.Context, concept, level string) (*domain.ChatReply, error)
	History(userID string) []domain.ChatMessage
	ClearHistory(ctx context.Context, userID string)
	Available() bool
}

type service struct {
	generator Generator
	histories *HistoryStore
	clock     clock.Clock
	timeout   time.Duration
}

// NewService creates the assistant. A nil generator makes every generating call
// fail with ErrAssistantUnavailable.
func NewService(generator Generator, histories *HistoryStore, clk clock.Clock) Service {
	if histories == nil {
		histories = NewHistoryStore(DefaultHistoryUsers, DefaultHistoryLimit)
	}
	return &service{
		generator: generator,
		histories: histories,
		clock:     clk,
		timeout:   DefaultTimeout,
	}
}

func (s *service) Available() bool {
	return s.generator != nil
}

func (s *service) Chat(ctx context.Context, userID, message, contextText string) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" || len(message) > MaxMessageLength {
		return nil, fmt.Errorf("%w: message must be 1-%d characters", domain.ErrInvalidInput, MaxMessageLength)
	}

	system := baseInstruction
	if ctxText := strings.TrimSpace(contextText); ctxText != "" {
		system += "\n\nContext about the learner's current work:\n" + ctxText
	}

	history := s.histories.Get(userID)
	reply, err := s.generate(ctx, OpChat, Request{
		System:  system,
		History: history.Messages(),
		Prompt:  message,
	})
	if err != nil {
		return nil, err
	}

	history.Append(
		domain.ChatMessage{Role: domain.ChatRoleUser, Content: message, Timestamp: reply.Timestamp},
		domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply.Response, Timestamp: reply.Timestamp},
	)
	return reply, nil
}

func (s *service) ExplainCode(ctx context.Context, code, language string) (*domain.ChatReply, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	language = normalizeLanguage(language)
	prompt := fmt.Sprintf(explainTemplate, language, language, code)
	return s.generate(ctx, OpExplainCode, Request{System: baseInstruction, Prompt: prompt})
}

func (s *service) Hint(ctx context.Context, title, description, difficulty string) (*domain.ChatReply, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: challenge title is required", domain.ErrInvalidInput)
	}
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}
	guidance, ok := hintGuidance[difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, difficulty)
	}
	prompt := fmt.Sprintf(hintTemplate, difficulty, title, description, guidance)
	return s.generate(ctx, OpHint, Request{System: baseInstruction, Prompt: prompt})
}

func (s *service) Debug(ctx context.Context, code, errorMessage, language string) (*domain.ChatReply, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	errorMessage = strings.TrimSpace(errorMessage)
	if errorMessage == "" {
		return nil, fmt.Errorf("%w: error message is required", domain.ErrInvalidInput)
	}
	language = normalizeLanguage(language)
	prompt := fmt.Sprintf(debugTemplate, language, errorMessage, language, code)
	return s.generate(ctx, OpDebug, Request{System: baseInstruction, Prompt: prompt})
}

func (s *service) LearnConcept(ctx context.Context, concept, level string) (*domain.ChatReply, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" || len(concept) > MaxMessageLength {
		return nil, fmt.Errorf("%w: concept is required", domain.ErrInvalidInput)
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = domain.DifficultyBeginner
	}
	if _, ok := hintGuidance[level]; !ok {
		return nil, fmt.Errorf("%w: unknown level %q", domain.ErrInvalidInput, level)
	}
	prompt := fmt.Sprintf(conceptTemplate, concept, level)
	return s.generate(ctx, OpLearnConcept, Request{System: baseInstruction, Prompt: prompt})
}

func (s *service) History(userID string) []domain.ChatMessage {
	return s.histories.Get(userID).Messages()
}

func (s *service) ClearHistory(ctx context.Context, userID string) {
	s.histories.Clear(userID)
	logger.FromContext(ctx).Debug(LogMsgHistoryCleared, "user_id", userID)
}

func (s *service) generate(ctx context.Context, op string, req Request) (*domain.ChatReply, error) {
	if s.generator == nil {
		metrics.AssistantRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		return nil, domain.ErrAssistantUnavailable
	}
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.generator.Generate(ctx, req)
	metrics.AssistantLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssistantRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		log.Warn(LogMsgGenerateFailed, "operation", op, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}
	metrics.AssistantRequests.WithLabelValues(op, metrics.OutcomeSuccess).Inc()
	log.Debug(LogMsgGenerated, "operation", op, "model", resp.Model, "tokens", resp.TokensUsed)

	return &domain.ChatReply{
		Response:   resp.Text,
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
		Timestamp:  s.clock.Now(),
	}, nil
}

func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	if len(code) > MaxCodeLength {
		return fmt.Errorf("%w: code exceeds %d bytes", domain.ErrInvalidInput, MaxCodeLength)
	}
	return nil
}

func normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return "python"
	}
	return language
}

// hintGuidance tunes how much a hint gives away per difficulty
var hintGuidance = map[string]string{
	domain.DifficultyBeginner:     "Suggest the basic approach and which language features to look at.",
	domain.DifficultyIntermediate: "Name the kind of algorithm or data structure that fits, without code.",
	domain.DifficultyAdvanced:     "Point at the optimization or edge case that matters most.",
}
