package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/shivampatadiya-ai-hub/nutrigenie/config"
	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/model"
	"github.com/shivampatadiya-ai-hub/nutrigenie/pkg/attachment"
	"github.com/shivampatadiya-ai-hub/nutrigenie/pkg/tokens"
)

var (
	ErrService = errors.New("ai service request failed")
)

const MessageEmptyResponse = "I'm sorry, I couldn't generate a response."

// completionClient is the slice of the OpenAI-compatible API the session
// depends on; *openai.Client satisfies it and tests inject a fake.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SessionUsecase owns one logical backend chat session: its history, the
// system instruction baked in at creation time, and the dietary preference
// the next session will be created with.
type SessionUsecase struct {
	cfg    config.Gemini
	client completionClient
	logger *slog.Logger

	mu         sync.Mutex
	preference model.DietaryPreference
	history    []openai.ChatCompletionMessage // nil until the first send
	generation int                            // bumped on reset, guards late history writes
}

func NewSessionUsecase(cfg config.Gemini, logger *slog.Logger) *SessionUsecase {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	return NewSessionUsecaseWithClient(cfg, openai.NewClientWithConfig(clientConfig), logger)
}

func NewSessionUsecaseWithClient(cfg config.Gemini, client completionClient, logger *slog.Logger) *SessionUsecase {
	return &SessionUsecase{
		cfg:        cfg,
		client:     client,
		logger:     logger,
		preference: model.PreferenceNonVegetarian,
	}
}

// SetPreference stores the preference for the next session. A session that is
// already active keeps the instruction it was created with; the change takes
// effect on the next reset.
func (s *SessionUsecase) SetPreference(preference model.DietaryPreference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preference = preference
}

func (s *SessionUsecase) Preference() model.DietaryPreference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preference
}

func (s *SessionUsecase) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil
}

// Reset discards the backend session unconditionally. In-flight requests are
// not cancelled; their late results are discarded by the generation check
// here and by the race-guard at the conversation layer.
func (s *SessionUsecase) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.generation++
}

// Send dispatches one user turn and awaits exactly one reply. The session is
// created lazily on the first send. When attachmentURI carries a well-formed
// data URI the turn is packaged as a multimodal request; a malformed URI
// degrades to a text-only send with a logged warning.
func (s *SessionUsecase) Send(ctx context.Context, text string, attachmentURI string) (string, error) {
	s.mu.Lock()
	if s.history == nil {
		s.history = []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction(s.preference),
		}}
	}
	generation := s.generation

	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text}
	if attachmentURI != "" {
		if _, _, err := attachment.ParseDataURI(attachmentURI); err != nil {
			s.logger.Warn("invalid attachment payload, sending text only", "error", err)
		} else {
			userMsg.Content = ""
			userMsg.MultiContent = []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: text},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: attachmentURI}},
			}
		}
	}

	s.history = append(s.history, userMsg)
	s.trimHistoryLocked()
	request := openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		TopP:        1,
		N:           1,
		Messages:    append([]openai.ChatCompletionMessage(nil), s.history...),
	}
	s.mu.Unlock()

	resp, err := s.client.CreateChatCompletion(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.generation == generation && len(s.history) > 1 {
			// The turn never reached the backend; drop it so a retry
			// does not duplicate it.
			s.history = s.history[:len(s.history)-1]
		}
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}

	answer := MessageEmptyResponse
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		answer = resp.Choices[0].Message.Content
	}
	if s.generation == generation {
		s.history = append(s.history, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: answer,
		})
	}
	return answer, nil
}

// trimHistoryLocked drops the oldest turns (never the system instruction)
// until the request fits the token budget. Callers hold s.mu.
func (s *SessionUsecase) trimHistoryLocked() {
	if s.cfg.HistoryTokenLimit <= 0 {
		return
	}
	for len(s.history) > 2 {
		count, err := tokens.Count(s.history, s.cfg.Model)
		if err != nil {
			s.logger.Warn("failed to count history tokens", "error", err)
			return
		}
		if count < s.cfg.HistoryTokenLimit {
			return
		}
		s.history = append(s.history[:1], s.history[2:]...)
		s.logger.Info("history trimmed due to token limit")
	}
}
