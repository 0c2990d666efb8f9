package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"

	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/model"
	"github.com/shivampatadiya-ai-hub/nutrigenie/pkg/attachment"
	"github.com/shivampatadiya-ai-hub/nutrigenie/pkg/sessionguard"
)

const (
	MessageServiceError       = "I'm having trouble connecting to the service right now. Please check your internet connection or API key and try again."
	MessageAttachmentFallback = "Analyze this medical report"
)

var (
	ErrBusy       = errors.New("a request is already in flight")
	ErrEmptyInput = errors.New("nothing to send")
)

type ConversationStorage interface {
	CreateConversation() uuid.UUID
	AppendMessage(conversationID uuid.UUID, msg model.Message) error
	ListMessages(conversationID uuid.UUID) ([]model.Message, error)
	DeleteConversation(conversationID uuid.UUID)
}

type Session interface {
	Send(ctx context.Context, text string, attachmentURI string) (string, error)
	SetPreference(preference model.DietaryPreference)
	Preference() model.DietaryPreference
	Active() bool
	Reset()
}

type ConversationUsecaseDeps struct {
	Storage ConversationStorage
	Session Session
	Logger  *slog.Logger
}

// ConversationUsecase orchestrates one logical conversation: it appends the
// user's message synchronously so it is visible before the backend answers,
// dispatches the AI call, and applies the outcome only if the race-guard
// token captured at dispatch time is still current. Starting a new chat
// refreshes the token, which neutralizes any response still in flight.
type ConversationUsecase struct {
	ConversationUsecaseDeps
	guard *sessionguard.Guard

	mu             sync.Mutex
	conversationID uuid.UUID
	busy           bool
	started        bool
}

func NewConversationUsecase(deps ConversationUsecaseDeps) *ConversationUsecase {
	return &ConversationUsecase{
		ConversationUsecaseDeps: deps,
		guard:                   sessionguard.New(),
		conversationID:          deps.Storage.CreateConversation(),
	}
}

// SendResult reports the outcome of one send. Reply is nil when the
// conversation was reset while the request was in flight; the result was
// discarded and the (new) conversation is untouched.
type SendResult struct {
	UserMessage model.Message  `json:"user_message"`
	Reply       *model.Message `json:"reply,omitempty"`
	Superseded  bool           `json:"superseded,omitempty"`
}

func (c *ConversationUsecase) Send(ctx context.Context, text string, att *attachment.Encoded) (SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" && att == nil {
		return SendResult{}, ErrEmptyInput
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return SendResult{}, ErrBusy
	}
	token := c.guard.Current()
	conversationID := c.conversationID

	userMsg := model.NewMessage(model.RoleUser, text)
	var attachmentURI string
	if att != nil {
		if text == "" {
			userMsg.Text = MessageAttachmentFallback
		}
		attachmentURI = att.DataURI()
		userMsg.HasAttachment = true
		userMsg.AttachmentKind = att.Kind()
		userMsg.AttachmentData = attachmentURI
		userMsg.AttachmentName = att.Filename
	}
	if err := c.Storage.AppendMessage(conversationID, userMsg); err != nil {
		c.mu.Unlock()
		return SendResult{}, fmt.Errorf("failed to append user message: %w", err)
	}
	c.busy = true
	c.started = true
	c.mu.Unlock()

	var reply model.Message
	var superseded bool
	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			answer, err := c.Session.Send(ctx, userMsg.Text, attachmentURI)
			if err != nil {
				c.Logger.Error("failed to send message to ai service", "error", err)
				answer = MessageServiceError
			}

			c.mu.Lock()
			defer c.mu.Unlock()
			if c.guard.IsStale(token) {
				// A new chat was started while this request was in flight.
				// The busy flag already belongs to the new conversation.
				superseded = true
				return
			}
			reply = model.NewMessage(model.RoleAssistant, answer)
			if err := c.Storage.AppendMessage(conversationID, reply); err != nil {
				c.Logger.Error("failed to append assistant message", "error", err)
			}
			c.busy = false
		},
	)
	wg.Wait()

	if superseded {
		return SendResult{UserMessage: userMsg, Superseded: true}, nil
	}
	return SendResult{UserMessage: userMsg, Reply: &reply}, nil
}

// Reset starts a new chat immediately: the message log is replaced, the
// race-guard token is refreshed exactly once, and the backend session is
// discarded. No confirmation and no transport-level cancellation.
func (c *ConversationUsecase) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Storage.DeleteConversation(c.conversationID)
	c.conversationID = c.Storage.CreateConversation()
	c.guard.Refresh()
	c.busy = false
	c.started = false
	c.Session.Reset()
}

func (c *ConversationUsecase) Messages() []model.Message {
	c.mu.Lock()
	conversationID := c.conversationID
	c.mu.Unlock()
	messages, err := c.Storage.ListMessages(conversationID)
	if err != nil {
		c.Logger.Error("failed to list messages", "error", err)
		return nil
	}
	return messages
}

func (c *ConversationUsecase) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *ConversationUsecase) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

func (c *ConversationUsecase) SetPreference(preference model.DietaryPreference) {
	c.Session.SetPreference(preference)
}

func (c *ConversationUsecase) Preference() model.DietaryPreference {
	return c.Session.Preference()
}
