package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/shivampatadiya-ai-hub/nutrigenie/pkg/attachment"
)

type Role string

const (
	RoleUser      = Role("user")
	RoleAssistant = Role("assistant")
	// RoleSystem is reserved for the backend instruction and never shown in the UI.
	RoleSystem = Role("system")
)

// DisplayName returns the label used in the UI and the PDF export.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "NutriGenie"
	default:
		return "System"
	}
}

// Message is one turn of the conversation. It is append-only: once created
// no field is edited, and it only disappears with a full conversation reset.
type Message struct {
	ID             uuid.UUID       `json:"id"`
	Role           Role            `json:"role"`
	Text           string          `json:"text"`
	Timestamp      time.Time       `json:"timestamp"`
	HasAttachment  bool            `json:"has_attachment,omitempty"`
	AttachmentKind attachment.Kind `json:"attachment_kind,omitempty"`
	AttachmentData string          `json:"attachment_data,omitempty"`
	AttachmentName string          `json:"attachment_name,omitempty"`
}

func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}
