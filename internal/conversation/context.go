package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. Messages are append-only and
// their insertion order is significant: conversation-length heuristics
// depend on it.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Facts holds the travel details extracted from a conversation. Each field
// is independently settable, first write wins, and is never cleared.
type Facts struct {
	Budget      int    `json:"budget,omitempty"`       // whole USD, 0 = unset
	TravelDates string `json:"travel_dates,omitempty"` // verbatim text, not normalized
	Destination string `json:"destination,omitempty"`
}

// Context is the accumulated state of one chat conversation.
type Context struct {
	ID       string        `json:"id"`
	Messages []Message     `json:"messages"`
	Profile  profile.Label `json:"profile,omitempty"` // set at most once
	Facts    Facts         `json:"facts"`
	LeadID   int64         `json:"lead_id,omitempty"`
	UserID   int64         `json:"user_id,omitempty"`
}

// NewContext creates an empty conversation context with a fresh id.
func NewContext() *Context {
	return &Context{ID: uuid.NewString()}
}

// Append adds a message to the conversation history.
func (c *Context) Append(role Role, content string, at time.Time) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content, Timestamp: at})
}

// SetProfile records the detected profile. The first successful
// classification wins; later calls are ignored.
func (c *Context) SetProfile(label profile.Label) {
	if c.Profile == "" {
		c.Profile = label
	}
}
