package engine

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/conversation"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/pricing"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
)

// Quoter is the pricing interface the engine consumes.
// Implemented by pricing.Estimator.
type Quoter interface {
	Quote(ctx context.Context, label profile.Label, budget int, destinationHint string) pricing.Quote
}

// Response is what one conversational turn returns to the transport layer.
type Response struct {
	Message             string         `json:"message"`
	ProfileDetected     string         `json:"profile_detected,omitempty"`
	Package             *pricing.Quote `json:"package,omitempty"`
	ConversationID      string         `json:"conversation_id"`
	SuggestEmailCapture bool           `json:"suggest_email_capture,omitempty"`
	RequiresBooking     bool           `json:"requires_booking,omitempty"`
}

// Engine drives the consultant conversation: it tracks per-conversation
// state, classifies the customer's travel profile, extracts facts, and
// decides each turn's reply.
type Engine struct {
	store      conversation.Store
	classifier *profile.Classifier
	quoter     Quoter
	leads      LeadStore
	logger     *slog.Logger
	now        func() time.Time

	// Striped locks serialize read-modify-write turns per conversation id
	// so concurrent double-submissions cannot lose updates. A fixed pool
	// keeps memory flat no matter how many ids the process ever sees;
	// unrelated ids sharing a stripe only contend, they stay correct.
	locks [64]sync.Mutex
}

// New creates an Engine. leads may be nil when no CRM is wired (tests);
// CreateLead then fails.
func New(store conversation.Store, classifier *profile.Classifier, quoter Quoter, leads LeadStore) *Engine {
	return &Engine{
		store:      store,
		classifier: classifier,
		quoter:     quoter,
		leads:      leads,
		logger:     slog.Default(),
		now:        time.Now,
	}
}

// ProcessMessage handles one inbound customer message. An empty or unknown
// conversationID starts a fresh conversation; unknown ids are never a
// lookup error. The returned Response always carries the conversation id
// the caller should use on the next turn.
func (e *Engine) ProcessMessage(ctx context.Context, text, conversationID string) (Response, error) {
	if conversationID != "" {
		mu := e.lockFor(conversationID)
		mu.Lock()
		defer mu.Unlock()
	}

	c, err := e.getOrCreate(ctx, conversationID)
	if err != nil {
		return Response{}, err
	}

	c.Append(conversation.RoleUser, text, e.now())
	conversation.ExtractFacts(c, text)

	resp := e.selectResponse(ctx, c, text)
	resp.ConversationID = c.ID
	c.Append(conversation.RoleAssistant, resp.Message, e.now())

	if err := e.store.Upsert(ctx, c); err != nil {
		return Response{}, fmt.Errorf("saving conversation %s: %w", c.ID, err)
	}
	return resp, nil
}

func (e *Engine) getOrCreate(ctx context.Context, id string) (*conversation.Context, error) {
	if id != "" {
		c, err := e.store.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading conversation %s: %w", id, err)
		}
		if c != nil {
			return c, nil
		}
	}
	return conversation.NewContext(), nil
}

// selectResponse is the decision table for one turn, evaluated in strict
// priority order. Booking intent pre-empts everything, including a
// classification attempt: "yes, sounds good" after a quote always
// confirms, it never re-classifies.
func (e *Engine) selectResponse(ctx context.Context, c *conversation.Context, text string) Response {
	if hasBookingIntent(text) {
		return Response{Message: responseBookingConfirmed, RequiresBooking: true}
	}

	if c.Profile == "" {
		if label, ok := e.classifier.Classify(text); ok {
			c.SetProfile(label)
			// Facts from this message are already recorded; this turn
			// only acknowledges the profile.
			return Response{
				Message:         profileDetectedResponses[label],
				ProfileDetected: label.DisplayName(),
			}
		}
		return e.genericPrompt(c)
	}

	facts := c.Facts
	switch {
	case facts.Budget > 0 && (facts.TravelDates != "" || facts.Destination != ""):
		quote := e.quoter.Quote(ctx, c.Profile, facts.Budget, facts.Destination)
		return Response{Message: responsePackageReady, Package: &quote}
	case facts.Budget == 0:
		return Response{Message: responseAskBudget}
	default:
		return Response{Message: responseAskDates}
	}
}

// genericPrompt handles early conversation and classification misses.
// After more than four prior messages the widget is told to ask for an
// email address instead of looping forever.
func (e *Engine) genericPrompt(c *conversation.Context) Response {
	if len(c.Messages) <= 2 {
		return Response{Message: responseEarlyPrompt}
	}
	return Response{
		Message:             responseGenericPrompt,
		SuggestEmailCapture: len(c.Messages) > 4,
	}
}

func hasBookingIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range bookingIntentPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func (e *Engine) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &e.locks[h.Sum32()%uint32(len(e.locks))]
}
