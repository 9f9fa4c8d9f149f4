package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/storage"
)

// ErrUnknownConversation is returned when a lead is requested for a
// conversation id the store has never seen (or has already evicted).
var ErrUnknownConversation = errors.New("unknown conversation")

// LeadStore is the CRM persistence the engine needs to turn a
// conversation into a lead. Implemented by storage.Store.
type LeadStore interface {
	CreateUser(ctx context.Context, u storage.User) (int64, error)
	CreateLead(ctx context.Context, l storage.Lead) (int64, error)
}

// Summary condenses a conversation for the CRM.
type Summary struct {
	ProfileScore           int    `json:"profile_score"` // 0-100
	InterestLevel          string `json:"interest_level"`
	RecommendedDestination string `json:"recommended_destination"`
	EstimatedBudget        int    `json:"estimated_budget"`
	TravelDates            string `json:"travel_dates"`
}

// SummarizeConversation scores a conversation for CRM handoff. The score
// awards 25 points each for a detected profile, a budget and travel
// dates, plus up to 25 engagement points (5 per message).
func (e *Engine) SummarizeConversation(ctx context.Context, conversationID string) (Summary, error) {
	c, err := e.store.Get(ctx, conversationID)
	if err != nil {
		return Summary{}, fmt.Errorf("loading conversation %s: %w", conversationID, err)
	}
	if c == nil {
		return Summary{}, ErrUnknownConversation
	}

	score := 0
	if c.Profile != "" {
		score += 25
	}
	if c.Facts.Budget > 0 {
		score += 25
	}
	if c.Facts.TravelDates != "" {
		score += 25
	}
	engagement := len(c.Messages) * 5
	if engagement > 25 {
		engagement = 25
	}
	score += engagement

	destination := c.Facts.Destination
	if destination == "" {
		destination = "Rio de Janeiro"
	}

	return Summary{
		ProfileScore:           score,
		InterestLevel:          interestLevel(score),
		RecommendedDestination: destination,
		EstimatedBudget:        c.Facts.Budget,
		TravelDates:            c.Facts.TravelDates,
	}, nil
}

func interestLevel(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 50:
		return "medium"
	default:
		return "low"
	}
}

// CreateLead persists a lead summarizing the conversation. When email is
// non-empty and the conversation has no account yet, a user record is
// registered first with generated credentials. Returns the new lead id.
func (e *Engine) CreateLead(ctx context.Context, conversationID, email string) (int64, error) {
	if e.leads == nil {
		return 0, errors.New("no lead store configured")
	}
	mu := e.lockFor(conversationID)
	mu.Lock()
	defer mu.Unlock()

	c, err := e.store.Get(ctx, conversationID)
	if err != nil {
		return 0, fmt.Errorf("loading conversation %s: %w", conversationID, err)
	}
	if c == nil {
		return 0, ErrUnknownConversation
	}

	summary, err := e.SummarizeConversation(ctx, conversationID)
	if err != nil {
		return 0, err
	}

	if email != "" && c.UserID == 0 {
		log, err := json.Marshal(c.Messages)
		if err != nil {
			return 0, fmt.Errorf("encoding conversation log: %w", err)
		}
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
		userID, err := e.leads.CreateUser(ctx, storage.User{
			Email:           email,
			Username:        strings.SplitN(email, "@", 2)[0] + suffix[:4],
			Password:        suffix[4:16],
			ProfileType:     string(c.Profile),
			ConversationLog: string(log),
		})
		if err != nil {
			return 0, fmt.Errorf("registering user: %w", err)
		}
		c.UserID = userID
	}

	leadID, err := e.leads.CreateLead(ctx, storage.Lead{
		UserID:                  c.UserID,
		ProfileScore:            summary.ProfileScore,
		InterestLevel:           summary.InterestLevel,
		RecommendedDestinations: summary.RecommendedDestination,
		EstimatedBudget:         summary.EstimatedBudget,
		TravelDates:             summary.TravelDates,
		BookingStatus:           "inquiry",
		Status:                  "new",
	})
	if err != nil {
		return 0, fmt.Errorf("creating lead: %w", err)
	}

	c.LeadID = leadID
	if err := e.store.Upsert(ctx, c); err != nil {
		return 0, fmt.Errorf("saving conversation %s: %w", c.ID, err)
	}
	return leadID, nil
}
