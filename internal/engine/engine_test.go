package engine

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/conversation"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/pricing"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/storage"
)

type fakeQuoter struct {
	lastLabel  profile.Label
	lastBudget int
	lastHint   string
}

func (f *fakeQuoter) Quote(_ context.Context, label profile.Label, budget int, hint string) pricing.Quote {
	f.lastLabel, f.lastBudget, f.lastHint = label, budget, hint
	return pricing.Quote{
		DestinationName: "Rio de Janeiro",
		FlightPrice:     750, HotelPrice: 140, ExperiencePrice: 600, TransferPrice: 120,
		TotalPrice: 1610, Savings: budget - 1610, DurationDays: 7,
		ProfileLabel: label.DisplayName(),
	}
}

func newTestEngine() (*Engine, *fakeQuoter) {
	q := &fakeQuoter{}
	e := New(conversation.NewMemoryStore(100, time.Hour), profile.NewClassifier(), q, nil)
	return e, q
}

func TestProcessMessage_NewConversationGetsID(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "hello there", "")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.ConversationID == "" {
		t.Error("response carries no conversation id")
	}
}

func TestProcessMessage_UnknownIDCreatesNewContext(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "hello", "never-seen-before")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.ConversationID == "" {
		t.Error("unknown conversation id must create a fresh context, not fail")
	}
}

func TestProcessMessage_ProfileAcknowledged(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "I love authentic local culture and traditional music", "")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.ProfileDetected != "Cultural Seeker" {
		t.Errorf("ProfileDetected = %q, want Cultural Seeker", resp.ProfileDetected)
	}
	if resp.Package != nil {
		t.Error("profile acknowledgement turn must not carry a package")
	}
}

func TestProcessMessage_ProfileAndBudgetSameTurnOnlyAcknowledges(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "authentic culture and samba music, budget $3000", "")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.ProfileDetected == "" {
		t.Fatal("expected profile acknowledgement")
	}
	if resp.Package != nil {
		t.Error("budget must be recorded but not re-surfaced on the acknowledgement turn")
	}

	// The budget was still recorded: with dates supplied next, the quote
	// branch fires immediately.
	resp2, err := e.ProcessMessage(context.Background(), "thinking September", resp.ConversationID)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp2.Package == nil {
		t.Fatal("expected a package once profile, budget and dates are known")
	}
}

func TestProcessMessage_AskBudgetThenAskDates(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "hiking and surfing for me", "")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	id := resp.ConversationID

	// Profile known, budget missing.
	resp, err = e.ProcessMessage(context.Background(), "what do you suggest", id)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.Message != responseAskBudget {
		t.Errorf("message = %q, want budget inquiry", resp.Message)
	}

	// Budget arrives, dates still missing.
	resp, err = e.ProcessMessage(context.Background(), "$3000 sounds right", id)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.Message != responseAskDates {
		t.Errorf("message = %q, want travel-dates inquiry", resp.Message)
	}
}

func TestProcessMessage_QuoteWhenFactsComplete(t *testing.T) {
	e, q := newTestEngine()
	resp, _ := e.ProcessMessage(context.Background(), "hiking and surfing", "")
	id := resp.ConversationID
	e.ProcessMessage(context.Background(), "around $2500", id)

	resp, err := e.ProcessMessage(context.Background(), "early September in Salvador", id)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.Package == nil {
		t.Fatal("expected a package quote")
	}
	if q.lastLabel != profile.Adventure || q.lastBudget != 2500 {
		t.Errorf("quoter called with %s/%d, want adventure/2500", q.lastLabel, q.lastBudget)
	}
	if q.lastHint != "salvador" {
		t.Errorf("destination hint = %q, want salvador", q.lastHint)
	}
}

func TestProcessMessage_BookingIntentPreemptsEverything(t *testing.T) {
	e, _ := newTestEngine()
	// Unset profile plus an affirmative phrase: still a booking
	// confirmation, never a classification attempt.
	resp, err := e.ProcessMessage(context.Background(), "yes let's book it", "")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if !resp.RequiresBooking {
		t.Error("RequiresBooking = false, want true")
	}
	if resp.ProfileDetected != "" {
		t.Errorf("ProfileDetected = %q, want empty on a booking turn", resp.ProfileDetected)
	}
}

func TestProcessMessage_GenericPromptAndEmailCapture(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.Message != responseEarlyPrompt {
		t.Errorf("message = %q, want early prompt on first contact", resp.Message)
	}
	if resp.SuggestEmailCapture {
		t.Error("SuggestEmailCapture = true too early")
	}

	id := resp.ConversationID
	// Keep failing classification; after more than 4 accumulated
	// messages the widget should suggest capturing an email.
	resp, _ = e.ProcessMessage(context.Background(), "hmm", id)
	resp, _ = e.ProcessMessage(context.Background(), "not sure", id)
	if !resp.SuggestEmailCapture {
		t.Error("SuggestEmailCapture = false, want true after a long aimless conversation")
	}
}

func TestProcessMessage_EmptyInputIsANormalMessage(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "", "")
	if err != nil {
		t.Fatalf("ProcessMessage on empty input: %v", err)
	}
	if resp.Message == "" {
		t.Error("empty input must still produce a prompt")
	}
}

func TestProcessMessage_ConcurrentTurnsOnOneID(t *testing.T) {
	e, _ := newTestEngine()
	resp, err := e.ProcessMessage(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	id := resp.ConversationID

	const turns = 16
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.ProcessMessage(context.Background(), "still deciding", id); err != nil {
				t.Errorf("ProcessMessage: %v", err)
			}
		}()
	}
	wg.Wait()

	c, err := e.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// Each turn appends a user and an assistant message; the opening turn
	// contributed two more. A lost read-modify-write shows up as a shortfall.
	if want := 2 + 2*turns; len(c.Messages) != want {
		t.Errorf("messages = %d, want %d", len(c.Messages), want)
	}
}

func TestLockForIsStableAndBounded(t *testing.T) {
	e, _ := newTestEngine()
	if e.lockFor("abc") != e.lockFor("abc") {
		t.Error("same id must map to the same stripe")
	}
}

func TestSummarizeConversation_Scoring(t *testing.T) {
	e, _ := newTestEngine()
	resp, _ := e.ProcessMessage(context.Background(), "authentic local culture and samba", "")
	id := resp.ConversationID
	e.ProcessMessage(context.Background(), "$3000 works", id)
	e.ProcessMessage(context.Background(), "sometime in September", id)

	s, err := e.SummarizeConversation(context.Background(), id)
	if err != nil {
		t.Fatalf("SummarizeConversation: %v", err)
	}
	// 25 profile + 25 budget + 25 dates + 25 engagement (6 messages).
	if s.ProfileScore != 100 {
		t.Errorf("ProfileScore = %d, want 100", s.ProfileScore)
	}
	if s.InterestLevel != "high" {
		t.Errorf("InterestLevel = %q, want high", s.InterestLevel)
	}
	if s.EstimatedBudget != 3000 {
		t.Errorf("EstimatedBudget = %d, want 3000", s.EstimatedBudget)
	}
	if !strings.Contains(s.TravelDates, "September") {
		t.Errorf("TravelDates = %q, want September mention", s.TravelDates)
	}
	if s.RecommendedDestination != "Rio de Janeiro" {
		t.Errorf("RecommendedDestination = %q, want default when none mentioned", s.RecommendedDestination)
	}
}

func TestSummarizeConversation_UnknownID(t *testing.T) {
	e, _ := newTestEngine()
	if _, err := e.SummarizeConversation(context.Background(), "ghost"); err != ErrUnknownConversation {
		t.Errorf("err = %v, want ErrUnknownConversation", err)
	}
}

type fakeLeadStore struct {
	users []storage.User
	leads []storage.Lead
}

func (f *fakeLeadStore) CreateUser(_ context.Context, u storage.User) (int64, error) {
	f.users = append(f.users, u)
	return int64(len(f.users)), nil
}

func (f *fakeLeadStore) CreateLead(_ context.Context, l storage.Lead) (int64, error) {
	f.leads = append(f.leads, l)
	return int64(len(f.leads)), nil
}

func TestCreateLead_RegistersUserAndLead(t *testing.T) {
	ls := &fakeLeadStore{}
	e := New(conversation.NewMemoryStore(100, time.Hour), profile.NewClassifier(), &fakeQuoter{}, ls)

	resp, _ := e.ProcessMessage(context.Background(), "authentic local culture and samba", "")
	id := resp.ConversationID
	e.ProcessMessage(context.Background(), "$3000 in September, Salvador please", id)

	leadID, err := e.CreateLead(context.Background(), id, "maria@example.com")
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if leadID != 1 {
		t.Errorf("leadID = %d, want 1", leadID)
	}
	if len(ls.users) != 1 {
		t.Fatalf("created %d users, want 1", len(ls.users))
	}
	if !strings.HasPrefix(ls.users[0].Username, "maria") {
		t.Errorf("username = %q, want maria prefix", ls.users[0].Username)
	}
	if ls.users[0].ProfileType != "cultural" {
		t.Errorf("profile type = %q, want cultural", ls.users[0].ProfileType)
	}
	lead := ls.leads[0]
	if lead.UserID != 1 || lead.BookingStatus != "inquiry" || lead.Status != "new" {
		t.Errorf("lead = %+v, want linked inquiry/new lead", lead)
	}
	if lead.RecommendedDestinations != "salvador" {
		t.Errorf("recommended = %q, want salvador", lead.RecommendedDestinations)
	}
}

func TestCreateLead_UnknownConversation(t *testing.T) {
	ls := &fakeLeadStore{}
	e := New(conversation.NewMemoryStore(100, time.Hour), profile.NewClassifier(), &fakeQuoter{}, ls)
	if _, err := e.CreateLead(context.Background(), "ghost", ""); err != ErrUnknownConversation {
		t.Errorf("err = %v, want ErrUnknownConversation", err)
	}
}
