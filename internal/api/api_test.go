package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/conversation"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/engine"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/pricing"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/storage"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/travel"
)

const testToken = "test-admin-token"

type sqliteCatalog struct {
	store *storage.Store
}

func (c sqliteCatalog) ListActiveDestinations(ctx context.Context) ([]pricing.Destination, error) {
	rows, err := c.store.ListActiveDestinations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]pricing.Destination, 0, len(rows))
	for _, d := range rows {
		out = append(out, pricing.Destination{
			Name:          d.Name,
			AirportCode:   strings.Split(d.AirportCodes, ",")[0],
			IdealProfiles: d.IdealProfiles,
		})
	}
	return out, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.SeedDestinations(context.Background()); err != nil {
		t.Fatalf("seeding destinations: %v", err)
	}

	flights := travel.NewFlightService(nil, nil)
	hotels := travel.NewHotelService(nil)
	estimator := pricing.NewEstimator(flights, hotels, sqliteCatalog{store}, time.Second)
	convs := conversation.NewMemoryStore(100, time.Hour)
	eng := engine.New(convs, profile.NewClassifier(), estimator, store)

	srv := httptest.NewServer(NewHandler(Deps{
		Engine:  eng,
		Store:   store,
		Flights: flights,
		Hotels:  hotels,
		Token:   testToken,
	}))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("sending request: %v", err)
	}
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("sending request: %v", err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestChatMessageDetectsProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/chat/message", map[string]string{
		"message": "I love authentic local culture and traditional music",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[engine.Response](t, resp)
	if body.ProfileDetected != "Cultural Seeker" {
		t.Errorf("profile_detected = %q, want %q", body.ProfileDetected, "Cultural Seeker")
	}
	if body.ConversationID == "" {
		t.Error("conversation_id is empty")
	}
}

func TestChatMessageRejectsEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/chat/message", map[string]string{"message": "   "}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	body := decode[struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}](t, resp)
	if body.Error.Type != "invalid_request_error" {
		t.Errorf("error type = %q, want invalid_request_error", body.Error.Type)
	}
}

func TestChatFlowProducesPackage(t *testing.T) {
	srv, _ := newTestServer(t)
	url := srv.URL + "/api/chat/message"

	first := decode[engine.Response](t, postJSON(t, url, map[string]string{
		"message": "I love authentic local culture and traditional music",
	}, ""))
	id := first.ConversationID

	second := decode[engine.Response](t, postJSON(t, url, map[string]string{
		"message":         "my budget is around $3000",
		"conversation_id": id,
	}, ""))
	if strings.Contains(second.Message, "budget for this") {
		t.Errorf("second turn still asks for budget: %q", second.Message)
	}
	if second.Package != nil {
		t.Error("second turn should not quote without travel dates")
	}

	third := decode[engine.Response](t, postJSON(t, url, map[string]string{
		"message":         "we are aiming for July 15th",
		"conversation_id": id,
	}, ""))
	if third.Package == nil {
		t.Fatal("third turn returned no package")
	}
	if third.Package.TotalPrice <= 0 {
		t.Errorf("package total = %d, want > 0", third.Package.TotalPrice)
	}
}

func TestCreateLeadUnknownConversation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/chat/create-lead", map[string]string{
		"conversation_id": "no-such-conversation",
	}, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateLeadPersists(t *testing.T) {
	srv, _ := newTestServer(t)

	chat := decode[engine.Response](t, postJSON(t, srv.URL+"/api/chat/message", map[string]string{
		"message": "I love authentic local culture and traditional music",
	}, ""))

	resp := postJSON(t, srv.URL+"/api/chat/create-lead", map[string]string{
		"conversation_id": chat.ConversationID,
		"email":           "maria@example.com",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decode[map[string]int64](t, resp)
	if created["lead_id"] < 1 {
		t.Errorf("lead_id = %d, want >= 1", created["lead_id"])
	}

	leads := decode[[]map[string]any](t, getJSON(t, srv.URL+"/api/leads", testToken))
	if len(leads) != 1 {
		t.Fatalf("got %d leads, want 1", len(leads))
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, token := range []string{"", "wrong-token"} {
		resp := getJSON(t, srv.URL+"/api/leads", token)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestDestinationsPublicCatalog(t *testing.T) {
	srv, _ := newTestServer(t)

	list := decode[[]destinationResponse](t, getJSON(t, srv.URL+"/api/destinations", ""))
	if len(list) != 3 {
		t.Fatalf("got %d destinations, want 3 seeded", len(list))
	}
	if list[0].Name != "Rio de Janeiro" {
		t.Errorf("first destination = %q, want Rio de Janeiro", list[0].Name)
	}

	resp := getJSON(t, srv.URL+"/api/destinations/999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDestinationAdminLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/destinations", destinationPayload{
		Name:          "Fortaleza",
		IdealProfiles: "adventure",
		AirportCodes:  "FOR",
	}, testToken)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", resp.StatusCode)
	}
	created := decode[map[string]int64](t, resp)
	id := created["id"]

	buf, _ := json.Marshal(destinationPayload{Name: "Fortaleza", Status: "inactive"})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/destinations/"+itoa(id), bytes.NewReader(buf))
	req.Header.Set("Authorization", "Bearer "+testToken)
	update, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if update.StatusCode != http.StatusNoContent {
		t.Errorf("update: status = %d, want 204", update.StatusCode)
	}
	update.Body.Close()

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/destinations/"+itoa(id), nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if del.StatusCode != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", del.StatusCode)
	}
	del.Body.Close()

	gone := getJSON(t, srv.URL+"/api/destinations/"+itoa(id), "")
	if gone.StatusCode != http.StatusNotFound {
		t.Errorf("after delete: status = %d, want 404", gone.StatusCode)
	}
	gone.Body.Close()
}

func TestFlightPricingFallsBackToCalculated(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/pricing/flight", travel.FlightRequest{
		Origin:      "IAD",
		Destination: "GIG",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[travel.Pricing](t, resp)
	if got.Price != 750 {
		t.Errorf("price = %d, want 750 for IAD-GIG", got.Price)
	}
	if got.Provider != "Calculated Pricing" {
		t.Errorf("provider = %q, want Calculated Pricing", got.Provider)
	}
}

func TestFlightPricingRequiresRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/pricing/flight", travel.FlightRequest{Origin: "IAD"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateBookingReturnsReferences(t *testing.T) {
	srv, store := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/bookings", createBookingRequest{
		DestinationName: "Rio de Janeiro",
		TotalPrice:      2550,
		Passengers:      2,
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	booking := decode[bookingResponse](t, resp)
	if !strings.HasPrefix(booking.FlightRef, "FL") {
		t.Errorf("flight ref = %q, want FL prefix", booking.FlightRef)
	}
	if !strings.HasPrefix(booking.HotelRef, "HT") {
		t.Errorf("hotel ref = %q, want HT prefix", booking.HotelRef)
	}

	stored, err := store.ListBookings(context.Background(), 10)
	if err != nil {
		t.Fatalf("listing bookings: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("got %d stored bookings, want 1", len(stored))
	}
	if stored[0].TotalPrice != 2550 {
		t.Errorf("stored total = %d, want 2550", stored[0].TotalPrice)
	}
}

func TestRegisterUser(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users/register", registerUserRequest{
		Email:    "joao@example.com",
		Username: "joao",
		Password: "s3cret",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	dup := postJSON(t, srv.URL+"/api/users/register", registerUserRequest{
		Email:    "joao@example.com",
		Username: "joao",
		Password: "s3cret",
	}, "")
	if dup.StatusCode != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", dup.StatusCode)
	}
	dup.Body.Close()

	missing := postJSON(t, srv.URL+"/api/users/register", registerUserRequest{Email: "x@example.com"}, "")
	if missing.StatusCode != http.StatusBadRequest {
		t.Errorf("missing fields: status = %d, want 400", missing.StatusCode)
	}
	missing.Body.Close()
}

func TestDashboardCounts(t *testing.T) {
	srv, _ := newTestServer(t)

	counts := decode[storage.DashboardCounts](t, getJSON(t, srv.URL+"/api/analytics/dashboard", testToken))
	if counts.Destinations != 3 {
		t.Errorf("destinations = %d, want 3 seeded", counts.Destinations)
	}
	if counts.Leads != 0 || counts.Bookings != 0 || counts.Users != 0 {
		t.Errorf("fresh store counts = %+v, want zeros outside destinations", counts)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
