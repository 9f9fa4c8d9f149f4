package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/engine"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/storage"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/travel"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Engine  *engine.Engine
	Store   *storage.Store
	Flights travel.FlightPricer
	Hotels  travel.HotelPricer
	Token   string // bearer token protecting the admin surface
}

// NewHandler returns the full REST API: the public marketing/chat surface
// plus the bearer-protected admin back office.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat/message", handleChatMessage(deps))
		r.Post("/chat/create-lead", handleCreateLead(deps))
		r.Get("/destinations", handleListDestinations(deps))
		r.Get("/destinations/{id}", handleGetDestination(deps))
		r.Post("/pricing/flight", handleFlightPricing(deps))
		r.Post("/pricing/hotel", handleHotelPricing(deps))
		r.Post("/bookings", handleCreateBooking(deps))
		r.Post("/users/register", handleRegisterUser(deps))

		// Admin back office.
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(deps.Token))
			r.Post("/destinations", handleCreateDestination(deps))
			r.Put("/destinations/{id}", handleUpdateDestination(deps))
			r.Delete("/destinations/{id}", handleDeleteDestination(deps))
			r.Get("/leads", handleListLeads(deps))
			r.Get("/bookings", handleListBookings(deps))
			r.Get("/analytics/dashboard", handleDashboard(deps))
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
