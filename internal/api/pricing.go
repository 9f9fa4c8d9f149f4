package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/travel"
)

// The pricing endpoints never fail on provider errors: the cascade behind
// Flights/Hotels bottoms out in the local calculators.

func handleFlightPricing(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req travel.FlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Origin == "" || req.Destination == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "origin and destination are required")
			return
		}
		if req.Passengers < 1 {
			req.Passengers = 1
		}

		pricing, err := deps.Flights.FlightPrice(r.Context(), req)
		if err != nil {
			// The wired FlightService never errors; a custom pricer might.
			slog.Warn("flight pricing failed, using calculated estimate", "error", err)
			pricing = travel.CalculatedFlightPrice(req)
		}
		writeJSON(w, http.StatusOK, pricing)
	}
}

func handleHotelPricing(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req travel.HotelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Location == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "location is required")
			return
		}
		if req.Guests < 1 {
			req.Guests = 1
		}

		pricing, err := deps.Hotels.HotelPrice(r.Context(), req)
		if err != nil {
			slog.Warn("hotel pricing failed, using calculated estimate", "error", err)
			pricing = travel.CalculatedHotelPrice(req)
		}
		writeJSON(w, http.StatusOK, pricing)
	}
}
