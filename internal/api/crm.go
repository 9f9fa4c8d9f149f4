package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/storage"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/travel"
)

type createBookingRequest struct {
	UserID          int64  `json:"user_id"`
	DestinationName string `json:"destination_name"`
	TotalPrice      int    `json:"total_price"`
	Passengers      int    `json:"passengers"`
}

type bookingResponse struct {
	ID         int64  `json:"id"`
	FlightRef  string `json:"flight_ref"`
	HotelRef   string `json:"hotel_ref"`
	Status     string `json:"status"`
	TotalPrice int    `json:"total_price"`
}

func handleCreateBooking(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req createBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.DestinationName == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "destination_name is required")
			return
		}

		now := time.Now()
		flightRef := travel.BookFlight(now)
		hotelRef := travel.BookHotel(now)

		id, err := deps.Store.CreateBooking(r.Context(), storage.Booking{
			UserID:          req.UserID,
			DestinationName: req.DestinationName,
			FlightRef:       flightRef.Reference,
			HotelRef:        hotelRef.Reference,
			TotalPrice:      req.TotalPrice,
			Passengers:      req.Passengers,
		})
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "creating booking: %v", err)
			return
		}

		writeJSON(w, http.StatusCreated, bookingResponse{
			ID:         id,
			FlightRef:  flightRef.Reference,
			HotelRef:   hotelRef.Reference,
			Status:     flightRef.Status,
			TotalPrice: req.TotalPrice,
		})
	}
}

type registerUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleRegisterUser(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req registerUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Email == "" || req.Username == "" || req.Password == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "email, username and password are required")
			return
		}

		id, err := deps.Store.CreateUser(r.Context(), storage.User{
			Email:    req.Email,
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			httpError(w, http.StatusConflict, "invalid_request_error", "registering user: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": id})
	}
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return 50
	}
	return limit
}

func handleListLeads(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads, err := deps.Store.ListLeads(r.Context(), queryLimit(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing leads: %v", err)
			return
		}
		type leadResponse struct {
			ID                      int64  `json:"id"`
			UserID                  int64  `json:"user_id,omitempty"`
			ProfileScore            int    `json:"profile_score"`
			InterestLevel           string `json:"interest_level"`
			RecommendedDestinations string `json:"recommended_destinations"`
			EstimatedBudget         int    `json:"estimated_budget"`
			TravelDates             string `json:"travel_dates"`
			BookingStatus           string `json:"booking_status"`
			Status                  string `json:"status"`
		}
		resp := make([]leadResponse, 0, len(leads))
		for _, l := range leads {
			resp = append(resp, leadResponse{
				ID:                      l.ID,
				UserID:                  l.UserID,
				ProfileScore:            l.ProfileScore,
				InterestLevel:           l.InterestLevel,
				RecommendedDestinations: l.RecommendedDestinations,
				EstimatedBudget:         l.EstimatedBudget,
				TravelDates:             l.TravelDates,
				BookingStatus:           l.BookingStatus,
				Status:                  l.Status,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleListBookings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := deps.Store.ListBookings(r.Context(), queryLimit(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing bookings: %v", err)
			return
		}
		resp := make([]bookingResponse, 0, len(bookings))
		for _, b := range bookings {
			resp = append(resp, bookingResponse{
				ID:         b.ID,
				FlightRef:  b.FlightRef,
				HotelRef:   b.HotelRef,
				Status:     b.Status,
				TotalPrice: b.TotalPrice,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleDashboard(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := deps.Store.CountDashboard(r.Context())
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "collecting dashboard counts: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}
