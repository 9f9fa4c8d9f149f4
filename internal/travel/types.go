package travel

import "errors"

// ErrNotConfigured is returned by a provider client when its API key is
// missing. The cascade treats it like any other provider failure.
var ErrNotConfigured = errors.New("provider api key not configured")

// FlightRequest describes a one-way or return flight search.
type FlightRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"` // YYYY-MM-DD
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
}

// HotelRequest describes a hotel stay search.
type HotelRequest struct {
	Location string `json:"location"`
	CheckIn  string `json:"check_in"`  // YYYY-MM-DD
	CheckOut string `json:"check_out"` // YYYY-MM-DD
	Guests   int    `json:"guests"`
}

// Pricing is a provider's answer for one search. Prices are whole USD.
type Pricing struct {
	Price    int    `json:"price"`
	Currency string `json:"currency"`
	Provider string `json:"provider"`
}

// BookingRef confirms a flight or hotel reservation.
type BookingRef struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}
