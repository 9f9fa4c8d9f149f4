package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Destination is a catalog entry maintained by the back office.
// IdealProfiles is a comma-separated list of profile labels the
// destination is marketed to.
type Destination struct {
	ID            int64
	Name          string
	Description   string
	BestMonths    string
	IdealProfiles string
	AirportCodes  string // comma-separated, primary first
	Status        string // "active" or "inactive"
	CreatedAt     time.Time
}

// User is a self-service client account, usually created from a chat
// conversation once an email is captured.
type User struct {
	ID              int64
	Email           string
	Username        string
	Password        string
	ProfileType     string
	ConversationLog string // JSON array of chat messages
	CreatedAt       time.Time
}

// Lead is a CRM record summarizing a prospective customer's conversation.
type Lead struct {
	ID                      int64
	UserID                  int64 // 0 when no account exists yet
	ProfileScore            int   // 0-100
	InterestLevel           string
	RecommendedDestinations string
	EstimatedBudget         int
	TravelDates             string
	BookingStatus           string
	Status                  string
	CreatedAt               time.Time
}

// Booking records a confirmed flight/hotel reservation pair.
type Booking struct {
	ID              int64
	UserID          int64
	DestinationName string
	FlightRef       string
	HotelRef        string
	TotalPrice      int
	Passengers      int
	Status          string
	CreatedAt       time.Time
}
