package storage

import (
	"context"
	"fmt"
	"time"
)

// --- Users ---

// CreateUser inserts a client account and returns its id. Email and
// username are unique; duplicates surface the sqlite constraint error.
func (s *Store) CreateUser(ctx context.Context, u User) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, username, password, profile_type, conversation_log, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.Password, u.ProfileType, u.ConversationLog,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// --- Leads ---

// CreateLead inserts a CRM lead and returns its id.
func (s *Store) CreateLead(ctx context.Context, l Lead) (int64, error) {
	var userID any
	if l.UserID != 0 {
		userID = l.UserID
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (user_id, profile_score, interest_level, recommended_destinations,
			estimated_budget, travel_dates, booking_status, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, l.ProfileScore, l.InterestLevel, l.RecommendedDestinations,
		l.EstimatedBudget, l.TravelDates, l.BookingStatus, l.Status,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListLeads returns the most recent leads, newest first.
func (s *Store) ListLeads(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, 0), profile_score, interest_level, recommended_destinations,
			estimated_budget, travel_dates, booking_status, status, created_at
		FROM leads ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Lead
	for rows.Next() {
		var l Lead
		var createdAt string
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProfileScore, &l.InterestLevel,
			&l.RecommendedDestinations, &l.EstimatedBudget, &l.TravelDates,
			&l.BookingStatus, &l.Status, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		l.CreatedAt = t
		result = append(result, l)
	}
	return result, rows.Err()
}

// --- Bookings ---

// CreateBooking inserts a booking record and returns its id.
func (s *Store) CreateBooking(ctx context.Context, b Booking) (int64, error) {
	var userID any
	if b.UserID != 0 {
		userID = b.UserID
	}
	if b.Passengers < 1 {
		b.Passengers = 1
	}
	if b.Status == "" {
		b.Status = "confirmed"
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (user_id, destination_name, flight_ref, hotel_ref, total_price, passengers, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, b.DestinationName, b.FlightRef, b.HotelRef, b.TotalPrice, b.Passengers, b.Status,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListBookings returns the most recent bookings, newest first.
func (s *Store) ListBookings(ctx context.Context, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, 0), destination_name, flight_ref, hotel_ref, total_price, passengers, status, created_at
		FROM bookings ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Booking
	for rows.Next() {
		var b Booking
		var createdAt string
		if err := rows.Scan(&b.ID, &b.UserID, &b.DestinationName, &b.FlightRef, &b.HotelRef,
			&b.TotalPrice, &b.Passengers, &b.Status, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		b.CreatedAt = t
		result = append(result, b)
	}
	return result, rows.Err()
}

// --- Analytics ---

// DashboardCounts aggregates the numbers the admin dashboard shows.
type DashboardCounts struct {
	Destinations int `json:"destinations"`
	Leads        int `json:"leads"`
	Bookings     int `json:"bookings"`
	Users        int `json:"users"`
}

// CountDashboard collects row counts for the admin dashboard.
func (s *Store) CountDashboard(ctx context.Context) (DashboardCounts, error) {
	var c DashboardCounts
	queries := []struct {
		query string
		dst   *int
	}{
		{"SELECT COUNT(*) FROM destinations WHERE status = 'active'", &c.Destinations},
		{"SELECT COUNT(*) FROM leads", &c.Leads},
		{"SELECT COUNT(*) FROM bookings", &c.Bookings},
		{"SELECT COUNT(*) FROM users", &c.Users},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dst); err != nil {
			return DashboardCounts{}, err
		}
	}
	return c, nil
}
