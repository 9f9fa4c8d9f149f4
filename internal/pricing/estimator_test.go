package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/travel"
)

type fakeCatalog struct {
	destinations []Destination
	err          error
}

func (f fakeCatalog) ListActiveDestinations(context.Context) ([]Destination, error) {
	return f.destinations, f.err
}

type failingFlightPricer struct{}

func (failingFlightPricer) FlightPrice(context.Context, travel.FlightRequest) (travel.Pricing, error) {
	return travel.Pricing{}, errors.New("provider down")
}

type failingHotelPricer struct{}

func (failingHotelPricer) HotelPrice(context.Context, travel.HotelRequest) (travel.Pricing, error) {
	return travel.Pricing{}, errors.New("provider down")
}

type fixedFlightPricer struct{ price int }

func (f fixedFlightPricer) FlightPrice(context.Context, travel.FlightRequest) (travel.Pricing, error) {
	return travel.Pricing{Price: f.price, Currency: "USD", Provider: "Amadeus"}, nil
}

type fixedHotelPricer struct{ price int }

func (f fixedHotelPricer) HotelPrice(context.Context, travel.HotelRequest) (travel.Pricing, error) {
	return travel.Pricing{Price: f.price, Currency: "USD", Provider: "Booking.com"}, nil
}

var testCatalog = fakeCatalog{destinations: []Destination{
	{Name: "Rio de Janeiro", AirportCode: "GIG", IdealProfiles: "adventure,cultural"},
	{Name: "Salvador", AirportCode: "SSA", IdealProfiles: "cultural,spiritual"},
	{Name: "Chapada Diamantina", AirportCode: "LEC", IdealProfiles: "adventure,spiritual"},
}}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		budget int
		want   float64
	}{
		{2500, 1.0},
		{5000, 1.3},  // 2.0 clamped down
		{1000, 0.7},  // 0.4 clamped up
		{3000, 1.2},
		{1750, 0.7},
	}
	for _, tt := range tests {
		if got := scaleFactor(tt.budget); got != tt.want {
			t.Errorf("scaleFactor(%d) = %v, want %v", tt.budget, got, tt.want)
		}
	}
}

func TestQuote_LuxuryReferenceBudgetUnscaled(t *testing.T) {
	e := NewEstimator(nil, nil, testCatalog, 0)
	q := e.Quote(context.Background(), profile.Luxury, 2500, "")

	if q.FlightPrice != 1200 || q.HotelPrice != 350 || q.ExperiencePrice != 800 || q.TransferPrice != 200 {
		t.Errorf("line items = %d/%d/%d/%d, want 1200/350/800/200",
			q.FlightPrice, q.HotelPrice, q.ExperiencePrice, q.TransferPrice)
	}
	if q.TotalPrice != 2550 {
		t.Errorf("total = %d, want 2550", q.TotalPrice)
	}
	if q.Savings != 0 {
		t.Errorf("savings = %d, want 0 (clamped)", q.Savings)
	}
	if q.DurationDays != 7 {
		t.Errorf("duration = %d, want 7", q.DurationDays)
	}
	if q.ProfileLabel != "Luxury Traveler" {
		t.Errorf("profile label = %q, want Luxury Traveler", q.ProfileLabel)
	}
}

func TestQuote_CulturalScaledUp(t *testing.T) {
	e := NewEstimator(nil, nil, testCatalog, 0)
	q := e.Quote(context.Background(), profile.Cultural, 5000, "")

	// 5000/2500 = 2.0 clamps to 1.3.
	if q.FlightPrice != 975 { // 750 * 1.3
		t.Errorf("flight = %d, want 975", q.FlightPrice)
	}
	if q.HotelPrice != 182 { // 140 * 1.3
		t.Errorf("hotel = %d, want 182", q.HotelPrice)
	}
	if q.ExperiencePrice != 780 || q.TransferPrice != 156 {
		t.Errorf("experiences/transfers = %d/%d, want 780/156", q.ExperiencePrice, q.TransferPrice)
	}
}

func TestQuote_Invariants(t *testing.T) {
	e := NewEstimator(nil, nil, testCatalog, 0)
	for _, label := range profile.Labels {
		for _, budget := range []int{500, 1750, 2500, 4000, 50000} {
			q := e.Quote(context.Background(), label, budget, "")
			sum := q.FlightPrice + q.HotelPrice + q.ExperiencePrice + q.TransferPrice
			if q.TotalPrice != sum {
				t.Errorf("%s/%d: total %d != line item sum %d", label, budget, q.TotalPrice, sum)
			}
			wantSavings := budget - q.TotalPrice
			if wantSavings < 0 {
				wantSavings = 0
			}
			if q.Savings != wantSavings {
				t.Errorf("%s/%d: savings %d, want %d", label, budget, q.Savings, wantSavings)
			}
		}
	}
}

func TestQuote_DestinationByProfile(t *testing.T) {
	e := NewEstimator(nil, nil, testCatalog, 0)

	if q := e.Quote(context.Background(), profile.Spiritual, 2500, ""); q.DestinationName != "Salvador" {
		t.Errorf("spiritual destination = %q, want Salvador (first tagged match)", q.DestinationName)
	}
	if q := e.Quote(context.Background(), profile.Luxury, 2500, ""); q.DestinationName != "Rio de Janeiro" {
		t.Errorf("luxury destination = %q, want first destination when nothing is tagged", q.DestinationName)
	}
}

func TestQuote_DestinationHintTakesPrecedence(t *testing.T) {
	e := NewEstimator(nil, nil, testCatalog, 0)
	q := e.Quote(context.Background(), profile.Cultural, 2500, "chapada")
	if q.DestinationName != "Chapada Diamantina" {
		t.Errorf("destination = %q, want Chapada Diamantina from hint", q.DestinationName)
	}
}

func TestQuote_EmptyCatalogUsesDefault(t *testing.T) {
	e := NewEstimator(nil, nil, fakeCatalog{}, 0)
	q := e.Quote(context.Background(), profile.Cultural, 2500, "")
	if q.DestinationName != "Rio de Janeiro" {
		t.Errorf("destination = %q, want default Rio de Janeiro", q.DestinationName)
	}
}

func TestQuote_CatalogErrorUsesDefault(t *testing.T) {
	e := NewEstimator(nil, nil, fakeCatalog{err: errors.New("db down")}, 0)
	q := e.Quote(context.Background(), profile.Cultural, 2500, "")
	if q.DestinationName != "Rio de Janeiro" {
		t.Errorf("destination = %q, want default Rio de Janeiro", q.DestinationName)
	}
}

func TestQuote_ProviderFailureNeverPropagates(t *testing.T) {
	e := NewEstimator(failingFlightPricer{}, failingHotelPricer{}, testCatalog, time.Second)
	q := e.Quote(context.Background(), profile.Adventure, 2500, "")

	// Scaled estimates survive intact and the quote stays consistent.
	if q.FlightPrice != 680 || q.HotelPrice != 120 {
		t.Errorf("flight/hotel = %d/%d, want local estimates 680/120", q.FlightPrice, q.HotelPrice)
	}
	if q.TotalPrice != q.FlightPrice+q.HotelPrice+q.ExperiencePrice+q.TransferPrice {
		t.Error("quote lost internal consistency on provider failure")
	}
}

func TestQuote_LiveOverridesReplaceEstimates(t *testing.T) {
	e := NewEstimator(fixedFlightPricer{price: 812}, fixedHotelPricer{price: 940}, testCatalog, time.Second)
	q := e.Quote(context.Background(), profile.Cultural, 2500, "")

	if q.FlightPrice != 812 {
		t.Errorf("flight = %d, want live 812", q.FlightPrice)
	}
	if q.HotelPrice != 940 {
		t.Errorf("hotel = %d, want live 940", q.HotelPrice)
	}
	if q.TotalPrice != 812+940+600+120 {
		t.Errorf("total = %d, want %d", q.TotalPrice, 812+940+600+120)
	}
}
