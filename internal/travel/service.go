package travel

import (
	"context"
	"log/slog"
)

// FlightPricer is the interface the pricing estimator consumes for flights.
type FlightPricer interface {
	FlightPrice(ctx context.Context, req FlightRequest) (Pricing, error)
}

// HotelPricer is the interface the pricing estimator consumes for hotels.
type HotelPricer interface {
	HotelPrice(ctx context.Context, req HotelRequest) (Pricing, error)
}

// FlightService tries Amadeus, then Skyscanner, then the local route
// calculator. It never returns an error: a fully failed cascade still
// produces a calculated estimate.
type FlightService struct {
	primary  FlightPricer
	fallback FlightPricer
	logger   *slog.Logger
}

// NewFlightService wires the Amadeus-then-Skyscanner cascade.
func NewFlightService(primary, fallback FlightPricer) *FlightService {
	return &FlightService{primary: primary, fallback: fallback, logger: slog.Default()}
}

// FlightPrice runs the cascade. Each provider gets a single attempt.
func (s *FlightService) FlightPrice(ctx context.Context, req FlightRequest) (Pricing, error) {
	if s.primary != nil {
		p, err := s.primary.FlightPrice(ctx, req)
		if err == nil {
			return p, nil
		}
		s.logger.Debug("primary flight provider failed", "error", err)
	}
	if s.fallback != nil {
		p, err := s.fallback.FlightPrice(ctx, req)
		if err == nil {
			return p, nil
		}
		s.logger.Debug("fallback flight provider failed", "error", err)
	}
	return CalculatedFlightPrice(req), nil
}

// HotelService tries Booking.com, then the local city calculator. Like
// FlightService it never returns an error.
type HotelService struct {
	primary HotelPricer
	logger  *slog.Logger
}

// NewHotelService wires the Booking.com cascade.
func NewHotelService(primary HotelPricer) *HotelService {
	return &HotelService{primary: primary, logger: slog.Default()}
}

// HotelPrice runs the cascade. The provider gets a single attempt.
func (s *HotelService) HotelPrice(ctx context.Context, req HotelRequest) (Pricing, error) {
	if s.primary != nil {
		p, err := s.primary.HotelPrice(ctx, req)
		if err == nil {
			return p, nil
		}
		s.logger.Debug("hotel provider failed", "error", err)
	}
	return CalculatedHotelPrice(req), nil
}
