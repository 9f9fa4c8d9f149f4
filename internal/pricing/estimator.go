package pricing

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/travel"
)

const (
	// DurationDays is the fixed package length.
	DurationDays = 7

	defaultProviderTimeout = 5 * time.Second
	defaultOrigin          = "IAD" // Washington DC area
	defaultAirportCode     = "GIG"
	defaultDestination     = "Rio de Janeiro"

	// Departure defaults to 30 days out when the customer gave only a
	// free-text month, which is not worth parsing into a calendar date.
	departureLeadDays = 30
)

// Quote is the four-line-item package offer shown to the customer.
// It is computed fresh per request and never cached.
type Quote struct {
	DestinationName string `json:"destination_name"`
	FlightPrice     int    `json:"flight_price"`
	HotelPrice      int    `json:"hotel_price"`
	ExperiencePrice int    `json:"experience_price"`
	TransferPrice   int    `json:"transfer_price"`
	TotalPrice      int    `json:"total_price"`
	Savings         int    `json:"savings"`
	DurationDays    int    `json:"duration_days"`
	ProfileLabel    string `json:"profile_label"`
}

// Destination is the catalog view the estimator needs: a name, the airport
// to price flights against, and the comma-separated profile tags set by
// the back office.
type Destination struct {
	Name          string
	AirportCode   string
	IdealProfiles string
}

// Catalog lists the currently sellable destinations.
type Catalog interface {
	ListActiveDestinations(ctx context.Context) ([]Destination, error)
}

// Estimator produces package quotes. Live providers are best-effort
// enrichment: any provider failure silently keeps the local estimate, so
// Quote always succeeds.
type Estimator struct {
	flights travel.FlightPricer
	hotels  travel.HotelPricer
	catalog Catalog
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewEstimator creates an Estimator. flights and hotels may be nil to
// disable live overrides; timeout <= 0 falls back to 5s.
func NewEstimator(flights travel.FlightPricer, hotels travel.HotelPricer, catalog Catalog, timeout time.Duration) *Estimator {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &Estimator{
		flights: flights,
		hotels:  hotels,
		catalog: catalog,
		timeout: timeout,
		logger:  slog.Default(),
		now:     time.Now,
	}
}

// Quote builds a package for the given profile and budget. destinationHint
// is the place name the customer mentioned, if any; it takes precedence
// over profile-based destination selection.
func (e *Estimator) Quote(ctx context.Context, label profile.Label, budget int, destinationHint string) Quote {
	items := scaledRates(label, budget)
	dest := e.selectDestination(ctx, label, destinationHint)

	e.applyLiveOverrides(ctx, dest, &items)

	total := items.Flight + items.Hotel + items.Experiences + items.Transfers
	savings := budget - total
	if savings < 0 {
		savings = 0
	}

	return Quote{
		DestinationName: dest.Name,
		FlightPrice:     items.Flight,
		HotelPrice:      items.Hotel,
		ExperiencePrice: items.Experiences,
		TransferPrice:   items.Transfers,
		TotalPrice:      total,
		Savings:         savings,
		DurationDays:    DurationDays,
		ProfileLabel:    label.DisplayName(),
	}
}

// selectDestination picks the destination for the quote: a hinted name
// first, then the first active destination tagged with the profile, then
// the first active destination, then the fixed default.
func (e *Estimator) selectDestination(ctx context.Context, label profile.Label, hint string) Destination {
	fallback := Destination{Name: defaultDestination, AirportCode: defaultAirportCode}
	if e.catalog == nil {
		return fallback
	}

	destinations, err := e.catalog.ListActiveDestinations(ctx)
	if err != nil {
		e.logger.Warn("listing destinations failed, using default", "error", err)
		return fallback
	}
	if len(destinations) == 0 {
		return fallback
	}

	if hint != "" {
		for _, d := range destinations {
			if strings.Contains(strings.ToLower(d.Name), strings.ToLower(hint)) {
				return d
			}
		}
	}
	for _, d := range destinations {
		if strings.Contains(strings.ToLower(d.IdealProfiles), string(label)) {
			return d
		}
	}
	return destinations[0]
}

// applyLiveOverrides attempts both provider calls concurrently under a
// bounded timeout and replaces the corresponding scaled line items on
// success. Failures are logged and otherwise invisible: the customer
// always gets a usable quote.
func (e *Estimator) applyLiveOverrides(ctx context.Context, dest Destination, items *LineItems) {
	if e.flights == nil && e.hotels == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	departure := e.now().AddDate(0, 0, departureLeadDays).Format("2006-01-02")
	checkout := e.now().AddDate(0, 0, departureLeadDays+DurationDays).Format("2006-01-02")

	airport := dest.AirportCode
	if airport == "" {
		airport = defaultAirportCode
	}

	var flightPrice, hotelPrice int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if e.flights == nil {
			return nil
		}
		p, err := e.flights.FlightPrice(gctx, travel.FlightRequest{
			Origin:        defaultOrigin,
			Destination:   airport,
			DepartureDate: departure,
			Passengers:    1,
		})
		if err != nil {
			e.logger.Debug("flight override unavailable, keeping estimate", "error", err)
			return nil
		}
		flightPrice = p.Price
		return nil
	})
	g.Go(func() error {
		if e.hotels == nil {
			return nil
		}
		p, err := e.hotels.HotelPrice(gctx, travel.HotelRequest{
			Location: dest.Name,
			CheckIn:  departure,
			CheckOut: checkout,
			Guests:   1,
		})
		if err != nil {
			e.logger.Debug("hotel override unavailable, keeping estimate", "error", err)
			return nil
		}
		hotelPrice = p.Price
		return nil
	})
	g.Wait()

	if flightPrice > 0 {
		items.Flight = flightPrice
	}
	if hotelPrice > 0 {
		items.Hotel = hotelPrice
	}
}
