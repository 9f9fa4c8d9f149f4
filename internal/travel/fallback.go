package travel

import "time"

// Local pricing tables used when no live provider answers. Flights are
// priced per route, hotels per city per night. Values are whole USD tuned
// against historical quotes; the calculators are deterministic so the same
// request always yields the same estimate.

type routeRate struct {
	base int
}

var routeRates = map[string]routeRate{
	"IAD-GIG": {base: 750}, // Washington to Rio
	"IAD-SSA": {base: 820}, // Washington to Salvador
	"IAD-FOR": {base: 890}, // Washington to Fortaleza
}

const defaultRouteBase = 800

var cityNightRates = map[string]int{
	"Rio de Janeiro":     140,
	"Salvador":           120,
	"Chapada Diamantina": 90,
	"São Paulo":          160,
}

const defaultCityNightRate = 130

// CalculatedFlightPrice estimates a flight price from the route table.
func CalculatedFlightPrice(req FlightRequest) Pricing {
	rate, ok := routeRates[req.Origin+"-"+req.Destination]
	if !ok {
		rate = routeRate{base: defaultRouteBase}
	}
	passengers := req.Passengers
	if passengers < 1 {
		passengers = 1
	}
	return Pricing{
		Price:    rate.base * passengers,
		Currency: "USD",
		Provider: "Calculated Pricing",
	}
}

// CalculatedHotelPrice estimates a hotel stay from the city table. Parties
// of more than two guests pay a 30% premium per night.
func CalculatedHotelPrice(req HotelRequest) Pricing {
	perNight, ok := cityNightRates[req.Location]
	if !ok {
		perNight = defaultCityNightRate
	}
	if req.Guests > 2 {
		perNight = perNight * 13 / 10
	}
	return Pricing{
		Price:    perNight * nights(req.CheckIn, req.CheckOut),
		Currency: "USD",
		Provider: "Calculated Pricing",
	}
}

// nights counts the nights between two YYYY-MM-DD dates, minimum one.
// Unparseable dates fall back to a single night.
func nights(checkIn, checkOut string) int {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil {
		return 1
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}
