package profile

// Label identifies one of the four travel-personality archetypes used to
// tailor messaging and package pricing.
type Label string

const (
	Cultural  Label = "cultural"
	Adventure Label = "adventure"
	Spiritual Label = "spiritual"
	Luxury    Label = "luxury"
)

// Labels lists every known profile in classification priority order.
// The order doubles as the tie-break policy: when two profiles score the
// same keyword count, the earlier label wins.
var Labels = []Label{Cultural, Adventure, Spiritual, Luxury}

var displayNames = map[Label]string{
	Cultural:  "Cultural Seeker",
	Adventure: "Adventure Spirit",
	Spiritual: "Spiritual Journey",
	Luxury:    "Luxury Traveler",
}

// DisplayName returns the customer-facing name for a profile label.
// Unknown labels fall back to "Explorer".
func (l Label) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return "Explorer"
}

// Valid reports whether l is one of the known profile labels.
func (l Label) Valid() bool {
	_, ok := displayNames[l]
	return ok
}
