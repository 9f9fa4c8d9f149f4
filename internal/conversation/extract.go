package conversation

import (
	"regexp"
	"strconv"
	"strings"
)

// Budget bounds in whole USD. Numbers outside this range are assumed to be
// something other than a trip budget (group sizes, years, phone digits).
const (
	minBudget = 500
	maxBudget = 50000
)

// The comma-grouped alternative comes first so "$12,500" is taken whole;
// without it a bare run like "$3000" must match the plain-digits branch in
// one token, never as "$300" plus a stray "0".
var budgetPattern = regexp.MustCompile(`\$?\d{1,3}(?:,\d{3})+|\$?\d+`)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
}

// monthPatterns[i] captures the phrase around monthNames[i], e.g.
// "July 15th" or "mid-January".
var monthPatterns = func() []*regexp.Regexp {
	ps := make([]*regexp.Regexp, len(monthNames))
	for i, month := range monthNames {
		ps[i] = regexp.MustCompile(`(?i)[\w-]*` + month + `[\w-]*(?:\s+\d{1,2}(?:st|nd|rd|th)?)?`)
	}
	return ps
}()

var knownDestinations = []string{
	"rio", "salvador", "chapada", "amazon", "sao paulo", "brasilia", "florianopolis",
}

// ExtractFacts scans message for budget, travel dates, and destination and
// records whatever it finds on c.Facts. It runs on every inbound message
// regardless of classification success; fields already set are left alone
// and a miss on any scan is not an error.
func ExtractFacts(c *Context, message string) {
	lower := strings.ToLower(message)

	if c.Facts.Budget == 0 {
		if budget, ok := extractBudget(lower); ok {
			c.Facts.Budget = budget
		}
	}
	if c.Facts.TravelDates == "" {
		if dates, ok := extractTravelDates(message, lower); ok {
			c.Facts.TravelDates = dates
		}
	}
	if c.Facts.Destination == "" {
		for _, dest := range knownDestinations {
			if strings.Contains(lower, dest) {
				c.Facts.Destination = dest
				break
			}
		}
	}
}

// extractBudget picks the budget among the numeric tokens in message.
// A token carrying a "$" prefix is preferred over earlier bare numbers, so
// "2 people, $3000 budget" yields 3000; otherwise the first token whose
// value falls in [500, 50000] wins.
func extractBudget(lower string) (int, bool) {
	matches := budgetPattern.FindAllString(lower, -1)

	fallback := 0
	for _, m := range matches {
		dollar := strings.HasPrefix(m, "$")
		n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimPrefix(m, "$"), ",", ""))
		if err != nil || n < minBudget || n > maxBudget {
			continue
		}
		if dollar {
			return n, true
		}
		if fallback == 0 {
			fallback = n
		}
	}
	if fallback != 0 {
		return fallback, true
	}
	return 0, false
}

// extractTravelDates looks for a month name (full or three-letter,
// case-insensitive) and returns the surrounding phrase verbatim, e.g.
// "July 15th" or "mid-January". Dates are stored as text, never normalized
// to a calendar date.
func extractTravelDates(original, lower string) (string, bool) {
	for i, month := range monthNames {
		if !strings.Contains(lower, month) {
			continue
		}
		if m := monthPatterns[i].FindString(original); m != "" {
			return m, true
		}
		return month, true
	}
	return "", false
}
