package profile

import (
	"fmt"
	"strings"
)

// minMatches is the minimum number of keyword hits required before a
// profile is considered detected. A single incidental word ("I like local
// food") must not classify.
const minMatches = 2

// defaultKeywords maps each profile to the lowercase substrings that count
// towards its score. The lists are maintained by non-engineers; keep them
// flat and auditable.
var defaultKeywords = map[Label][]string{
	Cultural: {
		"authentic", "local", "traditional", "culture", "music", "dance",
		"real", "community", "samba", "capoeira", "history", "art", "festival",
	},
	Adventure: {
		"nature", "hiking", "beaches", "outdoor", "adventure", "sports",
		"active", "explore", "rainforest", "wildlife", "surfing", "diving",
	},
	Spiritual: {
		"spiritual", "peaceful", "meditation", "zen", "healing", "wellness",
		"mindful", "soul", "retreat", "yoga", "ceremony", "sacred",
	},
	Luxury: {
		"luxury", "comfort", "premium", "exclusive", "high-end", "vip",
		"first-class", "upscale", "resort", "spa", "concierge", "suite",
	},
}

// Classifier scores free-text messages against per-profile keyword sets.
// It is stateless and safe for concurrent use.
type Classifier struct {
	keywords map[Label][]string
}

// NewClassifier creates a Classifier using the built-in keyword sets.
func NewClassifier() *Classifier {
	c, err := NewClassifierWithKeywords(defaultKeywords)
	if err != nil {
		// The built-in tables are validated at init time; a failure here
		// is programmer error.
		panic(err)
	}
	return c
}

// NewClassifierWithKeywords creates a Classifier from custom keyword sets.
// Every known profile must have a non-empty, lowercase keyword list;
// malformed tables are rejected up front rather than per request.
func NewClassifierWithKeywords(keywords map[Label][]string) (*Classifier, error) {
	for _, label := range Labels {
		list := keywords[label]
		if len(list) == 0 {
			return nil, fmt.Errorf("profile %q has no keywords", label)
		}
		for _, kw := range list {
			if kw == "" {
				return nil, fmt.Errorf("profile %q has an empty keyword", label)
			}
			if kw != strings.ToLower(kw) {
				return nil, fmt.Errorf("profile %q keyword %q is not lowercase", label, kw)
			}
		}
	}
	return &Classifier{keywords: keywords}, nil
}

// Classify scores message against every profile's keyword list and returns
// the profile with the highest count, provided that count is at least two.
// Among equal maxima the first profile in Labels order wins; all-below-
// threshold returns ok=false. Absence of a match is an expected outcome,
// not an error.
//
// Matching is substring containment on the lowercased message, not word
// tokenization: "samba" inside "sambaland" still counts.
func (c *Classifier) Classify(message string) (Label, bool) {
	lower := strings.ToLower(message)

	best := Label("")
	bestScore := 0
	for _, label := range Labels {
		score := 0
		for _, kw := range c.keywords[label] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		// Strict > keeps the earliest label on ties.
		if score > bestScore {
			best, bestScore = label, score
		}
	}

	if bestScore < minMatches {
		return "", false
	}
	return best, true
}

// Score returns the raw keyword hit count for a single profile. Used by
// tests and the admin keyword tooling.
func (c *Classifier) Score(label Label, message string) int {
	lower := strings.ToLower(message)
	score := 0
	for _, kw := range c.keywords[label] {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}
