package engine

import "github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/profile"

// Customer-facing copy. The wording is part of the product; edit with
// marketing, not alone.

// Welcome greets a brand-new conversation. Served by the chat CLI and the
// web widget before the first customer message.
const Welcome = "Hi! I'm your Brazil transformation consultant. What draws you to Brazil? 🇧🇷"

var profileDetectedResponses = map[profile.Label]string{
	profile.Cultural:  "Perfect! I can see you're a Cultural Seeker. Rio and Salvador offer incredible authentic experiences. When are you thinking of traveling?",
	profile.Adventure: "Fantastic! You have an Adventure Spirit. Brazil's nature is calling you - from Amazon rainforest to pristine beaches. What's your ideal travel timeframe?",
	profile.Spiritual: "Wonderful! I sense you're on a Spiritual Journey. Brazil has amazing retreats and sacred spaces. When would you like to embark on this transformative experience?",
	profile.Luxury:    "Excellent! You appreciate the finer things - I can curate an exclusive luxury experience. What dates work best for your premium Brazilian getaway?",
}

const (
	responseBookingConfirmed = "Excellent! I'm processing your booking now. You'll receive confirmation details shortly. Welcome to your Brazilian adventure! 🎉"
	responsePackageReady     = "Perfect! I found excellent options for your dates. Here's a personalized package that matches your style and budget:"
	responseAskBudget        = "What's your approximate budget for this transformative Brazilian experience?"
	responseAskDates         = "Great budget! When would you like to travel? I can check real-time availability for those dates."
	responseEarlyPrompt      = "Tell me more about what kind of Brazilian experience you're looking for. Are you interested in culture, adventure, relaxation, or luxury?"
	responseGenericPrompt    = "I'd love to help you plan the perfect Brazilian journey! Could you tell me more about your travel dates and budget?"
)

// bookingIntentPhrases short-circuit the whole decision table: once a
// customer says any of these, the turn is a booking confirmation no
// matter what else the message contains.
var bookingIntentPhrases = []string{
	"yes", "book", "reserve", "confirm", "interested", "take it", "sounds good", "perfect",
}
