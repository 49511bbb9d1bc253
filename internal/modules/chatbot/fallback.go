package chatbot

import "strings"

const (
	Greeting = "Hello! I'm the Senate Way Guesthouse assistant. How can I help you today? Feel free to ask about our rooms, facilities, location, or anything else!"

	defaultReply = "Thank you for your question! For more detailed information or to make a booking, please contact us at +27 82 927 8907 or vanessa141169@yahoo.com. We're here to help make your stay memorable!"
)

var quickQuestions = []string{
	"What are your room rates?",
	"What facilities do you offer?",
	"How far from the airport?",
	"Do you have parking?",
	"What are check-in times?",
	"Is WiFi available?",
}

type rule struct {
	keywords []string
	reply    string
}

// Order matters: "What are your room rates?" must hit rates, not rooms.
var rules = []rule{
	{
		keywords: []string{"rate", "price", "cost"},
		reply:    "Our room rates range from R400 to R1600 per night, depending on the room type. Standard single rooms start at R400, while our Family Suite is R1600. Would you like more details about a specific room type?",
	},
	{
		keywords: []string{"wifi", "internet"},
		reply:    "Yes, we offer free high-speed WiFi throughout the property. All our rooms and common areas have excellent WiFi connectivity.",
	},
	{
		keywords: []string{"parking"},
		reply:    "Yes, we provide free private parking for all our guests. The parking area is on-site and secure.",
	},
	{
		keywords: []string{"airport", "distance"},
		reply:    "We're located about 6 km from Kimberley Airport, which is approximately a 10-minute drive. We're happy to help arrange transportation if needed.",
	},
	{
		keywords: []string{"check-in", "check in"},
		reply:    "Check-in time is 2:00 PM and check-out is 10:00 AM. If you need early check-in or late check-out, please contact us and we'll do our best to accommodate you.",
	},
	{
		keywords: []string{"facilities", "amenities"},
		reply:    "We offer free WiFi, free parking, a year-round outdoor swimming pool, shared kitchen, BBQ facilities, air conditioning, and modern bathrooms. Many rooms also have TVs, mini fridges, and coffee makers.",
	},
	{
		keywords: []string{"pool"},
		reply:    "Yes, we have a beautiful year-round outdoor swimming pool with a view. There's also a sun terrace where you can relax and enjoy the surroundings.",
	},
	{
		keywords: []string{"room", "accommodation"},
		reply:    "We have 10 comfortable rooms ranging from standard single rooms to family suites. All rooms have air conditioning, and most have private bathrooms. Would you like details about a specific room type?",
	},
}

// FallbackReply answers from the keyword table; the first matching rule wins.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return defaultReply
}

func QuickQuestions() []string {
	return append([]string(nil), quickQuestions...)
}
