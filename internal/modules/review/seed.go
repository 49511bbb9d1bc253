package review

import "guesthouse/internal/domain"

var seedReviews = []domain.Review{
	{
		ID:       "1",
		Name:     "Tumelo Makowa",
		Rating:   5,
		Date:     "October 2025",
		Comment:  "Absolutely wonderful stay! The rooms were spotlessly clean and the staff went above and beyond to make us feel welcome. The swimming pool was a highlight, and the location is perfect for exploring Kimberley.",
		Category: "Couple",
	},
	{
		ID:       "2",
		Name:     "Sahil Ramesar",
		Rating:   5,
		Date:     "September 2025",
		Comment:  "Great value for money. The air conditioning worked perfectly, WiFi was fast, and having free parking made everything so convenient. Would definitely recommend to anyone visiting Kimberley.",
		Category: "Business Traveler",
	},
	{
		ID:       "3",
		Name:     "Wendy Westhuizen",
		Rating:   4,
		Date:     "September 2025",
		Comment:  "Lovely guesthouse with excellent facilities. The shared kitchen and BBQ area were great for our family gathering. Close to all major attractions and shopping centers.",
		Category: "Family",
	},
	{
		ID:       "4",
		Name:     "David Moyo",
		Rating:   5,
		Date:     "August 2025",
		Comment:  "The cleanliness and comfort exceeded expectations. Private bathroom was modern and well-maintained. The outdoor terrace is perfect for relaxing after a day of sightseeing.",
		Category: "Solo Traveler",
	},
	{
		ID:       "5",
		Name:     "Lisa Moodley",
		Rating:   5,
		Date:     "August 2025",
		Comment:  "Perfect location near the airport and city center. Staff support was exceptional - they helped us plan our entire itinerary. The rooms are modern and very comfortable.",
		Category: "Couple",
	},
	{
		ID:       "6",
		Name:     "James Merwe",
		Rating:   4,
		Date:     "July 2025",
		Comment:  "Highly rated for good reason. Clean, comfortable, and well-located. The outdoor fireplace area was a nice touch. Will definitely stay here again on our next visit.",
		Category: "Family",
	},
}

// SeedReviews returns the six compiled-in reviews. They never live in the
// store.
func SeedReviews() []domain.Review {
	out := make([]domain.Review, len(seedReviews))
	copy(out, seedReviews)
	return out
}

// WithSeed prepends the seed reviews to stored ones.
func WithSeed(stored []domain.Review) []domain.Review {
	out := make([]domain.Review, 0, len(seedReviews)+len(stored))
	out = append(out, seedReviews...)
	return append(out, stored...)
}
