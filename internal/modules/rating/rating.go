// Package rating derives the average-rating / review-count pair shown to
// guests. The home screen and the reviews screen use two different formulas;
// both are kept as separate functions on purpose and must not be merged.
package rating

import (
	"fmt"

	"guesthouse/internal/domain"
)

const (
	// SeedWeight is the number of synthetic seed reviews the home screen
	// blends in, each counted at SeedAverage.
	SeedWeight  = 6
	SeedAverage = 4.8

	// EmptyAverage is shown on the reviews screen when there are no reviews.
	EmptyAverage = 4.8
)

type Summary struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"total_reviews"`
}

// Display formats the average with one decimal, as shown on screen.
func (s Summary) Display() string {
	return fmt.Sprintf("%.1f", s.Average)
}

// HomePlaceholder is what the home screen shows before data arrives or when
// the store cannot be read.
func HomePlaceholder() Summary {
	return Summary{Average: SeedAverage, Count: SeedWeight}
}

// HomeSummary blends stored reviews with SeedWeight synthetic reviews rated
// SeedAverage. The real seed reviews are not consulted.
func HomeSummary(stored []domain.Review) Summary {
	sum := SeedWeight * SeedAverage
	for _, r := range stored {
		sum += float64(r.Rating)
	}
	n := len(stored) + SeedWeight
	return Summary{Average: sum / float64(n), Count: n}
}

// ReviewsScreenSummary is the plain mean over the seed reviews and the stored
// reviews, using each review's own rating.
func ReviewsScreenSummary(seed, stored []domain.Review) Summary {
	n := len(seed) + len(stored)
	if n == 0 {
		return Summary{Average: EmptyAverage, Count: 0}
	}

	sum := 0
	for _, r := range seed {
		sum += r.Rating
	}
	for _, r := range stored {
		sum += r.Rating
	}
	return Summary{Average: float64(sum) / float64(n), Count: n}
}
