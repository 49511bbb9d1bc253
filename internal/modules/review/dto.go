package review

import (
	"guesthouse/internal/domain"
	"guesthouse/internal/modules/rating"
)

type CreateReviewRequest struct {
	Name     string `json:"name"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Comment  string `json:"comment"`
	Category string `json:"category"`
}

type ReviewListResponse struct {
	Reviews        []domain.Review `json:"reviews"`
	Summary        rating.Summary  `json:"summary"`
	AverageDisplay string          `json:"average_display"`
	// Live is false when only the seed reviews could be shown.
	Live bool `json:"live"`
}
