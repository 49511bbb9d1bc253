package domain

const DefaultReviewCategory = "Guest"

// ReviewCategories is the closed set offered by the review form.
var ReviewCategories = []string{
	"Guest",
	"Couple",
	"Family",
	"Business Traveler",
	"Solo Traveler",
	"Group",
}

type Review struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
	Category string `json:"category"`
}
