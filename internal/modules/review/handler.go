package review

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/rating"
	"guesthouse/internal/pkg/response"
	"guesthouse/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log.Named("review.handler")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews", h.List)
	rg.GET("/reviews/categories", h.Categories)
}

func (h *Handler) RegisterWriteRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
}

// List returns the seed reviews followed by the stored ones.
// @Summary		List reviews
// @Description	Seed reviews first, then guest reviews in submission order, with the reviews-screen rating summary. If the store cannot be read only the seed reviews are returned.
// @Tags		Reviews
// @Success		200	{object}	map[string]interface{}
// @Router		/reviews [GET]
func (h *Handler) List(c *gin.Context) {
	live := true
	stored, err := h.svc.ListReviews(c.Request.Context())
	if err != nil {
		h.log.Warn("stored reviews unavailable", zap.Error(err))
		stored, live = nil, false
	}

	summary := rating.ReviewsScreenSummary(SeedReviews(), stored)
	response.Success(c, http.StatusOK, ReviewListResponse{
		Reviews:        WithSeed(stored),
		Summary:        summary,
		AverageDisplay: summary.Display(),
		Live:           live,
	})
}

// Create submits a guest review.
// @Summary		Write a review
// @Tags		Reviews
// @Param		request	body	CreateReviewRequest	true	"name, rating 1-5, comment, category"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		503	{object}	map[string]interface{}
// @Router		/reviews [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5", errs)
		return
	}
	if cat := strings.TrimSpace(req.Category); cat != "" && !slices.Contains(domain.ReviewCategories, cat) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown review category", gin.H{"categories": domain.ReviewCategories})
		return
	}

	rv, err := h.svc.SubmitReview(c.Request.Context(), ReviewFields{
		Name:     req.Name,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Category: req.Category,
	})
	if err != nil {
		var verr *ValidationError
		var werr *RemoteWriteError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all fields", gin.H{"missing": verr.Missing})
		case errors.As(err, &werr):
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to submit review. Please try again.")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit review")
		}
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, rv, "Thank you for your review!")
}

func (h *Handler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"categories": domain.ReviewCategories,
		"default":    domain.DefaultReviewCategory,
	})
}
