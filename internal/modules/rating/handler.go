package rating

import (
	"context"
	"net/http"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewLister reads the stored reviews (seed reviews excluded).
type ReviewLister interface {
	ListReviews(ctx context.Context) ([]domain.Review, error)
}

type HomeResponse struct {
	Summary
	AverageDisplay string `json:"average_display"`
	Live           bool   `json:"live"`
}

type Handler struct {
	reviews ReviewLister
	log     *zap.Logger
}

func NewHandler(reviews ReviewLister, log *zap.Logger) *Handler {
	return &Handler{reviews: reviews, log: log.Named("rating.handler")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/home", h.Home)
}

// Home handles GET /api/v1/home. A store read failure is logged and answered
// with the placeholder summary; live is false in that case.
func (h *Handler) Home(c *gin.Context) {
	stored, err := h.reviews.ListReviews(c.Request.Context())
	if err != nil {
		h.log.Warn("reviews unavailable, using placeholder rating", zap.Error(err))
		s := HomePlaceholder()
		response.Success(c, http.StatusOK, HomeResponse{Summary: s, AverageDisplay: s.Display()})
		return
	}

	s := HomeSummary(stored)
	response.Success(c, http.StatusOK, HomeResponse{Summary: s, AverageDisplay: s.Display(), Live: true})
}
