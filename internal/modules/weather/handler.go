package weather

import (
	"errors"
	"net/http"

	"guesthouse/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CardResponse always comes back with 200; ok=false carries the text for
// the error card.
type CardResponse struct {
	OK      bool    `json:"ok"`
	Weather *Report `json:"weather,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/weather", h.Current)
}

// Current godoc
// @Summary Current weather at the guesthouse
// @Tags weather
// @Produce json
// @Success 200 {object} response.Envelope{data=CardResponse}
// @Router /weather [get]
func (h *Handler) Current(c *gin.Context) {
	report, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.Success(c, http.StatusOK, CardResponse{Error: errorText(err)})
		return
	}
	response.Success(c, http.StatusOK, CardResponse{OK: true, Weather: report})
}

func errorText(err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return msgNotConfigured
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Unable to load weather data: " + err.Error()
}
