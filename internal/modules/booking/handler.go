package booking

import (
	"errors"
	"net/http"

	"guesthouse/internal/pkg/response"
	"guesthouse/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgBookingReceived = "Thank you for your booking request! We will contact you shortly."
	msgEmailFailed     = "Booking saved! Email notification failed: "
)

type Handler struct {
	service  *Service
	notifier ReceivedNotifier
	log      *zap.Logger
}

func NewHandler(service *Service, notifier ReceivedNotifier, log *zap.Logger) *Handler {
	return &Handler{service: service, notifier: notifier, log: log.Named("booking.handler")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
}

// CreateBooking handles the contact form. The booking is saved first; the
// acknowledgement email is best effort and its failure is reported, not fatal.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	fields := req.fields()
	if errs := validator.Validate(CreateBookingRequest{Email: fields.Email, Phone: fields.Phone}); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please enter a valid email and phone number", errs)
		return
	}

	b, err := h.service.SubmitBooking(c.Request.Context(), fields)
	if err != nil {
		var verr *ValidationError
		var werr *RemoteWriteError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields", gin.H{"missing": verr.Missing})
		case errors.As(err, &werr):
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to submit booking. Please try again.")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	out := CreateBookingResponse{
		Booking: BookingSummary{ID: b.ID, Status: string(b.Status)},
	}

	message := msgBookingReceived
	if h.notifier != nil {
		if err := h.notifier.NotifyBookingReceived(c.Request.Context(), *b); err != nil {
			h.log.Warn("booking received email failed", zap.String("booking_id", b.ID), zap.Error(err))
			message = msgEmailFailed + err.Error()
		} else {
			out.EmailSent = true
		}
	}

	response.SuccessWithMessage(c, http.StatusCreated, out, message)
}
