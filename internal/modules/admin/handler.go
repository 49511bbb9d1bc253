package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/modules/notification"
	"guesthouse/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxAttachmentBytes = 2 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already behind JWT auth and the admin role.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/bookings", h.ListBookings)
	admin.PATCH("/bookings/:id/confirm", h.ConfirmBooking)
	admin.PATCH("/bookings/:id/decline", h.DeclineBooking)
	admin.DELETE("/bookings/:id", h.DeleteBooking)

	admin.GET("/analytics", h.GetAnalytics)
}

// ListBookings handles GET /admin/bookings?status=pending
func (h *Handler) ListBookings(c *gin.Context) {
	status := domain.BookingStatus(c.Query("status"))
	switch status {
	case "", domain.BookingPending, domain.BookingConfirmed, domain.BookingDeclined:
	default:
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "status must be pending, confirmed or declined")
		return
	}

	items, err := h.service.ListBookings(c.Request.Context(), status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, BookingListResponse{Bookings: items, Total: len(items)})
}

// ConfirmBooking confirms a pending booking and emails the guest.
// @Summary		Confirm booking
// @Description	Only pending bookings can be confirmed. If the email fails the booking stays confirmed and the message says so.
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	string	true	"Booking ID"
// @Param		attachment	formData	file	false	"PDF sent with the confirmation email"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/admin/bookings/{id}/confirm [PATCH]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	attachments, problem := readAttachment(c)
	if problem != "" {
		response.Error(c, http.StatusBadRequest, "INVALID_ATTACHMENT", problem)
		return
	}

	out, err := h.service.Confirm(c.Request.Context(), c.Param("id"), attachments...)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := ModerationResponse{Booking: out.Booking, EmailSent: out.EmailErr == nil}
	if out.EmailErr != nil {
		response.SuccessWithMessage(c, http.StatusOK, resp, "Booking confirmed, but email failed: "+out.EmailErr.Error())
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp, "Booking confirmed! Confirmation email sent to "+out.Booking.Email)
}

// readAttachment picks up an optional PDF sent as multipart field
// "attachment". A non-empty problem is the message for the admin.
func readAttachment(c *gin.Context) (attachments []notification.Attachment, problem string) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, ""
	}
	fh, err := c.FormFile("attachment")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, ""
	}
	if err != nil {
		return nil, "Failed to read attachment"
	}
	if fh.Size > maxAttachmentBytes {
		return nil, "Attachment must be 2 MB or smaller"
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "Failed to read attachment"
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAttachmentBytes))
	if err != nil {
		return nil, "Failed to read attachment"
	}
	if http.DetectContentType(data) != "application/pdf" {
		return nil, "Attachment must be a PDF"
	}
	return []notification.Attachment{notification.PDFAttachment(data, fh.Filename)}, ""
}

func (h *Handler) DeclineBooking(c *gin.Context) {
	b, err := h.service.Decline(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, ModerationResponse{Booking: b}, "Booking declined")
}

// DeleteBooking handles DELETE /admin/bookings/:id?confirm=true
func (h *Handler) DeleteBooking(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, gin.H{"id": c.Param("id")}, "Booking deleted")
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	out, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var rerr *booking.RemoteReadError
	var werr *booking.RemoteWriteError

	switch {
	case errors.Is(err, booking.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Only pending bookings can be confirmed or declined")
	case errors.Is(err, ErrConfirmationRequired):
		response.Error(c, http.StatusBadRequest, "CONFIRMATION_REQUIRED", "Pass confirm=true to delete this booking permanently")
	case errors.As(err, &rerr), errors.As(err, &werr):
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Booking store is unavailable. Please try again.")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
