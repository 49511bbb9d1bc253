package catalog

import (
	"context"
	"net/http"
	"strconv"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// InterestRecorder stores a room-card booking request.
type InterestRecorder interface {
	SubmitRoomInterest(ctx context.Context, room domain.Room) (*domain.Booking, error)
}

type Handler struct {
	service  *Service
	interest InterestRecorder
}

func NewHandler(service *Service, interest InterestRecorder) *Handler {
	return &Handler{service: service, interest: interest}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id", h.GetRoom)
}

// RegisterWriteRoutes mounts the endpoints that write to the store; the
// router puts them behind the rate limiter.
func (h *Handler) RegisterWriteRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms/:id/interest", h.RecordInterest)
}

// ListRooms handles GET /api/v1/rooms?size=&min_capacity=&max_price=
func (h *Handler) ListRooms(c *gin.Context) {
	f := RoomFilter{Size: c.Query("size")}

	// unparsable numbers fall back to "no filter"
	if v, err := strconv.Atoi(c.Query("min_capacity")); err == nil {
		f.MinCapacity = v
	}
	if v, err := strconv.Atoi(c.Query("max_price")); err == nil {
		f.MaxPrice = v
	}

	items := h.service.List(f)
	lo, hi := h.service.PriceRange()
	response.Success(c, http.StatusOK, RoomListResponse{
		Rooms:    items,
		Showing:  len(items),
		Total:    h.service.Total(),
		MinPrice: lo,
		MaxPrice: hi,
	})
}

func (h *Handler) GetRoom(c *gin.Context) {
	room, ok := h.roomFromParam(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, room)
}

// RecordInterest handles POST /api/v1/rooms/:id/interest
func (h *Handler) RecordInterest(c *gin.Context) {
	room, ok := h.roomFromParam(c)
	if !ok {
		return
	}

	b, err := h.interest.SubmitRoomInterest(c.Request.Context(), room)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to send booking request. Please try again.")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, gin.H{
		"booking": gin.H{"id": b.ID, "status": b.Status},
	}, "Booking request sent for "+room.Name+"! We will contact you shortly.")
}

func (h *Handler) roomFromParam(c *gin.Context) (domain.Room, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return domain.Room{}, false
	}

	room, err := h.service.GetByID(id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		return domain.Room{}, false
	}
	return room, true
}
