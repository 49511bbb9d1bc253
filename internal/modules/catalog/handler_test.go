package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"guesthouse/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInterestRecorder struct {
	mock.Mock
}

func (m *MockInterestRecorder) SubmitRoomInterest(ctx context.Context, room domain.Room) (*domain.Booking, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func setupRouter(rec InterestRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(NewService(), rec)
	v1 := router.Group("/api/v1")
	h.RegisterRoutes(v1)
	h.RegisterWriteRoutes(v1)
	return router
}

type listResponse struct {
	Success bool             `json:"success"`
	Data    RoomListResponse `json:"data"`
}

func TestHandler_ListRooms_Filters(t *testing.T) {
	router := setupRouter(new(MockInterestRecorder))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms?size=large&min_capacity=4&max_price=1600", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Showing)
	assert.Equal(t, 10, resp.Data.Total)
	assert.Equal(t, []int{5, 10}, ids(resp.Data.Rooms))
}

func TestHandler_ListRooms_BadNumbersMeanNoFilter(t *testing.T) {
	router := setupRouter(new(MockInterestRecorder))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms?min_capacity=lots&max_price=cheap", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Data.Showing)
}

func TestHandler_GetRoom(t *testing.T) {
	router := setupRouter(new(MockInterestRecorder))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_RecordInterest(t *testing.T) {
	rec := new(MockInterestRecorder)
	rec.On("SubmitRoomInterest", mock.Anything, mock.MatchedBy(func(r domain.Room) bool { return r.ID == 4 })).
		Return(&domain.Booking{ID: "b-1", Status: domain.BookingPending}, nil)
	router := setupRouter(rec)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/rooms/4/interest", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "b-1")
	assert.Contains(t, w.Body.String(), "Twin Room")
	rec.AssertExpectations(t)
}

func TestHandler_RecordInterest_StoreDown(t *testing.T) {
	rec := new(MockInterestRecorder)
	rec.On("SubmitRoomInterest", mock.Anything, mock.Anything).Return(nil, errors.New("offline"))
	router := setupRouter(rec)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/rooms/1/interest", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "STORE_UNAVAILABLE")
}
