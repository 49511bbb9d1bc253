package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guesthouse/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(email, role string) (string, error) {
	args := m.Called(email, role)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) TTL() time.Duration { return time.Hour }

func newTestService(t *testing.T, issuer tokenIssuer) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("kimberley"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService("Admin@SenateWay.co.za", string(hash), issuer, zap.NewNop())
}

func TestService_Login_Success(t *testing.T) {
	jwtSvc := new(mockJWTService)
	jwtSvc.On("GenerateToken", "admin@senateway.co.za", jwt.RoleAdmin).Return("login-token", nil)
	svc := newTestService(t, jwtSvc)

	res, err := svc.Login(context.Background(), " ADMIN@senateway.co.za", "kimberley")
	require.NoError(t, err)
	assert.Equal(t, "login-token", res.AccessToken)
	assert.Equal(t, time.Hour, res.ExpiresIn)
	jwtSvc.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc := newTestService(t, new(mockJWTService))

	_, err := svc.Login(context.Background(), "admin@senateway.co.za", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "someone@else.com", "kimberley")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_Lockout(t *testing.T) {
	jwtSvc := new(mockJWTService)
	jwtSvc.On("GenerateToken", mock.Anything, mock.Anything).Return("token", nil)
	svc := newTestService(t, jwtSvc)

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 1; i < maxFailedLoginAttempts; i++ {
		_, err := svc.Login(context.Background(), "admin@senateway.co.za", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := svc.Login(context.Background(), "admin@senateway.co.za", "wrong")
	require.ErrorIs(t, err, ErrAccountLocked)

	_, err = svc.Login(context.Background(), "admin@senateway.co.za", "kimberley")
	assert.ErrorIs(t, err, ErrAccountLocked)

	now = now.Add(lockoutDuration + time.Second)
	_, err = svc.Login(context.Background(), "admin@senateway.co.za", "kimberley")
	assert.NoError(t, err)
}

func TestService_Login_NotConfigured(t *testing.T) {
	svc := NewService("", "", new(mockJWTService), zap.NewNop())
	_, err := svc.Login(context.Background(), "a@b.co", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := jwt.New("test-secret", time.Hour)
	router := gin.New()
	NewHandler(newTestService(t, issuer)).RegisterRoutes(router.Group("/api/v1"))

	post := func(body map[string]string) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post(map[string]string{"email": "admin@senateway.co.za", "password": "kimberley"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.Data.TokenType)
	assert.Equal(t, int64(3600), resp.Data.ExpiresIn)

	claims, err := issuer.ValidateToken(resp.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)

	w = post(map[string]string{"email": "admin@senateway.co.za", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(map[string]string{"email": "admin@senateway.co.za"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
