package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "gorm", cfg.StoreDriver)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "emailjs", cfg.Email.Transport)
	assert.Equal(t, "https://api.emailjs.com/api/v1.0/email/send", cfg.Email.EmailJS.Endpoint)
	assert.Equal(t, "Kimberley", cfg.Weather.City)
	assert.Equal(t, "ZA", cfg.Weather.Country)
	assert.InDelta(t, -28.7674381, cfg.Weather.Latitude, 1e-9)
	assert.Equal(t, "gemini-2.0-flash-exp", cfg.Chatbot.Model)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guesthouse.yaml")
	content := []byte("emailjs_service_id: service_file\nweather_city: Bloemfontein\nsmtp_port: 2525\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("WEATHER_CITY", "Kimberley")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://senateway.co.za, https://admin.senateway.co.za")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "service_file", cfg.Email.EmailJS.ServiceID)
	assert.Equal(t, "Kimberley", cfg.Weather.City)
	assert.Equal(t, 2525, cfg.Email.SMTP.Port)
	assert.Equal(t, []string{"https://senateway.co.za", "https://admin.senateway.co.za"}, cfg.CORSAllowedOrigins)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad ttl":       {"JWT_TTL": "soon"},
		"zero ttl":      {"JWT_TTL": "0s"},
		"bad driver":    {"STORE_DRIVER": "firebase"},
		"bad transport": {"EMAIL_TRANSPORT": "pigeon"},
		"smtp no host":  {"EMAIL_TRANSPORT": "smtp"},
		"bad rate":      {"RATE_LIMIT_RPS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProdRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD_HASH")

	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
	assert.Equal(t, "json", cfg.LogFormat)
}
