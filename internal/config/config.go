package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultDatabaseURL    = "file:guesthouse.db?cache=shared"
	defaultStoreDriver    = "gorm"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "12h"
	defaultHTTPTimeout    = "10s"
	defaultRateLimitRPS   = "2"
	defaultRateLimitBurst = "5"
	defaultEmailTransport = "emailjs"
	defaultEmailJSURL     = "https://api.emailjs.com/api/v1.0/email/send"
	defaultAccuWeatherURL = "https://dataservice.accuweather.com"
	defaultWeatherCity    = "Kimberley"
	defaultWeatherCountry = "ZA"
	defaultGeminiModel    = "gemini-2.0-flash-exp"
	defaultGuesthouseName = "SenateWay Guesthouse"
	defaultGuesthouseMail = "vanessa141169@yahoo.com"
	defaultGuesthouseTel  = "+27 82 927 8907"

	maxConfigFileSize = 1024 * 1024
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	StoreDriver string
	LogLevel    string
	LogFormat   string

	JWTSecret         string
	JWTTTL            time.Duration
	AdminEmail        string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	HTTPTimeout        time.Duration

	Guesthouse GuesthouseConfig
	Email      EmailConfig
	Weather    WeatherConfig
	Chatbot    ChatbotConfig
}

type GuesthouseConfig struct {
	Name  string
	Email string
	Phone string
}

type EmailConfig struct {
	Transport string
	EmailJS   EmailJSConfig
	SMTP      SMTPConfig
}

type EmailJSConfig struct {
	Endpoint            string
	ServiceID           string
	ReceivedTemplateID  string
	ConfirmedTemplateID string
	PublicKey           string
	AccessToken         string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type WeatherConfig struct {
	APIKey    string
	BaseURL   string
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

type ChatbotConfig struct {
	GeminiAPIKey string
	Model        string
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE,
// then the process environment. Later sources win. YAML keys are the
// lowercased environment names, e.g. emailjs_service_id.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	return fromKoanf(k)
}

func loadFile(k *koanf.Koanf, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	get := func(name, fallback string) string {
		if v := strings.TrimSpace(k.String(name)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{}
	cfg.AppEnv = strings.ToLower(get("app_env", get("env", "dev")))
	cfg.HTTPAddr = get("http_addr", defaultHTTPAddr)
	cfg.DatabaseURL = get("database_url", defaultDatabaseURL)
	cfg.StoreDriver = strings.ToLower(get("store_driver", defaultStoreDriver))
	cfg.LogLevel = get("log_level", "info")
	cfg.LogFormat = get("log_format", defaultLogFormat(cfg.AppEnv))

	cfg.JWTSecret = get("jwt_secret", defaultJWTSecret)
	cfg.AdminEmail = strings.ToLower(get("admin_email", defaultGuesthouseMail))
	cfg.AdminPasswordHash = get("admin_password_hash", "")
	cfg.CORSAllowedOrigins = splitList(get("cors_allowed_origins", ""))

	var err error
	if cfg.JWTTTL, err = parseDuration("JWT_TTL", get("jwt_ttl", defaultJWTTTL)); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = parseDuration("HTTP_TIMEOUT", get("http_timeout", defaultHTTPTimeout)); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = parseFloat("RATE_LIMIT_RPS", get("rate_limit_rps", defaultRateLimitRPS)); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = parseInt("RATE_LIMIT_BURST", get("rate_limit_burst", defaultRateLimitBurst)); err != nil {
		return nil, err
	}

	cfg.Guesthouse = GuesthouseConfig{
		Name:  get("guesthouse_name", defaultGuesthouseName),
		Email: get("guesthouse_email", defaultGuesthouseMail),
		Phone: get("guesthouse_phone", defaultGuesthouseTel),
	}

	cfg.Email.Transport = strings.ToLower(get("email_transport", defaultEmailTransport))
	cfg.Email.EmailJS = EmailJSConfig{
		Endpoint:            get("emailjs_endpoint", defaultEmailJSURL),
		ServiceID:           get("emailjs_service_id", ""),
		ReceivedTemplateID:  get("emailjs_template_booking_received", ""),
		ConfirmedTemplateID: get("emailjs_template_booking_confirmed", ""),
		PublicKey:           get("emailjs_public_key", ""),
		AccessToken:         get("emailjs_access_token", ""),
	}
	cfg.Email.SMTP = SMTPConfig{
		Host:     get("smtp_host", ""),
		Username: get("smtp_username", ""),
		Password: get("smtp_password", ""),
		From:     get("smtp_from", cfg.Guesthouse.Email),
	}
	if cfg.Email.SMTP.Port, err = parseInt("SMTP_PORT", get("smtp_port", "587")); err != nil {
		return nil, err
	}

	cfg.Weather = WeatherConfig{
		APIKey:  get("accuweather_api_key", ""),
		BaseURL: get("accuweather_base_url", defaultAccuWeatherURL),
		City:    get("weather_city", defaultWeatherCity),
		Country: get("weather_country", defaultWeatherCountry),
	}
	if cfg.Weather.Latitude, err = parseFloat("WEATHER_LATITUDE", get("weather_latitude", "-28.7674381")); err != nil {
		return nil, err
	}
	if cfg.Weather.Longitude, err = parseFloat("WEATHER_LONGITUDE", get("weather_longitude", "24.7497489")); err != nil {
		return nil, err
	}

	cfg.Chatbot = ChatbotConfig{
		GeminiAPIKey: get("gemini_api_key", ""),
		Model:        get("gemini_model", defaultGeminiModel),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	if cfg.StoreDriver != "gorm" && cfg.StoreDriver != "memory" {
		return fmt.Errorf("STORE_DRIVER must be one of: gorm, memory")
	}
	if cfg.Email.Transport != "emailjs" && cfg.Email.Transport != "smtp" {
		return fmt.Errorf("EMAIL_TRANSPORT must be one of: emailjs, smtp")
	}
	if cfg.Email.Transport == "smtp" && cfg.Email.SMTP.Host == "" {
		return fmt.Errorf("SMTP_HOST is required when EMAIL_TRANSPORT=smtp")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.AdminPasswordHash == "" {
			return fmt.Errorf("in prod/release ADMIN_PASSWORD_HASH must be set")
		}
		if cfg.StoreDriver == "memory" {
			return fmt.Errorf("in prod/release STORE_DRIVER=memory is not allowed")
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool { return isProdLike(c.AppEnv) }

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func defaultLogFormat(appEnv string) string {
	if isProdLike(appEnv) {
		return "json"
	}
	return "console"
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
