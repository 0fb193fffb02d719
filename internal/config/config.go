package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// APIURL is the base URL of the Package Factory backend (e.g. http://localhost:8080).
	APIURL string

	// Env is "dev" (default) or "prod". When "prod", cookies are marked Secure.
	Env string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the console listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// TimeZone names the location used to group activities by calendar date and
	// to render timestamps. "Local" (default) uses the host zone.
	TimeZone string

	// ActivityLimit bounds the activity history request (default 100).
	ActivityLimit int

	// LogLimit is the default number of log entries requested (default 100).
	LogLimit int

	// SessionTTL is how long an idle directory session is kept (default 60 minutes).
	SessionTTL time.Duration

	// FormRatePerMinute limits form posts per client IP (default 60).
	FormRatePerMinute int
}

func Load() Config {
	return Config{
		Port:   getEnv("PF_WEB_PORT", "3000"),
		APIURL: getEnv("PF_API_URL", "http://localhost:8080"),
		Env:    getEnv("PF_ENV", "dev"),

		// Optional TLS configuration for HTTPS.
		TLSCertFile: getEnv("PF_TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("PF_TLS_KEY_FILE", ""),

		LogFormat: getEnv("PF_LOG_FORMAT", "text"),
		TimeZone:  getEnv("PF_TIME_ZONE", "Local"),

		ActivityLimit:     getEnvInt("PF_ACTIVITY_LIMIT", 100),
		LogLimit:          getEnvInt("PF_LOG_LIMIT", 100),
		SessionTTL:        time.Duration(getEnvInt("PF_SESSION_TTL_MINUTES", 60)) * time.Minute,
		FormRatePerMinute: getEnvInt("PF_FORM_RATE_PER_MINUTE", 60),
	}
}

// Location resolves TimeZone, falling back to time.Local when it is unknown.
func (c Config) Location() *time.Location {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// TLSEnabled reports whether both TLS files are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
