// Package env consolidates all environment variable reading for the
// application. Values are read once at startup; nothing here is re-read at
// runtime.
package env

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names (single source of truth)
const (
	EasynewsUsernameVar = "EASYNEWS_USERNAME"
	EasynewsPasswordVar = "EASYNEWS_PASSWORD"
	MaxResultsVar       = "MAX_RESULTS"
	MinQualityVar       = "MIN_QUALITY"
	CacheEnabledVar     = "CACHE_ENABLED"
	CacheTTLSecondsVar  = "CACHE_TTL_SECONDS"
	AddonPortVar        = "ADDON_PORT"
	AddonBaseURLVar     = "ADDON_BASE_URL"
	LogLevelVar         = "LOG_LEVEL"
	TMDBAPIKeyVar       = "TMDB_API_KEY"
	DataDirVar          = "DATA_DIR"
	TZVar               = "TZ"
)

// TZ returns the TZ environment variable (e.g. for logger timezone).
func TZ() string {
	return os.Getenv(TZVar)
}

// LogLevel returns LOG_LEVEL with default "INFO" (for early logger init
// before settings are read).
func LogLevel() string {
	if v := os.Getenv(LogLevelVar); v != "" {
		return v
	}
	return "INFO"
}

// Settings holds all process-level settings that can be set via environment
// variables. Read once at startup by ReadSettings.
type Settings struct {
	EasynewsUsername string
	EasynewsPassword string
	MaxResults       int
	MinQuality       string
	CacheEnabled     bool
	CacheTTLSeconds  int
	AddonPort        int
	AddonBaseURL     string
	LogLevel         string
	TMDBAPIKey       string
}

// ReadSettings reads all relevant environment variables once and returns the
// process settings, with defaults applied for anything unset.
func ReadSettings() Settings {
	s := Settings{
		EasynewsUsername: os.Getenv(EasynewsUsernameVar),
		EasynewsPassword: os.Getenv(EasynewsPasswordVar),
		MaxResults:       getEnvInt(MaxResultsVar, 20),
		MinQuality:       getEnv(MinQualityVar, "720p"),
		CacheEnabled:     getEnvBool(CacheEnabledVar, true),
		CacheTTLSeconds:  getEnvInt(CacheTTLSecondsVar, 21600),
		AddonPort:        getEnvInt(AddonPortVar, 7000),
		AddonBaseURL:     os.Getenv(AddonBaseURLVar),
		LogLevel:         LogLevel(),
		TMDBAPIKey:       os.Getenv(TMDBAPIKeyVar),
	}
	if s.AddonBaseURL == "" {
		s.AddonBaseURL = "http://localhost:" + strconv.Itoa(s.AddonPort)
	}
	return s
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.ToLower(v) == "true" || v == "1"
	}
	return defaultVal
}
