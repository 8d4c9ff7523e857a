// Package config holds the per-request addon configuration and the resolver
// that decodes a client-supplied token into one.
package config

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"easyfrench/pkg/env"
	"easyfrench/pkg/quality"
)

// Config is the fully resolved per-request configuration. It is constructed
// fresh for every inbound request and never mutated afterwards.
type Config struct {
	Username     string
	Password     string
	MaxResults   int
	MinQuality   quality.Tier
	CacheEnabled bool
}

// DefaultsFromSettings builds the process-default Config from startup
// settings. The result is passed by value into Resolve so there is no shared
// mutable default state.
func DefaultsFromSettings(s env.Settings) Config {
	tier, ok := quality.ParseTier(s.MinQuality)
	if !ok {
		tier = quality.Tier720p
	}
	maxResults := s.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	return Config{
		Username:     s.EasynewsUsername,
		Password:     s.EasynewsPassword,
		MaxResults:   maxResults,
		MinQuality:   tier,
		CacheEnabled: s.CacheEnabled,
	}
}

// tokenConfig is the JSON shape inside the base64 config token. Every field
// is optional; CacheEnabled is a pointer so an absent field is
// distinguishable from an explicit false.
type tokenConfig struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	MaxResults   int    `json:"maxResults"`
	MinQuality   string `json:"minQuality"`
	CacheEnabled *bool  `json:"cacheEnabled"`
}

// Resolve decodes an opaque config token into a Config. Each field falls back
// independently to the process defaults when absent or zero in the token.
// A token that fails to decode or parse yields the defaults unchanged; the
// caller never sees an error.
func Resolve(token string, defaults Config) Config {
	raw, err := decodeToken(token)
	if err != nil {
		return defaults
	}

	var tc tokenConfig
	if err := json.Unmarshal(raw, &tc); err != nil {
		return defaults
	}

	cfg := defaults
	if tc.Username != "" {
		cfg.Username = tc.Username
	}
	if tc.Password != "" {
		cfg.Password = tc.Password
	}
	if tc.MaxResults > 0 {
		cfg.MaxResults = tc.MaxResults
	}
	if tc.MinQuality != "" {
		if tier, ok := quality.ParseTier(tc.MinQuality); ok {
			cfg.MinQuality = tier
		}
	}
	if tc.CacheEnabled != nil {
		cfg.CacheEnabled = *tc.CacheEnabled
	}

	return cfg
}

// EncodeToken is the inverse of Resolve for the config page and tests.
func EncodeToken(tc map[string]any) string {
	raw, _ := json.Marshal(tc)
	return base64.StdEncoding.EncodeToString(raw)
}

// decodeToken accepts both standard and URL-safe base64, with or without
// padding.
func decodeToken(token string) ([]byte, error) {
	token = strings.ReplaceAll(token, "-", "+")
	token = strings.ReplaceAll(token, "_", "/")
	token = strings.TrimRight(token, "=")
	if padLen := (4 - len(token)%4) % 4; padLen > 0 {
		token += strings.Repeat("=", padLen)
	}
	return base64.StdEncoding.DecodeString(token)
}
