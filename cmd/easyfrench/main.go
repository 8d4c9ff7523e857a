package main

import (
	"fmt"
	"net/http"
	"time"

	"easyfrench/pkg/api"
	"easyfrench/pkg/cache"
	"easyfrench/pkg/config"
	"easyfrench/pkg/easynews"
	"easyfrench/pkg/env"
	"easyfrench/pkg/logger"
	"easyfrench/pkg/stremio"
	"easyfrench/pkg/tmdb"
	"easyfrench/pkg/web"

	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags.
var Version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	logger.Init(env.LogLevel())
	defer logger.Close()

	logger.Info("Starting Easynews French addon", "version", Version)

	settings := env.ReadSettings()
	defaults := config.DefaultsFromSettings(settings)
	if defaults.Username == "" || defaults.Password == "" {
		logger.Warn("No Easynews credentials in environment; clients must supply them in the config token")
	}

	client := easynews.NewClient("")
	tmdbClient := tmdb.NewClient(settings.TMDBAPIKey)
	if tmdbClient.Configured() {
		logger.Info("TMDB title resolution enabled")
	} else {
		logger.Info("No TMDB API key, searching raw media ids")
	}

	cacheTTL := cache.DefaultTTL
	if settings.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(settings.CacheTTLSeconds) * time.Second
	}
	streamCache := cache.New[[]stremio.Stream](cacheTTL)

	server := stremio.NewServer(defaults, client, tmdbClient, streamCache, Version)
	apiServer := api.NewServer(Version)
	server.SetWebHandler(web.Handler())
	server.SetAPIHandler(apiServer.Handler())

	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	addr := fmt.Sprintf(":%d", settings.AddonPort)
	logger.Info("Addon listening", "addr", addr)
	logger.Info("Configuration page", "url", settings.AddonBaseURL)

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", "err", err)
	}
}
