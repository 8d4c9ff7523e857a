package stremio

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"easyfrench/pkg/cache"
	"easyfrench/pkg/config"
	"easyfrench/pkg/easynews"
	"easyfrench/pkg/logger"
	"easyfrench/pkg/search"
	"easyfrench/pkg/tmdb"
	"easyfrench/pkg/triage"
)

// Server is the Stremio addon HTTP server. The first path segment of every
// Stremio route is an opaque config token; credentials and preferences live
// in the token, so the server itself holds only process defaults and shared
// clients.
type Server struct {
	defaults   config.Config
	version    string
	client     *easynews.Client
	tmdbClient *tmdb.Client
	streams    *cache.Store[[]Stream]
	webHandler http.Handler
	apiHandler http.Handler
}

// NewServer creates the addon server.
func NewServer(defaults config.Config, client *easynews.Client, tmdbClient *tmdb.Client, streams *cache.Store[[]Stream], version string) *Server {
	if version == "" {
		version = "1.0.0"
	}
	return &Server{
		defaults:   defaults,
		version:    version,
		client:     client,
		tmdbClient: tmdbClient,
		streams:    streams,
	}
}

// SetWebHandler sets the handler for the static configuration page.
func (s *Server) SetWebHandler(h http.Handler) {
	s.webHandler = h
}

// SetAPIHandler sets the handler for /api requests.
func (s *Server) SetAPIHandler(h http.Handler) {
	s.apiHandler = h
}

// Version returns the addon version string.
func (s *Server) Version() string {
	return s.version
}

// SetupRoutes configures HTTP routes for the addon. Stremio routes carry the
// config token as their first path segment:
//
//	/{config}/manifest.json
//	/{config}/stream/{type}/{id}.json
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")

		switch {
		case path == "health":
			s.handleHealth(w, r)
			return
		case strings.HasPrefix(path, "api/"):
			if s.apiHandler != nil {
				s.apiHandler.ServeHTTP(w, r)
				return
			}
			http.NotFound(w, r)
			return
		case path == "":
			s.handleHome(w, r)
			return
		}

		token, rest, _ := strings.Cut(path, "/")
		switch {
		case rest == "manifest.json":
			s.handleManifest(w, r, token)
		case strings.HasPrefix(rest, "stream/"):
			s.handleStream(w, r, token, strings.TrimPrefix(rest, "stream/"))
		default:
			// Unknown paths fall through to the config page, so stale
			// bookmarks land somewhere useful.
			s.handleHome(w, r)
		}
	}))
}

// handleHome serves the embedded configuration page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if s.webHandler != nil {
		s.webHandler.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<h1>Easynews French Addon</h1><p>Interface web indisponible</p>"))
}

// handleHealth serves the liveness marker.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleManifest serves the addon manifest, parametrized by the token config.
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request, token string) {
	logger.Debug("Manifest request", "remote", r.RemoteAddr)

	cfg := config.Resolve(token, s.defaults)
	manifest := NewManifest(cfg, s.version)

	data, err := manifest.ToJSON()
	if err != nil {
		http.Error(w, "Failed to generate manifest", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(data)
}

// handleStream runs the search pipeline for /stream/{type}/{id}.json. The
// worst outcome a client ever sees is an empty stream list.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request, token, rest string) {
	cfg := config.Resolve(token, s.defaults)

	contentType, id, ok := strings.Cut(strings.TrimSuffix(rest, ".json"), "/")
	if !ok || id == "" {
		http.Error(w, "Invalid stream URL", http.StatusBadRequest)
		return
	}

	// id is colon-delimited: <mediaId>[:season[:episode]]
	idParts := strings.Split(id, ":")
	mediaID := idParts[0]
	var season, episode string
	if len(idParts) > 1 {
		season = idParts[1]
	}
	if len(idParts) > 2 {
		episode = idParts[2]
	}

	logger.Info("Stream request", "type", contentType, "id", mediaID, "season", season, "episode", episode)

	// The full colon-delimited id goes into the key; episodes of one show
	// produce different stream lists and must not share an entry.
	key := cache.Key(contentType, id, cfg.Username)
	if cfg.CacheEnabled {
		if cached, hit := s.streams.Get(key); hit {
			logger.Debug("Cache hit", "key", key, "streams", len(cached))
			writeStreams(w, cached)
			return
		}
	}

	query := search.BuildQuery(s.resolveTitle(contentType, mediaID), contentType, season, episode)
	records := s.client.Search(r.Context(), query, cfg)
	logger.Debug("Search results", "query", query, "count", len(records))

	candidates := triage.Filter(records, cfg)
	streams := AssembleStreams(candidates, cfg, s.host())

	if cfg.CacheEnabled {
		s.streams.Set(key, streams)
	}

	writeStreams(w, streams)
}

// resolveTitle turns a media id into search text. With a TMDB key configured,
// IMDb ids resolve to the real title; otherwise the raw id is searched as-is.
func (s *Server) resolveTitle(contentType, mediaID string) string {
	if s.tmdbClient == nil || !s.tmdbClient.Configured() || !strings.HasPrefix(mediaID, "tt") {
		return mediaID
	}

	var title string
	var err error
	if contentType == search.TypeSeries {
		title, err = s.tmdbClient.TVShowName(mediaID)
	} else {
		title, err = s.tmdbClient.MovieTitle(mediaID)
	}
	if err != nil {
		logger.Debug("Title resolution failed, searching raw id", "id", mediaID, "err", err)
		return mediaID
	}
	return title
}

// host returns the Easynews host for stream locators.
func (s *Server) host() string {
	if u, err := url.Parse(s.client.BaseURL()); err == nil && u.Host != "" {
		return u.Host
	}
	return "members.easynews.com"
}

func writeStreams(w http.ResponseWriter, streams []Stream) {
	if streams == nil {
		streams = []Stream{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(StreamResponse{Streams: streams})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
