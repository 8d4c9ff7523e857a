package stremio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"easyfrench/pkg/cache"
	"easyfrench/pkg/config"
	"easyfrench/pkg/easynews"
	"easyfrench/pkg/logger"
	"easyfrench/pkg/quality"
)

func serverDefaults() config.Config {
	return config.Config{
		Username:     "alice",
		Password:     "s3cret",
		MaxResults:   20,
		MinQuality:   quality.Tier720p,
		CacheEnabled: true,
	}
}

func tokenFor(t *testing.T, fields map[string]any) string {
	t.Helper()
	return config.EncodeToken(fields)
}

// newTestServer wires a full addon server against a mock Easynews backend and
// returns both ends plus the request counter.
func newTestServer(t *testing.T, backendBody string) (*httptest.Server, *int) {
	t.Helper()
	logger.Init("DEBUG")

	searches := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searches++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(backendBody))
	}))
	t.Cleanup(backend.Close)

	srv := NewServer(serverDefaults(), easynews.NewClient(backend.URL), nil,
		cache.New[[]Stream](time.Minute), "1.0.0")
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	addon := httptest.NewServer(mux)
	t.Cleanup(addon.Close)
	return addon, &searches
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	addon, _ := newTestServer(t, `{"data": []}`)

	var body map[string]string
	resp := getJSON(t, addon.URL+"/health", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestManifestReflectsTokenConfig(t *testing.T) {
	addon, _ := newTestServer(t, `{"data": []}`)
	token := tokenFor(t, map[string]any{"maxResults": 5, "minQuality": "1080p"})

	var manifest Manifest
	resp := getJSON(t, addon.URL+"/"+token+"/manifest.json", &manifest)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if manifest.ID != "community.easynews.french" {
		t.Errorf("manifest id = %q", manifest.ID)
	}
	if !strings.Contains(manifest.Description, "Max: 5") || !strings.Contains(manifest.Description, "Min: 1080p") {
		t.Errorf("description does not reflect token config: %q", manifest.Description)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestStreamPipeline(t *testing.T) {
	backendBody := `{"data": [
		["hash1", 1, 2, 3, 4, 5, 6, 7, 8, 9, "Movie.FRENCH.1080p.BluRay.x264", ".mkv", 4300000000],
		["hash2", 1, 2, 3, 4, 5, 6, 7, 8, 9, "Movie.GERMAN.1080p.BluRay.x264", ".mkv", 4300000000],
		["hash3", 1, 2, 3, 4, 5, 6, 7, 8, 9, "Movie.VOSTFR.480p.HDTV", ".avi", 700000000]
	]}`
	addon, _ := newTestServer(t, backendBody)
	token := tokenFor(t, map[string]any{})

	var body StreamResponse
	resp := getJSON(t, addon.URL+"/"+token+"/stream/movie/tt1234567.json", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	// Only the French 1080p release survives the 720p default minimum.
	if len(body.Streams) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(body.Streams))
	}
	s := body.Streams[0]
	if !strings.Contains(s.URL, "hash1") {
		t.Errorf("unexpected stream URL %q", s.URL)
	}
	if !strings.Contains(s.URL, "alice:s3cret@") {
		t.Errorf("credentials missing from locator %q", s.URL)
	}
	if s.BehaviorHints == nil || s.BehaviorHints.BingeGroup != "easynews-1080p" {
		t.Errorf("unexpected behaviorHints: %+v", s.BehaviorHints)
	}
}

func TestStreamCacheHit(t *testing.T) {
	backendBody := `{"data": [
		["hash1", 1, 2, 3, 4, 5, 6, 7, 8, 9, "Movie.FRENCH.1080p.BluRay.x264", ".mkv", 4300000000]
	]}`
	addon, searches := newTestServer(t, backendBody)
	token := tokenFor(t, map[string]any{})

	getJSON(t, addon.URL+"/"+token+"/stream/movie/tt1234567.json", nil)
	getJSON(t, addon.URL+"/"+token+"/stream/movie/tt1234567.json", nil)

	if *searches != 1 {
		t.Errorf("expected 1 backend search, got %d", *searches)
	}
}

func TestStreamCacheSeparatesEpisodes(t *testing.T) {
	logger.Init("DEBUG")

	// Backend answers per query so each episode has a distinct release.
	searches := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searches++
		episode := "S01E01"
		hash := "ep1hash"
		if strings.Contains(r.URL.Query().Get("gps"), "S01E02") {
			episode = "S01E02"
			hash = "ep2hash"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data": [["%s", 1, 2, 3, 4, 5, 6, 7, 8, 9, "Show.%s.FRENCH.1080p.WEB-DL", ".mkv", 4300000000]]}`, hash, episode)
	}))
	t.Cleanup(backend.Close)

	srv := NewServer(serverDefaults(), easynews.NewClient(backend.URL), nil,
		cache.New[[]Stream](time.Minute), "1.0.0")
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)
	addon := httptest.NewServer(mux)
	t.Cleanup(addon.Close)

	token := tokenFor(t, map[string]any{})

	var ep1, ep2 StreamResponse
	getJSON(t, addon.URL+"/"+token+"/stream/series/tt123:1:1.json", &ep1)
	getJSON(t, addon.URL+"/"+token+"/stream/series/tt123:1:2.json", &ep2)

	if searches != 2 {
		t.Errorf("expected one backend search per episode, got %d", searches)
	}
	if len(ep1.Streams) != 1 || len(ep2.Streams) != 1 {
		t.Fatalf("expected 1 stream each, got %d and %d", len(ep1.Streams), len(ep2.Streams))
	}
	if !strings.Contains(ep1.Streams[0].URL, "ep1hash") {
		t.Errorf("episode 1 got wrong locator %q", ep1.Streams[0].URL)
	}
	if !strings.Contains(ep2.Streams[0].URL, "ep2hash") {
		t.Errorf("episode 2 served episode 1's cached locator: %q", ep2.Streams[0].URL)
	}

	// Repeating an episode request still hits its own cached entry.
	getJSON(t, addon.URL+"/"+token+"/stream/series/tt123:1:2.json", nil)
	if searches != 2 {
		t.Errorf("expected cache hit on repeat episode request, got %d searches", searches)
	}
}

func TestStreamCacheDisabled(t *testing.T) {
	addon, searches := newTestServer(t, `{"data": []}`)
	token := tokenFor(t, map[string]any{"cacheEnabled": false})

	getJSON(t, addon.URL+"/"+token+"/stream/movie/tt1234567.json", nil)
	getJSON(t, addon.URL+"/"+token+"/stream/movie/tt1234567.json", nil)

	if *searches != 2 {
		t.Errorf("expected 2 backend searches with caching off, got %d", *searches)
	}
}

func TestStreamEmptyResultStillValidJSON(t *testing.T) {
	addon, _ := newTestServer(t, `{"data": []}`)
	token := tokenFor(t, map[string]any{})

	var body StreamResponse
	resp := getJSON(t, addon.URL+"/"+token+"/stream/movie/tt0000000.json", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Streams == nil {
		t.Error("streams must be an empty array, not null")
	}
	if len(body.Streams) != 0 {
		t.Errorf("expected no streams, got %d", len(body.Streams))
	}
}

func TestStreamInvalidPath(t *testing.T) {
	addon, _ := newTestServer(t, `{"data": []}`)
	token := tokenFor(t, map[string]any{})

	resp, err := http.Get(addon.URL + "/" + token + "/stream/movie.json")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
