// Package easynews implements the search client for the Easynews global
// search API.
package easynews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"easyfrench/pkg/config"
	"easyfrench/pkg/logger"
)

const (
	// DefaultBaseURL is the Easynews members host. Overridable for tests.
	DefaultBaseURL = "https://members.easynews.com"

	searchPath     = "/2.0/search/solr-search/"
	resultsPerPage = 100
	searchTimeout  = 15 * time.Second
)

// Record is one raw search result. Size is 0 when the backend omitted the
// field or sent something unparsable.
type Record struct {
	Hash     string
	Filename string
	Size     int64
}

// Client queries the Easynews search API. Credentials are per-request (they
// come from the resolved Config), so one client serves all users.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an Easynews search client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   searchTimeout,
			Transport: transport,
		},
	}
}

// BaseURL returns the configured Easynews host, used when building stream
// locators so tests against a mock server produce matching URLs.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search issues one search request and returns the raw candidate records.
// Any transport, auth or decode failure degrades to an empty list; nothing
// propagates past this boundary. Failures are logged for operational
// visibility.
func (c *Client) Search(ctx context.Context, query string, cfg config.Config) []Record {
	records, err := c.search(ctx, query, cfg)
	if err != nil {
		logger.Error("Easynews search failed", "query", query, "err", err)
		return nil
	}
	return records
}

func (c *Client) search(ctx context.Context, query string, cfg config.Config) ([]Record, error) {
	params := url.Values{}
	params.Set("gps", query)
	params.Set("sbj", query)
	params.Set("fty", "VIDEO")
	params.Set("fex", "mkv,mp4,avi")
	params.Set("s1", "dsize")
	params.Set("s1d", "-")
	params.Set("s2", "nrfile")
	params.Set("s2d", "-")
	params.Set("s3", "dtime")
	params.Set("s3d", "-")
	params.Set("pby", strconv.Itoa(resultsPerPage))
	params.Set("u", "1")
	params.Set("st", "adv")
	params.Set("safeO", "0")

	searchURL := fmt.Sprintf("%s%s?%s", c.baseURL, searchPath, params.Encode())

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(cfg.Username, cfg.Password)
	req.Header.Set("User-Agent", "EasyFrench/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("Easynews rejected credentials")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search failed with status %d: %s", resp.StatusCode, string(body))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return mapRecords(payload), nil
}

// searchResponse is the API response envelope. Entries in data can be either
// JSON objects or positional arrays depending on the API mode, so they are
// decoded lazily.
type searchResponse struct {
	Data []interface{} `json:"data"`
}

// Array-form entry positions: 0 hash, 10 filename, 11 ext, 12 size.
const (
	arrHash     = 0
	arrFilename = 10
	arrExt      = 11
	arrSize     = 12
)

// mapRecords converts raw response entries to Records, dropping entries with
// no hash and obvious non-candidates (sample files).
func mapRecords(payload searchResponse) []Record {
	records := make([]Record, 0, len(payload.Data))

	for _, entry := range payload.Data {
		var rec Record

		switch v := entry.(type) {
		case []interface{}:
			if len(v) <= arrFilename {
				continue
			}
			if hash, ok := v[arrHash].(string); ok {
				rec.Hash = hash
			}
			if filename, ok := v[arrFilename].(string); ok {
				rec.Filename = filename
			}
			if len(v) > arrExt {
				if ext, ok := v[arrExt].(string); ok && ext != "" {
					if !strings.HasPrefix(ext, ".") {
						ext = "." + ext
					}
					rec.Filename += ext
				}
			}
			if len(v) > arrSize {
				rec.Size = coerceSize(v[arrSize])
			}
		case map[string]interface{}:
			if hash, ok := v["hash"].(string); ok {
				rec.Hash = hash
			}
			if filename, ok := v["filename"].(string); ok {
				rec.Filename = filename
			}
			if raw, ok := v["rawSize"]; ok {
				rec.Size = coerceSize(raw)
			} else if raw, ok := v["size"]; ok {
				rec.Size = coerceSize(raw)
			}
		default:
			continue
		}

		if rec.Hash == "" {
			continue
		}
		if strings.Contains(strings.ToLower(rec.Filename), "sample") {
			continue
		}

		records = append(records, rec)
	}

	return records
}

// coerceSize parses a size field that may arrive as a number or a string.
// Unparsable values coerce to 0.
func coerceSize(raw interface{}) int64 {
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
