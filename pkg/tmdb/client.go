// Package tmdb resolves IMDb identifiers to searchable titles via
// TheMovieDB. Optional: without an API key the addon searches on the raw
// IMDb id instead.
package tmdb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client for TheMovieDB API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a new TMDB client. An empty apiKey yields a client whose
// lookups fail fast; callers treat that as "no title available".
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.themoviedb.org/3",
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// findResponse is the response from /find/{id}.
type findResponse struct {
	MovieResults []result `json:"movie_results"`
	TVResults    []result `json:"tv_results"`
}

type result struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`  // TV
	Title string `json:"title"` // Movie
}

func (c *Client) find(imdbID string) (*findResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("TMDB API key not configured")
	}

	params := url.Values{}
	params.Set("external_source", "imdb_id")
	reqURL := fmt.Sprintf("%s/find/%s?%s", c.baseURL, imdbID, params.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TMDB find request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB returned status: %d", resp.StatusCode)
	}

	var fr findResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return &fr, nil
}

// MovieTitle returns the movie title for an IMDb id (tt123...).
func (c *Client) MovieTitle(imdbID string) (string, error) {
	fr, err := c.find(imdbID)
	if err != nil {
		return "", err
	}
	if len(fr.MovieResults) == 0 {
		return "", fmt.Errorf("no movie found for IMDb ID: %s", imdbID)
	}
	return fr.MovieResults[0].Title, nil
}

// TVShowName returns the TV show name for an IMDb id (tt123...).
func (c *Client) TVShowName(imdbID string) (string, error) {
	fr, err := c.find(imdbID)
	if err != nil {
		return "", err
	}
	if len(fr.TVResults) == 0 {
		return "", fmt.Errorf("no TV show found for IMDb ID: %s", imdbID)
	}
	return fr.TVResults[0].Name, nil
}
