package stremio

import (
	"encoding/json"
	"fmt"

	"easyfrench/pkg/config"
)

// Manifest represents the Stremio addon manifest
type Manifest struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Resources   []string  `json:"resources"`
	Types       []string  `json:"types"`
	Catalogs    []Catalog `json:"catalogs"`
	IDPrefixes  []string  `json:"idPrefixes,omitempty"`
	Background  string    `json:"background,omitempty"`
	Logo        string    `json:"logo,omitempty"`
}

// Catalog represents a content catalog
type Catalog struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewManifest creates the addon manifest, parametrized by the resolved
// per-request configuration.
func NewManifest(cfg config.Config, version string) *Manifest {
	if version == "" {
		version = "1.0.0"
	}
	return &Manifest{
		ID:          "community.easynews.french",
		Version:     version,
		Name:        "Easynews French Content",
		Description: fmt.Sprintf("Contenus français exclusifs via Easynews | Max: %d | Min: %s", cfg.MaxResults, cfg.MinQuality),
		Resources:   []string{"stream"},
		Types:       []string{"movie", "series"},
		Catalogs:    []Catalog{},
		IDPrefixes:  []string{"tt"},
		Logo:        "https://i.imgur.com/YQkWVsE.png",
		Background:  "https://i.imgur.com/7GqXYVP.jpg",
	}
}

// ToJSON converts manifest to JSON
func (m *Manifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
