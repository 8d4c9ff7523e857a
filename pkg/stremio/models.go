package stremio

// StreamResponse represents the response to a stream request
type StreamResponse struct {
	Streams []Stream `json:"streams"`
}

// Stream represents a single stream option
type Stream struct {
	// Display name in Stremio (left-side badge)
	Name string `json:"name,omitempty"`

	// Multi-line technical details shown in the Stremio UI
	Title string `json:"title,omitempty"`

	// URL for direct streaming (HTTP video file)
	URL string `json:"url,omitempty"`

	BehaviorHints *BehaviorHints `json:"behaviorHints,omitempty"`
}

// BehaviorHints provides hints to Stremio about stream behavior
type BehaviorHints struct {
	NotWebReady bool   `json:"notWebReady"`
	BingeGroup  string `json:"bingeGroup,omitempty"`
}
