package search

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		contentType string
		season      string
		episode     string
		want        string
	}{
		{
			name:        "movie keeps letters digits spaces",
			title:       "Movie Name 2023",
			contentType: TypeMovie,
			want:        "Movie Name 2023",
		},
		{
			name:        "punctuation stripped",
			title:       "L'Enfant & la Rivière: Part 2!",
			contentType: TypeMovie,
			want:        "LEnfant  la Rivire Part 2",
		},
		{
			name:        "series with season and episode",
			title:       "Show",
			contentType: TypeSeries,
			season:      "1",
			episode:     "2",
			want:        "Show S01E02",
		},
		{
			name:        "series with double digit numbers",
			title:       "Show",
			contentType: TypeSeries,
			season:      "12",
			episode:     "34",
			want:        "Show S12E34",
		},
		{
			name:        "series without episode gets no suffix",
			title:       "Show",
			contentType: TypeSeries,
			season:      "1",
			want:        "Show",
		},
		{
			name:        "movie ignores season and episode",
			title:       "Movie",
			contentType: TypeMovie,
			season:      "1",
			episode:     "2",
			want:        "Movie",
		},
		{
			name:        "empty input yields empty query",
			title:       "",
			contentType: TypeMovie,
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.title, tt.contentType, tt.season, tt.episode)
			if got != tt.want {
				t.Errorf("BuildQuery(%q, %q, %q, %q) = %q, want %q",
					tt.title, tt.contentType, tt.season, tt.episode, got, tt.want)
			}
		})
	}
}
