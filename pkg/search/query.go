// Package search builds backend search queries from media titles.
package search

import (
	"fmt"
	"regexp"
)

// ContentType values accepted by BuildQuery (the stream URL path segment).
const (
	TypeMovie  = "movie"
	TypeSeries = "series"
)

var nonQueryChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// BuildQuery sanitizes a title into a backend search string. Everything
// outside letters, digits and whitespace is stripped. For series with both
// season and episode present, a zero-padded " SxxEyy" suffix is appended.
// Empty input yields an empty query.
func BuildQuery(title, contentType, season, episode string) string {
	query := nonQueryChars.ReplaceAllString(title, "")

	if contentType == TypeSeries && season != "" && episode != "" {
		query += fmt.Sprintf(" S%sE%s", pad2(season), pad2(episode))
	}

	return query
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
