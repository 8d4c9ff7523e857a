// Package quality classifies release filenames: quality tier detection,
// desirability scoring, French-language detection and display metadata
// extraction. Everything here is a pure function of the filename text so it
// can be unit tested without network or cache state.
package quality

import (
	"regexp"
	"strconv"
	"strings"
)

// Tier is the ordered quality classification derived from filename tokens.
type Tier int

const (
	TierUnknown Tier = iota
	Tier480p
	Tier720p
	Tier1080p
	Tier4K
)

// String returns the display label for the tier.
func (t Tier) String() string {
	switch t {
	case Tier4K:
		return "4K"
	case Tier1080p:
		return "1080p"
	case Tier720p:
		return "720p"
	case Tier480p:
		return "480p"
	default:
		return "Unknown"
	}
}

// ParseTier maps a user-supplied tier name ("480p", "720p", "1080p", "4k")
// to a Tier. Unrecognized names return TierUnknown and ok=false so callers
// can fall back to a default instead of silently filtering everything out.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "4k", "2160p":
		return Tier4K, true
	case "1080p":
		return Tier1080p, true
	case "720p":
		return Tier720p, true
	case "480p":
		return Tier480p, true
	case "unknown":
		return TierUnknown, true
	}
	return TierUnknown, false
}

// rule is one entry of an ordered classification table. Within a category the
// first rule whose token matches wins; categories are additive for scoring.
type rule struct {
	tokens []string
	points int
	label  string
}

var resolutionRules = []rule{
	{tokens: []string{"2160P", "4K", "UHD"}, points: 1000, label: "4K"},
	{tokens: []string{"1080P"}, points: 500, label: "1080p"},
	{tokens: []string{"720P"}, points: 250, label: "720p"},
	{tokens: []string{"480P"}, points: 100, label: "480p"},
}

var codecRules = []rule{
	{tokens: []string{"HEVC", "H265", "X265"}, points: 100, label: "HEVC"},
	{tokens: []string{"AVC", "H264", "X264"}, points: 50, label: "H264"},
}

var sourceRules = []rule{
	{tokens: []string{"REMUX"}, points: 90, label: "REMUX"},
	{tokens: []string{"BLURAY"}, points: 80, label: "BluRay"},
	{tokens: []string{"WEB-DL"}, points: 70, label: "WEB-DL"},
	{tokens: []string{"WEBRIP"}, points: 60, label: "WEBRip"},
	{tokens: []string{"HDTV"}, points: 40, label: "HDTV"},
}

var audioRules = []rule{
	{tokens: []string{"ATMOS"}, points: 30, label: "Atmos"},
	{tokens: []string{"TRUEHD"}, points: 30, label: "TrueHD"},
	{tokens: []string{"DTS"}, points: 20, label: "DTS"},
	{tokens: []string{"AC3"}, points: 15, label: "AC3"},
	{tokens: []string{"DD5.1"}, points: 15, label: "DD5.1"},
	{tokens: []string{"AAC"}, points: 10, label: "AAC"},
}

// frenchKeywords is the fixed keyword set for language matching. Substring
// match without word boundaries, so short tokens like "FR" or "MULTI" can
// match inside unrelated text. That is the upstream contract.
var frenchKeywords = []string{
	"FRENCH", "FR", "VF", "VFF", "VFQ", "TRUEFRENCH",
	"MULTI.FRENCH", "MULTI.FR", "MULTI",
	"VOSTFR", "SUBFRENCH",
}

// langRules override the default FRENCH label, in priority order.
var langRules = []rule{
	{tokens: []string{"TRUEFRENCH"}, label: "TRUEFRENCH"},
	{tokens: []string{"MULTI"}, label: "MULTI"},
	{tokens: []string{"VOSTFR"}, label: "VOSTFR"},
	{tokens: []string{"VFF"}, label: "VFF"},
	{tokens: []string{"VFQ"}, label: "VFQ"},
}

// sizeTokenRe matches an inline size hint like "8.5 GB" or "12Go".
var sizeTokenRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(GB|GO)`)

// firstMatch returns the first rule whose tokens match fn (already uppercased).
func firstMatch(rules []rule, fn string) (rule, bool) {
	for _, r := range rules {
		for _, tok := range r.tokens {
			if strings.Contains(fn, tok) {
				return r, true
			}
		}
	}
	return rule{}, false
}

// DetectTier derives the quality tier from a filename. Higher tiers win
// regardless of token order within the name.
func DetectTier(filename string) Tier {
	fn := strings.ToUpper(filename)
	if r, ok := firstMatch(resolutionRules, fn); ok {
		switch r.label {
		case "4K":
			return Tier4K
		case "1080p":
			return Tier1080p
		case "720p":
			return Tier720p
		case "480p":
			return Tier480p
		}
	}
	return TierUnknown
}

// Score computes the desirability score for a filename. Each category
// contributes its best matching rule; categories add up. A size token adds
// min(gigabytes*2, 50), kept fractional so close sizes still rank apart.
// The score is only used for ranking and is never exposed to clients.
func Score(filename string) float64 {
	fn := strings.ToUpper(filename)
	score := 0.0

	for _, cat := range [][]rule{resolutionRules, codecRules, sourceRules, audioRules} {
		if r, ok := firstMatch(cat, fn); ok {
			score += float64(r.points)
		}
	}

	if m := sizeTokenRe.FindStringSubmatch(fn); m != nil {
		if gb, err := strconv.ParseFloat(m[1], 64); err == nil {
			bonus := gb * 2
			if bonus > 50 {
				bonus = 50
			}
			score += bonus
		}
	}

	return score
}

// IsFrench reports whether the filename carries any French-audio/subtitle
// keyword.
func IsFrench(filename string) bool {
	fn := strings.ToUpper(filename)
	for _, kw := range frenchKeywords {
		if strings.Contains(fn, kw) {
			return true
		}
	}
	return false
}

// Metadata holds display labels extracted from a filename. Fields with no
// matching token are empty strings, except Lang which defaults to FRENCH.
type Metadata struct {
	Quality string
	Codec   string
	Audio   string
	Source  string
	Lang    string
}

// Extract derives display metadata from a filename. First matching rule wins
// per field; the fields are independent of each other.
func Extract(filename string) Metadata {
	fn := strings.ToUpper(filename)
	meta := Metadata{Lang: "FRENCH"}

	if r, ok := firstMatch(resolutionRules, fn); ok {
		meta.Quality = r.label
	}
	if r, ok := firstMatch(codecRules, fn); ok {
		meta.Codec = r.label
	}
	if r, ok := firstMatch(audioRules, fn); ok {
		meta.Audio = r.label
	}
	if r, ok := firstMatch(sourceRules, fn); ok {
		meta.Source = r.label
	}
	if r, ok := firstMatch(langRules, fn); ok {
		meta.Lang = r.label
	}

	return meta
}
