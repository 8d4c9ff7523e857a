package stremio

import (
	"fmt"
	"net/url"
	"strings"

	"easyfrench/pkg/config"
	"easyfrench/pkg/parser"
	"easyfrench/pkg/quality"
	"easyfrench/pkg/triage"
)

// AssembleStreams converts the ranked candidate list into externally-shaped
// stream descriptors. host is the Easynews host the /dl/ locators point at.
// An empty candidate list yields an empty (non-nil) stream list.
func AssembleStreams(candidates []triage.Candidate, cfg config.Config, host string) []Stream {
	streams := make([]Stream, 0, len(candidates))

	for _, cand := range candidates {
		meta := quality.Extract(cand.Record.Filename)
		parsed := parser.ParseFilename(cand.Record.Filename)

		streams = append(streams, Stream{
			Name:  "Easynews",
			Title: buildTitle(cand, meta, parsed),
			URL:   buildStreamURL(cfg, host, cand.Record.Hash, cand.Record.Filename),
			BehaviorHints: &BehaviorHints{
				NotWebReady: false,
				BingeGroup:  "easynews-" + cand.Tier.String(),
			},
		})
	}

	return streams
}

// buildTitle renders the multi-line display block for one stream: quality,
// codec and source on one line, audio and size on the next, then release
// details parsed from the filename, then the language label.
func buildTitle(cand triage.Candidate, meta quality.Metadata, parsed *parser.ParsedRelease) string {
	lines := []string{"📺 Easynews"}

	techLine := joinNonEmpty(" ", cand.Tier.String(), meta.Codec, meta.Source)
	lines = append(lines, techLine)

	audio := meta.Audio
	if audio == "" {
		audio = "Unknown"
	}
	lines = append(lines, fmt.Sprintf("🎧 %s | 💾 %s", audio, FormatSize(cand.Record.Size)))

	if detail := joinNonEmpty(" • ", releaseGroup(parsed), container(parsed)); detail != "" {
		lines = append(lines, detail)
	}

	lines = append(lines, "🇫🇷 "+meta.Lang)

	return strings.Join(lines, "\n")
}

func releaseGroup(parsed *parser.ParsedRelease) string {
	if parsed == nil || parsed.Group == "" {
		return ""
	}
	return "👥 " + parsed.Group
}

func container(parsed *parser.ParsedRelease) string {
	if parsed == nil || parsed.Container == "" {
		return ""
	}
	return "📦 " + strings.ToUpper(parsed.Container)
}

// buildStreamURL builds the credential-embedded download locator:
// https://{user}:{pass}@{host}/dl/{hash}/{urlEncodedFilename}/
// Plaintext credentials in the URL are the external contract of the /dl/
// endpoint, not a choice made here.
func buildStreamURL(cfg config.Config, host, hash, filename string) string {
	return fmt.Sprintf("https://%s:%s@%s/dl/%s/%s/",
		cfg.Username, cfg.Password, host, hash, url.PathEscape(filename))
}

// FormatSize formats a raw byte count as gigabytes with two decimals.
func FormatSize(bytes int64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	return fmt.Sprintf("%.2f GB", gb)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
