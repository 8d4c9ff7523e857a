// Package parser extracts structured release details from filenames using
// go-ptt. This supplements the display-label extraction in pkg/quality with
// details the rule tables do not cover (release group, container, channels,
// HDR tags).
package parser

import (
	"github.com/MunifTanjim/go-ptt"
)

// ParsedRelease contains parsed metadata from a release filename.
type ParsedRelease struct {
	Title     string
	Codec     string
	Audio     []string
	Channels  []string
	HDR       []string
	Container string
	Group     string
	Languages []string
	ThreeD    string
}

// ParseFilename parses a release filename using go-ptt.
func ParseFilename(filename string) *ParsedRelease {
	info := ptt.Parse(filename)

	return &ParsedRelease{
		Title:     info.Title,
		Codec:     info.Codec,
		Audio:     info.Audio,
		Channels:  info.Channels,
		HDR:       info.HDR,
		Container: info.Container,
		Group:     info.Group,
		Languages: info.Languages,
		ThreeD:    info.ThreeD,
	}
}
