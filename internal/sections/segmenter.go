// Package sections recovers bullet-style entries from a named section of
// line-oriented resume text, such as "Experience" or "Projects".
package sections

import (
	"strings"
)

// DefaultMaxEntries caps the number of entries returned for one section.
const DefaultMaxEntries = 12

// MatchMode selects how a line is recognized as a section header.
type MatchMode int

const (
	// MatchPrefix treats a line as a header when it starts with the header text.
	MatchPrefix MatchMode = iota
	// MatchSubstring treats a line as a header when it contains the header text
	// anywhere, so "My experience includes" also opens the section.
	MatchSubstring
)

// String returns the configuration name of the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	default:
		return "prefix"
	}
}

// ParseMatchMode parses "prefix" or "substring". Anything else yields MatchPrefix
// and false.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix", "":
		return MatchPrefix, true
	case "substring":
		return MatchSubstring, true
	default:
		return MatchPrefix, false
	}
}

// Options tunes a segmentation pass.
type Options struct {
	Mode       MatchMode
	MaxEntries int
}

// Option mutates Options.
type Option func(*Options)

// WithMatchMode sets the header match policy.
func WithMatchMode(mode MatchMode) Option {
	return func(o *Options) { o.Mode = mode }
}

// WithMaxEntries caps the result length. Values below one keep the default.
func WithMaxEntries(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxEntries = n
		}
	}
}

type state int

const (
	stateIdle state = iota
	stateCapturing
	stateDone
)

// bulletGlyphs are stripped from the start of entries along with any
// whitespace that follows them.
const bulletGlyphs = "-•*–—‣▪●◦"

// segmenter is the per-call scanning state.
type segmenter struct {
	headers []string
	stops   []string
	mode    MatchMode

	state   state
	buffer  []string
	entries []string
}

// ExtractEntries scans rawText for the first line matching one of
// sectionHeaders and collects the entries that follow it until a line starting
// with one of stopHeaders. Entries are separated by blank lines or by lines
// that begin with a bullet glyph; consecutive plain lines are joined with a
// single space. The result is deduplicated case-insensitively, capped, and
// never nil.
//
// A stop header that is itself one of sectionHeaders (or a prefix of one) is
// ignored for this pass, so a shared stop list can be reused for every section.
func ExtractEntries(rawText string, sectionHeaders, stopHeaders []string, opts ...Option) []string {
	o := Options{Mode: MatchPrefix, MaxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(rawText) == "" {
		return []string{}
	}

	s := &segmenter{
		headers: lowerAll(sectionHeaders),
		mode:    o.Mode,
		state:   stateIdle,
	}
	s.stops = effectiveStops(s.headers, lowerAll(stopHeaders))

	for _, line := range splitLines(rawText) {
		s.step(strings.TrimSpace(line))
		if s.state == stateDone {
			break
		}
	}
	s.flush()

	return dedupe(s.entries, o.MaxEntries)
}

func (s *segmenter) step(line string) {
	lower := strings.ToLower(line)

	if line != "" && s.isHeader(lower) {
		s.flush()
		s.state = stateCapturing
		return
	}

	if s.state != stateCapturing {
		return
	}

	switch {
	case line == "":
		s.flush()
	case hasAnyPrefix(lower, s.stops):
		s.flush()
		s.state = stateDone
	case startsWithBullet(line):
		s.flush()
		s.buffer = append(s.buffer, stripBullets(line))
	default:
		s.buffer = append(s.buffer, stripBullets(line))
	}
}

func (s *segmenter) isHeader(lower string) bool {
	if s.mode == MatchSubstring {
		for _, h := range s.headers {
			if strings.Contains(lower, h) {
				return true
			}
		}
		return false
	}
	return hasAnyPrefix(lower, s.headers)
}

// flush turns the buffered lines into one entry and clears the buffer.
func (s *segmenter) flush() {
	if len(s.buffer) == 0 {
		return
	}
	entry := stripBullets(strings.Join(strings.Fields(strings.Join(s.buffer, " ")), " "))
	if entry != "" {
		s.entries = append(s.entries, entry)
	}
	s.buffer = s.buffer[:0]
}

func effectiveStops(headers, stops []string) []string {
	out := make([]string, 0, len(stops))
	for _, stop := range stops {
		if stop == "" || hasAnyPrefixOf(stop, headers) {
			continue
		}
		out = append(out, stop)
	}
	return out
}

// hasAnyPrefixOf reports whether stop equals or is a prefix of any header.
func hasAnyPrefixOf(stop string, headers []string) bool {
	for _, h := range headers {
		if strings.HasPrefix(h, stop) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func startsWithBullet(line string) bool {
	for _, g := range bulletGlyphs {
		if strings.HasPrefix(line, string(g)) {
			return true
		}
	}
	return false
}

// stripBullets removes leading bullet glyphs and whitespace.
func stripBullets(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, bulletGlyphs+" \t"))
}

func dedupe(entries []string, limit int) []string {
	out := make([]string, 0, min(len(entries), limit))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
