// Package textsplit breaks long outbound replies into transport-sized chunks.
//
// WhatsApp imposes a per-message character ceiling, so a multi-stock analysis
// has to go out as several messages. Split prefers "nice" break points
// (write-up separators, blank lines, sentence ends) over mid-word cuts, and
// labels multi-part output with (i/n) ordinals so reading order survives
// delivery.
package textsplit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidChunkSize reports a non-positive size limit. That is a caller
// bug, not an input condition, so it fails loudly instead of clamping.
var ErrInvalidChunkSize = errors.New("textsplit: max chunk size must be positive")

// breakMarker is a candidate split pattern. keep is how many of the pattern's
// runes stay at the end of the chunk; consume is how many are dropped at the
// boundary. Pattern runes beyond keep+consume begin the next chunk.
type breakMarker struct {
	pattern []rune
	keep    int
	consume int
}

// Ranked most preferred first. The "\n\n---\n\n" separator is what the
// analysis generator places between independent stock write-ups.
var breakMarkers = []breakMarker{
	{pattern: []rune("\n\n---\n\n"), keep: 0, consume: 7},
	{pattern: []rune("\n\n"), keep: 0, consume: 2},
	{pattern: []rune("\n*"), keep: 0, consume: 1},
	{pattern: []rune("\n-"), keep: 0, consume: 1},
	{pattern: []rune("\n•"), keep: 0, consume: 1},
	{pattern: []rune("\n"), keep: 0, consume: 1},
	{pattern: []rune(". "), keep: 1, consume: 1},
	{pattern: []rune(", "), keep: 1, consume: 1},
	{pattern: []rune(" "), keep: 0, consume: 1},
}

// Split cuts body into ordered chunks of at most maxChunkSize runes each.
//
// A break is taken at the highest-ranked marker whose cut point lands in the
// 70%–100% window of the limit; if no marker qualifies there, the cut is made
// exactly at the limit, on a rune boundary. When more than one chunk results,
// every chunk gets an "(i/n) " prefix. The limit applies to chunk content
// before prefixing; callers must budget headroom for the prefix.
//
// The limit counts runes, not bytes, so Devanagari and Gujarati text is
// never cut inside a codepoint.
func Split(body string, maxChunkSize int) ([]string, error) {
	if maxChunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}

	runes := []rune(body)
	if len(runes) == 0 {
		return nil, nil
	}
	if len(runes) <= maxChunkSize {
		return []string{body}, nil
	}

	var parts []string
	rest := runes
	for len(rest) > maxChunkSize {
		cut, resume := findBreak(rest, maxChunkSize)
		part := strings.TrimSpace(string(rest[:cut]))
		if part != "" {
			parts = append(parts, part)
		}
		rest = trimLeadingSpace(rest[resume:])
	}
	if tail := strings.TrimSpace(string(rest)); tail != "" {
		parts = append(parts, tail)
	}

	if len(parts) > 1 {
		total := len(parts)
		for i, p := range parts {
			parts[i] = fmt.Sprintf("(%d/%d) %s", i+1, total, p)
		}
	}
	return parts, nil
}

// findBreak picks the split for text known to exceed limit. cut is the
// exclusive end of the chunk content, resume the start of the remainder.
func findBreak(runes []rune, limit int) (cut, resume int) {
	threshold := limit * 7 / 10

	for _, m := range breakMarkers {
		// Scan backward so the latest qualifying occurrence wins.
		for i := limit - m.keep; i >= 0; i-- {
			end := i + m.keep
			if end < threshold || end < 1 {
				break
			}
			if i+len(m.pattern) > len(runes) {
				continue
			}
			if matchAt(runes, i, m.pattern) {
				return end, i + m.keep + m.consume
			}
		}
	}

	// No nice boundary in the window: hard cut at the limit.
	return limit, limit
}

func matchAt(runes []rune, pos int, pattern []rune) bool {
	for j, r := range pattern {
		if runes[pos+j] != r {
			return false
		}
	}
	return true
}

func trimLeadingSpace(runes []rune) []rune {
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return runes[i:]
}
