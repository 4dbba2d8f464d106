// Package legis resolves citations to legislative text. A Code is an
// HTML publication of a legislative document; a TextQuoteSelector
// picks a passage out of a cited provision, producing an Enactment
// whose text is fully resolved before any comparison runs.
package legis

import (
	"fmt"
	"strings"
)

// TextQuoteSelector describes a passage by quoting it, or by quoting
// the text immediately before and after it. Modeled on the Web
// Annotation Data Model's text quote selector.
type TextQuoteSelector struct {
	Exact  string
	Prefix string
	Suffix string
}

// ParseSelector reads the pipe shorthand: "exact" alone, or
// "prefix|exact|suffix".
func ParseSelector(text string) (TextQuoteSelector, error) {
	switch parts := strings.Split(text, "|"); len(parts) {
	case 1:
		return TextQuoteSelector{Exact: parts[0]}, nil
	case 3:
		return TextQuoteSelector{Prefix: parts[0], Exact: parts[1], Suffix: parts[2]}, nil
	}
	return TextQuoteSelector{}, fmt.Errorf(
		"a selector must contain no pipe separator or exactly two, not %q", text)
}

// IsEmpty reports whether the selector selects the whole provision.
func (s TextQuoteSelector) IsEmpty() bool {
	return s.Exact == "" && s.Prefix == "" && s.Suffix == ""
}

// Select finds the passage the selector describes in text. Matching is
// case-insensitive; the returned passage keeps the source's casing.
func (s TextQuoteSelector) Select(text string) (string, error) {
	if s.IsEmpty() {
		return strings.TrimSpace(text), nil
	}
	if s.Exact != "" {
		start := s.findExact(text)
		if start < 0 {
			return "", fmt.Errorf("passage %q not found in the cited provision", s.Exact)
		}
		return text[start : start+len(s.Exact)], nil
	}
	start := 0
	if s.Prefix != "" {
		i := indexFold(text, strings.TrimSpace(s.Prefix))
		if i < 0 {
			return "", fmt.Errorf("prefix %q not found in the cited provision", s.Prefix)
		}
		start = i + len(strings.TrimSpace(s.Prefix))
	}
	end := len(text)
	if s.Suffix != "" {
		j := indexFold(text[start:], strings.TrimSpace(s.Suffix))
		if j < 0 {
			return "", fmt.Errorf("suffix %q not found in the cited provision", s.Suffix)
		}
		end = start + j
	}
	return strings.TrimSpace(text[start:end]), nil
}

// findExact locates the exact quote, requiring the prefix to appear
// before it and the suffix after it when they are given.
func (s TextQuoteSelector) findExact(text string) int {
	from := 0
	if s.Prefix != "" {
		i := indexFold(text, strings.TrimSpace(s.Prefix))
		if i < 0 {
			return -1
		}
		from = i + len(strings.TrimSpace(s.Prefix))
	}
	i := indexFold(text[from:], s.Exact)
	if i < 0 {
		return -1
	}
	start := from + i
	if s.Suffix != "" {
		rest := text[start+len(s.Exact):]
		if indexFold(rest, strings.TrimSpace(s.Suffix)) < 0 {
			return -1
		}
	}
	return start
}

func indexFold(haystack, needle string) int {
	return strings.Index(strings.ToLower(haystack), strings.ToLower(needle))
}
