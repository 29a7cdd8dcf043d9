package utils

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to text that had to be shortened
const Ellipsis = "…"

// Truncate cuts s to at most maxRunes runes, replacing the tail with an
// ellipsis when it had to cut. Whitespace is collapsed first.
func Truncate(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	cut := strings.TrimRight(string(runes[:maxRunes-1]), " ")
	return cut + Ellipsis
}

// MeasureFunc returns the rendered width of a string in the caller's units
type MeasureFunc func(string) float64

// Wrap breaks text into at most maxLines lines no wider than maxWidth.
// Words wider than a line are split by rune. When the text does not fit,
// the last line ends with an ellipsis.
func Wrap(text string, maxWidth float64, maxLines int, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines <= 0 || maxWidth <= 0 {
		return nil
	}

	var lines []string
	current := ""
	overflow := false

	push := func(line string) bool {
		if len(lines) == maxLines {
			overflow = true
			return false
		}
		lines = append(lines, line)
		return true
	}

	for i := 0; i < len(words); i++ {
		word := words[i]
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			if !push(current) {
				break
			}
			current = ""
			i--
			continue
		}
		// A single word wider than the line.
		head, tail := splitToWidth(word, maxWidth, measure)
		if !push(head) {
			break
		}
		if tail != "" {
			words[i] = tail
			i--
		}
	}
	if !overflow && current != "" {
		if !push(current) {
			overflow = true
		}
	}

	if overflow && len(lines) > 0 {
		last := len(lines) - 1
		lines[last] = withEllipsis(lines[last], maxWidth, measure)
	}
	return lines
}

// splitToWidth returns the longest rune prefix of word that fits, always at
// least one rune, and the remainder.
func splitToWidth(word string, maxWidth float64, measure MeasureFunc) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && measure(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

func withEllipsis(line string, maxWidth float64, measure MeasureFunc) string {
	runes := []rune(strings.TrimRight(line, " "))
	for len(runes) > 0 && measure(string(runes)+Ellipsis) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + Ellipsis
}
