// wrapping.go - Unicode grapheme-width-aware line wrapping (§4.6).
//
// Grounded in original_source/src/snippet/src/wrapping.rs: a snippet line
// that would overflow the terminal width is broken at display-column
// boundaries, measured with github.com/mattn/go-runewidth rather than a
// bare rune or byte count, so wide (CJK) and zero-width characters wrap
// correctly.
package diffyml

import "github.com/mattn/go-runewidth"

// WrapLine breaks line into one or more strings, each at most width
// display columns wide. A width of zero or less disables wrapping.
func WrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	var current []rune
	currentWidth := 0

	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > width && len(current) > 0 {
			out = append(out, string(current))
			current = nil
			currentWidth = 0
		}
		current = append(current, r)
		currentWidth += rw
	}
	if len(current) > 0 || len(out) == 0 {
		out = append(out, string(current))
	}

	return out
}

// WrapLines applies WrapLine to every line, preserving line order.
func WrapLines(lines []string, width int) []string {
	var out []string
	for _, l := range lines {
		out = append(out, WrapLine(l, width)...)
	}
	return out
}
