// table_layout.go - Column layout for side-by-side snippet rendering
// (§4.6, §9's documented "stops at the shorter column" quirk).
//
// Column widths are computed from actual content width rather than a
// fixed split, using github.com/mattn/go-runewidth for grapheme-aware
// measurement (wide CJK characters, combining marks) instead of a bare
// rune count.
package diffyml

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	minTableColumnWidth   = 12
	separatorDisplay      = "  "
	separatorDisplayWidth = 2
	tableIndent           = 4
)

// columnLayout holds computed column widths for side-by-side rendering.
type columnLayout struct {
	indent    int
	separator string
	available int
}

// newColumnLayout builds a columnLayout for the given total terminal
// width, or nil when the terminal is too narrow for two side-by-side
// columns.
func newColumnLayout(totalWidth int) *columnLayout {
	available := totalWidth - tableIndent - separatorDisplayWidth
	if available/2 < minTableColumnWidth {
		return nil
	}
	return &columnLayout{indent: tableIndent, separator: separatorDisplay, available: available}
}

// computeWidths calculates adaptive left/right column widths from the
// actual lines to be rendered.
func (cl *columnLayout) computeWidths(leftLines, rightLines []string) (leftW, rightW int) {
	maxLeft := maxDisplayWidth(leftLines)
	maxRight := maxDisplayWidth(rightLines)

	if maxLeft == 0 {
		return 0, cl.available
	}
	if maxRight == 0 {
		return maxLeft, 0
	}
	if maxLeft+maxRight <= cl.available {
		return maxLeft, cl.available - maxLeft
	}

	total := maxLeft + maxRight
	leftW = cl.available * maxLeft / total
	if leftW < minTableColumnWidth {
		leftW = minTableColumnWidth
	}
	rightW = cl.available - leftW
	if rightW < minTableColumnWidth {
		rightW = minTableColumnWidth
		leftW = cl.available - rightW
	}
	return leftW, rightW
}

func maxDisplayWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}

// truncate truncates plain text (no ANSI escapes) to fit within width
// display columns, appending "…" when truncation occurs.
func (cl *columnLayout) truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// padRight pads s with spaces to width display columns.
func (cl *columnLayout) padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// zipGutterColumns renders two gutterLine snippets side by side, stopping
// at the shorter side rather than padding the longer one with blank rows
// (§9: a documented, preserved quirk rather than a bug). A
// row where neither side is the Difference's own target line renders as
// a single context-colored row of the left side's text (formatContextRow)
// instead of two separately-colored columns.
func (cl *columnLayout) zipGutterColumns(sb *strings.Builder, left, right []gutterLine, leftKind, rightKind DiffKind, cc *ColorConfig) {
	leftText := make([]string, len(left))
	for i, gl := range left {
		leftText[i] = gl.text
	}
	rightText := make([]string, len(right))
	for i, gl := range right {
		rightText[i] = gl.text
	}

	leftW, rightW := cl.computeWidths(leftText, rightText)
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		if !left[i].isTarget && !right[i].isTarget {
			cl.formatContextRow(sb, left[i].text, cc)
			continue
		}
		cl.formatRow(sb, left[i], right[i], leftKind, rightKind, leftW, rightW, cc)
	}
}

// formatRow renders a single side-by-side row. Three modes: both columns
// present, left-only (no separator, no padding), right-only. A gutterLine
// carrying inline chunks (a scalar Changed target line) renders via
// RenderInline instead of a flat Paint, bypassing truncation/padding.
func (cl *columnLayout) formatRow(sb *strings.Builder, left, right gutterLine, leftKind, rightKind DiffKind, leftW, rightW int, cc *ColorConfig) {
	sb.WriteString(strings.Repeat(" ", cl.indent))

	switch {
	case leftW > 0 && rightW > 0:
		sb.WriteString(cl.renderCell(left, leftKind, leftW, true, cc))
		sb.WriteString(cl.separator)
		sb.WriteString(cl.renderCell(right, rightKind, rightW, false, cc))
	case rightW == 0:
		sb.WriteString(cl.renderCell(left, leftKind, leftW, false, cc))
	default:
		sb.WriteString(cl.renderCell(right, rightKind, rightW, false, cc))
	}

	sb.WriteString("\n")
}

// renderCell renders one column of a row: inline-diff chunks verbatim
// when present, otherwise the plain text truncated (and, for the left
// column of a two-column row, padded) to width and painted kind.
func (cl *columnLayout) renderCell(gl gutterLine, kind DiffKind, width int, pad bool, cc *ColorConfig) string {
	if gl.inline != nil {
		return RenderInline(gl.inline, cc)
	}
	text := cl.truncate(gl.text, width)
	if pad {
		text = cl.padRight(text, width)
	}
	return cc.Paint(kind, text)
}

// formatContextRow renders a context line (unchanged text) spanning both
// columns.
func (cl *columnLayout) formatContextRow(sb *strings.Builder, text string, cc *ColorConfig) {
	sb.WriteString(strings.Repeat(" ", cl.indent))
	sb.WriteString(cc.PaintContext(text))
	sb.WriteString("\n")
}
