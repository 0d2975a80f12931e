// snippet.go - The source-preserving Renderer (§4.6).
//
// Grounded in original_source/src/snippet/src/lib.rs: a Difference is
// rendered as a window of the original source text around its path's
// span (±contextLines relative lines), with a gutter line-number widget,
// optional side-by-side left/right columns (table_layout.go), and inline
// character-level diff highlighting for scalar Changed differences
// (inlinediff.go). Snippet lines are not wrapped: renderSingleSnippet
// passes width 0 to WrapLine, which disables wrapping, stacked Changed
// snippets are written as-is, and side-by-side cells are truncated to
// their column width.
package diffyml

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultContextLines is how many lines of unchanged source surround a
// Difference's own line in a snippet, on each side (§4.6).
const defaultContextLines = 5

// RenderOptions configures how Differences are rendered to text.
type RenderOptions struct {
	Color        *ColorConfig
	SideBySide   bool
	ContextLines int // 0 means defaultContextLines
}

func (o RenderOptions) contextLines() int {
	if o.ContextLines > 0 {
		return o.ContextLines
	}
	return defaultContextLines
}

// colorOrDefault returns o.Color, falling back to a disabled ColorConfig
// when none was set.
func (o RenderOptions) colorOrDefault() *ColorConfig {
	if o.Color != nil {
		return o.Color
	}
	return NewColorConfig(ColorModeNever, 0)
}

// RenderDifference renders one Difference as a header line plus a
// source-text snippet, using leftSource/rightSource (either may be nil,
// e.g. for an Added difference with no left-side source) to locate the
// surrounding text.
func RenderDifference(d Difference, leftSource, rightSource *Source, opts RenderOptions) string {
	var sb strings.Builder
	cc := opts.Color
	if cc == nil {
		cc = NewColorConfig(ColorModeNever, 0)
	}

	sb.WriteString(cc.Paint(renderKind(d), headerLine(d)))
	sb.WriteString("\n")

	switch d.Kind {
	case DiffMoved:
		// A Moved difference is rendered as its header line alone: the
		// element itself carries no internal differences, so there is
		// nothing for a snippet window to usefully show (§4.6).
	case DiffChanged:
		sb.WriteString(renderChangedSnippet(d, leftSource, rightSource, opts, cc))
	case DiffAdded:
		sb.WriteString(renderSingleSnippet(d.Path, rightSource, DiffAdded, opts, cc))
	case DiffRemoved:
		sb.WriteString(renderSingleSnippet(d.Path, leftSource, DiffRemoved, opts, cc))
	}

	return sb.String()
}

func renderKind(d Difference) DiffKind { return d.Kind }

func headerLine(d Difference) string {
	switch d.Kind {
	case DiffAdded:
		return "Added: " + d.Path.JQLike() + ":"
	case DiffRemoved:
		return "Removed: " + d.Path.JQLike() + ":"
	case DiffMoved:
		return fmt.Sprintf("Moved: from %s to %s:", d.OriginalPath.JQLike(), d.NewPath.JQLike())
	default:
		return "Changed: " + d.Path.JQLike() + ":"
	}
}

// renderSingleSnippet renders a single-column snippet around path in
// source, colored as kind.
func renderSingleSnippet(path Path, source *Source, kind DiffKind, opts RenderOptions, cc *ColorConfig) string {
	lines, gutterWidth, ok := snippetLines(source, path, opts.contextLines())
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, gl := range lines {
		sb.WriteString(gutter(gl.number, gutterWidth))
		for _, wrapped := range WrapLine(gl.text, 0) {
			if gl.isTarget {
				sb.WriteString(cc.Paint(kind, wrapped))
			} else {
				sb.WriteString(cc.PaintContext(wrapped))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderChangedSnippet renders a Changed difference as the ordinary
// snippet window on each side: stacked left-then-right with gutter line
// numbers, or side-by-side when requested and both sides resolve, in
// which case rows carry no line numbers and a context row shows only the
// left side's text.
// When both sides are plain scalars, the target line within that window
// is additionally emphasized character-by-character via InlineDiff,
// which strips the shared "key: " prefix on its own (commonPrefix) —
// the surrounding context lines and gutter are untouched either way.
func renderChangedSnippet(d Difference, leftSource, rightSource *Source, opts RenderOptions, cc *ColorConfig) string {
	leftLines, leftWidth, leftOKSnip := snippetLines(leftSource, d.Path, opts.contextLines())
	rightLines, rightWidth, rightOKSnip := snippetLines(rightSource, d.Path, opts.contextLines())

	if leftOKSnip && rightOKSnip {
		if _, leftScalar := scalarText(d.Left); leftScalar {
			if _, rightScalar := scalarText(d.Right); rightScalar {
				markInlineDiff(leftLines, rightLines)
			}
		}
	}

	var sb strings.Builder

	if opts.SideBySide && leftOKSnip && rightOKSnip {
		renderSideBySide(&sb, leftLines, rightLines, cc)
		return sb.String()
	}

	if leftOKSnip {
		sb.WriteString(renderGutterLines(leftLines, leftWidth, DiffRemoved, cc))
	}
	if rightOKSnip {
		sb.WriteString(renderGutterLines(rightLines, rightWidth, DiffAdded, cc))
	}
	return sb.String()
}

// markInlineDiff runs InlineDiff over the target line's raw text on each
// side, annotating that one gutterLine in place with the resulting
// chunks so the renderer emphasizes only the changed characters instead
// of painting the whole line one flat color.
func markInlineDiff(leftLines, rightLines []gutterLine) {
	li := targetLineIndex(leftLines)
	ri := targetLineIndex(rightLines)
	if li < 0 || ri < 0 {
		return
	}
	leftChunks, rightChunks := InlineDiff(leftLines[li].text, rightLines[ri].text)
	leftLines[li].inline = leftChunks
	rightLines[ri].inline = rightChunks
}

func targetLineIndex(lines []gutterLine) int {
	for i, gl := range lines {
		if gl.isTarget {
			return i
		}
	}
	return -1
}

func renderGutterLines(lines []gutterLine, width int, kind DiffKind, cc *ColorConfig) string {
	var sb strings.Builder
	for _, gl := range lines {
		sb.WriteString(gutter(gl.number, width))
		switch {
		case gl.inline != nil:
			sb.WriteString(RenderInline(gl.inline, cc))
		case gl.isTarget:
			sb.WriteString(cc.Paint(kind, gl.text))
		default:
			sb.WriteString(cc.PaintContext(gl.text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderSideBySide(sb *strings.Builder, left, right []gutterLine, cc *ColorConfig) {
	layout := newColumnLayout(cc.Width())
	if layout == nil {
		sb.WriteString(renderGutterLines(left, gutterWidthFor(left), DiffRemoved, cc))
		sb.WriteString(renderGutterLines(right, gutterWidthFor(right), DiffAdded, cc))
		return
	}
	layout.zipGutterColumns(sb, left, right, DiffRemoved, DiffAdded, cc)
}

// gutterLine is one line of a snippet window, annotated with its
// document-relative line number and whether it is the Difference's own
// target line (as opposed to surrounding context).
type gutterLine struct {
	number   Line
	text     string
	isTarget bool
	// inline is set only on a scalar Changed difference's target line,
	// overriding plain-color painting with character-level emphasis.
	inline []InlineChunk
}

// snippetLines selects the ±contextLines window of lines around path's
// span within source, returning the gutter width needed for the largest
// line number in the window.
func snippetLines(source *Source, path Path, contextLines int) ([]gutterLine, int, bool) {
	if source == nil {
		return nil, 0, false
	}
	targetLine, ok := source.RelativeLineFor(path)
	if !ok {
		return nil, 0, false
	}

	allLines := source.Lines()
	target := int(targetLine)

	start := target - contextLines
	if start < 1 {
		start = 1
	}
	end := target + contextLines
	if end > len(allLines) {
		end = len(allLines)
	}

	lines := make([]gutterLine, 0, end-start+1)
	for n := start; n <= end; n++ {
		if n-1 < 0 || n-1 >= len(allLines) {
			continue
		}
		lines = append(lines, gutterLine{number: NewLine(n), text: allLines[n-1], isTarget: n == target})
	}

	return lines, gutterWidthFor(lines), true
}

func gutterWidthFor(lines []gutterLine) int {
	width := 1
	for _, gl := range lines {
		if w := len(strconv.Itoa(int(gl.number))); w > width {
			width = w
		}
	}
	return width
}

func gutter(n Line, width int) string {
	return fmt.Sprintf("%*d | ", width, int(n))
}

// scalarText renders v as single-line text when it is a plain scalar
// (string/number/bool/nil); mappings and sequences return ok=false so
// callers fall back to a source-snippet rendering instead.
func scalarText(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "null", true
	case string:
		return t, true
	case bool, int, int64, uint64, float64, float32:
		return fmt.Sprintf("%v", t), true
	default:
		return "", false
	}
}
