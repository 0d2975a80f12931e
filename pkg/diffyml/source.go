// source.go - Source: a parsed document annotated with file, raw text,
// and absolute/relative line spans.
//
// Grounded in the source project's source.rs loader. Reuses parseNodes
// (parser.go) and nodeToInterface (ordered_map.go) for the plain Value
// the diff engine consumes, and buildMarkedValue (markedvalue.go) for the
// span-carrying tree the Renderer needs to locate a Difference's path in
// the original text.
package diffyml

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is one parsed document plus everything the Renderer needs to
// find it again in the original file (§3, §4.1).
type Source struct {
	File            string
	RawContent      string
	Document        interface{} // the parsed Value (nil/*OrderedMap/[]interface{}/scalar/TaggedValue)
	IndexWithinFile int

	// StartLine/EndLine are absolute (file-wide, 1-based, monotonically
	// increasing across documents in one file). EndLine is one past the
	// last line of the document.
	StartLine int
	EndLine   int

	// FirstLine/LastLine are relative to the start of this document
	// (1-based). FirstLine is always 1.
	FirstLine int
	LastLine  int

	marked MarkedValue
}

// LoadSources parses raw YAML text (possibly multiple "---"-separated
// documents) into a list of Sources. Malformed YAML aborts loading of
// this file with a *ParseError (§4.1, §7: Io/Parse are fatal per-file).
func LoadSources(rawText, filePath string) ([]*Source, error) {
	nodes, err := parseNodes([]byte(rawText))
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = filePath
			return nil, pe
		}
		return nil, &ParseError{File: filePath, Message: err.Error(), Err: err}
	}

	if len(nodes) == 0 {
		return []*Source{emptySource(rawText, filePath)}, nil
	}

	rawLines := strings.Split(rawText, "\n")
	sources := make([]*Source, 0, len(nodes))

	for i, node := range nodes {
		marked := buildMarkedValue(node, make(map[*yaml.Node]bool))
		doc := nodeToInterface(node)

		startLine := marked.Span.StartLine + 1 // 0-based -> 1-based
		endLine := marked.Span.EndLine + 2      // last content line (1-based) + one past

		if endLine > len(rawLines)+1 {
			endLine = len(rawLines) + 1
		}
		if startLine < 1 {
			startLine = 1
		}

		lastLine := endLine - startLine
		if lastLine < 1 {
			lastLine = 1
		}

		content := documentRawContent(rawLines, startLine, endLine)

		sources = append(sources, &Source{
			File:            filePath,
			RawContent:      content,
			Document:        doc,
			IndexWithinFile: i,
			StartLine:       startLine,
			EndLine:         endLine,
			FirstLine:       1,
			LastLine:        lastLine,
			marked:          marked,
		})
	}

	return sources, nil
}

// emptySource returns the single Source for a file with no parseable
// documents (e.g. blank or comment-only input).
func emptySource(rawText, filePath string) *Source {
	lines := strings.Split(rawText, "\n")
	last := len(lines)
	if last < 1 {
		last = 1
	}
	return &Source{
		File:       filePath,
		RawContent: rawText,
		Document:   nil,
		StartLine:  1,
		EndLine:    last + 1,
		FirstLine:  1,
		LastLine:   last,
	}
}

// documentRawContent slices the original text's lines into the substring
// covering exactly this document (excluding the leading "---" delimiter).
func documentRawContent(rawLines []string, startLine, endLine int) string {
	lo := startLine - 1
	hi := endLine - 1
	if lo < 0 {
		lo = 0
	}
	if hi > len(rawLines) {
		hi = len(rawLines)
	}
	if hi < lo {
		hi = lo
	}
	return strings.Join(rawLines[lo:hi], "\n")
}

// RelativeLine converts an absolute (file-wide) line number into a Line
// relative to this document's start: max(1, absolute - start_line) (§4.1).
func (s *Source) RelativeLine(absolute int) Line {
	return NewLine(absolute - s.StartLine)
}

// Lines returns the document text split by newline, with leading "---"
// lines and blank lines removed (§4.1).
func (s *Source) Lines() []string {
	var out []string
	for _, line := range strings.Split(s.RawContent, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "--- ") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// SpanFor locates path within this Source's document, returning the
// 0-based Span and true, or false if the path does not resolve here
// (e.g. it was added on the other side).
func (s *Source) SpanFor(path Path) (Span, bool) {
	mv, ok := s.marked.At(path)
	if !ok {
		return Span{}, false
	}
	return mv.Span, true
}

// RelativeLineFor combines SpanFor with this document's StartLine: the
// 1-based Line (relative to this document, whose first line is 1) that
// path's span starts on.
func (s *Source) RelativeLineFor(path Path) (Line, bool) {
	span, ok := s.SpanFor(path)
	if !ok {
		return 0, false
	}
	// span.StartLine is 0-based-from-file-start; s.StartLine is the 1-based
	// absolute line of the document's first line (relative line 1).
	absolute := span.StartLine + 1
	return NewLine(absolute - s.StartLine + 1), true
}
