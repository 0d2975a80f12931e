// inlinediff.go - Character-level inline diff highlighting (§4.6).
//
// Grounded in original_source/src/snippet/src/inline_diff.rs: strip the
// common YAML prefix both scalar renderings share (usually the "key: "
// portion), then run a character-level diff over what remains so only
// the actually-changed characters are emphasized. Replaces this
// package's prior hand-rolled LCS routine with
// github.com/pmezard/go-difflib's SequenceMatcher, grounded in how
// aws-copilot-cli's indirect dependency graph already attests it.
package diffyml

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// InlineChunk is one run of characters in an inline diff rendering,
// marked Changed when it differs from the other side.
type InlineChunk struct {
	Text    string
	Changed bool
}

// InlineDiff splits left/right scalar renderings into chunks: the shared
// leading prefix (unchanged), then character-level diff chunks over the
// remainder.
func InlineDiff(left, right string) (leftChunks, rightChunks []InlineChunk) {
	prefix := commonPrefix(left, right)
	leftRest := left[len(prefix):]
	rightRest := right[len(prefix):]

	if prefix != "" {
		leftChunks = append(leftChunks, InlineChunk{Text: prefix})
		rightChunks = append(rightChunks, InlineChunk{Text: prefix})
	}

	aChars := splitChars(leftRest)
	bChars := splitChars(rightRest)
	matcher := difflib.NewMatcher(aChars, bChars)

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			leftChunks = append(leftChunks, InlineChunk{Text: strings.Join(aChars[op.I1:op.I2], "")})
			rightChunks = append(rightChunks, InlineChunk{Text: strings.Join(bChars[op.J1:op.J2], "")})
		case 'd':
			leftChunks = append(leftChunks, InlineChunk{Text: strings.Join(aChars[op.I1:op.I2], ""), Changed: true})
		case 'i':
			rightChunks = append(rightChunks, InlineChunk{Text: strings.Join(bChars[op.J1:op.J2], ""), Changed: true})
		case 'r':
			leftChunks = append(leftChunks, InlineChunk{Text: strings.Join(aChars[op.I1:op.I2], ""), Changed: true})
			rightChunks = append(rightChunks, InlineChunk{Text: strings.Join(bChars[op.J1:op.J2], ""), Changed: true})
		}
	}

	return leftChunks, rightChunks
}

// RenderInline joins chunks into a single string, emphasizing Changed
// runs via cc.
func RenderInline(chunks []InlineChunk, cc *ColorConfig) string {
	var sb strings.Builder
	for _, c := range chunks {
		if c.Changed {
			sb.WriteString(cc.Emphasize(c.Text))
		} else {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

func commonPrefix(a, b string) string {
	ar, br := []rune(a), []rune(b)
	n := len(ar)
	if len(br) < n {
		n = len(br)
	}
	i := 0
	for i < n && ar[i] == br[i] {
		i++
	}
	return string(ar[:i])
}

func splitChars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
