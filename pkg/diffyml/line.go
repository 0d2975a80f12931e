// line.go - Line is a 1-based line number with saturating arithmetic.
//
// Modeled on the source project's NonZeroUsize line type: a Line is never
// zero, and subtracting past 1 clamps rather than wrapping or going negative.
package diffyml

// Line is a 1-based line number. The zero value is invalid; use NewLine
// or Line(1) as the minimum.
type Line uint32

// FirstLine is the smallest valid Line.
const FirstLine Line = 1

// NewLine clamps n to the valid range, returning FirstLine for any n < 1.
func NewLine(n int) Line {
	if n < 1 {
		return FirstLine
	}
	return Line(n)
}

// Add returns l shifted forward by delta lines. Negative delta saturates
// at FirstLine rather than underflowing.
func (l Line) Add(delta int) Line {
	if delta >= 0 {
		return l + Line(delta)
	}
	return l.Sub(-delta)
}

// Sub returns max(1, l-k), matching the saturating-subtraction invariant.
func (l Line) Sub(k int) Line {
	if k < 0 {
		return l.Add(-k)
	}
	if Line(k) >= l-FirstLine {
		return FirstLine
	}
	return l - Line(k)
}

// Int returns the line number as a plain int, for indexing/formatting.
func (l Line) Int() int {
	return int(l)
}
