package diffyml_test

import (
	"testing"

	"github.com/everdiff/everdiff/pkg/diffyml"
)

func TestNewLine_ClampsBelowOne(t *testing.T) {
	if diffyml.NewLine(0) != diffyml.FirstLine {
		t.Errorf("expected NewLine(0) to clamp to FirstLine")
	}
	if diffyml.NewLine(-5) != diffyml.FirstLine {
		t.Errorf("expected NewLine(-5) to clamp to FirstLine")
	}
	if diffyml.NewLine(7) != diffyml.Line(7) {
		t.Errorf("expected NewLine(7) to be 7")
	}
}

func TestLine_AddAndSub(t *testing.T) {
	l := diffyml.NewLine(10)
	if got := l.Add(5); got != diffyml.Line(15) {
		t.Errorf("expected 10+5=15, got %v", got)
	}
	if got := l.Sub(3); got != diffyml.Line(7) {
		t.Errorf("expected 10-3=7, got %v", got)
	}
}

func TestLine_SubSaturatesAtOne(t *testing.T) {
	l := diffyml.NewLine(3)
	if got := l.Sub(10); got != diffyml.FirstLine {
		t.Errorf("expected subtraction past 1 to clamp at FirstLine, got %v", got)
	}
}

func TestLine_Int(t *testing.T) {
	if diffyml.NewLine(42).Int() != 42 {
		t.Errorf("expected Int() to round-trip")
	}
}
