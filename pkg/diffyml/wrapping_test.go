package diffyml_test

import (
	"strings"
	"testing"

	"github.com/everdiff/everdiff/pkg/diffyml"
)

func TestWrapLine_NoWrapNeeded(t *testing.T) {
	got := diffyml.WrapLine("short line", 80)
	if len(got) != 1 || got[0] != "short line" {
		t.Fatalf("expected no wrapping, got %v", got)
	}
}

func TestWrapLine_ZeroWidthDisablesWrapping(t *testing.T) {
	got := diffyml.WrapLine(strings.Repeat("x", 200), 0)
	if len(got) != 1 {
		t.Fatalf("expected width<=0 to disable wrapping, got %d pieces", len(got))
	}
}

func TestWrapLine_BreaksAtWidth(t *testing.T) {
	got := diffyml.WrapLine("abcdefghij", 4)
	if len(got) != 3 {
		t.Fatalf("expected 3 pieces for a 10-char line wrapped at 4, got %d: %v", len(got), got)
	}
	joined := strings.Join(got, "")
	if joined != "abcdefghij" {
		t.Errorf("expected wrapped pieces to reconstruct the original line, got %q", joined)
	}
	for _, piece := range got {
		if len(piece) > 4 {
			t.Errorf("piece %q exceeds width 4", piece)
		}
	}
}

func TestWrapLine_EmptyLine(t *testing.T) {
	got := diffyml.WrapLine("", 10)
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("expected a single empty piece, got %v", got)
	}
}

func TestWrapLine_WideCharactersCountDouble(t *testing.T) {
	// Each "あ" is 2 display columns wide; 7 of them is 14 columns, which
	// should wrap at width 4 into 4 pieces of at most 2 characters each.
	got := diffyml.WrapLine("あああああああ", 4)
	if len(got) != 4 {
		t.Fatalf("expected wide characters to wrap at half the rune count per piece, got %d pieces: %v", len(got), got)
	}
	for _, piece := range got {
		if n := len([]rune(piece)); n > 2 {
			t.Errorf("expected at most 2 wide runes per 4-column piece, got %d in %q", n, piece)
		}
	}
}

func TestWrapLines_PreservesOrder(t *testing.T) {
	got := diffyml.WrapLines([]string{"abcdefgh", "ij"}, 4)
	want := []string{"abcd", "efgh", "ij"}
	if len(got) != len(want) {
		t.Fatalf("expected %d pieces, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("piece %d = %q, want %q", i, got[i], want[i])
		}
	}
}
