package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestCard_ContentAtInnerWidthDoesNotWrap(t *testing.T) {
	cw := 40
	line := strings.Repeat("x", cw-4)
	card := Card(line, cw)

	if got := lipgloss.Width(card); got != cw {
		t.Errorf("card width = %d, want %d", got, cw)
	}
	// top border, one content line, bottom border
	if got := lipgloss.Height(card); got != 3 {
		t.Errorf("card height = %d, want 3:\n%s", got, card)
	}
}

func TestCard_ProgressBarFits(t *testing.T) {
	cw := ContentWidth(100)
	bar := ProgressBar{Label: "Syllabus", Fraction: 0.15, Suffix: "15% complete", Width: cw - 4}
	card := Card(bar.View(), cw)

	if got := lipgloss.Height(card); got != 3 {
		t.Fatalf("progress bar wrapped inside card:\n%s", card)
	}
	if !strings.Contains(card, "15% complete") {
		t.Error("expected suffix on the bar line")
	}
}

func TestContentWidth_Bounds(t *testing.T) {
	tests := []struct {
		frame, want int
	}{
		{200, 72},
		{60, 54},
		{10, 20},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.frame); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}
