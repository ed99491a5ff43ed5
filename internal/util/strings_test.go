package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "0,1,2", 10, "0,1,2"},
		{"exact", "0,1,2", 5, "0,1,2"},
		{"cut", "0,1,2,3,4,5,6,7", 8, "0,1,2..."},
		{"tiny width", "0,1,2", 2, "..."},
		{"empty", "", 5, ""},
		{"wide characters", "日本語テキスト", 8, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			// An empty want on a non-empty input only checks the width.
			if (tt.want != "" || tt.input == "") && got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if w := lipgloss.Width(got); tt.maxWidth > 3 && w > tt.maxWidth {
				t.Errorf("width %d exceeds %d", w, tt.maxWidth)
			}
		})
	}
}

func TestTruncate_PreservesStyling(t *testing.T) {
	styled := "\x1b[31mcontender-and-more\x1b[0m"
	got := Truncate(styled, 10)
	if w := lipgloss.Width(got); w != 10 {
		t.Errorf("visual width = %d, want 10 (%q)", w, got)
	}
}

type slot int

func TestJoinInts(t *testing.T) {
	tests := []struct {
		in   []slot
		want string
	}{
		{nil, ""},
		{[]slot{3}, "3"},
		{[]slot{0, 2, 5}, "0,2,5"},
	}
	for _, tt := range tests {
		if got := JoinInts(tt.in); got != tt.want {
			t.Errorf("JoinInts(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
