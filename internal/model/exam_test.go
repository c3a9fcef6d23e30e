package model

import "testing"

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{79.5, "B+"},
		{70, "B+"},
		{69, "B"},
		{60, "B"},
		{59.9, "C"},
		{50, "C"},
		{49, "D"},
		{40, "D"},
		{39.99, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := LetterGrade(tt.pct); got != tt.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
