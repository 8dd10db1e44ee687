package rdf

import "testing"

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		f       float64
		maxFrac int
		want    string
	}{
		{1, 2, "1.0"},
		{1.5, 2, "1.5"},
		{-1.5, 2, "-1.5"},
		{1.129, 2, "1.13"}, // rounded to maxFrac digits
		{0, 2, "0.0"},
	}
	for _, tt := range tests {
		if got := FormatDecimal(tt.f, tt.maxFrac); got != tt.want {
			t.Errorf("FormatDecimal(%v, %d) = %q; want %q", tt.f, tt.maxFrac, got, tt.want)
		}
	}
}

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{1.25, "1.25E+0"},
		{100, "1E+2"},
		{-2.5, "-2.5E+0"},
	}
	for _, tt := range tests {
		if got := FormatDouble(tt.f, -1); got != tt.want {
			t.Errorf("FormatDouble(%v) = %q; want %q", tt.f, got, tt.want)
		}
	}
}
