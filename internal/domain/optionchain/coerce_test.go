package optionchain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"float", 12.5, ptr(12.5)},
		{"int", 7, ptr(7)},
		{"int64", int64(-3), ptr(-3)},
		{"numeric string", " 101.25 ", ptr(101.25)},
		{"exponent string", "1e3", ptr(1000)},
		{"empty string", "", ptr(0)},
		{"garbage string", "abc", nil},
		{"infinity string", "Infinity", nil},
		{"nan", math.NaN(), nil},
		{"inf", math.Inf(1), nil},
		{"true", true, ptr(1)},
		{"false", false, ptr(0)},
		{"json number", json.Number("42"), ptr(42)},
		{"bad json number", json.Number("4x2"), nil},
		{"slice", []any{1.0}, nil},
		{"map", map[string]any{"v": 1.0}, nil},
	}
	for _, tt := range tests {
		got := Number(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("%s: expected nil, got %v", tt.name, *got)
		case tt.want != nil && got == nil:
			t.Errorf("%s: expected %v, got nil", tt.name, *tt.want)
		case tt.want != nil && *got != *tt.want:
			t.Errorf("%s: expected %v, got %v", tt.name, *tt.want, *got)
		}
	}
}

func TestExpiryToISO(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{20240125.0, "2024-01-25"},
		{20240229, "2024-02-29"},
		{"20241231", "2024-12-31"},
		// no calendar validation
		{20241399.0, "2024-13-99"},
		{"2024", "2024--"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := ExpiryToISO(tt.in); got != tt.want {
			t.Errorf("ExpiryToISO(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
