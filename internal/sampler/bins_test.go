package sampler

import (
	"math"
	"testing"
)

func TestBinMoveDist(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "S"},
		{"below first edge", 0.49, "S"},
		{"first edge lands upper", 0.5, "M"},
		{"mid", 2.9, "M"},
		{"second edge lands upper", 3, "L"},
		{"third edge lands upper", 8, "XL"},
		{"huge", 120, "XL"},
		{"nan lowest", math.NaN(), "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BinMoveDist(tt.in); got != tt.want {
				t.Errorf("BinMoveDist(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBinRotAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "S"},
		{"first edge lands upper", 0.5, "M"},
		{"below second edge", 1.49, "M"},
		{"second edge lands upper", 1.5, "L"},
		{"third edge lands upper", 3, "XL"},
		{"nan lowest", math.NaN(), "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BinRotAngle(tt.in); got != tt.want {
				t.Errorf("BinRotAngle(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBinTrajTurns(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"negative", -1, "0"},
		{"zero inclusive", 0, "0"},
		{"one edge lands lower", 1, "1"},
		{"two edge lands lower", 2, "2"},
		{"above two", 2.5, "3+"},
		{"many", 9, "3+"},
		{"nan lowest", math.NaN(), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BinTrajTurns(tt.in); got != tt.want {
				t.Errorf("BinTrajTurns(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
