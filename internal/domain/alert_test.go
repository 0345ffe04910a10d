package domain

import "testing"

func TestDirection_Matches(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		price     float64
		threshold float64
		expected  bool
	}{
		{"Above fires above threshold", DirectionAbove, 50001, 50000, true},
		{"Above fires at threshold", DirectionAbove, 50000, 50000, true},
		{"Above does not fire below threshold", DirectionAbove, 49999.99, 50000, false},
		{"Below fires below threshold", DirectionBelow, 2999, 3000, true},
		{"Below fires at threshold", DirectionBelow, 3000, 3000, true},
		{"Below does not fire above threshold", DirectionBelow, 3000.01, 3000, false},
		{"Above fires at zero threshold", DirectionAbove, 0, 0, true},
		{"unknown direction never fires", Direction("Sideways"), 100, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.direction.Matches(tt.price, tt.threshold); got != tt.expected {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.price, tt.threshold, got, tt.expected)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
		ok    bool
	}{
		{"Above", DirectionAbove, true},
		{"Below", DirectionBelow, true},
		{"  Above  ", DirectionAbove, true},
		{"above", "", false},
		{"Sideways", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDirection(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseDirection(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
