package normalize

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Rejs", "rejs"},
		{"  Człowiek  z Żelaza ", "czlowiek z zelaza"},
		{"Amélie", "amelie"},
		{"Łódź", "lodz"},
		{"Straße", "strasse"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Fold(tt.input)
			if result != tt.expected {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Premiere Night", "premiere-night"},
		{"Przegląd Kina Polskiego 2024", "przeglad-kina-polskiego-2024"},
		{"before/after: reload!", "before-after-reload"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
