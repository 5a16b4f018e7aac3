package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Sea View Hotel  ",
			want:  "Sea View Hotel",
		},
		{
			name:  "multiple spaces between words",
			input: "Sea    View",
			want:  "Sea View",
		},
		{
			name:  "tabs and newlines",
			input: "Sea\t\nView",
			want:  "Sea View",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Spa™ ",
			want:  "Café & Spa™",
		},
		{
			name:  "turkish characters",
			input: " Gümüşlük  Koyu ",
			want:  "Gümüşlük Koyu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoomTypeKeepsCase(t *testing.T) {
	if got := NormalizeRoomType("  Deluxe   Suite "); got != "Deluxe Suite" {
		t.Errorf("NormalizeRoomType() = %q, want %q", got, "Deluxe Suite")
	}
}

func TestNormalizeAmenity(t *testing.T) {
	if got := NormalizeAmenity(" Sea  VIEW "); got != "sea view" {
		t.Errorf("NormalizeAmenity() = %q, want %q", got, "sea view")
	}
}

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{199.999, 200},
		{120.456, 120.46},
		{120.454, 120.45},
		{80, 80},
	}
	for _, tt := range tests {
		if got := RoundPrice(tt.input); got != tt.want {
			t.Errorf("RoundPrice(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
