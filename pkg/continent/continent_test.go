package continent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		zone string
		want Label
	}{
		{"Europe/London", Europe},
		{"America/Sao_Paulo", SouthAmerica},
		{"Pacific/Fiji", Australia},
		{"Invalid/Zone", Other},
		{"Africa/Lagos", Africa},
		{"Antarctica/McMurdo", Antarctica},
		{"Asia/Kolkata", Asia},
		{"Australia/Sydney", Australia},
		{"America/New_York", NorthAmerica},
		{"America/Argentina/Buenos_Aires", SouthAmerica},
		{"America/Bogota", SouthAmerica},
		{"America/La_Paz", SouthAmerica},
		{"America/Manaus", NorthAmerica}, // not on the city list
		{"Atlantic/Reykjavik", Other},
		{"UTC", Other},
		{"", Other},
		{"europe/london", Other}, // prefixes are case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			if got := Classify(tt.zone); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.zone, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Label
		ok   bool
	}{
		{"Europe", Europe, true},
		{"north america", NorthAmerica, true},
		{"SouthAmerica", SouthAmerica, true},
		{"south_america", SouthAmerica, true},
		{"other", Other, true},
		{"Atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
