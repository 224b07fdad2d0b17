package classify

import (
	"reflect"
	"testing"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		name string
		in   [4]string // name, description, brand, url
		want []string
	}{
		{
			name: "basin mixer",
			in:   [4]string{"Aria Basin Mixer", "", "", ""},
			want: []string{"basins", "bathroom", "taps-mixers"},
		},
		{
			name: "keyword in url only",
			in:   [4]string{"Aria 900", "", "", "https://example.com/showers/aria-900"},
			want: []string{"bathroom", "showers"},
		},
		{
			name: "keyword in description",
			in:   [4]string{"Aria 900", "A freestanding bath for modern homes.", "", ""},
			want: []string{"bathroom", "baths"},
		},
		{
			name: "no match",
			in:   [4]string{"Mystery Item", "", "", ""},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categories(tt.in[0], tt.in[1], tt.in[2], tt.in[3])
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Categories(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoriesDeduplicated(t *testing.T) {
	// "shower" appears in name and url; each id must appear once.
	got := Categories("Rail Shower", "", "", "https://example.com/shower")
	seen := map[string]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate category %q in %v", id, got)
		}
		seen[id] = true
	}
}

func TestGuess(t *testing.T) {
	if got := Guess("Aria Wall Basin Set"); got != "basin" {
		t.Errorf("Guess = %q", got)
	}
	if got := Guess("Unknown Thing"); got != "" {
		t.Errorf("Guess = %q, want empty", got)
	}
}
