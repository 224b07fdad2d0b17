package classify

import (
	"sort"
	"strings"
)

// categoryKeywords maps a product-text keyword to the store category IDs it
// implies. A product can legitimately land in several categories, so matches
// are unioned rather than ranked.
var categoryKeywords = map[string][]string{
	"tap":         {"taps-mixers"},
	"mixer":       {"taps-mixers"},
	"faucet":      {"taps-mixers"},
	"basin":       {"basins", "bathroom"},
	"vanity":      {"vanities", "bathroom"},
	"shower":      {"showers", "bathroom"},
	"bath":        {"baths", "bathroom"},
	"bathtub":     {"baths", "bathroom"},
	"toilet":      {"toilets", "bathroom"},
	"bidet":       {"toilets", "bathroom"},
	"cistern":     {"toilets", "bathroom"},
	"sink":        {"sinks", "kitchen"},
	"laundry":     {"laundry"},
	"trough":      {"laundry"},
	"towel rail":  {"bathroom-accessories", "heated-towel-rails"},
	"towel":       {"bathroom-accessories"},
	"heated":      {"heated-towel-rails"},
	"mirror":      {"mirrors", "bathroom"},
	"cabinet":     {"cabinets", "storage"},
	"shaving":     {"cabinets", "bathroom"},
	"waste":       {"wastes-traps"},
	"trap":        {"wastes-traps"},
	"grate":       {"drainage"},
	"drain":       {"drainage"},
	"spout":       {"taps-mixers"},
	"shower head": {"showers"},
	"rail shower": {"showers"},
	"hand shower": {"showers"},
	"accessor":    {"bathroom-accessories"},
	"hook":        {"bathroom-accessories"},
	"holder":      {"bathroom-accessories"},
	"soap":        {"bathroom-accessories"},
	"kitchen":     {"kitchen"},
	"freestanding": {"baths"},
}

// Categories returns the union of category IDs whose keywords appear in any of
// the product's text fields. The result is sorted and de-duplicated; an empty
// slice means the product stays uncategorized.
func Categories(name, description, brand, sourceURL string) []string {
	haystack := strings.ToLower(name + " " + description + " " + brand + " " + sourceURL)

	set := make(map[string]bool)
	for keyword, ids := range categoryKeywords {
		if strings.Contains(haystack, keyword) {
			for _, id := range ids {
				set[id] = true
			}
		}
	}

	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Guess returns a single human-readable product-type guess for prompt
// building, derived from the first matching keyword in the name.
func Guess(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range []string{
		"tap", "mixer", "basin", "vanity", "shower", "bathtub", "bath",
		"toilet", "sink", "mirror", "cabinet", "towel rail",
	} {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}
