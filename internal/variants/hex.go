package variants

import "strings"

// DefaultHex is the swatch color for finishes no keyword matches.
const DefaultHex = "#CCCCCC"

// finishHex maps finish-name keywords to swatch colors. Checked in order so
// the more specific metal names win before the generic color words.
var finishHex = []struct {
	keyword string
	hex     string
}{
	{"gunmetal", "#2A3439"},
	{"brass", "#B5A642"},
	{"bronze", "#8C7853"},
	{"copper", "#B87333"},
	{"nickel", "#A8A9AD"},
	{"chrome", "#C0C0C0"},
	{"silver", "#C0C0C0"},
	{"gold", "#D4AF37"},
	{"black", "#1C1C1C"},
	{"white", "#F4F4F4"},
	{"ivory", "#FFFFF0"},
	{"grey", "#808080"},
	{"gray", "#808080"},
	{"blue", "#3A5FA9"},
	{"green", "#3F7A4E"},
	{"red", "#A93226"},
}

// FinishHex returns the swatch color for a finish display name.
func FinishHex(finishName string) string {
	lower := strings.ToLower(finishName)
	for _, entry := range finishHex {
		if strings.Contains(lower, entry.keyword) {
			return entry.hex
		}
	}
	return DefaultHex
}
