package variants

import (
	"regexp"
	"strings"
)

// imageMatchThreshold is the minimum score before an image is linked to a
// variant; anything below stays unlinked rather than guessing.
const imageMatchThreshold = 20

const (
	scoreCodeMatch   = 100
	scoreNameMatch   = 50
	scoreAbbrevMatch = 25
	scoreWordMatch   = 10
)

// finishAbbrevs maps finish names to the filename abbreviations suppliers
// commonly use for per-finish imagery.
var finishAbbrevs = map[string][]string{
	"matt black":      {"mb", "mblk"},
	"matte black":     {"mb", "mblk"},
	"brushed nickel":  {"bn"},
	"brushed gold":    {"bg"},
	"brushed brass":   {"bb"},
	"brushed chrome":  {"bc"},
	"polished chrome": {"pc"},
	"gunmetal":        {"gm"},
	"chrome":          {"ch", "chr"},
	"matt white":      {"mw"},
}

var urlTokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// scoreImage rates how likely an image URL depicts the given finish.
// Exact variant-code hits dominate, then whole-finish-name hits, then
// known filename abbreviations, then individual word overlap.
func scoreImage(imageURL, finishName, code string) int {
	lowerURL := strings.ToLower(imageURL)
	lowerFinish := strings.ToLower(finishName)
	score := 0

	if len(code) >= 3 && strings.Contains(lowerURL, strings.ToLower(code)) {
		score += scoreCodeMatch
	}

	compact := strings.NewReplacer(" ", "-", "_", "-").Replace(lowerFinish)
	if strings.Contains(lowerURL, compact) ||
		strings.Contains(lowerURL, strings.ReplaceAll(lowerFinish, " ", "_")) ||
		strings.Contains(lowerURL, strings.ReplaceAll(lowerFinish, " ", "")) {
		score += scoreNameMatch
	}

	tokens := make(map[string]bool)
	for _, t := range urlTokenSplit.Split(lowerURL, -1) {
		if t != "" {
			tokens[t] = true
		}
	}

	for _, abbrev := range finishAbbrevs[lowerFinish] {
		if tokens[abbrev] {
			score += scoreAbbrevMatch
			break
		}
	}

	for _, word := range strings.Fields(lowerFinish) {
		if len(word) >= 3 && tokens[word] {
			score += scoreWordMatch
		}
	}

	return score
}
