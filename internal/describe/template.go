package describe

import (
	"fmt"
	"strings"
)

// templateDescription builds a deterministic description from extracted facts.
// It is the terminal fallback when no usable copy exists on the page and the
// generator is unavailable or fails.
func templateDescription(sum PageSummary) string {
	name := strings.TrimSpace(sum.Name)
	if name == "" {
		name = "This product"
	}

	var paras []string

	lead := name
	if sum.Brand != "" {
		lead = fmt.Sprintf("%s by %s", name, sum.Brand)
	}
	kind := sum.CategoryGuess
	if kind == "" {
		kind = "product"
	}
	paras = append(paras, fmt.Sprintf(
		"%s is a quality %s designed for Australian homes and projects. Built to handle everyday use, it combines practical performance with a clean, contemporary look.",
		lead, kind,
	))

	if len(sum.Features) > 0 {
		n := len(sum.Features)
		if n > 3 {
			n = 3
		}
		paras = append(paras, fmt.Sprintf(
			"Key features include %s.",
			joinNatural(sum.Features[:n]),
		))
	} else if len(sum.SpecKeys) > 0 {
		n := len(sum.SpecKeys)
		if n > 4 {
			n = 4
		}
		paras = append(paras, fmt.Sprintf(
			"Full details are provided for %s, so you can confirm suitability before you buy.",
			strings.ToLower(joinNatural(sum.SpecKeys[:n])),
		))
	}

	paras = append(paras,
		"Backed by the manufacturer's warranty and supported with local stock, this is a dependable choice for renovators, builders, and homeowners alike.",
	)

	return strings.Join(paras, "\n\n")
}

// joinNatural joins items as "a, b and c".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
