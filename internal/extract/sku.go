package extract

import (
	"regexp"
	"strings"

	"github.com/supplysift/supplysift/internal/types"
)

var skuLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:item\s+)?code\s*[:#]\s*([A-Za-z0-9][A-Za-z0-9\-_./]{1,39})`),
	regexp.MustCompile(`(?i)\bsku\s*[:#]\s*([A-Za-z0-9][A-Za-z0-9\-_./]{1,39})`),
	regexp.MustCompile(`(?i)\bmodel\s*[:#]\s*([A-Za-z0-9][A-Za-z0-9\-_./]{1,39})`),
}

var skuSelectors = []string{
	`[itemprop="sku"]`,
	".sku",
	".product-sku",
	".product_meta .sku",
}

// OriginalSKUs returns manufacturer-code candidates. The internal SKU is never
// one of these; it is always synthesized fresh so re-imports cannot collide.
func OriginalSKUs(ctx *Context) []types.Candidate[string] {
	var cands []types.Candidate[string]

	for _, p := range LinkedDataProducts(ctx) {
		if p.SKU != "" {
			cands = append(cands, types.Candidate[string]{
				Value: p.SKU, Tier: types.TierStructured, Source: "json-ld",
			})
			break
		}
	}

	// A "Code:"-style label is the stronger of the two selector-tier signals;
	// it outranks the .sku element by emission order.
	pageText := ctx.Doc.Text()
	for _, re := range skuLabelPatterns {
		if m := re.FindStringSubmatch(pageText); len(m) == 2 {
			cands = append(cands, types.Candidate[string]{
				Value: m[1], Tier: types.TierSelector, Source: "code label",
			})
			break
		}
	}

	for _, sel := range skuSelectors {
		text := strings.TrimSpace(ctx.Doc.Find(sel).First().Text())
		if text != "" {
			cands = append(cands, types.Candidate[string]{
				Value: text, Tier: types.TierSelector, Source: sel,
			})
			break
		}
	}

	if seg := lastPathSegment(ctx); seg != "" {
		cands = append(cands, types.Candidate[string]{
			Value: seg, Tier: types.TierFallback, Source: "url path",
		})
	}

	return cands
}

// lastPathSegment returns the final non-empty URL path segment, a last-resort
// product code on sites that put slugs nowhere else.
func lastPathSegment(ctx *Context) string {
	segs := strings.Split(strings.Trim(ctx.Base.Path, "/"), "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segs[i]); s != "" {
			return s
		}
	}
	return ""
}
