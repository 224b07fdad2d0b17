package extract

import (
	"strings"

	"github.com/supplysift/supplysift/internal/types"
)

var descriptionSelectors = []string{
	`[itemprop="description"]`,
	".product-description",
	"#description",
	".woocommerce-Tabs-panel--description",
	".product-details",
	".tab-description",
	"#tab-description",
}

// Descriptions returns long-description candidates: JSON-LD, then description
// panels, then description meta tags. The synthesizer decides whether the
// best one is long enough to keep.
func Descriptions(ctx *Context) []types.Candidate[string] {
	var cands []types.Candidate[string]

	for _, p := range LinkedDataProducts(ctx) {
		if p.Description != "" {
			cands = append(cands, types.Candidate[string]{
				Value: p.Description, Tier: types.TierStructured, Source: "json-ld",
			})
			break
		}
	}

	for _, sel := range descriptionSelectors {
		text := collapseWhitespace(ctx.Doc.Find(sel).First().Text())
		if text != "" {
			cands = append(cands, types.Candidate[string]{
				Value: text, Tier: types.TierSelector, Source: sel,
			})
			break
		}
	}

	for _, sel := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
		if content, exists := ctx.Doc.Find(sel).Attr("content"); exists {
			if content = strings.TrimSpace(content); content != "" {
				cands = append(cands, types.Candidate[string]{
					Value: content, Tier: types.TierHeuristic, Source: sel,
				})
				break
			}
		}
	}

	return cands
}

var brandSelectors = []string{
	`[itemprop="brand"]`,
	".product-brand",
	".brand",
	".manufacturer",
}

// Brands returns brand/manufacturer candidates.
func Brands(ctx *Context) []types.Candidate[string] {
	var cands []types.Candidate[string]

	for _, p := range LinkedDataProducts(ctx) {
		if p.Brand != "" {
			cands = append(cands, types.Candidate[string]{
				Value: p.Brand, Tier: types.TierStructured, Source: "json-ld",
			})
			break
		}
	}

	for _, sel := range brandSelectors {
		text := strings.TrimSpace(ctx.Doc.Find(sel).First().Text())
		if text != "" {
			cands = append(cands, types.Candidate[string]{
				Value: text, Tier: types.TierSelector, Source: sel,
			})
			break
		}
	}

	if site, exists := ctx.Doc.Find(`meta[property="og:site_name"]`).Attr("content"); exists {
		if site = strings.TrimSpace(site); site != "" {
			cands = append(cands, types.Candidate[string]{
				Value: site, Tier: types.TierHeuristic, Source: "og:site_name",
			})
		}
	}

	return cands
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
