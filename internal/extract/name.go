package extract

import (
	"strings"

	"github.com/supplysift/supplysift/internal/types"
)

var titleSelectors = []string{
	"h1.product-title",
	"h1.product_title",
	"h1.entry-title",
	".product-name h1",
	"h1",
}

// Names returns product-name candidates: JSON-LD, then the first product-title
// heading, then the page <title> trimmed at its site separator, then the
// og:title meta, then a humanized URL slug. A page with any URL path at all
// always yields at least one candidate.
func Names(ctx *Context) []types.Candidate[string] {
	var cands []types.Candidate[string]

	for _, p := range LinkedDataProducts(ctx) {
		if p.Name != "" {
			cands = append(cands, types.Candidate[string]{
				Value: p.Name, Tier: types.TierStructured, Source: "json-ld",
			})
			break
		}
	}

	for _, sel := range titleSelectors {
		text := strings.TrimSpace(ctx.Doc.Find(sel).First().Text())
		if text != "" {
			cands = append(cands, types.Candidate[string]{
				Value: text, Tier: types.TierSelector, Source: sel,
			})
			break
		}
	}

	// Both live at the same tier; emission order puts <title> ahead of
	// og:title, which platforms often stuff with marketing taglines.
	if title := strings.TrimSpace(ctx.Doc.Find("title").First().Text()); title != "" {
		cands = append(cands, types.Candidate[string]{
			Value: trimSiteSuffix(title), Tier: types.TierHeuristic, Source: "title",
		})
	}

	if og, exists := ctx.Doc.Find(`meta[property="og:title"]`).Attr("content"); exists {
		if og = strings.TrimSpace(og); og != "" {
			cands = append(cands, types.Candidate[string]{
				Value: trimSiteSuffix(og), Tier: types.TierHeuristic, Source: "og:title",
			})
		}
	}

	if name := humanizeSlug(lastPathSegment(ctx)); name != "" {
		cands = append(cands, types.Candidate[string]{
			Value: name, Tier: types.TierFallback, Source: "url path",
		})
	}

	return cands
}

// humanizeSlug turns a URL slug like "aria-basin-mixer" into "Aria Basin
// Mixer", the name of last resort for pages with no usable markup.
func humanizeSlug(seg string) string {
	seg = strings.TrimSuffix(seg, ".html")
	seg = strings.TrimSuffix(seg, ".php")
	seg = strings.NewReplacer("-", " ", "_", " ", "%20", " ").Replace(seg)
	return titleCase(seg)
}

// trimSiteSuffix drops the site-name tail from a page title, e.g.
// "Round Basin Mixer | Acme Tapware" -> "Round Basin Mixer".
func trimSiteSuffix(title string) string {
	for _, sep := range []string{" | ", " - ", " – "} {
		if i := strings.Index(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return title
}
