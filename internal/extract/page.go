package extract

import (
	"github.com/PuerkitoBio/goquery"
)

// Headings returns the page's h1-h3 texts, used as synthesis prompt context.
func Headings(ctx *Context) []string {
	var headings []string
	ctx.Doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace(sel.Text())
		if text != "" && len(text) <= 120 {
			headings = append(headings, text)
		}
	})
	return headings
}

// FeatureBullets returns short list-item texts that read like product
// feature claims rather than navigation.
func FeatureBullets(ctx *Context) []string {
	var bullets []string
	seen := make(map[string]bool)

	containers := ctx.Doc.Find(".features li, .product-features li, .product-description li, #description li")
	if containers.Length() == 0 {
		containers = ctx.Doc.Find("main li, article li, .product li")
	}

	containers.Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace(sel.Text())
		if len(text) < 10 || len(text) > 160 || seen[text] {
			return
		}
		// List items containing links are almost always navigation.
		if sel.Find("a").Length() > 0 {
			return
		}
		seen[text] = true
		bullets = append(bullets, text)
	})

	if len(bullets) > 10 {
		bullets = bullets[:10]
	}
	return bullets
}
