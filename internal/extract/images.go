package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// imageExcludeKeywords rejects obvious non-product imagery by URL substring.
var imageExcludeKeywords = []string{
	"logo", "icon", "sprite", "avatar", "header", "footer", "nav",
	"banner", "placeholder", "loading", "spinner", "badge", "favicon",
	"payment", "visa", "mastercard", "paypal", "afterpay", "zip-pay",
	"facebook", "instagram", "twitter", "pixel",
}

var galleryContainers = []string{
	".woocommerce-product-gallery",
	".product-gallery",
	".product-images",
	".product-media",
	".gallery",
	"#product-images",
}

var backgroundImagePattern = regexp.MustCompile(`background(?:-image)?\s*:\s*url\(['"]?([^'")]+)['"]?\)`)

// Images collects candidate product images in rough confidence order: gallery
// containers and structured data first, then every other <img> and CSS
// background, deduplicated and capped at max.
func Images(ctx *Context, max int) []string {
	seen := make(map[string]bool)
	var images []string

	add := func(ref string) {
		u := ctx.ResolveURL(ref)
		if u == "" || seen[u] || excludedImage(u) {
			return
		}
		seen[u] = true
		images = append(images, u)
	}

	for _, container := range galleryContainers {
		ctx.Doc.Find(container).Find("img").Each(func(_ int, sel *goquery.Selection) {
			add(imgSource(sel))
		})
	}

	for _, p := range LinkedDataProducts(ctx) {
		for _, img := range p.Images {
			add(img)
		}
	}
	if og, exists := ctx.Doc.Find(`meta[property="og:image"]`).Attr("content"); exists {
		add(og)
	}

	ctx.Doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		add(imgSource(sel))
	})

	// CSS background images, both inline style attributes and style blocks.
	ctx.Doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		for _, m := range backgroundImagePattern.FindAllStringSubmatch(style, -1) {
			add(m[1])
		}
	})
	ctx.Doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		for _, m := range backgroundImagePattern.FindAllStringSubmatch(sel.Text(), -1) {
			add(m[1])
		}
	})

	if max > 0 && len(images) > max {
		images = images[:max]
	}
	return images
}

// imgSource picks the best source attribute of an <img>, preferring lazy-load
// attributes over src (which is often a placeholder on lazy pages).
func imgSource(sel *goquery.Selection) string {
	for _, attr := range []string{"data-src", "data-lazy-src", "data-original"} {
		if v, ok := sel.Attr(attr); ok && v != "" {
			return v
		}
	}
	if srcset, ok := sel.Attr("srcset"); ok && srcset != "" {
		if u := firstSrcsetURL(srcset); u != "" {
			return u
		}
	}
	src, _ := sel.Attr("src")
	return src
}

// firstSrcsetURL returns the first URL of a srcset attribute.
func firstSrcsetURL(srcset string) string {
	first := strings.Split(srcset, ",")[0]
	fields := strings.Fields(strings.TrimSpace(first))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func excludedImage(u string) bool {
	lower := strings.ToLower(u)
	for _, kw := range imageExcludeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
