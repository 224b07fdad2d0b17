package variants

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/supplysift/supplysift/internal/extract"
)

// rawOption is a detected finish choice before pricing and SKU assignment.
type rawOption struct {
	Name  string
	Value string
	Code  string

	// Price and Image are set only when the detection source carried them
	// directly (JSON-LD offers, fallback price rows).
	Price float64
	Image string
}

// selectExcludeKeywords reject dropdowns that select something other than a
// product variation.
var selectExcludeKeywords = []string{
	"qty", "quantity", "shipping", "delivery", "location", "postcode",
	"zip", "state", "region", "country", "warranty", "install",
	"payment", "currency", "sort", "per-page", "per_page",
}

// placeholder option texts that are prompts, not finishes.
var optionPlaceholders = []string{
	"select", "choose", "pick", "--", "please",
}

var parentheticalPrice = regexp.MustCompile(`\s*\([^)]*[\d$][^)]*\)\s*$`)

// finishWords mark option/row text as a plausible finish or color.
var finishWords = []string{
	"black", "white", "chrome", "silver", "gold", "brass", "bronze",
	"copper", "nickel", "gunmetal", "brushed", "matt", "matte",
	"polished", "satin", "grey", "gray", "ivory", "finish", "colour", "color",
}

// detectOptions finds finish choices in confidence order: named JSON-LD
// offers, variation selects, swatch elements, then the price-row fallback.
func detectOptions(ctx *extract.Context) []rawOption {
	if opts := optionsFromOffers(ctx); len(opts) > 0 {
		return opts
	}
	if opts := optionsFromSelects(ctx); len(opts) > 0 {
		return opts
	}
	if opts := optionsFromSwatches(ctx); len(opts) > 0 {
		return opts
	}
	return optionsFromPriceRows(ctx)
}

// optionsFromOffers turns a multi-offer JSON-LD product into variants
// directly; per-offer names and prices are the strongest signal on the page.
func optionsFromOffers(ctx *extract.Context) []rawOption {
	var opts []rawOption
	for _, p := range extract.LinkedDataProducts(ctx) {
		named := 0
		for _, o := range p.Offers {
			if o.Name != "" {
				named++
			}
		}
		if named < 2 {
			continue
		}
		for _, o := range p.Offers {
			if o.Name == "" {
				continue
			}
			opts = append(opts, rawOption{
				Name:  o.Name,
				Value: strings.ToLower(o.Name),
				Code:  o.SKU,
				Price: o.Price,
				Image: o.Image,
			})
		}
		if len(opts) > 0 {
			return opts
		}
	}
	return nil
}

func optionsFromSelects(ctx *extract.Context) []rawOption {
	var opts []rawOption

	ctx.Doc.Find("select").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !isVariationSelect(sel) {
			return true
		}
		sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
			text := strings.TrimSpace(opt.Text())
			value, _ := opt.Attr("value")
			if text == "" || isPlaceholderOption(text, value) {
				return
			}
			display := normalizeOptionName(text)
			opts = append(opts, rawOption{
				Name:  display,
				Value: strings.ToLower(display),
				Code:  strings.TrimSpace(value),
			})
		})
		// First variation select wins; a second select on the same page
		// is usually size or length, not finish.
		return len(opts) == 0
	})

	return opts
}

// isVariationSelect accepts a select unless its identity or nearby label says
// it picks quantity, shipping, or similar.
func isVariationSelect(sel *goquery.Selection) bool {
	identity := strings.ToLower(
		attrOr(sel, "id") + " " + attrOr(sel, "name") + " " + attrOr(sel, "class"),
	)
	label := ""
	if id, ok := sel.Attr("id"); ok && id != "" {
		label = strings.ToLower(sel.Closest("body").Find(`label[for="` + id + `"]`).Text())
	}
	if label == "" {
		label = strings.ToLower(sel.Parent().Find("label").First().Text())
	}

	for _, kw := range selectExcludeKeywords {
		if strings.Contains(identity, kw) || strings.Contains(label, kw) {
			return false
		}
	}

	// Need at least two real choices to be a variation.
	real := 0
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		if !isPlaceholderOption(strings.TrimSpace(opt.Text()), value) {
			real++
		}
	})
	return real >= 2
}

func optionsFromSwatches(ctx *extract.Context) []rawOption {
	var opts []rawOption
	seen := make(map[string]bool)

	ctx.Doc.Find(".swatch, .color-swatch, .variable-items-wrapper li, [data-attribute_name] li").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.AttrOr("data-title", ""))
		if name == "" {
			name = strings.TrimSpace(sel.AttrOr("title", ""))
		}
		if name == "" {
			name = strings.TrimSpace(sel.Text())
		}
		if name == "" || len(name) > 40 {
			return
		}
		display := normalizeOptionName(name)
		key := strings.ToLower(display)
		if seen[key] {
			return
		}
		seen[key] = true
		opts = append(opts, rawOption{
			Name:  display,
			Value: key,
			Code:  strings.TrimSpace(sel.AttrOr("data-value", "")),
		})
	})

	return opts
}

// optionsFromPriceRows is the last-resort detector: table rows or bullets
// that pair a finish-like label with an adjacent price token.
func optionsFromPriceRows(ctx *extract.Context) []rawOption {
	var opts []rawOption
	seen := make(map[string]bool)

	ctx.Doc.Find("tr, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" || len(text) > 120 {
			return
		}
		if !looksLikeFinish(text) {
			return
		}
		price, ok := extract.ParseMoney(text)
		if !ok {
			return
		}
		label := strings.TrimSpace(pricePattern.ReplaceAllString(text, ""))
		label = strings.Trim(label, " -:|\t\n")
		label = normalizeOptionName(label)
		if label == "" || seen[strings.ToLower(label)] {
			return
		}
		seen[strings.ToLower(label)] = true
		opts = append(opts, rawOption{
			Name:  label,
			Value: strings.ToLower(label),
			Price: price,
		})
	})

	return opts
}

var pricePattern = regexp.MustCompile(`\$\s?\d[\d,]*\.?\d*`)

func looksLikeFinish(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range finishWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func isPlaceholderOption(text, value string) bool {
	lower := strings.ToLower(text)
	for _, p := range optionPlaceholders {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return value == "" && strings.Contains(lower, "option")
}

// normalizeOptionName strips any parenthetical price suffix from option text,
// e.g. "Matt Black (+$50.00)" -> "Matt Black".
func normalizeOptionName(text string) string {
	return strings.TrimSpace(parentheticalPrice.ReplaceAllString(text, ""))
}

func attrOr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return v
}
