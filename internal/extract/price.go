package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/supplysift/supplysift/internal/types"
)

// maxSanePrice bounds accepted price parses. Anything at or above this (or
// non-positive) is treated as "not found" so the cascade falls through.
const maxSanePrice = 1_000_000

// priceSelectors are tried in order; the first parseable match wins the
// selector tier.
var priceSelectors = []string{
	`[itemprop="price"]`,
	".product-price .amount",
	".price ins .amount",
	".price .amount",
	".product-price",
	".price-now",
	".current-price",
	".price",
	"#price",
	".woocommerce-Price-amount",
}

var priceMetaSelectors = []string{
	`meta[property="product:price:amount"]`,
	`meta[property="og:price:amount"]`,
	`meta[itemprop="price"]`,
}

var moneyPattern = regexp.MustCompile(`-?\d[\d,]*\.?\d*`)

// ParseMoney extracts a numeric price from display text, stripping currency
// symbols and thousands separators. Rejects values outside the sane range.
func ParseMoney(s string) (float64, bool) {
	m := moneyPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	m = strings.ReplaceAll(m, ",", "")
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v <= 0 || v >= maxSanePrice {
		return 0, false
	}
	return v, true
}

// Prices returns base-price candidates in confidence order: JSON-LD offers,
// then price-class selectors, then price meta tags. The pipeline applies the
// configured fallback constant when every tier is empty.
func Prices(ctx *Context) []types.Candidate[float64] {
	var cands []types.Candidate[float64]

	if p, ok := lowestOfferPrice(ctx); ok {
		cands = append(cands, types.Candidate[float64]{
			Value: p, Tier: types.TierStructured, Source: "json-ld offers",
		})
	}

	for _, sel := range priceSelectors {
		text := strings.TrimSpace(ctx.Doc.Find(sel).First().Text())
		if text == "" {
			continue
		}
		if p, ok := ParseMoney(text); ok {
			cands = append(cands, types.Candidate[float64]{
				Value: p, Tier: types.TierSelector, Source: sel,
			})
			break
		}
	}

	for _, sel := range priceMetaSelectors {
		content, exists := ctx.Doc.Find(sel).First().Attr("content")
		if !exists {
			continue
		}
		if p, ok := ParseMoney(content); ok {
			cands = append(cands, types.Candidate[float64]{
				Value: p, Tier: types.TierSelector, Source: sel,
			})
			break
		}
	}

	return cands
}

// lowestOfferPrice returns the cheapest priced JSON-LD offer. Multi-offer
// pages price per finish; the base record carries the entry price.
func lowestOfferPrice(ctx *Context) (float64, bool) {
	low := 0.0
	for _, p := range LinkedDataProducts(ctx) {
		for _, o := range p.Offers {
			if o.Price <= 0 {
				continue
			}
			if low == 0 || o.Price < low {
				low = o.Price
			}
		}
	}
	return low, low > 0
}
