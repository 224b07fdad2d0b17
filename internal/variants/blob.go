package variants

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/supplysift/supplysift/internal/extract"
)

// blobVariation is one entry of a platform variation blob: the structured
// per-variant data some commerce platforms embed as an (often HTML-entity
// encoded) JSON array in a data attribute or inline script.
type blobVariation struct {
	Attributes   map[string]string `json:"attributes"`
	DisplayPrice float64           `json:"display_price"`
	Price        json.Number       `json:"price"`
	SKU          string            `json:"sku"`
	Image        blobImage         `json:"image"`
}

type blobImage struct {
	Src string `json:"src"`
	URL string `json:"url"`
}

func (v blobVariation) price() float64 {
	if v.DisplayPrice > 0 {
		return v.DisplayPrice
	}
	if f, err := v.Price.Float64(); err == nil && f > 0 {
		return f
	}
	return 0
}

func (v blobVariation) imageURL() string {
	if v.Image.Src != "" {
		return v.Image.Src
	}
	return v.Image.URL
}

var blobAttrNames = []string{"data-product_variations", "data-variations", "data-product-variations"}

var scriptBlobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`product_variations\s*[:=]\s*(\[[\s\S]*?\])\s*[,;}]`),
	regexp.MustCompile(`var\s+variations\s*=\s*(\[[\s\S]*?\]);`),
}

// variationBlobs collects decoded variation entries from data attributes
// first, then inline scripts. Entries that fail to parse are skipped; a
// malformed blob never aborts extraction.
func variationBlobs(ctx *extract.Context) []blobVariation {
	var all []blobVariation

	ctx.Doc.Find("form, select, [data-product_variations], [data-variations]").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range blobAttrNames {
			raw, exists := sel.Attr(attr)
			if !exists || raw == "" {
				continue
			}
			all = append(all, decodeBlob(raw)...)
		}
	})

	for _, re := range scriptBlobPatterns {
		for _, m := range re.FindAllStringSubmatch(ctx.Scripts, -1) {
			all = append(all, decodeBlob(m[1])...)
		}
	}

	return all
}

// decodeBlob entity-decodes and parses a variation array. Returns nil on any
// parse failure.
func decodeBlob(raw string) []blobVariation {
	raw = strings.TrimSpace(html.UnescapeString(raw))
	if !strings.HasPrefix(raw, "[") {
		return nil
	}
	var vars []blobVariation
	if err := json.Unmarshal([]byte(raw), &vars); err != nil {
		return nil
	}
	return vars
}

// matchBlob finds the variation whose attribute values equal or contain one of
// the option's keys. The code (the option's value attribute) is checked first;
// commerce platforms key variation blobs by that slug.
func matchBlob(blobs []blobVariation, optionCode, optionValue, optionName string) (blobVariation, bool) {
	code := strings.ToLower(strings.TrimSpace(optionCode))
	value := strings.ToLower(strings.TrimSpace(optionValue))
	name := strings.ToLower(strings.TrimSpace(optionName))

	for _, b := range blobs {
		for _, attrVal := range b.Attributes {
			av := strings.ToLower(strings.TrimSpace(attrVal))
			if av == "" {
				continue
			}
			if av == code || av == value || av == name ||
				(value != "" && strings.Contains(av, value)) ||
				(name != "" && strings.Contains(av, name)) {
				return b, true
			}
		}
	}
	return blobVariation{}, false
}
