package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkedDataProduct is a Product node mined from JSON-LD markup.
type LinkedDataProduct struct {
	Name        string
	Brand       string
	SKU         string
	Description string
	Images      []string
	Offers      []LinkedDataOffer
}

// LinkedDataOffer is one offer attached to a JSON-LD product. Multi-offer
// products usually describe per-finish pricing.
type LinkedDataOffer struct {
	Name  string
	SKU   string
	Price float64
	Image string
}

// LinkedDataProducts scans every ld+json script block for Product nodes.
// Malformed blocks are skipped; this extractor never fails.
func LinkedDataProducts(ctx *Context) []LinkedDataProduct {
	var products []LinkedDataProduct

	ctx.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		for _, node := range decodeLDNodes(raw) {
			if p, ok := productFromNode(node); ok {
				products = append(products, p)
			}
		}
	})

	return products
}

// decodeLDNodes parses a raw ld+json payload into candidate nodes. Handles a
// single object, a top-level array, and @graph containers.
func decodeLDNodes(raw string) []map[string]any {
	var nodes []map[string]any

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		if graph, ok := obj["@graph"].([]any); ok {
			for _, g := range graph {
				if m, ok := g.(map[string]any); ok {
					nodes = append(nodes, m)
				}
			}
			return nodes
		}
		return []map[string]any{obj}
	}

	var arr []map[string]any
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return arr
	}

	return nil
}

func productFromNode(node map[string]any) (LinkedDataProduct, bool) {
	if !isProductType(node["@type"]) {
		return LinkedDataProduct{}, false
	}

	p := LinkedDataProduct{
		Name:        ldString(node["name"]),
		SKU:         ldString(node["sku"]),
		Description: ldString(node["description"]),
	}

	switch brand := node["brand"].(type) {
	case string:
		p.Brand = brand
	case map[string]any:
		p.Brand = ldString(brand["name"])
	}

	switch img := node["image"].(type) {
	case string:
		p.Images = append(p.Images, img)
	case []any:
		for _, v := range img {
			if s := ldString(v); s != "" {
				p.Images = append(p.Images, s)
			}
		}
	case map[string]any:
		if s := ldString(img["url"]); s != "" {
			p.Images = append(p.Images, s)
		}
	}

	switch offers := node["offers"].(type) {
	case map[string]any:
		if o, ok := offerFromNode(offers); ok {
			p.Offers = append(p.Offers, o)
		}
	case []any:
		for _, v := range offers {
			if m, ok := v.(map[string]any); ok {
				if o, ok := offerFromNode(m); ok {
					p.Offers = append(p.Offers, o)
				}
			}
		}
	}

	return p, true
}

func offerFromNode(node map[string]any) (LinkedDataOffer, bool) {
	o := LinkedDataOffer{
		Name:  ldString(node["name"]),
		SKU:   ldString(node["sku"]),
		Image: ldString(node["image"]),
	}

	switch price := node["price"].(type) {
	case float64:
		o.Price = price
	case string:
		if v, ok := ParseMoney(price); ok {
			o.Price = v
		}
	}
	if o.Price == 0 {
		// AggregateOffer pages carry lowPrice instead.
		switch low := node["lowPrice"].(type) {
		case float64:
			o.Price = low
		case string:
			if v, ok := ParseMoney(low); ok {
				o.Price = v
			}
		}
	}

	return o, o.Price > 0 || o.Name != ""
}

func isProductType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.EqualFold(v, "Product")
	case []any:
		for _, x := range v {
			if s, ok := x.(string); ok && strings.EqualFold(s, "Product") {
				return true
			}
		}
	}
	return false
}

func ldString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
