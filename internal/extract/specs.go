package extract

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"

	"github.com/supplysift/supplysift/internal/types"
)

const (
	maxSpecKeyLen   = 80
	maxSpecValueLen = 400
)

// Specifications scans table rows and definition lists for key/value
// technical facts. When none are found but PDF documents were, each PDF is
// synthesized into a pseudo-specification row embedding a download link;
// that is long-standing importer behavior the admin screen depends on.
func Specifications(ctx *Context, docs []types.DocumentLink) map[string]string {
	specs := make(map[string]string)

	for _, row := range htmlquery.Find(ctx.Node, "//table//tr") {
		cells := htmlquery.Find(row, "./th|./td")
		if len(cells) != 2 {
			continue
		}
		key := strings.TrimSpace(htmlquery.InnerText(cells[0]))
		value := strings.TrimSpace(htmlquery.InnerText(cells[1]))
		if plausibleSpec(key, value) {
			specs[key] = value
		}
	}

	for _, dl := range htmlquery.Find(ctx.Node, "//dl") {
		terms := htmlquery.Find(dl, "./dt")
		defs := htmlquery.Find(dl, "./dd")
		for i := 0; i < len(terms) && i < len(defs); i++ {
			key := strings.TrimSpace(htmlquery.InnerText(terms[i]))
			value := strings.TrimSpace(htmlquery.InnerText(defs[i]))
			if plausibleSpec(key, value) {
				specs[key] = value
			}
		}
	}

	if len(specs) == 0 {
		for _, doc := range docs {
			if !strings.HasSuffix(strings.ToLower(doc.URL), ".pdf") {
				continue
			}
			key := doc.Name
			if _, taken := specs[key]; taken {
				key = fmt.Sprintf("%s (%d)", doc.Name, len(specs)+1)
			}
			specs[key] = fmt.Sprintf(`<a href="%s" target="_blank">Download</a>`, doc.URL)
		}
	}

	return specs
}

// plausibleSpec filters rows that are layout artifacts rather than facts:
// both sides non-empty and bounded, and the value not a repeat of the key.
func plausibleSpec(key, value string) bool {
	if key == "" || value == "" || key == value {
		return false
	}
	if len(key) > maxSpecKeyLen || len(value) > maxSpecValueLen {
		return false
	}
	return true
}
