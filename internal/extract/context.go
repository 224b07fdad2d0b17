package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/supplysift/supplysift/internal/types"
)

// Context holds everything the extractors read for one scrape request.
// It is built once per request and discarded with the record; extractors
// never share state across requests.
type Context struct {
	// URL is the source page URL.
	URL string

	// Base is the parsed source URL, used to resolve relative references.
	Base *url.URL

	// HTML is the raw page markup.
	HTML string

	// Doc is the goquery document tree.
	Doc *goquery.Document

	// Node is the x/net/html root, for XPath queries via htmlquery.
	Node *html.Node

	// Scripts is the concatenated text of all inline <script> elements
	// except JSON-LD blocks, mined for embedded variation data.
	Scripts string

	// claimed tracks image URLs already assigned to a variant so the same
	// image is never matched twice.
	claimed map[string]bool
}

// NewContext parses raw page HTML into an extraction context.
func NewContext(sourceURL, rawHTML string) (*Context, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, types.ErrInvalidURL
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	var scripts strings.Builder
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if t, _ := sel.Attr("type"); strings.Contains(t, "ld+json") {
			return
		}
		scripts.WriteString(sel.Text())
		scripts.WriteByte('\n')
	})

	return &Context{
		URL:     sourceURL,
		Base:    base,
		HTML:    rawHTML,
		Doc:     doc,
		Node:    node,
		Scripts: scripts.String(),
		claimed: make(map[string]bool),
	}, nil
}

// ClaimImage marks an image URL as assigned to a variant. It returns false
// when the URL was already claimed.
func (c *Context) ClaimImage(u string) bool {
	if c.claimed[u] {
		return false
	}
	c.claimed[u] = true
	return true
}

// ImageClaimed reports whether an image URL is already assigned.
func (c *Context) ImageClaimed(u string) bool {
	return c.claimed[u]
}

// ResolveURL turns a possibly-relative reference into an absolute URL against
// the source page. Returns "" for unparseable or non-HTTP references.
func (c *Context) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "javascript:") {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	resolved := c.Base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
