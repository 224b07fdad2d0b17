package extract

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/supplysift/supplysift/internal/types"
)

var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".zip": true, ".dwg": true,
}

var documentHrefKeywords = []string{
	"download", "datasheet", "manual", "spec", "brochure", "catalog",
}

// genericLinkText are labels too vague to use as a document name.
var genericLinkText = map[string]bool{
	"click here": true, "here": true, "download": true, "view": true,
	"pdf": true, "link": true, "more": true, "read more": true,
	"download pdf": true, "view pdf": true,
}

// Documents collects downloadable assets linked from the page. The same
// resolved URL never appears twice in the result.
func Documents(ctx *Context) []types.DocumentLink {
	seen := make(map[string]bool)
	var docs []types.DocumentLink

	ctx.Doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if !looksLikeDocument(href) {
			return
		}
		resolved := ctx.ResolveURL(href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		linkText := strings.TrimSpace(sel.Text())
		docType := classifyDocument(resolved, linkText)
		docs = append(docs, types.DocumentLink{
			URL:  resolved,
			Type: docType,
			Name: documentName(resolved, linkText, docType),
		})
	})

	return docs
}

func looksLikeDocument(href string) bool {
	lower := strings.ToLower(href)
	if documentExtensions[strings.ToLower(hrefExtension(lower))] {
		return true
	}
	for _, kw := range documentHrefKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// hrefExtension returns the file extension of a href, ignoring query strings.
func hrefExtension(href string) string {
	if u, err := url.Parse(href); err == nil {
		return path.Ext(u.Path)
	}
	return path.Ext(href)
}

// classifyDocument assigns a type label from filename and link-text keywords.
// Filename wins when both disagree; "install" is checked before the generic
// guide/manual bucket so install guides classify correctly.
func classifyDocument(resolvedURL, linkText string) string {
	haystack := strings.ToLower(resolvedURL + " " + linkText)

	switch {
	case strings.Contains(haystack, "install"):
		return types.DocInstallationGuide
	case strings.Contains(haystack, "spec") || strings.Contains(haystack, "datasheet") ||
		strings.Contains(haystack, "technical") || strings.Contains(haystack, "data-sheet"):
		return types.DocTechnicalSpec
	case strings.Contains(haystack, "brochure") || strings.Contains(haystack, "catalog"):
		return types.DocBrochure
	case strings.Contains(haystack, "manual") || strings.Contains(haystack, "instruction") ||
		strings.Contains(haystack, "guide"):
		return types.DocManual
	case strings.Contains(haystack, "drawing") || strings.Contains(haystack, ".dwg") ||
		strings.Contains(haystack, "cad"):
		return types.DocDrawing
	case strings.Contains(haystack, ".zip"):
		return types.DocArchive
	default:
		return types.DocGeneric
	}
}

// documentName derives a display label: meaningful link text first, then the
// filename, then a generic type-based label.
func documentName(resolvedURL, linkText, docType string) string {
	if meaningfulLinkText(linkText) {
		return linkText
	}
	if name := nameFromFilename(resolvedURL); name != "" {
		return name
	}
	return titleCase(docType)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func meaningfulLinkText(text string) bool {
	if len(text) < 4 {
		return false
	}
	return !genericLinkText[strings.ToLower(text)]
}

// nameFromFilename turns "install-guide.pdf" into "Install Guide".
func nameFromFilename(resolvedURL string) string {
	u, err := url.Parse(resolvedURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ", "%20", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" || base == "." || base == "/" {
		return ""
	}
	return titleCase(base)
}
