package extract

import (
	"strings"
	"testing"

	"github.com/supplysift/supplysift/internal/types"
)

const productHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Aria Basin Mixer | Tapware Direct</title>
    <meta property="og:title" content="Aria Basin Mixer">
    <meta property="og:image" content="https://cdn.example.com/aria-og.jpg">
    <meta property="og:site_name" content="Tapware Direct">
    <meta name="description" content="Short meta description of the mixer.">
    <script type="application/ld+json">
    {
      "@context": "https://schema.org",
      "@type": "Product",
      "name": "Aria Basin Mixer",
      "sku": "AR-100",
      "brand": {"@type": "Brand", "name": "Aria"},
      "description": "The Aria basin mixer pairs a solid brass body with ceramic disc cartridges for a lifetime of smooth operation.",
      "image": ["https://cdn.example.com/aria-chrome.jpg", "https://cdn.example.com/aria-black.jpg"],
      "offers": [
        {"@type": "Offer", "price": "249.00"},
        {"@type": "Offer", "price": "299.00"}
      ]
    }
    </script>
</head>
<body>
    <h1 class="product_title">Aria Basin Mixer</h1>
    <div class="product-price"><span class="amount">$329.00</span></div>
    <p>Code: AR-100-CH</p>
    <div class="product-gallery">
        <img src="/images/aria-chrome.jpg">
        <img data-src="/images/aria-matt-black.jpg" src="/images/pixel.gif">
        <img src="/images/site-logo.png">
    </div>
    <div class="product-description">
        <p>The Aria basin mixer pairs a solid brass body with ceramic disc cartridges.</p>
    </div>
    <table>
        <tr><th>Material</th><td>Brass</td></tr>
        <tr><th>WELS Rating</th><td>5 star</td></tr>
        <tr><th>Material</th><td>Material</td></tr>
    </table>
    <ul class="features">
        <li>Solid brass construction for durability</li>
        <li>Ceramic disc cartridge rated to 500,000 cycles</li>
    </ul>
    <a href="/docs/aria-install.pdf">Installation Guide</a>
    <a href="/docs/aria-specs.pdf">Download</a>
    <a href="#">Click here</a>
</body>
</html>`

func mustContext(t *testing.T, html string) *Context {
	t.Helper()
	ctx, err := NewContext("https://www.example.com/products/aria-basin-mixer", html)
	if err != nil {
		t.Fatalf("new context: %v", err)
	}
	return ctx
}

func TestLinkedDataProducts(t *testing.T) {
	ctx := mustContext(t, productHTML)

	products := LinkedDataProducts(ctx)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	p := products[0]
	if p.Name != "Aria Basin Mixer" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Brand != "Aria" {
		t.Errorf("brand = %q", p.Brand)
	}
	if p.SKU != "AR-100" {
		t.Errorf("sku = %q", p.SKU)
	}
	if len(p.Images) != 2 {
		t.Errorf("expected 2 images, got %d", len(p.Images))
	}
	if len(p.Offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(p.Offers))
	}
	if p.Offers[0].Price != 249 {
		t.Errorf("offer price = %v", p.Offers[0].Price)
	}
}

func TestLinkedDataGraph(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
	{"@graph":[
	  {"@type":"WebSite","name":"Shop"},
	  {"@type":"Product","name":"Graph Product","offers":{"@type":"Offer","price":99.5}}
	]}
	</script></head><body></body></html>`
	ctx := mustContext(t, html)

	products := LinkedDataProducts(ctx)
	if len(products) != 1 {
		t.Fatalf("expected 1 product from @graph, got %d", len(products))
	}
	if products[0].Name != "Graph Product" {
		t.Errorf("name = %q", products[0].Name)
	}
	if products[0].Offers[0].Price != 99.5 {
		t.Errorf("price = %v", products[0].Offers[0].Price)
	}
}

func TestLinkedDataMalformedSkipped(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">{not json at all</script>
	<script type="application/ld+json">{"@type":"Product","name":"Good One"}</script>
	</head><body></body></html>`
	ctx := mustContext(t, html)

	products := LinkedDataProducts(ctx)
	if len(products) != 1 {
		t.Fatalf("expected malformed block skipped, got %d products", len(products))
	}
}

func TestNames(t *testing.T) {
	ctx := mustContext(t, productHTML)

	name, ok := types.BestCandidate(Names(ctx))
	if !ok {
		t.Fatal("expected a name candidate")
	}
	if name != "Aria Basin Mixer" {
		t.Errorf("name = %q", name)
	}
}

func TestNamesTitleFallback(t *testing.T) {
	html := `<html><head><title>Lonely Widget | Some Shop</title></head><body></body></html>`
	ctx := mustContext(t, html)

	cands := Names(ctx)
	name, ok := types.BestCandidate(cands)
	if !ok {
		t.Fatal("expected a name candidate")
	}
	if name != "Lonely Widget" {
		t.Errorf("expected site suffix trimmed, got %q", name)
	}
	if cands[0].Tier != types.TierHeuristic {
		t.Errorf("title candidate tier = %v", cands[0].Tier)
	}
}

func TestNamesTitleOutranksOgTitle(t *testing.T) {
	html := `<html><head>
		<title>Aria Basin Mixer | Acme Tapware</title>
		<meta property="og:title" content="Shop Tapware Online">
	</head><body></body></html>`
	ctx := mustContext(t, html)

	name, ok := types.BestCandidate(Names(ctx))
	if !ok {
		t.Fatal("expected a name candidate")
	}
	if name != "Aria Basin Mixer" {
		t.Errorf("expected <title> before og:title, got %q", name)
	}
}

func TestNamesSlugFallback(t *testing.T) {
	// A rendered page with no usable markup at all still gets a name from
	// the URL slug.
	html := `<html><body><p>just prose, no product markup anywhere</p></body></html>`
	ctx := mustContext(t, html)

	cands := Names(ctx)
	name, ok := types.BestCandidate(cands)
	if !ok {
		t.Fatal("expected a name candidate")
	}
	if name != "Aria Basin Mixer" {
		t.Errorf("slug name = %q", name)
	}
	if cands[0].Tier != types.TierFallback {
		t.Errorf("slug candidate tier = %v", cands[0].Tier)
	}
}

func TestPricesPreferStructured(t *testing.T) {
	ctx := mustContext(t, productHTML)

	price, ok := types.BestCandidate(Prices(ctx))
	if !ok {
		t.Fatal("expected a price candidate")
	}
	// Lowest JSON-LD offer outranks the $329 selector price.
	if price != 249 {
		t.Errorf("price = %v, want 249", price)
	}
}

func TestPricesSelectorFallback(t *testing.T) {
	html := `<html><body><div class="product-price"><span class="amount">$1,234.50</span></div></body></html>`
	ctx := mustContext(t, html)

	price, ok := types.BestCandidate(Prices(ctx))
	if !ok {
		t.Fatal("expected a price candidate")
	}
	if price != 1234.5 {
		t.Errorf("price = %v", price)
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$249.00", 249, true},
		{"1,234.50", 1234.5, true},
		{"AUD $89", 89, true},
		{"free", 0, false},
		{"$0.00", 0, false},
		{"$2,000,000", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMoney(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseMoney(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOriginalSKUs(t *testing.T) {
	ctx := mustContext(t, productHTML)

	sku, ok := types.BestCandidate(OriginalSKUs(ctx))
	if !ok {
		t.Fatal("expected a sku candidate")
	}
	if sku != "AR-100" {
		t.Errorf("sku = %q, want JSON-LD value", sku)
	}
}

func TestOriginalSKUsLabelBeatsSelector(t *testing.T) {
	html := `<html><body>
	<p>SKU: LBL-77</p>
	<span class="sku">ELEM-88</span>
	</body></html>`
	ctx := mustContext(t, html)

	sku, ok := types.BestCandidate(OriginalSKUs(ctx))
	if !ok {
		t.Fatal("expected a sku candidate")
	}
	if sku != "LBL-77" {
		t.Errorf("sku = %q, want labeled code to win", sku)
	}
}

func TestOriginalSKUsPathFallback(t *testing.T) {
	ctx := mustContext(t, `<html><body><p>nothing here</p></body></html>`)

	cands := OriginalSKUs(ctx)
	sku, ok := types.BestCandidate(cands)
	if !ok {
		t.Fatal("expected the path fallback candidate")
	}
	if sku != "aria-basin-mixer" {
		t.Errorf("sku = %q", sku)
	}
	if cands[len(cands)-1].Tier != types.TierFallback {
		t.Errorf("fallback tier = %v", cands[len(cands)-1].Tier)
	}
}

func TestImages(t *testing.T) {
	ctx := mustContext(t, productHTML)

	images := Images(ctx, 15)
	if len(images) == 0 {
		t.Fatal("expected images")
	}
	for _, img := range images {
		if strings.Contains(img, "logo") || strings.Contains(img, "pixel") {
			t.Errorf("excluded keyword image survived: %s", img)
		}
		if !strings.HasPrefix(img, "http") {
			t.Errorf("image not absolute: %s", img)
		}
	}
	// Gallery images come before JSON-LD and og:image candidates.
	if !strings.Contains(images[0], "aria-chrome") {
		t.Errorf("first image = %s", images[0])
	}
	// Lazy-loaded image resolved from data-src.
	found := false
	for _, img := range images {
		if strings.Contains(img, "matt-black") {
			found = true
		}
	}
	if !found {
		t.Error("data-src image missing")
	}
}

func TestImagesCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		sb.WriteString(`<img src="/img/p` + strings.Repeat("x", i+1) + `.jpg">`)
	}
	sb.WriteString("</body></html>")
	ctx := mustContext(t, sb.String())

	images := Images(ctx, 15)
	if len(images) != 15 {
		t.Errorf("expected cap at 15, got %d", len(images))
	}
}

func TestDocuments(t *testing.T) {
	ctx := mustContext(t, productHTML)

	docs := Documents(ctx)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d: %+v", len(docs), docs)
	}

	byType := map[string]types.DocumentLink{}
	for _, d := range docs {
		byType[d.Type] = d
	}
	install, ok := byType[types.DocInstallationGuide]
	if !ok {
		t.Fatal("expected an installation guide")
	}
	if install.Name != "Installation Guide" {
		t.Errorf("install name = %q", install.Name)
	}
	spec, ok := byType[types.DocTechnicalSpec]
	if !ok {
		t.Fatal("expected a technical specification")
	}
	// Generic "Download" link text falls back to the filename.
	if spec.Name == "Download" {
		t.Errorf("generic link text kept: %q", spec.Name)
	}
}

func TestSpecifications(t *testing.T) {
	ctx := mustContext(t, productHTML)

	specs := Specifications(ctx, nil)
	if specs["Material"] != "Brass" {
		t.Errorf("Material = %q", specs["Material"])
	}
	if specs["WELS Rating"] != "5 star" {
		t.Errorf("WELS Rating = %q", specs["WELS Rating"])
	}
}

func TestSpecificationsPDFFallback(t *testing.T) {
	ctx := mustContext(t, `<html><body><p>no tables</p></body></html>`)
	docs := []types.DocumentLink{{
		URL:  "https://cdn.example.com/specs.pdf",
		Type: types.DocTechnicalSpec,
		Name: "Spec Sheet",
	}}

	specs := Specifications(ctx, docs)
	if len(specs) != 1 {
		t.Fatalf("expected the pdf pseudo-spec, got %v", specs)
	}
	v := specs["Spec Sheet"]
	if !strings.Contains(v, "https://cdn.example.com/specs.pdf") || !strings.Contains(v, "<a href=") {
		t.Errorf("pseudo-spec value = %q", v)
	}
}

func TestDescriptions(t *testing.T) {
	ctx := mustContext(t, productHTML)

	desc, ok := types.BestCandidate(Descriptions(ctx))
	if !ok {
		t.Fatal("expected a description")
	}
	if !strings.Contains(desc, "ceramic disc cartridges") {
		t.Errorf("description = %q", desc)
	}
}

func TestBrands(t *testing.T) {
	ctx := mustContext(t, productHTML)

	brand, ok := types.BestCandidate(Brands(ctx))
	if !ok {
		t.Fatal("expected a brand")
	}
	if brand != "Aria" {
		t.Errorf("brand = %q", brand)
	}
}

func TestHeadingsAndFeatures(t *testing.T) {
	ctx := mustContext(t, productHTML)

	headings := Headings(ctx)
	if len(headings) == 0 || headings[0] != "Aria Basin Mixer" {
		t.Errorf("headings = %v", headings)
	}

	features := FeatureBullets(ctx)
	if len(features) != 2 {
		t.Errorf("features = %v", features)
	}
}

func TestResolveURL(t *testing.T) {
	ctx := mustContext(t, productHTML)

	tests := []struct {
		in   string
		want string
	}{
		{"/docs/guide.pdf", "https://www.example.com/docs/guide.pdf"},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"javascript:void(0)", ""},
		{"data:image/png;base64,xyz", ""},
	}
	for _, tt := range tests {
		if got := ctx.ResolveURL(tt.in); got != tt.want {
			t.Errorf("ResolveURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
