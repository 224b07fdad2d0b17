package types

// ProductRecord is the normalized output of one extraction run. It is handed
// to the caller for human review; the pipeline never persists it.
type ProductRecord struct {
	Name             string            `json:"name" bson:"name"`
	SKU              string            `json:"sku" bson:"sku"`
	OriginalSKU      string            `json:"originalSku" bson:"originalSku"`
	ShortDescription string            `json:"short_description" bson:"short_description"`
	LongDescription  string            `json:"long_description" bson:"long_description"`
	Brand            string            `json:"brand" bson:"brand"`
	Manufacturer     string            `json:"manufacturer" bson:"manufacturer"`
	Price            float64           `json:"price" bson:"price"`
	CostPrice        float64           `json:"cost_price" bson:"cost_price"`
	Specifications   map[string]string `json:"specifications" bson:"specifications"`
	Images           []string          `json:"images" bson:"images"`
	MainImage        string            `json:"main_image" bson:"main_image"`
	GalleryImages    []string          `json:"gallery_images" bson:"gallery_images"`
	Colors           []string          `json:"colors" bson:"colors"`
	ColorVariants    []VariantOption   `json:"colorVariants" bson:"colorVariants"`
	Documents        []DocumentLink    `json:"documents" bson:"documents"`
	AutoCategories   []string          `json:"autoCategories" bson:"autoCategories"`
	SourceURL        string            `json:"sourceUrl" bson:"sourceUrl"`
}

// VariantOption is one detected finish/color of a product.
//
// SKU is always freshly synthesized so re-imports never collide; the
// supplier's own code survives in OriginalSKU.
type VariantOption struct {
	// Name is the display name shown to the operator, e.g. "Brushed Gold".
	Name string `json:"name" bson:"name"`

	// Value is the normalized matching key: the option text minus any
	// parenthetical price suffix, lowercased.
	Value string `json:"value" bson:"value"`

	// Code is the manufacturer's variant code, when one was found.
	Code string `json:"code,omitempty" bson:"code,omitempty"`

	// Hex is the swatch color from the finish-keyword table (#CCCCCC when
	// no keyword matched).
	Hex string `json:"hex" bson:"hex"`

	// Image is the product image matched to this finish, if any cleared
	// the scoring threshold.
	Image string `json:"image,omitempty" bson:"image,omitempty"`

	SKU         string  `json:"sku" bson:"sku"`
	OriginalSKU string  `json:"originalSku" bson:"originalSku"`
	CostPrice   float64 `json:"cost_price" bson:"cost_price"`
	Price       float64 `json:"price" bson:"price"`
}

// Document type labels assigned by the documents extractor.
const (
	DocInstallationGuide = "installation guide"
	DocTechnicalSpec     = "technical specification"
	DocBrochure          = "brochure"
	DocManual            = "manual"
	DocDrawing           = "drawing"
	DocArchive           = "archive"
	DocGeneric           = "document"
)

// DocumentLink is one discovered downloadable asset.
type DocumentLink struct {
	URL  string `json:"url" bson:"url"`
	Type string `json:"type" bson:"type"`
	Name string `json:"name" bson:"name"`
}

// PriceObservation is one price captured by the dynamic-mode fetcher after
// simulating a single finish selection.
type PriceObservation struct {
	// Value is the option's value attribute at selection time.
	Value string

	// Label is the option's visible text.
	Label string

	// Price is the displayed price read after the settle delay.
	Price float64
}
