package variants

import (
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/supplysift/supplysift/internal/extract"
	"github.com/supplysift/supplysift/internal/types"
)

// Resolver reconciles detected finish options against per-variant prices and
// images and assigns each a synthesized SKU.
type Resolver struct {
	sellMultiplier float64
	logger         *slog.Logger
}

// NewResolver creates a variant resolver. sellMultiplier derives each
// variant's sell price from its cost price.
func NewResolver(sellMultiplier float64, logger *slog.Logger) *Resolver {
	return &Resolver{
		sellMultiplier: sellMultiplier,
		logger:         logger.With("component", "variant_resolver"),
	}
}

// Input carries everything the resolver needs for one page.
type Input struct {
	Ctx *extract.Context

	// BasePrice is the product's resolved base cost price, the terminal
	// fallback for unpriced options.
	BasePrice float64

	// BaseOriginalSKU is the supplier's product code; variant original
	// SKUs are derived from it.
	BaseOriginalSKU string

	// Images are the page's collected product images, candidates for
	// per-variant linking.
	Images []string

	// Observations are dynamic-mode price captures, when available.
	Observations []types.PriceObservation
}

// Resolve returns the page's variants with prices, swatch colors, images and
// SKUs assigned. An empty result means the product has no detectable finish
// options, which is not an error.
func (r *Resolver) Resolve(in Input) []types.VariantOption {
	opts := detectOptions(in.Ctx)
	if len(opts) == 0 {
		return nil
	}

	blobs := variationBlobs(in.Ctx)
	low, high, hasRange := priceRange(in.Ctx)

	variants := make([]types.VariantOption, 0, len(opts))
	for _, opt := range opts {
		v := types.VariantOption{
			Name:  opt.Name,
			Value: opt.Value,
			Code:  opt.Code,
			Hex:   FinishHex(opt.Name),
			SKU:   types.NewInternalSKU(),
		}

		blob, blobOK := matchBlob(blobs, opt.Code, opt.Value, opt.Name)

		v.CostPrice = r.resolvePrice(in, opt, blob, blobOK, low, high, hasRange)
		v.Price = roundMoney(v.CostPrice * r.sellMultiplier)

		v.Image = r.resolveImage(in, opt, blob, blobOK)

		v.OriginalSKU = originalVariantSKU(in.BaseOriginalSKU, opt, blob, blobOK)

		variants = append(variants, v)
	}

	r.logger.Debug("variants resolved",
		"url", in.Ctx.URL,
		"count", len(variants),
	)
	return variants
}

// resolvePrice walks the priority ladder: detection-time price, variation
// blob, dynamic observation, price pattern scoped near the option, range
// heuristic, then the base price.
func (r *Resolver) resolvePrice(in Input, opt rawOption, blob blobVariation, blobOK bool, low, high float64, hasRange bool) float64 {
	if opt.Price > 0 {
		return opt.Price
	}
	if blobOK {
		if p := blob.price(); p > 0 {
			return p
		}
	}
	if p, ok := observedPrice(in.Observations, opt); ok {
		return p
	}
	if p, ok := scopedPrice(in.Ctx, opt); ok {
		return p
	}
	if hasRange {
		if p, ok := rangePrice(opt.Name, low, high); ok {
			return p
		}
	}
	return in.BasePrice
}

func (r *Resolver) resolveImage(in Input, opt rawOption, blob blobVariation, blobOK bool) string {
	if opt.Image != "" && in.Ctx.ClaimImage(opt.Image) {
		return opt.Image
	}
	if blobOK {
		if img := blob.imageURL(); img != "" && in.Ctx.ClaimImage(img) {
			return img
		}
	}

	bestScore := 0
	bestImage := ""
	for _, img := range in.Images {
		if in.Ctx.ImageClaimed(img) {
			continue
		}
		score := scoreImage(img, opt.Name, opt.Code)
		if score > bestScore {
			bestScore = score
			bestImage = img
		}
	}
	if bestScore >= imageMatchThreshold && in.Ctx.ClaimImage(bestImage) {
		return bestImage
	}
	return ""
}

// observedPrice matches a dynamic-mode capture by option value, then label.
func observedPrice(obs []types.PriceObservation, opt rawOption) (float64, bool) {
	for _, o := range obs {
		if o.Price <= 0 {
			continue
		}
		if strings.EqualFold(o.Value, opt.Code) || strings.EqualFold(o.Value, opt.Value) ||
			strings.EqualFold(o.Label, opt.Name) {
			return o.Price, true
		}
	}
	for _, o := range obs {
		if o.Price <= 0 {
			continue
		}
		if strings.Contains(strings.ToLower(o.Label), opt.Value) {
			return o.Price, true
		}
	}
	return 0, false
}

// scopedWindow is how far past the option's name/code a price token may sit
// and still be attributed to that option.
const scopedWindow = 160

// scopedPrice looks for a price token in the page text shortly after the
// option's code or display name.
func scopedPrice(ctx *extract.Context, opt rawOption) (float64, bool) {
	text := ctx.Doc.Text()
	lower := strings.ToLower(text)

	for _, needle := range []string{strings.ToLower(opt.Code), strings.ToLower(opt.Name)} {
		if len(needle) < 3 {
			continue
		}
		idx := strings.Index(lower, needle)
		if idx < 0 {
			continue
		}
		end := idx + len(needle) + scopedWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[idx+len(needle) : end]
		if m := pricePattern.FindString(window); m != "" {
			if p, ok := extract.ParseMoney(m); ok {
				return p, true
			}
		}
	}
	return 0, false
}

var rangePattern = regexp.MustCompile(`\$\s?([\d,]+(?:\.\d{1,2})?)\s*(?:-|–|to)\s*\$?\s?([\d,]+(?:\.\d{1,2})?)`)

// priceRange finds a min-max price range display on the page.
func priceRange(ctx *extract.Context) (low, high float64, ok bool) {
	m := rangePattern.FindStringSubmatch(ctx.Doc.Text())
	if len(m) != 3 {
		return 0, 0, false
	}
	low, lowOK := extract.ParseMoney(m[1])
	high, highOK := extract.ParseMoney(m[2])
	if !lowOK || !highOK || high <= low {
		return 0, 0, false
	}
	return low, high, true
}

var (
	premiumFinishes  = []string{"black", "gunmetal", "brass", "gold"}
	standardFinishes = []string{"chrome", "silver"}
	midFinishes      = []string{"nickel"}
)

// rangePrice assigns a point in a displayed price range by finish class:
// premium finishes take the high end, standard the low end, mid-range the
// midpoint. Unrecognized finishes fall through to the base price.
func rangePrice(finishName string, low, high float64) (float64, bool) {
	lower := strings.ToLower(finishName)
	for _, f := range premiumFinishes {
		if strings.Contains(lower, f) {
			return high, true
		}
	}
	for _, f := range standardFinishes {
		if strings.Contains(lower, f) {
			return low, true
		}
	}
	for _, f := range midFinishes {
		if strings.Contains(lower, f) {
			return roundMoney((low + high) / 2), true
		}
	}
	return 0, false
}

// originalVariantSKU preserves the supplier's identity for the variant as
// "{base}.{code}"; the option code falls back to a slug of the value.
func originalVariantSKU(base string, opt rawOption, blob blobVariation, blobOK bool) string {
	if blobOK && blob.SKU != "" {
		return blob.SKU
	}
	code := opt.Code
	if code == "" {
		code = strings.ReplaceAll(opt.Value, " ", "-")
	}
	if base == "" {
		return code
	}
	return base + "." + code
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
