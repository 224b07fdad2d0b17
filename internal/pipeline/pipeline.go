package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/supplysift/supplysift/internal/classify"
	"github.com/supplysift/supplysift/internal/config"
	"github.com/supplysift/supplysift/internal/describe"
	"github.com/supplysift/supplysift/internal/extract"
	"github.com/supplysift/supplysift/internal/fetcher"
	"github.com/supplysift/supplysift/internal/types"
	"github.com/supplysift/supplysift/internal/variants"
)

// Pipeline runs one URL through fetch, extraction, variant resolution,
// description synthesis, and classification, assembling a ProductRecord.
// It holds no per-request state; concurrent Extract calls are safe.
type Pipeline struct {
	static   fetcher.Fetcher
	dynamic  fetcher.Fetcher
	resolver *variants.Resolver
	synth    *describe.Synthesizer
	cfg      *config.ExtractConfig
	logger   *slog.Logger
}

// New assembles the extraction pipeline. dynamic may be nil, in which case
// ExtractDynamic falls back to the static fetcher.
func New(static, dynamic fetcher.Fetcher, synth *describe.Synthesizer, cfg *config.ExtractConfig, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		static:   static,
		dynamic:  dynamic,
		resolver: variants.NewResolver(cfg.SellMultiplier, logger),
		synth:    synth,
		cfg:      cfg,
		logger:   logger.With("component", "pipeline"),
	}
}

// Extract fetches the page statically and assembles its product record.
func (p *Pipeline) Extract(ctx context.Context, pageURL string) (*types.ProductRecord, error) {
	return p.run(ctx, p.static, pageURL)
}

// ExtractDynamic renders the page in a browser, capturing per-finish price
// observations, before assembling the record.
func (p *Pipeline) ExtractDynamic(ctx context.Context, pageURL string) (*types.ProductRecord, error) {
	f := p.dynamic
	if f == nil {
		p.logger.Warn("dynamic fetcher unavailable, using static", "url", pageURL)
		f = p.static
	}
	return p.run(ctx, f, pageURL)
}

func (p *Pipeline) run(ctx context.Context, f fetcher.Fetcher, pageURL string) (*types.ProductRecord, error) {
	start := time.Now()

	result, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	ec, err := extract.NewContext(result.FinalURL, result.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	record, err := p.assemble(ctx, ec, pageURL, result.Observations)
	if err != nil {
		return nil, err
	}

	p.logger.Info("extraction complete",
		"url", pageURL,
		"mode", f.Type(),
		"sku", record.SKU,
		"variants", len(record.ColorVariants),
		"images", len(record.Images),
		"duration", time.Since(start),
	)
	return record, nil
}

// assemble runs the extractors over a parsed page and builds the record.
// Every field resolves through its candidate cascade down to a fallback, so
// assembly fails only when not even the URL slug offers a product name.
func (p *Pipeline) assemble(ctx context.Context, ec *extract.Context, sourceURL string, observations []types.PriceObservation) (*types.ProductRecord, error) {
	name, ok := types.BestCandidate(extract.Names(ec))
	if !ok || name == "" {
		return nil, fmt.Errorf("no product name on %s: %w", sourceURL, types.ErrNotFound)
	}

	basePrice, priced := types.BestCandidate(extract.Prices(ec))
	if !priced || basePrice <= 0 {
		p.logger.Warn("no price signal found, using fallback", "url", sourceURL, "fallback", p.cfg.FallbackPrice)
		basePrice = p.cfg.FallbackPrice
	}

	originalSKU, _ := types.BestCandidate(extract.OriginalSKUs(ec))
	brand, _ := types.BestCandidate(extract.Brands(ec))

	images := extract.Images(ec, p.cfg.MaxImages)
	documents := extract.Documents(ec)
	specs := extract.Specifications(ec, documents)

	colorVariants := p.resolver.Resolve(variants.Input{
		Ctx:             ec,
		BasePrice:       basePrice,
		BaseOriginalSKU: originalSKU,
		Images:          images,
		Observations:    observations,
	})

	extracted, _ := types.BestCandidate(extract.Descriptions(ec))
	long, short := p.synth.Synthesize(ctx, describe.PageSummary{
		Name:          name,
		Brand:         brand,
		CategoryGuess: classify.Guess(name),
		Extracted:     extracted,
		Headings:      extract.Headings(ec),
		SpecKeys:      specKeys(specs),
		Features:      extract.FeatureBullets(ec),
	})

	record := &types.ProductRecord{
		Name:             name,
		SKU:              types.NewInternalSKU(),
		OriginalSKU:      originalSKU,
		ShortDescription: short,
		LongDescription:  long,
		Brand:            brand,
		Manufacturer:     brand,
		CostPrice:        basePrice,
		Price:            roundMoney(basePrice * p.cfg.SellMultiplier),
		Specifications:   specs,
		Images:           images,
		ColorVariants:    colorVariants,
		Documents:        documents,
		AutoCategories:   classify.Categories(name, long, brand, sourceURL),
		SourceURL:        sourceURL,
	}

	if len(images) > 0 {
		record.MainImage = images[0]
		record.GalleryImages = images[1:]
	}
	for _, v := range colorVariants {
		record.Colors = append(record.Colors, v.Name)
	}

	return record, nil
}

// Close releases the pipeline's fetchers.
func (p *Pipeline) Close() error {
	var firstErr error
	if err := p.static.Close(); err != nil {
		firstErr = err
	}
	if p.dynamic != nil {
		if err := p.dynamic.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func specKeys(specs map[string]string) []string {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	return keys
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
