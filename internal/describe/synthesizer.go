package describe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/supplysift/supplysift/internal/types"
)

// PageSummary is the factual material available to the synthesizer: what the
// extractors recovered from the page before description assembly.
type PageSummary struct {
	Name          string
	Brand         string
	CategoryGuess string
	Extracted     string
	Headings      []string
	SpecKeys      []string
	Features      []string
}

// Synthesizer fills in product descriptions when the page's own copy is
// missing or too thin to publish. A nil generator means template-only mode.
type Synthesizer struct {
	gen       TextGenerator
	minLength int
	logger    *slog.Logger
}

// NewSynthesizer creates a description synthesizer. minLength is the shortest
// extracted description accepted as-is.
func NewSynthesizer(gen TextGenerator, minLength int, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{
		gen:       gen,
		minLength: minLength,
		logger:    logger.With("component", "synthesizer"),
	}
}

// Synthesize returns the long and short descriptions for a product. An
// extracted description at or above the minimum length is kept untouched;
// otherwise the generator is tried, and the deterministic template covers
// generator failure. Never returns empty strings for a named product.
func (s *Synthesizer) Synthesize(ctx context.Context, sum PageSummary) (long, short string) {
	long = strings.TrimSpace(sum.Extracted)
	if len(long) >= s.minLength {
		return long, firstSentence(long)
	}

	if s.gen != nil {
		generated, err := s.gen.Generate(ctx, buildPrompt(sum))
		if err == nil {
			if g := strings.TrimSpace(generated); len(g) >= s.minLength {
				return g, firstSentence(g)
			}
			err = &types.SynthesisError{Provider: s.gen.Name(), Err: types.ErrTooShort}
		}
		s.logger.Warn("description generation failed, using template",
			"provider", s.gen.Name(),
			"error", err,
		)
	}

	long = templateDescription(sum)
	return long, firstSentence(long)
}

// buildPrompt assembles the structured generation prompt from page facts. Only
// extracted facts go in; the model is told not to invent specifications.
func buildPrompt(sum PageSummary) string {
	var sb strings.Builder

	sb.WriteString("Write a product description for an e-commerce listing.\n\n")
	fmt.Fprintf(&sb, "Product name: %s\n", sum.Name)
	if sum.Brand != "" {
		fmt.Fprintf(&sb, "Brand: %s\n", sum.Brand)
	}
	if sum.CategoryGuess != "" {
		fmt.Fprintf(&sb, "Product type: %s\n", sum.CategoryGuess)
	}
	if len(sum.Headings) > 0 {
		fmt.Fprintf(&sb, "Page headings: %s\n", strings.Join(sum.Headings, "; "))
	}
	if len(sum.SpecKeys) > 0 {
		fmt.Fprintf(&sb, "Specification fields: %s\n", strings.Join(sum.SpecKeys, ", "))
	}
	if len(sum.Features) > 0 {
		sb.WriteString("Listed features:\n")
		for _, f := range sum.Features {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}

	sb.WriteString("\nWrite two to three paragraphs of plain prose. ")
	sb.WriteString("Use only the facts above; do not invent measurements, materials, or certifications. ")
	sb.WriteString("Do not use markdown, headings, or bullet points.")

	return sb.String()
}

// firstSentence returns the text up to the first sentence terminator, or the
// whole text when no terminator is found.
func firstSentence(text string) string {
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			return strings.TrimSpace(text[:i+1])
		}
	}
	return strings.TrimSpace(text)
}
