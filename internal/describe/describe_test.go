package describe

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeGenerator returns a canned response or error.
type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeGenerator) Name() string { return "fake" }

func TestSynthesizeKeepsExtracted(t *testing.T) {
	gen := &fakeGenerator{text: "generated text"}
	s := NewSynthesizer(gen, 50, testLogger)

	extracted := "This extracted description is comfortably longer than fifty characters and must be kept verbatim."
	long, short := s.Synthesize(context.Background(), PageSummary{
		Name:      "Aria Mixer",
		Extracted: extracted,
	})

	if long != extracted {
		t.Errorf("extracted description was rewritten: %q", long)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for a sufficient description", gen.calls)
	}
	if short != "This extracted description is comfortably longer than fifty characters and must be kept verbatim." {
		t.Errorf("short = %q", short)
	}
}

func TestSynthesizeUsesGeneratorWhenShort(t *testing.T) {
	generated := "The Aria mixer brings durable brass construction to any bathroom. It suits modern and classic spaces alike."
	gen := &fakeGenerator{text: generated}
	s := NewSynthesizer(gen, 50, testLogger)

	long, short := s.Synthesize(context.Background(), PageSummary{
		Name:      "Aria Mixer",
		Extracted: "Too short.",
	})

	if long != generated {
		t.Errorf("long = %q", long)
	}
	if short != "The Aria mixer brings durable brass construction to any bathroom." {
		t.Errorf("short = %q", short)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d", gen.calls)
	}
}

func TestSynthesizeFallsBackOnGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	s := NewSynthesizer(gen, 50, testLogger)

	long, short := s.Synthesize(context.Background(), PageSummary{
		Name:  "Aria Mixer",
		Brand: "Aria",
	})

	if len(long) < 50 {
		t.Errorf("template description too short: %q", long)
	}
	if !strings.Contains(long, "Aria Mixer") {
		t.Errorf("template missing product name: %q", long)
	}
	if short == "" || strings.Contains(short, "\n") {
		t.Errorf("short = %q", short)
	}
}

func TestSynthesizeFallsBackOnShortGeneration(t *testing.T) {
	gen := &fakeGenerator{text: "Tiny."}
	s := NewSynthesizer(gen, 50, testLogger)

	long, _ := s.Synthesize(context.Background(), PageSummary{Name: "Aria Mixer"})
	if long == "Tiny." {
		t.Error("undersized generation was accepted")
	}
	if len(long) < 50 {
		t.Errorf("fallback too short: %q", long)
	}
}

func TestSynthesizeNilGenerator(t *testing.T) {
	s := NewSynthesizer(nil, 50, testLogger)

	long, short := s.Synthesize(context.Background(), PageSummary{
		Name:     "Aria Mixer",
		Features: []string{"Solid brass body", "Ceramic cartridge", "WELS 5 star", "Extra feature"},
	})

	if len(long) < 50 {
		t.Errorf("template too short: %q", long)
	}
	if !strings.Contains(long, "Solid brass body") {
		t.Errorf("features not woven in: %q", long)
	}
	if strings.Contains(long, "Extra feature") {
		t.Errorf("more than three features used: %q", long)
	}
	if short == "" {
		t.Error("empty short description")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(PageSummary{
		Name:          "Aria Mixer",
		Brand:         "Aria",
		CategoryGuess: "mixer",
		Headings:      []string{"Overview"},
		SpecKeys:      []string{"Material", "WELS Rating"},
		Features:      []string{"Solid brass"},
	})

	for _, want := range []string{"Aria Mixer", "Aria", "mixer", "Overview", "Material", "Solid brass", "do not invent"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"One. Two.", "One."},
		{"No terminator here", "No terminator here"},
		{"Really? Yes.", "Really?"},
	}
	for _, tt := range tests {
		if got := firstSentence(tt.in); got != tt.want {
			t.Errorf("firstSentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinNatural(t *testing.T) {
	if got := joinNatural([]string{"a", "b", "c"}); got != "a, b and c" {
		t.Errorf("joinNatural = %q", got)
	}
	if got := joinNatural([]string{"a"}); got != "a" {
		t.Errorf("joinNatural = %q", got)
	}
}
