package types

import (
	"errors"
	"regexp"
	"testing"
)

func TestBestCandidate(t *testing.T) {
	cands := []Candidate[string]{
		{Value: "heuristic", Tier: TierHeuristic},
		{Value: "structured", Tier: TierStructured},
		{Value: "selector", Tier: TierSelector},
	}

	got, ok := BestCandidate(cands)
	if !ok || got != "structured" {
		t.Errorf("BestCandidate = %q, %v", got, ok)
	}
}

func TestBestCandidateFirstWinsTies(t *testing.T) {
	cands := []Candidate[string]{
		{Value: "first", Tier: TierSelector},
		{Value: "second", Tier: TierSelector},
	}

	got, _ := BestCandidate(cands)
	if got != "first" {
		t.Errorf("tie broken wrong: %q", got)
	}
}

func TestBestCandidateEmpty(t *testing.T) {
	if _, ok := BestCandidate[float64](nil); ok {
		t.Error("expected no candidate from empty slice")
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierStructured, "structured"},
		{TierSelector, "selector"},
		{TierHeuristic, "heuristic"},
		{TierFallback, "fallback"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

var skuPattern = regexp.MustCompile(`^SF-\d{13,}-\d{4}$`)

func TestNewInternalSKU(t *testing.T) {
	sku := NewInternalSKU()
	if !skuPattern.MatchString(sku) {
		t.Errorf("sku %q does not match expected format", sku)
	}
}

func TestNewInternalSKUUniqueWithinMillisecond(t *testing.T) {
	// A record's variants all mint their SKUs in a tight loop, usually
	// inside one millisecond; the sequence suffix must keep them distinct.
	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		sku := NewInternalSKU()
		if seen[sku] {
			t.Fatalf("duplicate sku %q after %d mints", sku, i)
		}
		seen[sku] = true
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &FetchError{URL: "https://example.com", StatusCode: 0, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("FetchError does not unwrap")
	}
	if err.Error() == "" {
		t.Error("empty error string")
	}
}

func TestSynthesisErrorUnwrap(t *testing.T) {
	err := &SynthesisError{Provider: "gemini", Err: ErrEmptyResponse}
	if !errors.Is(err, ErrEmptyResponse) {
		t.Error("SynthesisError does not unwrap")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	inner := errors.New("write failed")
	err := &StorageError{Backend: "mongodb", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("StorageError does not unwrap")
	}
}
