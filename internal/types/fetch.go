package types

import "time"

// FetchResult is the raw outcome of retrieving a supplier page.
type FetchResult struct {
	// URL is the requested URL.
	URL string

	// FinalURL is the URL after any redirects.
	FinalURL string

	// StatusCode is the HTTP status (200 for browser-rendered pages, which
	// do not expose one reliably).
	StatusCode int

	// Body is the raw page HTML.
	Body string

	// FetchDuration is how long the fetch took.
	FetchDuration time.Duration

	// FetchedAt is when the page was retrieved.
	FetchedAt time.Time

	// Observations holds per-selection price readings captured in dynamic
	// mode. Empty for static fetches.
	Observations []PriceObservation
}

// IsSuccess reports whether the response status is 2xx.
func (r *FetchResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
