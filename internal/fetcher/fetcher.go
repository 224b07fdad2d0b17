package fetcher

import (
	"context"

	"github.com/supplysift/supplysift/internal/types"
)

// Fetcher retrieves a product page. Implementations differ in how much of the
// page they render: the HTTP fetcher returns raw markup, the browser fetcher
// returns the DOM after scripts have run and can probe variation prices.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*types.FetchResult, error)
	Close() error
	Type() string
}
