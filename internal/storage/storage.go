package storage

import (
	"context"

	"github.com/supplysift/supplysift/internal/types"
)

// ProductStore persists confirmed product records. Save is an upsert keyed on
// the internal SKU so re-confirming a product replaces the earlier record.
type ProductStore interface {
	Save(ctx context.Context, record *types.ProductRecord) error
	Close(ctx context.Context) error
	Name() string
}
