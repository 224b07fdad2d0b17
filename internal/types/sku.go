package types

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// skuSeq starts at a random offset so SKUs are not guessable across process
// restarts; the monotonic increment keeps SKUs minted in the same millisecond
// (one record's variants, typically) distinct.
var skuSeq atomic.Uint64

func init() {
	skuSeq.Store(uint64(rand.Intn(10000)))
}

// NewInternalSKU synthesizes a catalog SKU. The timestamp keeps re-imports of
// the same supplier page from colliding with earlier imports; the supplier's
// own code lives in OriginalSKU instead.
func NewInternalSKU() string {
	return fmt.Sprintf("SF-%d-%04d", time.Now().UnixMilli(), skuSeq.Add(1)%10000)
}
