package orders

import (
	"context"

	"go.uber.org/zap"
)

// StockDirection selects whether an adjustment reserves stock (decrease)
// or returns it (increase).
type StockDirection int

const (
	StockDecrease StockDirection = iota
	StockIncrease
)

// ProductStock is the one slice of the catalog the order subsystem may
// touch: the stock counter.
type ProductStock interface {
	// AdjustStock applies a signed stock delta, clamped at zero, and
	// reports whether the product exists.
	AdjustStock(ctx context.Context, productID string, delta int) (found bool, err error)
}

// InventoryAdjuster mutates product stock counters in response to order
// lifecycle events. Items are processed independently: a missing product
// or a store error on one item never blocks the remaining items, and
// never fails the order operation that triggered the adjustment.
type InventoryAdjuster struct {
	Products ProductStock
	Log      *zap.Logger
}

func (a *InventoryAdjuster) Adjust(ctx context.Context, items []LineItem, dir StockDirection) {
	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		delta := qty
		if dir == StockDecrease {
			delta = -qty
		}
		found, err := a.Products.AdjustStock(ctx, it.ProductID, delta)
		if err != nil {
			a.Log.Error("stock adjustment failed",
				zap.String("product_id", it.ProductID),
				zap.Int("delta", delta),
				zap.Error(err))
			continue
		}
		if !found {
			// The order keeps its snapshot even when the product is gone.
			a.Log.Debug("stock adjustment skipped, product missing",
				zap.String("product_id", it.ProductID))
		}
	}
}
