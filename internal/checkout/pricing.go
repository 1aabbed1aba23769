package checkout

import "context"

// Flat checkout fee, percent of the subtotal, rounded down to the cent.
// Downstream reconciliation depends on the floor rounding.
const surchargePercent = 2

type Quote struct {
	SubtotalCents  int
	SurchargeCents int
	TotalCents     int
}

// PriceItems prices a cart from catalog offer prices. Client-supplied prices
// are never consulted. Any missing product aborts the whole quote.
func PriceItems(ctx context.Context, items []OrderItem, catalog CatalogStore) (Quote, error) {
	if len(items) == 0 {
		return Quote{}, ErrEmptyCart
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	prices, err := catalog.OfferPrices(ctx, ids)
	if err != nil {
		return Quote{}, err
	}

	var q Quote
	for _, it := range items {
		price, ok := prices[it.ProductID]
		if !ok {
			return Quote{}, &ProductNotFoundError{ProductID: it.ProductID}
		}
		q.SubtotalCents += price * it.Qty
	}
	q.SurchargeCents = q.SubtotalCents * surchargePercent / 100
	q.TotalCents = q.SubtotalCents + q.SurchargeCents
	return q, nil
}
