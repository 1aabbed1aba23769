package checkout

import "context"

// QueryParams selects one of three mutually exclusive lookup modes, in
// priority order: OrderID, then the caller's account, then GuestEmail.
type QueryParams struct {
	OrderID    string
	GuestEmail string
}

// OrderView is an order enriched with full product details for display.
type OrderView struct {
	ID         string          `json:"id"`
	UserID     *string         `json:"userId"`
	GuestEmail *string         `json:"guestEmail"`
	Items      []OrderLine     `json:"items"`
	Amount     int             `json:"amount"`
	Address    AddressSnapshot `json:"address"`
	Status     Status          `json:"status"`
	Date       int64           `json:"date"`
}

type OrderLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type QueryService struct {
	Store   OrderStore
	Catalog CatalogStore
}

// Find runs one lookup mode. The by-id mode deliberately skips the ownership
// check: the uuid is handed out only at checkout and acts as a capability
// token, which is what lets guests see their order right after placing it.
func (q *QueryService) Find(ctx context.Context, userID string, p QueryParams) ([]OrderView, error) {
	var (
		list []Order
		err  error
	)
	switch {
	case p.OrderID != "":
		var o Order
		o, err = q.Store.ByID(ctx, p.OrderID)
		if err == nil {
			list = []Order{o}
		}
	case userID != "":
		list, err = q.Store.ByUser(ctx, userID)
	default:
		if p.GuestEmail == "" {
			return nil, ErrGuestEmailRequired
		}
		list, err = q.Store.ByGuestEmail(ctx, p.GuestEmail)
	}
	if err != nil {
		return nil, err
	}
	return q.enrich(ctx, list)
}

func (q *QueryService) enrich(ctx context.Context, list []Order) ([]OrderView, error) {
	seen := map[string]bool{}
	var ids []string
	for _, o := range list {
		for _, it := range o.Items {
			if !seen[it.ProductID] {
				seen[it.ProductID] = true
				ids = append(ids, it.ProductID)
			}
		}
	}
	products := map[string]Product{}
	if len(ids) > 0 {
		var err error
		products, err = q.Catalog.ByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]OrderView, 0, len(list))
	for _, o := range list {
		lines := make([]OrderLine, 0, len(o.Items))
		for _, it := range o.Items {
			p, ok := products[it.ProductID]
			if !ok {
				// product removed from the catalog since the order was
				// placed; keep the line with just the id
				p = Product{ID: it.ProductID}
			}
			lines = append(lines, OrderLine{Product: p, Quantity: it.Qty})
		}
		views = append(views, OrderView{
			ID:         o.ID,
			UserID:     nullable(o.UserID),
			GuestEmail: nullable(o.GuestEmail),
			Items:      lines,
			Amount:     o.AmountCents,
			Address:    o.Address,
			Status:     o.Status,
			Date:       o.PlacedAt.UnixMilli(),
		})
	}
	return views, nil
}
