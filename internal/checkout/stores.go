package checkout

import "context"

// CatalogStore is the read-only product catalog. Prices are authoritative
// only at lookup time.
type CatalogStore interface {
	OfferPrices(ctx context.Context, ids []string) (map[string]int, error)
	ByIDs(ctx context.Context, ids []string) (map[string]Product, error)
	List(ctx context.Context) ([]Product, error)
}

type OrderStore interface {
	Create(ctx context.Context, o Order) error
	ByID(ctx context.Context, id string) (Order, error)
	ByUser(ctx context.Context, userID string) ([]Order, error)
	ByGuestEmail(ctx context.Context, email string) ([]Order, error)
}

// AddressBook lookups are always scoped to the owning account; a foreign id
// behaves exactly like a missing one.
type AddressBook interface {
	ByID(ctx context.Context, userID, addressID string) (Address, error)
	ByUser(ctx context.Context, userID string) ([]Address, error)
	Create(ctx context.Context, a Address) (Address, error)
	Update(ctx context.Context, userID, addressID string, fields AddressSnapshot) (Address, error)
	Delete(ctx context.Context, userID, addressID string) error
}

type CartStore interface {
	Get(ctx context.Context, userID string) (Cart, error)
	Replace(ctx context.Context, userID string, c Cart) error
	Clear(ctx context.Context, userID string) error
}
