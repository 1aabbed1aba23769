package checkout

import "time"

type Product struct {
	ID              string   `json:"id"`
	SellerID        string   `json:"sellerId"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	PriceCents      int      `json:"price"`
	OfferPriceCents int      `json:"offerPrice"`
	Images          []string `json:"images"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// AddressSnapshot is the six address fields as they travel on the wire and
// as they are frozen into an order at creation time. Apartment is optional.
type AddressSnapshot struct {
	FullName  string `json:"fullName"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// Address is a stored address-book entry, owned by exactly one account.
type Address struct {
	ID     string
	UserID string
	AddressSnapshot
	CreatedAt time.Time
}

// Order owner is either UserID or GuestEmail, never both. The address is a
// copy taken at creation time, not a reference into the address book.
type Order struct {
	ID          string
	UserID      string
	GuestEmail  string
	Items       []OrderItem
	AmountCents int
	Address     AddressSnapshot
	Status      Status
	PlacedAt    time.Time
}

type OrderItem struct {
	ProductID string
	Qty       int
}
