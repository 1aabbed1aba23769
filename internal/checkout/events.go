package checkout

import (
	"encoding/json"
	"time"
)

const EventOrderCreated = "order/created"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// OrderPayload is the persisted order layout as it leaves the system: the
// order/created event body and the create-order response both use it. Other
// tooling depends on this shape staying stable.
type OrderPayload struct {
	ID         string             `json:"id"`
	UserID     *string            `json:"userId"`
	GuestEmail *string            `json:"guestEmail"`
	Items      []OrderItemPayload `json:"items"`
	Amount     int                `json:"amount"`
	Address    AddressSnapshot    `json:"address"`
	Status     Status             `json:"status"`
	Date       int64              `json:"date"` // unix milliseconds
}

type OrderItemPayload struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

func NewOrderPayload(o Order) OrderPayload {
	items := make([]OrderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemPayload{Product: it.ProductID, Quantity: it.Qty})
	}
	return OrderPayload{
		ID:         o.ID,
		UserID:     nullable(o.UserID),
		GuestEmail: nullable(o.GuestEmail),
		Items:      items,
		Amount:     o.AmountCents,
		Address:    o.Address,
		Status:     o.Status,
		Date:       o.PlacedAt.UnixMilli(),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
