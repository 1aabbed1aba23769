package checkout

import (
	"context"
	"log"
	"time"

	kafkax "github.com/ariefcatur/go-storefront-checkout.git/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher is satisfied by the buffered kafka producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service turns a submitted cart into a persisted order. Persistence is the
// durability boundary: once the order row is committed the request succeeds,
// and event emission plus cart clearing are best-effort cleanup.
type Service struct {
	Orders      OrderStore
	Catalog     CatalogStore
	Addresses   AddressBook
	Carts       CartStore
	Producer    Publisher
	ServiceName string

	Now func() time.Time // test seam, defaults to time.Now
}

type CreateOrderInput struct {
	UserID     string // empty for guests
	GuestEmail string
	Items      []OrderItem
	Address    AddressRef
	TraceID    string
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (Order, error) {
	if in.UserID == "" && in.GuestEmail == "" {
		return Order{}, ErrGuestEmailRequired
	}
	if len(in.Items) == 0 {
		return Order{}, ErrEmptyCart
	}
	for _, it := range in.Items {
		if it.Qty <= 0 {
			return Order{}, ErrInvalidQuantity
		}
	}

	resolver := AddressResolver{Book: s.Addresses}
	snap, err := resolver.Resolve(ctx, in.UserID, in.Address)
	if err != nil {
		return Order{}, err
	}

	quote, err := PriceItems(ctx, in.Items, s.Catalog)
	if err != nil {
		return Order{}, err
	}

	o := Order{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Items:       in.Items,
		AmountCents: quote.TotalCents,
		Address:     snap,
		Status:      StatusPlaced,
		PlacedAt:    s.now(),
	}
	if o.UserID == "" {
		o.GuestEmail = in.GuestEmail
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return Order{}, err
	}

	// The order is durable from here on. Neither a lost event nor a stale
	// cart may fail the request.
	s.publishCreated(o, in.TraceID)

	if o.UserID != "" {
		if err := s.Carts.Clear(ctx, o.UserID); err != nil {
			log.Printf("clear cart after order %s: %v", o.ID, err)
		}
	}
	return o, nil
}

func (s *Service) publishCreated(o Order, trace string) {
	if s.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: o.ID,
		Payload:       kafkax.MustMarshal(NewOrderPayload(o)),
	}
	s.Producer.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
