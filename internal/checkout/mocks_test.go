package checkout

import (
	"context"
	"encoding/json"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
)

type mockCatalog struct {
	products map[string]Product
	err      error
}

func (m *mockCatalog) OfferPrices(_ context.Context, ids []string) (map[string]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]int, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p.OfferPriceCents
		}
	}
	return out, nil
}

func (m *mockCatalog) ByIDs(_ context.Context, ids []string) (map[string]Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]Product, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockCatalog) List(context.Context) ([]Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

type mockOrderStore struct {
	mu        sync.Mutex
	orders    []Order
	createErr error
}

func (m *mockOrderStore) Create(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.orders = append(m.orders, o)
	return nil
}

func (m *mockOrderStore) ByID(_ context.Context, id string) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func (m *mockOrderStore) ByUser(_ context.Context, userID string) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) ByGuestEmail(_ context.Context, email string) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.GuestEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

type mockAddressBook struct {
	addresses []Address
	err       error
}

func (m *mockAddressBook) ByID(_ context.Context, userID, addressID string) (Address, error) {
	if m.err != nil {
		return Address{}, m.err
	}
	for _, a := range m.addresses {
		if a.ID == addressID && a.UserID == userID {
			return a, nil
		}
	}
	return Address{}, ErrAddressNotFound
}

func (m *mockAddressBook) ByUser(_ context.Context, userID string) ([]Address, error) {
	var out []Address
	for _, a := range m.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, m.err
}

func (m *mockAddressBook) Create(_ context.Context, a Address) (Address, error) {
	m.addresses = append(m.addresses, a)
	return a, m.err
}

func (m *mockAddressBook) Update(_ context.Context, userID, addressID string, fields AddressSnapshot) (Address, error) {
	for i, a := range m.addresses {
		if a.ID == addressID && a.UserID == userID {
			m.addresses[i].AddressSnapshot = fields
			return m.addresses[i], nil
		}
	}
	return Address{}, ErrAddressNotFound
}

func (m *mockAddressBook) Delete(_ context.Context, userID, addressID string) error {
	for i, a := range m.addresses {
		if a.ID == addressID && a.UserID == userID {
			m.addresses = append(m.addresses[:i], m.addresses[i+1:]...)
			return nil
		}
	}
	return ErrAddressNotFound
}

type mockCartStore struct {
	mu         sync.Mutex
	carts      map[string]Cart
	getErr     error
	replaceErr error
	clearErr   error
	cleared    []string
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: map[string]Cart{}}
}

func (m *mockCartStore) Get(_ context.Context, userID string) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.carts[userID]
	if !ok {
		return Cart{}, nil
	}
	return c.Clone(), nil
}

func (m *mockCartStore) Replace(_ context.Context, userID string, c Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.carts[userID] = c.Clone()
	return nil
}

func (m *mockCartStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = append(m.cleared, userID)
	if m.clearErr != nil {
		return m.clearErr
	}
	m.carts[userID] = Cart{}
	return nil
}

func unwrapOrderPayload(env Envelope) (OrderPayload, error) {
	var p OrderPayload
	err := json.Unmarshal(env.Payload, &p)
	return p, err
}

type mockPublisher struct {
	mu        sync.Mutex
	envelopes []Envelope
}

func (m *mockPublisher) Publish(_, value []byte, _ ...kafkago.Header) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.envelopes = append(m.envelopes, env)
}
