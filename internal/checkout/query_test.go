package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture() *QueryService {
	placed := time.UnixMilli(1700000000000)
	store := &mockOrderStore{orders: []Order{
		{
			ID:          "ord-1",
			UserID:      "user-a",
			Items:       []OrderItem{{ProductID: "p1", Qty: 2}},
			AmountCents: 204,
			Address:     testSnapshot,
			Status:      StatusPlaced,
			PlacedAt:    placed,
		},
		{
			ID:          "ord-2",
			GuestEmail:  "a@b.com",
			Items:       []OrderItem{{ProductID: "p2", Qty: 1}},
			AmountCents: 51,
			Address:     testSnapshot,
			Status:      StatusPlaced,
			PlacedAt:    placed,
		},
		{
			ID:          "ord-3",
			UserID:      "user-b",
			Items:       []OrderItem{{ProductID: "gone", Qty: 1}},
			AmountCents: 10,
			Address:     testSnapshot,
			Status:      StatusShipped,
			PlacedAt:    placed,
		},
	}}
	return &QueryService{Store: store, Catalog: testCatalog()}
}

func TestFindByOrderIDSkipsOwnershipCheck(t *testing.T) {
	q := queryFixture()

	// an anonymous caller holding the id can read an account's order: the
	// id works as a capability token for post-checkout display
	views, err := q.Find(context.Background(), "", QueryParams{OrderID: "ord-1"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ord-1", views[0].ID)
	require.NotNil(t, views[0].UserID)
	assert.Equal(t, "user-a", *views[0].UserID)
}

func TestFindByOrderIDNotFound(t *testing.T) {
	q := queryFixture()
	_, err := q.Find(context.Background(), "", QueryParams{OrderID: "nope"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestFindByAccount(t *testing.T) {
	q := queryFixture()

	views, err := q.Find(context.Background(), "user-a", QueryParams{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ord-1", views[0].ID)
}

func TestFindByGuestEmailExactMatch(t *testing.T) {
	q := queryFixture()

	views, err := q.Find(context.Background(), "", QueryParams{GuestEmail: "a@b.com"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ord-2", views[0].ID)

	// case-sensitive: no normalization of the stored email
	views, err = q.Find(context.Background(), "", QueryParams{GuestEmail: "A@B.com"})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestFindAnonymousWithoutParams(t *testing.T) {
	q := queryFixture()
	_, err := q.Find(context.Background(), "", QueryParams{})
	assert.ErrorIs(t, err, ErrGuestEmailRequired)
}

func TestFindOrderIDWinsOverOtherModes(t *testing.T) {
	q := queryFixture()

	// orderId takes priority even for an authenticated caller with a
	// guest email in the query
	views, err := q.Find(context.Background(), "user-a", QueryParams{OrderID: "ord-2", GuestEmail: "a@b.com"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ord-2", views[0].ID)
}

func TestFindEnrichesProducts(t *testing.T) {
	q := queryFixture()

	views, err := q.Find(context.Background(), "user-a", QueryParams{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 1)
	line := views[0].Items[0]
	assert.Equal(t, "Widget", line.Product.Name)
	assert.Equal(t, 100, line.Product.OfferPriceCents)
	assert.Equal(t, 2, line.Quantity)
}

func TestFindKeepsLinesForRemovedProducts(t *testing.T) {
	q := queryFixture()

	views, err := q.Find(context.Background(), "user-b", QueryParams{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Items, 1)
	assert.Equal(t, Product{ID: "gone"}, views[0].Items[0].Product)
}
