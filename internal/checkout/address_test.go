package checkout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSnapshot = AddressSnapshot{
	FullName: "Ada Lovelace",
	Street:   "12 Analytical Way",
	City:     "London",
	State:    "LDN",
	Zip:      "E1 6AN",
}

func testBook() *mockAddressBook {
	return &mockAddressBook{addresses: []Address{
		{ID: "addr-1", UserID: "user-a", AddressSnapshot: testSnapshot},
	}}
}

func TestResolveStoredAddress(t *testing.T) {
	r := AddressResolver{Book: testBook()}

	snap, err := r.Resolve(context.Background(), "user-a", AddressRef{ID: "addr-1"})
	require.NoError(t, err)
	assert.Equal(t, testSnapshot, snap)

	// resolving again yields identical output
	again, err := r.Resolve(context.Background(), "user-a", AddressRef{ID: "addr-1"})
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}

func TestResolveForeignAddressIsNotFound(t *testing.T) {
	r := AddressResolver{Book: testBook()}

	// user-b must not be able to resolve user-a's address
	_, err := r.Resolve(context.Background(), "user-b", AddressRef{ID: "addr-1"})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestResolveModeMismatch(t *testing.T) {
	r := AddressResolver{Book: testBook()}

	tests := []struct {
		name   string
		userID string
		ref    AddressRef
	}{
		{"authenticated with inline address", "user-a", AddressRef{Inline: &testSnapshot}},
		{"authenticated without reference", "user-a", AddressRef{}},
		{"guest with stored id", "", AddressRef{ID: "addr-1"}},
		{"guest without reference", "", AddressRef{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.userID, tt.ref)
			assert.ErrorIs(t, err, ErrInvalidAddressMode)
		})
	}
}

func TestResolveInlineAddress(t *testing.T) {
	r := AddressResolver{Book: testBook()}

	snap, err := r.Resolve(context.Background(), "", AddressRef{Inline: &testSnapshot})
	require.NoError(t, err)
	assert.Equal(t, testSnapshot, snap)
	assert.Equal(t, "", snap.Apartment) // optional, defaults to empty
}

func TestResolveInlineMissingFields(t *testing.T) {
	r := AddressResolver{Book: testBook()}

	inline := AddressSnapshot{FullName: "Ada Lovelace", City: "London", Zip: "  "}
	_, err := r.Resolve(context.Background(), "", AddressRef{Inline: &inline})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"street", "state", "zip"}, missing.Fields)
}

func TestAddressRefUnmarshalJSON(t *testing.T) {
	var ref AddressRef
	require.NoError(t, json.Unmarshal([]byte(`"addr-1"`), &ref))
	assert.Equal(t, "addr-1", ref.ID)
	assert.Nil(t, ref.Inline)

	require.NoError(t, json.Unmarshal([]byte(`{"fullName":"Ada Lovelace","street":"12 Analytical Way","city":"London","state":"LDN","zip":"E1 6AN"}`), &ref))
	assert.Empty(t, ref.ID)
	require.NotNil(t, ref.Inline)
	assert.Equal(t, testSnapshot, *ref.Inline)

	assert.Error(t, json.Unmarshal([]byte(`42`), &ref))
}
