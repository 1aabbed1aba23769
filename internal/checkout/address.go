package checkout

import (
	"context"
	"encoding/json"
	"strings"
)

// AddressRef is the client's address reference: a stored address id for
// authenticated callers, an inline address for guests. UnmarshalJSON accepts
// either shape; anything else is rejected at the parse boundary.
type AddressRef struct {
	ID     string
	Inline *AddressSnapshot
}

func (r *AddressRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		r.Inline = nil
		return nil
	}
	var snap AddressSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return err
	}
	r.ID = ""
	r.Inline = &snap
	return nil
}

// AddressResolver turns a caller identity plus an address reference into the
// snapshot that gets frozen into the order.
type AddressResolver struct {
	Book AddressBook
}

// Resolve for an authenticated caller (userID non-empty) requires a stored
// address id owned by that account; for an anonymous caller it requires a
// complete inline address. Any other combination is a mode error.
func (r *AddressResolver) Resolve(ctx context.Context, userID string, ref AddressRef) (AddressSnapshot, error) {
	if userID != "" {
		if ref.ID == "" || ref.Inline != nil {
			return AddressSnapshot{}, ErrInvalidAddressMode
		}
		a, err := r.Book.ByID(ctx, userID, ref.ID)
		if err != nil {
			return AddressSnapshot{}, err
		}
		return a.AddressSnapshot, nil
	}

	if ref.Inline == nil {
		return AddressSnapshot{}, ErrInvalidAddressMode
	}
	snap := *ref.Inline
	if missing := snap.missingFields(); len(missing) > 0 {
		return AddressSnapshot{}, &MissingFieldError{Fields: missing}
	}
	return snap, nil
}

func (s AddressSnapshot) missingFields() []string {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"fullName", s.FullName},
		{"street", s.Street},
		{"city", s.City},
		{"state", s.State},
		{"zip", s.Zip},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
