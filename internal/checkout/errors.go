package checkout

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrGuestEmailRequired = errors.New("guest email is required")
	ErrInvalidQuantity    = errors.New("item quantity must be a positive integer")
	ErrInvalidAddressMode = errors.New("address reference does not match caller type")
	ErrAddressNotFound    = errors.New("address not found or not authorized")
	ErrOrderNotFound      = errors.New("order not found")
)

// MissingFieldError lists the required address fields that were blank.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return "product not found: " + e.ProductID
}

// MirrorWriteError marks a cart mutation that was applied to the session
// copy but failed to reach the account's persisted cart. Non-fatal: the
// session copy stays authoritative.
type MirrorWriteError struct {
	Err error
}

func (e *MirrorWriteError) Error() string { return "cart mirror write: " + e.Err.Error() }
func (e *MirrorWriteError) Unwrap() error { return e.Err }
