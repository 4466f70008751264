// internal/domain/order/errors.go
package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCart is returned when checkout resolves no cart lines.
	ErrEmptyCart = errors.New("cart is empty, nothing to check out")

	// ErrNotFound is returned when a referenced order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatusTransition is returned for disallowed status changes.
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// ValidationError reports missing required checkout fields. The caller
// re-prompts the customer; nothing about it is fatal.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}
