package models

import "fmt"

// InsufficientStockError aborts checkout when a cart line exceeds the
// available stock of its product.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (available: %d)", e.ProductName, e.Available)
}
