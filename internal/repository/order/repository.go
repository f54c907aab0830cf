package order

import (
	"context"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
)

// Platform turns carts into orders on the platform.
type Platform interface {
	CreateFromCart(ctx context.Context, cartID string, version int, orderNumber string) (*commercetools.Order, error)
}

// Ledger keeps a local record of placed orders.
type Ledger interface {
	Record(ctx context.Context, o domain.PlacedOrder) error
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.PlacedOrder, error)
}
