package cart

import (
	"context"

	"ct-storefront/internal/commercetools"
)

// Repository reads and writes carts on the platform.
type Repository interface {
	// QueryByCustomer returns the customer's active cart for locale, or
	// domain.ErrNotFound when none exists.
	QueryByCustomer(ctx context.Context, customerID, locale string) (*commercetools.Cart, error)
	GetByID(ctx context.Context, id string) (*commercetools.Cart, error)
	Create(ctx context.Context, draft commercetools.CartDraft) (*commercetools.Cart, error)
	Update(ctx context.Context, id string, version int, actions []commercetools.UpdateAction) (*commercetools.Cart, error)
}
