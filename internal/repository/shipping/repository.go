package shipping

import (
	"context"
	"net/url"

	"ct-storefront/internal/commercetools"
)

// Repository lists shipping methods.
type Repository interface {
	// MatchingCart returns the methods eligible for the cart's shipping
	// address.
	MatchingCart(ctx context.Context, cartID string) ([]commercetools.ShippingMethod, error)
}

type platformRepo struct {
	api commercetools.API
}

func NewPlatform(api commercetools.API) Repository {
	return &platformRepo{api: api}
}

func (r *platformRepo) MatchingCart(ctx context.Context, cartID string) ([]commercetools.ShippingMethod, error) {
	var page commercetools.Page[commercetools.ShippingMethod]
	q := url.Values{"cartId": {cartID}}
	if err := r.api.Get(ctx, "/shipping-methods/matching-cart", q, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
