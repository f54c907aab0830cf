package order

import (
	"context"

	"ct-storefront/internal/commercetools"
)

type platformRepo struct {
	api commercetools.API
}

func NewPlatform(api commercetools.API) Platform {
	return &platformRepo{api: api}
}

func (r *platformRepo) CreateFromCart(ctx context.Context, cartID string, version int, orderNumber string) (*commercetools.Order, error) {
	draft := commercetools.OrderFromCartDraft{
		Cart:        commercetools.Reference{TypeID: "cart", ID: cartID},
		Version:     version,
		OrderNumber: orderNumber,
	}
	var o commercetools.Order
	if err := r.api.Post(ctx, "/orders", nil, draft, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
