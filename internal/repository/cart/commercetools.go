package cart

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
)

// Expand paths that resolve discount names and discount code strings.
var expandParams = []string{
	"lineItems[*].discountedPricePerQuantity[*].discountedPrice.includedDiscounts[*].discount",
	"discountOnTotalPrice.includedDiscounts[*].discount",
	"discountCodes[*].discountCode",
}

type platformRepo struct {
	api commercetools.API
}

// NewPlatform returns a Repository backed by the commercetools carts API.
func NewPlatform(api commercetools.API) Repository {
	return &platformRepo{api: api}
}

func expandQuery() url.Values {
	return url.Values{"expand": expandParams}
}

func (r *platformRepo) QueryByCustomer(ctx context.Context, customerID, locale string) (*commercetools.Cart, error) {
	q := expandQuery()
	q.Set("where", fmt.Sprintf("customerId=%s AND locale=%s AND cartState=\"Active\"",
		strconv.Quote(customerID), strconv.Quote(locale)))
	q.Set("sort", "lastModifiedAt desc")
	q.Set("limit", "1")

	var page commercetools.Page[commercetools.Cart]
	if err := r.api.Get(ctx, "/carts", q, &page); err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, domain.ErrNotFound
	}
	return &page.Results[0], nil
}

func (r *platformRepo) GetByID(ctx context.Context, id string) (*commercetools.Cart, error) {
	var cart commercetools.Cart
	if err := r.api.Get(ctx, "/carts/"+url.PathEscape(id), expandQuery(), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *platformRepo) Create(ctx context.Context, draft commercetools.CartDraft) (*commercetools.Cart, error) {
	var cart commercetools.Cart
	if err := r.api.Post(ctx, "/carts", expandQuery(), draft, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *platformRepo) Update(ctx context.Context, id string, version int, actions []commercetools.UpdateAction) (*commercetools.Cart, error) {
	body := commercetools.CartUpdate{Version: version, Actions: actions}
	var cart commercetools.Cart
	if err := r.api.Post(ctx, "/carts/"+url.PathEscape(id), expandQuery(), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
