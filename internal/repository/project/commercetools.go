package project

import (
	"context"
	"net/url"

	"ct-storefront/internal/commercetools"
)

// Product types are few; one page covers every project we serve.
const productTypeLimit = "500"

type platformRepo struct {
	api commercetools.API
}

func NewPlatform(api commercetools.API) Repository {
	return &platformRepo{api: api}
}

func (r *platformRepo) Get(ctx context.Context) (*commercetools.Project, error) {
	var p commercetools.Project
	if err := r.api.Get(ctx, "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *platformRepo) ProductTypes(ctx context.Context) ([]commercetools.ProductType, error) {
	var page commercetools.Page[commercetools.ProductType]
	q := url.Values{"limit": {productTypeLimit}}
	if err := r.api.Get(ctx, "/product-types", q, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
