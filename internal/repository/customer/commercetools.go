package customer

import (
	"context"
	"net/url"

	"ct-storefront/internal/commercetools"
)

const mergeWithExistingCart = "MergeWithExistingCustomerCart"

type platformRepo struct {
	api commercetools.API
}

// NewPlatform returns a Repository backed by the commercetools customers API.
func NewPlatform(api commercetools.API) Repository {
	return &platformRepo{api: api}
}

func (r *platformRepo) SignUp(ctx context.Context, draft commercetools.CustomerDraft) (*commercetools.Customer, error) {
	var res commercetools.CustomerSignInResult
	if err := r.api.Post(ctx, "/customers", nil, draft, &res); err != nil {
		return nil, err
	}
	return &res.Customer, nil
}

func (r *platformRepo) SignIn(ctx context.Context, email, password, anonymousCartID string) (*commercetools.CustomerSignInResult, error) {
	body := commercetools.CustomerSignin{Email: email, Password: password}
	if anonymousCartID != "" {
		body.AnonymousCart = &commercetools.Reference{TypeID: "cart", ID: anonymousCartID}
		body.AnonymousCartSignInMode = mergeWithExistingCart
	}
	var res commercetools.CustomerSignInResult
	if err := r.api.Post(ctx, "/login", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *platformRepo) GetByID(ctx context.Context, id string) (*commercetools.Customer, error) {
	var c commercetools.Customer
	if err := r.api.Get(ctx, "/customers/"+url.PathEscape(id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
