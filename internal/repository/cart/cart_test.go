package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
)

type stubAPI struct {
	path  string
	query url.Values
	body  interface{}
	resp  string
	err   error
}

func (s *stubAPI) Get(_ context.Context, path string, query url.Values, out interface{}) error {
	s.path, s.query = path, query
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.resp), out)
}

func (s *stubAPI) Post(_ context.Context, path string, query url.Values, body, out interface{}) error {
	s.path, s.query, s.body = path, query, body
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.resp), out)
}

func TestQueryByCustomer(t *testing.T) {
	api := &stubAPI{resp: `{"results":[{"id":"c1","version":2,"customerId":"cust","locale":"en-US"}]}`}
	repo := NewPlatform(api)

	cart, err := repo.QueryByCustomer(context.Background(), "cust", "en-US")
	if err != nil {
		t.Fatalf("QueryByCustomer: %v", err)
	}
	if cart.ID != "c1" {
		t.Fatalf("unexpected cart %+v", cart)
	}
	if api.path != "/carts" {
		t.Fatalf("unexpected path %s", api.path)
	}
	if got := api.query.Get("where"); got != `customerId="cust" AND locale="en-US" AND cartState="Active"` {
		t.Fatalf("unexpected where %q", got)
	}
	if len(api.query["expand"]) != len(expandParams) {
		t.Fatalf("expected expand params, got %v", api.query["expand"])
	}
}

func TestQueryByCustomer_NoResults(t *testing.T) {
	repo := NewPlatform(&stubAPI{resp: `{"results":[]}`})
	_, err := repo.QueryByCustomer(context.Background(), "cust", "en-US")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSendsVersionAndActions(t *testing.T) {
	api := &stubAPI{resp: `{"id":"c1","version":4}`}
	repo := NewPlatform(api)

	actions := []commercetools.UpdateAction{commercetools.AddDiscountCode("SAVE10")}
	cart, err := repo.Update(context.Background(), "c1", 3, actions)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cart.Version != 4 {
		t.Fatalf("expected version 4, got %d", cart.Version)
	}
	body, ok := api.body.(commercetools.CartUpdate)
	if !ok {
		t.Fatalf("unexpected body type %T", api.body)
	}
	if body.Version != 3 || len(body.Actions) != 1 || body.Actions[0].Code != "SAVE10" {
		t.Fatalf("unexpected update body %+v", body)
	}
	if api.path != "/carts/c1" {
		t.Fatalf("unexpected path %s", api.path)
	}
}

func TestGetByIDPropagatesErrors(t *testing.T) {
	repo := NewPlatform(&stubAPI{err: &commercetools.APIError{StatusCode: 404}})
	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
