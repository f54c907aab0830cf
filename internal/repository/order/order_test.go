package order

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"testing"
	"time"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
	"ct-storefront/internal/migrate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type stubAPI struct {
	path string
	body interface{}
}

func (s *stubAPI) Get(context.Context, string, url.Values, interface{}) error { return nil }

func (s *stubAPI) Post(_ context.Context, path string, _ url.Values, body, out interface{}) error {
	s.path, s.body = path, body
	return json.Unmarshal([]byte(`{"id":"o1","version":1,"orderNumber":"N1","orderState":"Open"}`), out)
}

func TestCreateFromCart(t *testing.T) {
	api := &stubAPI{}
	repo := NewPlatform(api)
	o, err := repo.CreateFromCart(context.Background(), "c1", 7, "N1")
	if err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}
	if o.ID != "o1" || api.path != "/orders" {
		t.Fatalf("unexpected order %+v path %s", o, api.path)
	}
	draft := api.body.(commercetools.OrderFromCartDraft)
	if draft.Cart.ID != "c1" || draft.Cart.TypeID != "cart" || draft.Version != 7 || draft.OrderNumber != "N1" {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestPostgres_RecordAndList(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	customerID := uuid.NewString()
	ledger := NewPostgres(pool)
	for i, number := range []string{uuid.NewString(), uuid.NewString()} {
		err := ledger.Record(ctx, domain.PlacedOrder{
			OrderID:     uuid.NewString(),
			OrderNumber: number,
			CartID:      "cart",
			CustomerID:  &customerID,
			Locale:      "en-US",
			Currency:    "USD",
			TotalCents:  int64(1000 * (i + 1)),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	orders, err := ledger.ListByCustomer(ctx, customerID, 10)
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].TotalCents != 2000 {
		t.Fatalf("expected newest first, got %+v", orders[0])
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}
