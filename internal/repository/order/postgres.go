package order

import (
	"context"
	"errors"
	"fmt"

	"ct-storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxListLimit = 100

type postgresLedger struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Ledger backed by the placed_orders table.
func NewPostgres(pool *pgxpool.Pool) Ledger {
	return &postgresLedger{pool: pool}
}

func (r *postgresLedger) Record(ctx context.Context, o domain.PlacedOrder) error {
	const q = `
INSERT INTO placed_orders (order_id, order_number, cart_id, customer_id, anonymous_id, locale, currency, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (order_id) DO NOTHING
`
	_, err := r.pool.Exec(ctx, q, o.OrderID, o.OrderNumber, o.CartID, o.CustomerID, o.AnonymousID, o.Locale, o.Currency, o.TotalCents)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("order number %s already recorded: %w", o.OrderNumber, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *postgresLedger) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.PlacedOrder, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	const q = `
SELECT order_id, order_number, cart_id, customer_id, locale, currency, total_cents, created_at
FROM placed_orders
WHERE customer_id = $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PlacedOrder, error) {
		var o domain.PlacedOrder
		err := row.Scan(&o.OrderID, &o.OrderNumber, &o.CartID, &o.CustomerID, &o.Locale, &o.Currency, &o.TotalCents, &o.CreatedAt)
		return o, err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
