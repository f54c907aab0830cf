package project

import (
	"context"

	"ct-storefront/internal/commercetools"
)

// Repository reads project settings and product types.
type Repository interface {
	Get(ctx context.Context) (*commercetools.Project, error)
	ProductTypes(ctx context.Context) ([]commercetools.ProductType, error)
}
