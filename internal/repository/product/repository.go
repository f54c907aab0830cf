package product

import (
	"context"

	"ct-storefront/internal/commercetools"
)

// Repository runs product searches against the platform.
type Repository interface {
	Search(ctx context.Context, req commercetools.ProductSearchRequest) (*commercetools.ProductSearchResponse, error)
}
