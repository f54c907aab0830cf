package product

import (
	"context"

	"ct-storefront/internal/commercetools"

	"go.uber.org/zap"
)

type platformRepo struct {
	api    commercetools.API
	logger *zap.Logger
}

func NewPlatform(api commercetools.API, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &platformRepo{api: api, logger: logger}
}

func (r *platformRepo) Search(ctx context.Context, req commercetools.ProductSearchRequest) (*commercetools.ProductSearchResponse, error) {
	var resp commercetools.ProductSearchResponse
	if err := r.api.Post(ctx, "/products/search", nil, req, &resp); err != nil {
		r.logger.Error("product search failed", zap.Int("limit", req.Limit), zap.Int("offset", req.Offset), zap.Error(err))
		return nil, err
	}
	return &resp, nil
}
