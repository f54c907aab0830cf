// Package catalog serves project settings and product types through a
// read-through cache.
package catalog

import (
	"context"
	"time"

	"ct-storefront/internal/cache"
	"ct-storefront/internal/commercetools"

	"go.uber.org/zap"
)

const (
	projectKey      = "catalog:project"
	productTypesKey = "catalog:product-types"
)

type projectRepo interface {
	Get(ctx context.Context) (*commercetools.Project, error)
	ProductTypes(ctx context.Context) ([]commercetools.ProductType, error)
}

type Service struct {
	repo   projectRepo
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func New(repo projectRepo, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, cache: c, ttl: ttl, logger: logger}
}

func (s *Service) Project(ctx context.Context) (*commercetools.Project, error) {
	var p commercetools.Project
	if s.lookup(ctx, projectKey, &p) {
		return &p, nil
	}
	fresh, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, projectKey, fresh)
	return fresh, nil
}

func (s *Service) ProductTypes(ctx context.Context) ([]commercetools.ProductType, error) {
	var types []commercetools.ProductType
	if s.lookup(ctx, productTypesKey, &types) {
		return types, nil
	}
	fresh, err := s.repo.ProductTypes(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, productTypesKey, fresh)
	return fresh, nil
}

// Cache failures degrade to a platform read.
func (s *Service) lookup(ctx context.Context, key string, dest interface{}) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if ok {
		s.logger.Debug("catalog cache hit", zap.String("key", key))
	}
	return ok
}

func (s *Service) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
