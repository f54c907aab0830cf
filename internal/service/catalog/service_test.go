package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"ct-storefront/internal/cache"
	"ct-storefront/internal/commercetools"
)

type stubProjectRepo struct {
	project  *commercetools.Project
	types    []commercetools.ProductType
	err      error
	getCalls int
	ptCalls  int
}

func (s *stubProjectRepo) Get(context.Context) (*commercetools.Project, error) {
	s.getCalls++
	return s.project, s.err
}

func (s *stubProjectRepo) ProductTypes(context.Context) ([]commercetools.ProductType, error) {
	s.ptCalls++
	return s.types, s.err
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("down")
}

func (failingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("down")
}

func (failingCache) Delete(context.Context, string) error { return nil }

func TestProjectIsCached(t *testing.T) {
	repo := &stubProjectRepo{project: &commercetools.Project{Key: "proj", Countries: []string{"US"}}}
	svc := New(repo, cache.NewMemory(), time.Hour, nil)

	for i := 0; i < 3; i++ {
		p, err := svc.Project(context.Background())
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p.Key != "proj" {
			t.Fatalf("unexpected project %+v", p)
		}
	}
	if repo.getCalls != 1 {
		t.Fatalf("expected one platform read, got %d", repo.getCalls)
	}
}

func TestProductTypesAreCached(t *testing.T) {
	repo := &stubProjectRepo{types: []commercetools.ProductType{{ID: "pt", Name: "shirt"}}}
	svc := New(repo, cache.NewMemory(), time.Hour, nil)

	_, _ = svc.ProductTypes(context.Background())
	types, err := svc.ProductTypes(context.Background())
	if err != nil {
		t.Fatalf("ProductTypes: %v", err)
	}
	if len(types) != 1 || types[0].ID != "pt" {
		t.Fatalf("unexpected types %+v", types)
	}
	if repo.ptCalls != 1 {
		t.Fatalf("expected one platform read, got %d", repo.ptCalls)
	}
}

func TestCacheFailureFallsThrough(t *testing.T) {
	repo := &stubProjectRepo{project: &commercetools.Project{Key: "proj"}}
	svc := New(repo, failingCache{}, time.Hour, nil)

	if _, err := svc.Project(context.Background()); err != nil {
		t.Fatalf("Project: %v", err)
	}
	if _, err := svc.Project(context.Background()); err != nil {
		t.Fatalf("Project: %v", err)
	}
	if repo.getCalls != 2 {
		t.Fatalf("expected platform read per call, got %d", repo.getCalls)
	}
}

func TestRepoErrorNotCached(t *testing.T) {
	repo := &stubProjectRepo{err: errors.New("boom")}
	mem := cache.NewMemory()
	svc := New(repo, mem, time.Hour, nil)

	if _, err := svc.Project(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if mem.Len() != 0 {
		t.Fatalf("error result was cached")
	}
}
