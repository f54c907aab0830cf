package product

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
	"ct-storefront/internal/locale"
	"ct-storefront/internal/mapper"

	"go.uber.org/zap"
)

const (
	defaultLimit = 12
	maxLimit     = 100
)

// Sort options accepted by Search.
const (
	SortRelevant   = "relevant"
	SortNameAsc    = "a-z"
	SortNameDesc   = "z-a"
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortNewArrival = "new-arrival"
)

type searchRepo interface {
	Search(ctx context.Context, req commercetools.ProductSearchRequest) (*commercetools.ProductSearchResponse, error)
}

type catalog interface {
	ProductTypes(ctx context.Context) ([]commercetools.ProductType, error)
}

type Service struct {
	repo    searchRepo
	catalog catalog
	logger  *zap.Logger
}

func New(repo searchRepo, catalog catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, catalog: catalog, logger: logger}
}

// Query is a product listing request. Filters are keyed by the client
// filter key, e.g. "color" or "newArrival".
type Query struct {
	Page    int
	Limit   int
	Sort    string
	Text    string
	Filters map[string][]string
}

// ParseQuery reads a JSON listing body. Keys other than page, limit, sort
// and q are filters; string values are split on commas.
func ParseQuery(body map[string]interface{}) (Query, error) {
	q := Query{Filters: map[string][]string{}}
	for key, raw := range body {
		switch key {
		case "page", "limit":
			n, err := toInt(raw)
			if err != nil {
				return Query{}, domain.Invalid(key + " must be a number")
			}
			if key == "page" {
				q.Page = n
			} else {
				q.Limit = n
			}
		case "sort":
			if raw == nil {
				continue
			}
			name, ok := raw.(string)
			if !ok {
				return Query{}, domain.Invalid("sort must be a string")
			}
			q.Sort = name
		case "q":
			s, _ := raw.(string)
			q.Text = strings.TrimSpace(s)
		default:
			if values := filterValues(raw); len(values) > 0 {
				q.Filters[key] = values
			}
		}
	}
	return q, nil
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case string:
		if n == "" {
			return 0, nil
		}
		return strconv.Atoi(n)
	}
	return 0, fmt.Errorf("unsupported number %T", v)
}

func filterValues(v interface{}) []string {
	var out []string
	switch val := v.(type) {
	case string:
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case bool:
		if val {
			out = append(out, "true")
		}
	case []interface{}:
		for _, item := range val {
			out = append(out, filterValues(item)...)
		}
	}
	return out
}

func (q *Query) normalize() error {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return domain.Invalid("page must be at least 1")
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	if q.Limit < 1 || q.Limit > maxLimit {
		return domain.Invalid(fmt.Sprintf("limit must be between 1 and %d", maxLimit))
	}
	if q.Sort == "" {
		q.Sort = SortRelevant
	}
	switch q.Sort {
	case SortRelevant, SortNameAsc, SortNameDesc, SortPriceLow, SortPriceHigh, SortNewArrival:
	default:
		return domain.Invalid("unknown sort " + q.Sort)
	}
	return nil
}

// Search lists products priced for loc with facets for every filterable
// attribute. Selected filters are flagged in the returned facets.
func (s *Service) Search(ctx context.Context, q Query, loc string) (*domain.ProductList, error) {
	if err := q.normalize(); err != nil {
		return nil, err
	}
	types, err := s.catalog.ProductTypes(ctx)
	if err != nil {
		s.logger.Error("load product types failed", zap.Error(err))
		return nil, err
	}

	attrs := mapper.FacetAttributes(types)
	selected := make(map[string][]string, len(q.Filters))
	for key, values := range q.Filters {
		selected[mapper.NormalizeKey(key)] = values
	}

	var clauses []commercetools.SearchQuery
	if q.Text != "" {
		clauses = append(clauses, commercetools.SearchQuery{FullText: &commercetools.FullTextExpr{
			Field:     "name",
			Language:  loc,
			Value:     q.Text,
			MustMatch: "any",
		}})
	}
	clauses = append(clauses, filterClauses(attrs, selected)...)

	req := commercetools.ProductSearchRequest{
		Query:                       combine(clauses),
		Sort:                        sortFor(q.Sort, loc),
		Limit:                       q.Limit,
		Offset:                      (q.Page - 1) * q.Limit,
		MarkMatchingVariants:        len(clauses) > 0,
		ProductProjectionParameters: projectionParams(loc),
		Facets:                      mapper.FacetRequests(types),
	}
	resp, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	facets := mapper.BuildFacets(types, resp.Facets, loc)
	mapper.MarkSelected(facets, selected)

	return &domain.ProductList{
		Products: mapResults(resp.Results, loc),
		Total:    resp.Total,
		Page:     q.Page,
		Limit:    q.Limit,
		Facets:   facets,
	}, nil
}

// BySKU returns the product owning the variant with sku.
func (s *Service) BySKU(ctx context.Context, sku, loc string) (*domain.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.Invalid("sku required")
	}
	resp, err := s.repo.Search(ctx, commercetools.ProductSearchRequest{
		Query: &commercetools.SearchQuery{Exact: &commercetools.ExactExpr{
			Field: "variants.sku",
			Value: sku,
		}},
		Limit:                       1,
		MarkMatchingVariants:        true,
		ProductProjectionParameters: projectionParams(loc),
	})
	if err != nil {
		return nil, err
	}
	products := mapResults(resp.Results, loc)
	if len(products) == 0 {
		return nil, domain.ErrNotFound
	}
	return &products[0], nil
}

func projectionParams(loc string) *commercetools.ProductProjectionParameters {
	country, currency := locale.Info(loc)
	return &commercetools.ProductProjectionParameters{PriceCountry: country, PriceCurrency: currency}
}

func mapResults(results []commercetools.ProductSearchResult, loc string) []domain.Product {
	out := make([]domain.Product, 0, len(results))
	for _, r := range results {
		if r.ProductProjection == nil {
			continue
		}
		out = append(out, mapper.MapProduct(*r.ProductProjection, loc))
	}
	return out
}

// filterClauses turns selected filters into exact matches. Keys that are not
// filterable attributes are ignored; a boolean filter only matches true.
func filterClauses(attrs []commercetools.AttributeDefinition, selected map[string][]string) []commercetools.SearchQuery {
	var out []commercetools.SearchQuery
	for _, a := range attrs {
		values, ok := selected[mapper.NormalizeKey(mapper.FilterKey(a.Name))]
		if !ok || len(values) == 0 {
			continue
		}
		expr := &commercetools.ExactExpr{Field: mapper.AttributeSearchField(a), FieldType: a.Type.Name}
		switch a.Type.Name {
		case "boolean":
			if values[0] != "true" {
				continue
			}
			expr.Value = true
		default:
			vals := append([]string(nil), values...)
			sort.Strings(vals)
			if len(vals) == 1 {
				expr.Value = vals[0]
			} else {
				expr.Values = vals
			}
		}
		out = append(out, commercetools.SearchQuery{Exact: expr})
	}
	return out
}

func combine(clauses []commercetools.SearchQuery) *commercetools.SearchQuery {
	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return &clauses[0]
	}
	return &commercetools.SearchQuery{And: clauses}
}

func sortFor(option, loc string) []commercetools.SearchSort {
	switch option {
	case SortNameAsc:
		return []commercetools.SearchSort{{Field: "name", Language: loc, Order: "asc"}}
	case SortNameDesc:
		return []commercetools.SearchSort{{Field: "name", Language: loc, Order: "desc"}}
	case SortPriceLow:
		return []commercetools.SearchSort{{Field: "variants.prices.centAmount", Order: "asc", Mode: "min"}}
	case SortPriceHigh:
		return []commercetools.SearchSort{{Field: "variants.prices.centAmount", Order: "desc", Mode: "max"}}
	case SortNewArrival:
		return []commercetools.SearchSort{{Field: "createdAt", Order: "desc"}}
	}
	return nil
}
