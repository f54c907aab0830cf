package mapper

import (
	"strings"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
)

const (
	// SearchPrefix marks product-type attributes that are exposed as filters.
	SearchPrefix = "search-"
	// AttributeField is the search field prefix for variant attributes.
	AttributeField = "variants.attributes."
)

// IsFacetAttribute reports whether the attribute can become a filter.
func IsFacetAttribute(a commercetools.AttributeDefinition) bool {
	if !strings.HasPrefix(a.Name, SearchPrefix) {
		return false
	}
	switch a.Type.Name {
	case "enum", "lenum", "boolean":
		return true
	}
	return false
}

// FacetAttributes returns the filterable attributes of all product types,
// first declaration wins on duplicate names.
func FacetAttributes(types []commercetools.ProductType) []commercetools.AttributeDefinition {
	seen := make(map[string]bool)
	var out []commercetools.AttributeDefinition
	for _, pt := range types {
		for _, a := range pt.Attributes {
			if !IsFacetAttribute(a) || seen[a.Name] {
				continue
			}
			seen[a.Name] = true
			out = append(out, a)
		}
	}
	return out
}

// FilterKey is the client-facing key of an attribute: the name without the
// search prefix.
func FilterKey(attributeName string) string {
	return strings.TrimPrefix(attributeName, SearchPrefix)
}

// NormalizeKey folds case and drops hyphens so "newArrival" and
// "new-arrival" compare equal.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "")
}

// AttributeSearchField is the field used to match or facet on an attribute.
// Enum attributes are matched on their key.
func AttributeSearchField(a commercetools.AttributeDefinition) string {
	field := AttributeField + a.Name
	if a.Type.Name == "enum" || a.Type.Name == "lenum" {
		field += ".key"
	}
	return field
}

// FacetRequests asks for distinct value counts of every filterable attribute.
func FacetRequests(types []commercetools.ProductType) []commercetools.FacetRequest {
	attrs := FacetAttributes(types)
	out := make([]commercetools.FacetRequest, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, commercetools.FacetRequest{Distinct: &commercetools.DistinctFacet{
			Name:      AttributeField + a.Name,
			Field:     AttributeSearchField(a),
			FieldType: a.Type.Name,
			Level:     "variants",
			Limit:     100,
		}})
	}
	return out
}

// BuildFacets crosses facet results with product-type metadata. Facets with
// no matching attribute are skipped. Checkbox filters list every declared
// enum value, with a zero count when the search returned no bucket for it.
// Boolean filters are emitted only when some product has the flag set.
func BuildFacets(types []commercetools.ProductType, facets []commercetools.FacetResult, loc string) []domain.Filter {
	filters := []domain.Filter{}
	if len(types) == 0 || len(facets) == 0 {
		return filters
	}

	attrs := make(map[string]commercetools.AttributeDefinition)
	for _, pt := range types {
		for _, a := range pt.Attributes {
			if _, ok := attrs[a.Name]; !ok {
				attrs[a.Name] = a
			}
		}
	}

	for _, f := range facets {
		name := f.Name[strings.LastIndex(f.Name, ".")+1:]
		attr, ok := attrs[name]
		if !ok {
			continue
		}
		key := FilterKey(name)
		label := firstNonEmpty(localized(attr.Label, loc), name)

		switch attr.Type.Name {
		case "enum", "lenum":
			if filter, ok := enumFilter(key, label, attr, f, loc); ok {
				filters = append(filters, filter)
			}
		case "boolean":
			if booleanHasTrue(f) {
				filters = append(filters, domain.Filter{Key: key, Label: label, Type: domain.FilterBoolean})
			}
		}
	}
	return filters
}

func enumFilter(key, label string, attr commercetools.AttributeDefinition, f commercetools.FacetResult, loc string) (domain.Filter, bool) {
	if len(attr.Type.Values) == 0 {
		return domain.Filter{}, false
	}
	counts := make(map[string]int, len(f.Buckets))
	for _, b := range f.Buckets {
		counts[b.Key] = b.Count
	}
	values := make([]domain.FilterValue, 0, len(attr.Type.Values))
	for _, v := range attr.Type.Values {
		values = append(values, domain.FilterValue{
			Key:   v.Key,
			Label: firstNonEmpty(localized(v.Label, loc), v.PlainLabel, v.Key),
			Count: counts[v.Key],
		})
	}
	return domain.Filter{Key: key, Label: label, Type: domain.FilterCheckbox, Values: values}, true
}

func booleanHasTrue(f commercetools.FacetResult) bool {
	for _, b := range f.Buckets {
		if b.Key == "true" && b.Count > 0 {
			return true
		}
	}
	return false
}

// MarkSelected flags the filters and values present in selected, which is
// keyed by normalized filter key.
func MarkSelected(filters []domain.Filter, selected map[string][]string) {
	for i := range filters {
		chosen, ok := selected[NormalizeKey(filters[i].Key)]
		if !ok {
			continue
		}
		switch filters[i].Type {
		case domain.FilterBoolean:
			filters[i].IsSelected = len(chosen) > 0 && chosen[0] == "true"
		case domain.FilterCheckbox:
			for j := range filters[i].Values {
				for _, c := range chosen {
					if filters[i].Values[j].Key == c {
						filters[i].Values[j].IsSelected = true
						filters[i].IsSelected = true
					}
				}
			}
		}
	}
}
