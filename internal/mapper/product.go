package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
	"ct-storefront/internal/locale"
)

// MapProduct maps a product projection, master variant first.
func MapProduct(p commercetools.ProductProjection, loc string) domain.Product {
	slug := localized(p.Slug, loc)
	variants := make([]domain.ProductVariant, 0, len(p.Variants)+1)
	variants = append(variants, MapVariant(p.MasterVariant, loc))
	for _, v := range p.Variants {
		variants = append(variants, MapVariant(v, loc))
	}
	return domain.Product{
		Name:        p.Name[loc],
		Key:         p.Key,
		ProductID:   p.ID,
		Slug:        slug,
		Description: p.Description[loc],
		Variants:    variants,
		URL:         productURL(slug, p.Key),
	}
}

// MapVariant selects the price for the locale's country and currency,
// preferring channel-less prices, then channel prices, then the first price.
func MapVariant(v commercetools.ProductVariant, loc string) domain.ProductVariant {
	attrs := make(map[string]domain.AttributeValue, len(v.Attributes))
	for _, a := range v.Attributes {
		attrs[a.Name] = mapAttribute(a.Value, loc)
	}

	images := make([]domain.Image, 0, len(v.Images))
	for _, img := range v.Images {
		images = append(images, domain.Image{
			URL:        img.URL,
			Dimensions: domain.Dimensions{W: img.Dimensions.W, H: img.Dimensions.H},
			Label:      img.Label,
		})
	}

	return domain.ProductVariant{
		SKU:        v.SKU,
		Key:        v.Key,
		Attributes: attrs,
		Price:      selectPrice(v.Prices, loc),
		Images:     images,
	}
}

func selectPrice(prices []commercetools.Price, loc string) *domain.Price {
	if len(prices) == 0 {
		return nil
	}
	country, currency := locale.Info(loc)
	matches := func(p commercetools.Price, withChannel bool) bool {
		return p.Country == country && p.Value.CurrencyCode == currency && (p.Channel != nil) == withChannel
	}
	for _, withChannel := range []bool{false, true} {
		for _, p := range prices {
			if matches(p, withChannel) {
				return mapPrice(p)
			}
		}
	}
	return mapPrice(prices[0])
}

func mapPrice(p commercetools.Price) *domain.Price {
	out := &domain.Price{Value: money(p.Value), Country: p.Country}
	if p.Discounted != nil {
		out.Discounted = &domain.DiscountedPrice{Value: money(p.Discounted.Value)}
	}
	return out
}

// mapAttribute resolves enum objects to their key and localized label, and
// localized text to the requested locale. Other values pass through.
func mapAttribute(raw json.RawMessage, loc string) domain.AttributeValue {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.AttributeValue{Value: "", Label: ""}
	}

	if raw[0] == '{' {
		var enum struct {
			Key   *string         `json:"key"`
			Label json.RawMessage `json:"label"`
		}
		if err := json.Unmarshal(raw, &enum); err == nil && enum.Key != nil {
			label := enumLabel(enum.Label, loc)
			if label == "" {
				label = *enum.Key
			}
			return domain.AttributeValue{Value: *enum.Key, Label: label}
		}
		var text commercetools.LocalizedString
		if err := json.Unmarshal(raw, &text); err == nil {
			v := text[loc]
			return domain.AttributeValue{Value: v, Label: v}
		}
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.AttributeValue{Value: "", Label: ""}
	}
	if s, ok := v.(string); ok {
		return domain.AttributeValue{Value: s, Label: s}
	}
	return domain.AttributeValue{Value: v, Label: fmt.Sprint(v)}
}

func enumLabel(raw json.RawMessage, loc string) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		_ = json.Unmarshal(raw, &s)
		return s
	}
	var ls commercetools.LocalizedString
	if err := json.Unmarshal(raw, &ls); err != nil {
		return ""
	}
	return ls[loc]
}

// MapShippingMethod names the method by localized name, then plain name,
// key and id. Price comes from the first rate of the first zone; methods
// without rates are free in the locale's currency.
func MapShippingMethod(m commercetools.ShippingMethod, loc string) domain.ShippingMethod {
	_, currency := locale.Info(loc)
	price := domain.Money{CurrencyCode: currency, FractionDigits: 2}
	if len(m.ZoneRates) > 0 && len(m.ZoneRates[0].ShippingRates) > 0 {
		price = money(m.ZoneRates[0].ShippingRates[0].Price)
	}
	return domain.ShippingMethod{
		ID:          m.ID,
		Key:         m.Key,
		Name:        firstNonEmpty(localized(m.LocalizedName, loc), m.Name, m.Key, m.ID),
		Description: firstNonEmpty(localized(m.LocalizedDescription, loc), m.Description),
		Price:       price,
		IsDefault:   m.IsDefault,
	}
}

// MapProject exposes the project's selling settings.
func MapProject(p commercetools.Project) domain.Project {
	return domain.Project{
		Name:       p.Name,
		Countries:  nonNil(p.Countries),
		Currencies: nonNil(p.Currencies),
		Languages:  nonNil(p.Languages),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
