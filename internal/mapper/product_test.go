package mapper

import (
	"encoding/json"
	"testing"

	"ct-storefront/internal/commercetools"
)

func usd(amount int64) commercetools.TypedMoney {
	return commercetools.TypedMoney{CurrencyCode: "USD", CentAmount: amount, FractionDigits: 2}
}

func TestMapVariant_PriceSelection(t *testing.T) {
	channel := &commercetools.Reference{TypeID: "channel", ID: "store"}
	cases := []struct {
		name   string
		prices []commercetools.Price
		want   int64
	}{
		{"prefers channel-less match", []commercetools.Price{
			{Value: usd(1), Country: "US", Channel: channel},
			{Value: usd(2), Country: "US"},
		}, 2},
		{"falls back to channel match", []commercetools.Price{
			{Value: commercetools.TypedMoney{CurrencyCode: "EUR", CentAmount: 3}, Country: "DE"},
			{Value: usd(4), Country: "US", Channel: channel},
		}, 4},
		{"falls back to first price", []commercetools.Price{
			{Value: commercetools.TypedMoney{CurrencyCode: "GBP", CentAmount: 5}, Country: "GB"},
			{Value: commercetools.TypedMoney{CurrencyCode: "EUR", CentAmount: 6}, Country: "DE"},
		}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := MapVariant(commercetools.ProductVariant{SKU: "s", Prices: tc.prices}, "en-US")
			if v.Price == nil || v.Price.Value.CentAmount != tc.want {
				t.Fatalf("expected price %d, got %+v", tc.want, v.Price)
			}
		})
	}

	if v := MapVariant(commercetools.ProductVariant{SKU: "s"}, "en-US"); v.Price != nil {
		t.Fatalf("expected no price, got %+v", v.Price)
	}
}

func TestMapVariant_Attributes(t *testing.T) {
	raw := `{"id":1,"sku":"s","attributes":[
	  {"name":"search-color","value":{"key":"red","label":{"en-US":"Red","de-DE":"Rot"}}},
	  {"name":"size","value":{"key":"m","label":"Medium"}},
	  {"name":"material","value":{"en-US":"Cotton","de-DE":"Baumwolle"}},
	  {"name":"search-new-arrival","value":true},
	  {"name":"weight","value":250}
	]}`
	var variant commercetools.ProductVariant
	if err := json.Unmarshal([]byte(raw), &variant); err != nil {
		t.Fatalf("decode: %v", err)
	}

	attrs := MapVariant(variant, "de-DE").Attributes
	if a := attrs["search-color"]; a.Value != "red" || a.Label != "Rot" {
		t.Fatalf("unexpected lenum attribute %+v", a)
	}
	if a := attrs["size"]; a.Value != "m" || a.Label != "Medium" {
		t.Fatalf("unexpected enum attribute %+v", a)
	}
	if a := attrs["material"]; a.Value != "Baumwolle" {
		t.Fatalf("unexpected ltext attribute %+v", a)
	}
	if a := attrs["search-new-arrival"]; a.Value != true || a.Label != "true" {
		t.Fatalf("unexpected boolean attribute %+v", a)
	}
	if a := attrs["weight"]; a.Value != float64(250) {
		t.Fatalf("unexpected number attribute %+v", a)
	}
}

func TestMapProduct(t *testing.T) {
	p := commercetools.ProductProjection{
		ID:            "p1",
		Key:           "tee",
		Name:          commercetools.LocalizedString{"en-US": "Tee"},
		Slug:          commercetools.LocalizedString{"en-US": "tee"},
		MasterVariant: commercetools.ProductVariant{SKU: "tee-s"},
		Variants:      []commercetools.ProductVariant{{SKU: "tee-m"}},
	}
	out := MapProduct(p, "en-GB")
	if out.URL != "/tee/tee" || out.Slug != "tee" {
		t.Fatalf("unexpected url %q", out.URL)
	}
	if len(out.Variants) != 2 || out.Variants[0].SKU != "tee-s" {
		t.Fatalf("expected master variant first, got %+v", out.Variants)
	}
}

func TestMapShippingMethod(t *testing.T) {
	m := commercetools.ShippingMethod{
		ID:            "sm-1",
		Key:           "standard",
		Name:          "Standard",
		LocalizedName: commercetools.LocalizedString{"de-DE": "Normal"},
		ZoneRates: []commercetools.ZoneRate{{ShippingRates: []commercetools.ShippingRate{
			{Price: usd(499)},
		}}},
	}
	if got := MapShippingMethod(m, "de-DE"); got.Name != "Normal" || got.Price.CentAmount != 499 {
		t.Fatalf("unexpected mapping %+v", got)
	}
	if got := MapShippingMethod(m, "en-GB"); got.Name != "Standard" {
		t.Fatalf("expected plain name fallback, got %q", got.Name)
	}

	bare := MapShippingMethod(commercetools.ShippingMethod{ID: "sm-2"}, "en-GB")
	if bare.Name != "sm-2" || bare.Price.CentAmount != 0 || bare.Price.CurrencyCode != "GBP" {
		t.Fatalf("unexpected bare mapping %+v", bare)
	}
}

func TestMapProject(t *testing.T) {
	p := MapProject(commercetools.Project{Name: "Shop", Countries: []string{"US", "DE"}, Currencies: []string{"USD", "EUR"}})
	if len(p.Currencies) != 2 || p.Currencies[1] != "EUR" {
		t.Fatalf("currencies must come from the project currencies, got %+v", p.Currencies)
	}
	if p.Languages == nil {
		t.Fatalf("languages must not be nil")
	}
}
