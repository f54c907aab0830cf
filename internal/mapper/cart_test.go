package mapper

import (
	"bytes"
	"encoding/json"
	"testing"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
)

const discountedCartJSON = `{
  "id": "cart-1",
  "version": 3,
  "locale": "en-US",
  "country": "US",
  "cartState": "Active",
  "inventoryMode": "ReserveOnOrder",
  "totalLineItemQuantity": 2,
  "totalPrice": {"currencyCode": "USD", "centAmount": 1500, "fractionDigits": 2},
  "lineItems": [{
    "id": "li-1",
    "productId": "p-1",
    "productKey": "tee",
    "name": {"en-US": "Tee", "de-DE": "T-Shirt"},
    "productSlug": {"en-US": "tee-slug"},
    "quantity": 2,
    "variant": {"id": 1, "sku": "tee-m", "prices": [
      {"value": {"currencyCode": "USD", "centAmount": 1000, "fractionDigits": 2}, "country": "US",
       "discounted": {"value": {"currencyCode": "USD", "centAmount": 800, "fractionDigits": 2}, "discount": {"typeId": "product-discount", "id": "pd-1"}}}
    ]},
    "price": {"value": {"currencyCode": "USD", "centAmount": 1000, "fractionDigits": 2}, "country": "US",
      "discounted": {"value": {"currencyCode": "USD", "centAmount": 800, "fractionDigits": 2}, "discount": {"typeId": "product-discount", "id": "pd-1"}}},
    "totalPrice": {"currencyCode": "USD", "centAmount": 1600, "fractionDigits": 2},
    "discountedPricePerQuantity": []
  }],
  "discountOnTotalPrice": {
    "discountedAmount": {"currencyCode": "USD", "centAmount": 100, "fractionDigits": 2},
    "includedDiscounts": [{
      "discount": {"typeId": "cart-discount", "id": "cd-1", "obj": {"id": "cd-1", "key": "ten-off", "name": {"en-US": "Ten off"}, "description": {"en-US": "One dollar off"}}},
      "discountedAmount": {"currencyCode": "USD", "centAmount": 100, "fractionDigits": 2}
    }]
  },
  "discountCodes": [{"discountCode": {"typeId": "discount-code", "id": "dc-1", "obj": {"id": "dc-1", "code": "SAVE10"}}, "state": "MatchesCart"}],
  "shippingInfo": {"shippingMethodName": "Standard", "price": {"currencyCode": "USD", "centAmount": 500, "fractionDigits": 2}, "taxRate": {"name": "VAT", "amount": 0.2, "includedInPrice": true, "country": "US"}},
  "shippingAddress": {"firstName": "Ada", "lastName": "Lovelace", "streetName": "Main", "city": "Austin", "postalCode": "78701", "country": "US", "email": "ada@example.com"}
}`

func decodeCart(t *testing.T, raw string) commercetools.Cart {
	t.Helper()
	var c commercetools.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	return c
}

func TestMapCart_ProductDiscountTotals(t *testing.T) {
	cart := MapCart(decodeCart(t, discountedCartJSON), "en-US")

	if cart.OriginalPrice.CentAmount != 2000 {
		t.Fatalf("expected originalPrice 2000, got %d", cart.OriginalPrice.CentAmount)
	}
	if cart.Subtotal.CentAmount != 1600 {
		t.Fatalf("expected subtotal 1600, got %d", cart.Subtotal.CentAmount)
	}
	if cart.TotalPrice.CentAmount != 1500 {
		t.Fatalf("expected totalPrice 1500, got %d", cart.TotalPrice.CentAmount)
	}

	li := cart.LineItems[0]
	if len(li.Discounts) != 1 {
		t.Fatalf("expected one line discount, got %+v", li.Discounts)
	}
	d := li.Discounts[0]
	if d.Type != domain.DiscountProduct || d.Value.CentAmount != 400 || d.DiscountID != "pd-1" {
		t.Fatalf("unexpected product discount %+v", d)
	}
	if li.OriginalPrice.CentAmount != 2000 || li.TotalPrice.CentAmount != 1600 {
		t.Fatalf("unexpected line totals %+v", li)
	}
	if li.URL != "/tee-slug/tee" || li.Name != "Tee" {
		t.Fatalf("unexpected line view %+v", li)
	}
}

func TestMapCart_CartDiscountsAndCodes(t *testing.T) {
	cart := MapCart(decodeCart(t, discountedCartJSON), "en-US")

	if len(cart.Discounts) != 1 {
		t.Fatalf("expected one cart discount, got %+v", cart.Discounts)
	}
	d := cart.Discounts[0]
	if d.Type != domain.DiscountCart || d.Name != "Ten off" || d.Description != "One dollar off" || d.Value.CentAmount != 100 {
		t.Fatalf("unexpected cart discount %+v", d)
	}
	if len(cart.DiscountCodes) != 1 || cart.DiscountCodes[0] != (domain.DiscountCode{Code: "SAVE10", DiscountCodeID: "dc-1", State: "MatchesCart"}) {
		t.Fatalf("unexpected discount codes %+v", cart.DiscountCodes)
	}
	if cart.ShippingInfo == nil || cart.ShippingInfo.Price.CentAmount != 500 || *cart.ShippingInfo.TaxRate != 0.2 {
		t.Fatalf("unexpected shipping info %+v", cart.ShippingInfo)
	}
	if cart.ShippingAddress == nil || cart.ShippingAddress.City != "Austin" || cart.BillingAddress != nil {
		t.Fatalf("unexpected addresses %+v %+v", cart.ShippingAddress, cart.BillingAddress)
	}
	lineSavings, cartSavings := cart.Savings()
	if lineSavings != 400 || cartSavings != 100 {
		t.Fatalf("unexpected savings %d/%d", lineSavings, cartSavings)
	}
}

func TestMapCart_TaxedSubtotal(t *testing.T) {
	raw := decodeCart(t, discountedCartJSON)
	raw.TaxedPrice = &commercetools.TaxedPrice{
		TotalNet:   commercetools.TypedMoney{CurrencyCode: "USD", CentAmount: 1250, FractionDigits: 2},
		TotalGross: commercetools.TypedMoney{CurrencyCode: "USD", CentAmount: 1500, FractionDigits: 2},
		TaxPortions: []commercetools.TaxPortion{
			{Name: "State", Rate: 0.2, Amount: commercetools.TypedMoney{CurrencyCode: "USD", CentAmount: 250, FractionDigits: 2}},
		},
	}

	cart := MapCart(raw, "en-US")
	if cart.Subtotal.CentAmount != 1250 {
		t.Fatalf("expected net subtotal 1250, got %d", cart.Subtotal.CentAmount)
	}
	if cart.TaxInfo == nil || cart.TaxInfo.TaxedPrice.TotalTax.CentAmount != 250 {
		t.Fatalf("expected tax 250, got %+v", cart.TaxInfo)
	}
	if len(cart.TaxInfo.TaxPortions) != 1 || cart.TaxInfo.TaxPortions[0].Name != "State" {
		t.Fatalf("unexpected tax portions %+v", cart.TaxInfo.TaxPortions)
	}
}

func TestMapCart_LineItemDiscountsConcatenate(t *testing.T) {
	raw := decodeCart(t, discountedCartJSON)
	raw.LineItems[0].DiscountedPricePerQuantity = []commercetools.DiscountedLineItemPriceForQuantity{{
		Quantity: 2,
		DiscountedPrice: commercetools.DiscountedLineItemPrice{
			Value: commercetools.TypedMoney{CurrencyCode: "USD", CentAmount: 700},
			IncludedDiscounts: []commercetools.DiscountedPortion{{
				Discount:         commercetools.DiscountReference{TypeID: "cart-discount", ID: "cd-2"},
				DiscountedAmount: commercetools.TypedMoney{CurrencyCode: "USD", CentAmount: 100, FractionDigits: 2},
			}},
		},
	}}

	li := MapCart(raw, "en-US").LineItems[0]
	if len(li.Discounts) != 2 {
		t.Fatalf("expected product and line discounts, got %+v", li.Discounts)
	}
	if li.Discounts[1].Type != domain.DiscountLineItem || li.Discounts[1].Name != "cd-2" {
		t.Fatalf("unexpected line discount %+v", li.Discounts[1])
	}
}

func TestMapCart_LocaleFallbacks(t *testing.T) {
	cart := MapCart(decodeCart(t, discountedCartJSON), "de-DE")
	li := cart.LineItems[0]
	if li.Name != "T-Shirt" {
		t.Fatalf("expected localized name, got %q", li.Name)
	}
	if li.Slug != "tee-slug" || li.URL != "/tee-slug/tee" {
		t.Fatalf("expected default-locale slug, got %q %q", li.Slug, li.URL)
	}
	if cart.Discounts[0].Name != "Ten off" {
		t.Fatalf("expected default-locale discount name, got %q", cart.Discounts[0].Name)
	}
	if cart.Locale != "en-US" {
		t.Fatalf("cart locale should come from the platform, got %q", cart.Locale)
	}
}

func TestMapCart_EmptyCart(t *testing.T) {
	cart := MapCart(commercetools.Cart{ID: "c", TotalPrice: commercetools.TypedMoney{CurrencyCode: "EUR", FractionDigits: 2}}, "de-DE")
	if cart.LineItems == nil || cart.Discounts == nil || cart.DiscountCodes == nil {
		t.Fatalf("collections must be empty, not nil: %+v", cart)
	}
	if cart.OriginalPrice.CurrencyCode != "EUR" || cart.Subtotal.CentAmount != 0 || cart.Locale != "de-DE" {
		t.Fatalf("unexpected empty cart view %+v", cart)
	}
}

func TestMapCart_Deterministic(t *testing.T) {
	raw := decodeCart(t, discountedCartJSON)
	first, err := json.Marshal(MapCart(raw, "en-US"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, _ := json.Marshal(MapCart(raw, "en-US"))
	if !bytes.Equal(first, second) {
		t.Fatalf("mapping is not deterministic")
	}
}
