package domain

import "time"

// Money is an amount in minor units.
type Money struct {
	CentAmount     int64  `json:"centAmount"`
	CurrencyCode   string `json:"currencyCode"`
	FractionDigits int    `json:"fractionDigits"`
}

// DiscountKind tags where a discount was observed on the platform cart.
type DiscountKind string

const (
	DiscountProduct  DiscountKind = "product"
	DiscountLineItem DiscountKind = "lineItem"
	DiscountCart     DiscountKind = "cart"
)

// Discount is one reduction shown to the shopper.
type Discount struct {
	Type        DiscountKind `json:"type"`
	DiscountID  string       `json:"discountId"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Value       Money        `json:"value"`
}

// Cart is the flattened, discount-annotated view of a platform cart.
type Cart struct {
	ID                    string         `json:"id"`
	Version               int            `json:"version"`
	CreatedAt             time.Time      `json:"createdAt"`
	LastModifiedAt        time.Time      `json:"lastModifiedAt"`
	AnonymousID           string         `json:"anonymousId,omitempty"`
	CustomerID            string         `json:"customerId,omitempty"`
	Locale                string         `json:"locale"`
	Country               string         `json:"country"`
	Currency              string         `json:"currency"`
	CartState             string         `json:"cartState"`
	InventoryMode         string         `json:"inventoryMode"`
	Origin                string         `json:"origin"`
	LineItems             []LineItem     `json:"lineItems"`
	TotalLineItemQuantity int            `json:"totalLineItemQuantity"`
	OriginalPrice         Money          `json:"originalPrice"`
	Subtotal              Money          `json:"subtotal"`
	TotalPrice            Money          `json:"totalPrice"`
	TaxInfo               *TaxInfo       `json:"taxInfo,omitempty"`
	Discounts             []Discount     `json:"discounts"`
	ShippingInfo          *ShippingInfo  `json:"shippingInfo,omitempty"`
	ShippingAddress       *Address       `json:"shippingAddress,omitempty"`
	BillingAddress        *Address       `json:"billingAddress,omitempty"`
	DiscountCodes         []DiscountCode `json:"discountCodes"`
}

// LineItem is one product variant and quantity in a cart.
type LineItem struct {
	ID            string         `json:"id"`
	ProductID     string         `json:"productId"`
	ProductKey    string         `json:"productKey"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	URL           string         `json:"url"`
	Variant       ProductVariant `json:"variant"`
	Quantity      int            `json:"quantity"`
	Price         *Price         `json:"price,omitempty"`
	OriginalPrice Money          `json:"originalPrice"`
	TotalPrice    Money          `json:"totalPrice"`
	Discounts     []Discount     `json:"discounts"`
}

// TaxInfo carries net/gross totals and per-jurisdiction portions.
type TaxInfo struct {
	TaxedPrice  TaxedPrice   `json:"taxedPrice"`
	TaxPortions []TaxPortion `json:"taxPortions"`
}

type TaxedPrice struct {
	TotalNet   Money `json:"totalNet"`
	TotalGross Money `json:"totalGross"`
	TotalTax   Money `json:"totalTax"`
}

type TaxPortion struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount Money   `json:"amount"`
}

type ShippingInfo struct {
	ShippingMethodName string   `json:"shippingMethodName"`
	Price              Money    `json:"price"`
	TaxRate            *float64 `json:"taxRate,omitempty"`
}

// DiscountCode pairs the shopper-entered code with the reference id that
// removal requires.
type DiscountCode struct {
	Code           string `json:"code"`
	DiscountCodeID string `json:"discountCodeId"`
	State          string `json:"state"`
}

// Address is used for both shipping and billing.
type Address struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	StreetName   string `json:"streetName"`
	StreetNumber string `json:"streetNumber,omitempty"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// ShippingMethod is an eligible shipping option for a cart.
type ShippingMethod struct {
	ID          string `json:"id"`
	Key         string `json:"key,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	IsDefault   bool   `json:"isDefault"`
}

// Savings totals every discount on the cart, split by scope.
func (c Cart) Savings() (lineItems, cart int64) {
	for _, li := range c.LineItems {
		for _, d := range li.Discounts {
			switch d.Type {
			case DiscountProduct, DiscountLineItem:
				lineItems += d.Value.CentAmount
			case DiscountCart:
				cart += d.Value.CentAmount
			}
		}
	}
	for _, d := range c.Discounts {
		switch d.Type {
		case DiscountCart:
			cart += d.Value.CentAmount
		case DiscountProduct, DiscountLineItem:
			lineItems += d.Value.CentAmount
		}
	}
	return lineItems, cart
}
