package commercetools

import (
	"bytes"
	"encoding/json"
	"time"
)

// LocalizedString maps a locale tag to text.
type LocalizedString map[string]string

// TypedMoney is a monetary amount in minor units.
type TypedMoney struct {
	Type           string `json:"type,omitempty"`
	CurrencyCode   string `json:"currencyCode"`
	CentAmount     int64  `json:"centAmount"`
	FractionDigits int    `json:"fractionDigits"`
}

// Reference points at another platform resource.
type Reference struct {
	TypeID string `json:"typeId,omitempty"`
	ID     string `json:"id,omitempty"`
	Key    string `json:"key,omitempty"`
}

// Page is the platform's paged query envelope.
type Page[T any] struct {
	Limit   int `json:"limit"`
	Offset  int `json:"offset"`
	Count   int `json:"count"`
	Total   int `json:"total"`
	Results []T `json:"results"`
}

type Project struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Version    int      `json:"version"`
	Countries  []string `json:"countries"`
	Currencies []string `json:"currencies"`
	Languages  []string `json:"languages"`
}

type ProductType struct {
	ID          string                `json:"id"`
	Version     int                   `json:"version"`
	Key         string                `json:"key,omitempty"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Attributes  []AttributeDefinition `json:"attributes"`
}

type AttributeDefinition struct {
	Name         string          `json:"name"`
	Label        LocalizedString `json:"label,omitempty"`
	Type         AttributeType   `json:"type"`
	IsSearchable bool            `json:"isSearchable"`
}

type AttributeType struct {
	Name   string      `json:"name"`
	Values []EnumValue `json:"values,omitempty"`
}

// EnumValue is a value of an enum or lenum attribute type. Plain enums carry
// a string label, localized enums a LocalizedString.
type EnumValue struct {
	Key        string
	Label      LocalizedString
	PlainLabel string
}

func (v *EnumValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key   string          `json:"key"`
		Label json.RawMessage `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Key = raw.Key
	v.Label = nil
	v.PlainLabel = ""
	label := bytes.TrimSpace(raw.Label)
	switch {
	case len(label) == 0:
	case label[0] == '"':
		return json.Unmarshal(label, &v.PlainLabel)
	case label[0] == '{':
		return json.Unmarshal(label, &v.Label)
	}
	return nil
}

func (v EnumValue) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{"key": v.Key}
	if v.Label != nil {
		out["label"] = v.Label
	} else if v.PlainLabel != "" {
		out["label"] = v.PlainLabel
	}
	return json.Marshal(out)
}

// ProductSearchRequest is the body of POST /products/search.
type ProductSearchRequest struct {
	Query                       *SearchQuery                 `json:"query,omitempty"`
	Sort                        []SearchSort                 `json:"sort,omitempty"`
	Limit                       int                          `json:"limit"`
	Offset                      int                          `json:"offset"`
	MarkMatchingVariants        bool                         `json:"markMatchingVariants,omitempty"`
	ProductProjectionParameters *ProductProjectionParameters `json:"productProjectionParameters,omitempty"`
	Facets                      []FacetRequest               `json:"facets,omitempty"`
}

// SearchQuery is one node of the search query language. Exactly one field
// is set.
type SearchQuery struct {
	And      []SearchQuery `json:"and,omitempty"`
	FullText *FullTextExpr `json:"fullText,omitempty"`
	Exact    *ExactExpr    `json:"exact,omitempty"`
}

type FullTextExpr struct {
	Field     string `json:"field"`
	Language  string `json:"language"`
	Value     string `json:"value"`
	MustMatch string `json:"mustMatch,omitempty"`
}

type ExactExpr struct {
	Field     string      `json:"field"`
	FieldType string      `json:"fieldType,omitempty"`
	Value     interface{} `json:"value,omitempty"`
	Values    []string    `json:"values,omitempty"`
}

type SearchSort struct {
	Field     string `json:"field"`
	Language  string `json:"language,omitempty"`
	Order     string `json:"order"`
	Mode      string `json:"mode,omitempty"`
	FieldType string `json:"fieldType,omitempty"`
}

type ProductProjectionParameters struct {
	PriceCountry  string `json:"priceCountry,omitempty"`
	PriceCurrency string `json:"priceCurrency,omitempty"`
}

type FacetRequest struct {
	Distinct *DistinctFacet `json:"distinct,omitempty"`
}

type DistinctFacet struct {
	Name      string `json:"name"`
	Field     string `json:"field"`
	FieldType string `json:"fieldType,omitempty"`
	Level     string `json:"level,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type ProductSearchResponse struct {
	Total   int                   `json:"total"`
	Offset  int                   `json:"offset"`
	Limit   int                   `json:"limit"`
	Results []ProductSearchResult `json:"results"`
	Facets  []FacetResult         `json:"facets"`
}

type ProductSearchResult struct {
	ID                string             `json:"id"`
	ProductProjection *ProductProjection `json:"productProjection,omitempty"`
}

type FacetResult struct {
	Name    string        `json:"name"`
	Buckets []FacetBucket `json:"buckets"`
}

type FacetBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type ProductProjection struct {
	ID             string           `json:"id"`
	Version        int              `json:"version"`
	Key            string           `json:"key,omitempty"`
	ProductType    Reference        `json:"productType"`
	Name           LocalizedString  `json:"name"`
	Description    LocalizedString  `json:"description,omitempty"`
	Slug           LocalizedString  `json:"slug"`
	MasterVariant  ProductVariant   `json:"masterVariant"`
	Variants       []ProductVariant `json:"variants"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastModifiedAt time.Time        `json:"lastModifiedAt"`
}

type ProductVariant struct {
	ID         int         `json:"id"`
	SKU        string      `json:"sku,omitempty"`
	Key        string      `json:"key,omitempty"`
	Prices     []Price     `json:"prices,omitempty"`
	Images     []Image     `json:"images,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute values are polymorphic (text, boolean, number, localized text,
// enum objects), so the raw JSON is kept for the mapper.
type Attribute struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type Price struct {
	ID         string           `json:"id,omitempty"`
	Value      TypedMoney       `json:"value"`
	Country    string           `json:"country,omitempty"`
	Channel    *Reference       `json:"channel,omitempty"`
	Discounted *DiscountedPrice `json:"discounted,omitempty"`
}

type DiscountedPrice struct {
	Value    TypedMoney        `json:"value"`
	Discount DiscountReference `json:"discount"`
}

type Image struct {
	URL        string     `json:"url"`
	Label      string     `json:"label,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
}

type Dimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

type Cart struct {
	ID                    string                `json:"id"`
	Version               int                   `json:"version"`
	CreatedAt             time.Time             `json:"createdAt"`
	LastModifiedAt        time.Time             `json:"lastModifiedAt"`
	CustomerID            string                `json:"customerId,omitempty"`
	AnonymousID           string                `json:"anonymousId,omitempty"`
	Locale                string                `json:"locale,omitempty"`
	Country               string                `json:"country,omitempty"`
	CartState             string                `json:"cartState"`
	InventoryMode         string                `json:"inventoryMode,omitempty"`
	Origin                string                `json:"origin,omitempty"`
	LineItems             []LineItem            `json:"lineItems"`
	TotalLineItemQuantity int                   `json:"totalLineItemQuantity,omitempty"`
	TotalPrice            TypedMoney            `json:"totalPrice"`
	TaxedPrice            *TaxedPrice           `json:"taxedPrice,omitempty"`
	DiscountOnTotalPrice  *DiscountOnTotalPrice `json:"discountOnTotalPrice,omitempty"`
	DiscountCodes         []DiscountCodeInfo    `json:"discountCodes"`
	ShippingInfo          *ShippingInfo         `json:"shippingInfo,omitempty"`
	ShippingAddress       *Address              `json:"shippingAddress,omitempty"`
	BillingAddress        *Address              `json:"billingAddress,omitempty"`
}

type LineItem struct {
	ID                         string                               `json:"id"`
	ProductID                  string                               `json:"productId"`
	ProductKey                 string                               `json:"productKey,omitempty"`
	ProductSlug                LocalizedString                      `json:"productSlug,omitempty"`
	Name                       LocalizedString                      `json:"name"`
	Variant                    ProductVariant                       `json:"variant"`
	Price                      Price                                `json:"price"`
	Quantity                   int                                  `json:"quantity"`
	TotalPrice                 TypedMoney                           `json:"totalPrice"`
	DiscountedPricePerQuantity []DiscountedLineItemPriceForQuantity `json:"discountedPricePerQuantity"`
}

type DiscountedLineItemPriceForQuantity struct {
	Quantity        int                     `json:"quantity"`
	DiscountedPrice DiscountedLineItemPrice `json:"discountedPrice"`
}

type DiscountedLineItemPrice struct {
	Value             TypedMoney          `json:"value"`
	IncludedDiscounts []DiscountedPortion `json:"includedDiscounts"`
}

type DiscountOnTotalPrice struct {
	DiscountedAmount  TypedMoney          `json:"discountedAmount"`
	IncludedDiscounts []DiscountedPortion `json:"includedDiscounts"`
}

// DiscountedPortion is the share of one cart discount.
type DiscountedPortion struct {
	Discount         DiscountReference `json:"discount"`
	DiscountedAmount TypedMoney        `json:"discountedAmount"`
}

// DiscountReference points at a cart or product discount. Obj is only
// populated when the reference was expanded.
type DiscountReference struct {
	TypeID string              `json:"typeId"`
	ID     string              `json:"id"`
	Obj    *DiscountDefinition `json:"obj,omitempty"`
}

// DiscountDefinition carries the display fields shared by cart and product
// discounts.
type DiscountDefinition struct {
	ID          string          `json:"id"`
	Key         string          `json:"key,omitempty"`
	Name        LocalizedString `json:"name"`
	Description LocalizedString `json:"description,omitempty"`
}

type DiscountCodeInfo struct {
	DiscountCode DiscountCodeReference `json:"discountCode"`
	State        string                `json:"state"`
}

type DiscountCodeReference struct {
	TypeID string        `json:"typeId"`
	ID     string        `json:"id"`
	Obj    *DiscountCode `json:"obj,omitempty"`
}

type DiscountCode struct {
	ID   string          `json:"id"`
	Code string          `json:"code"`
	Name LocalizedString `json:"name,omitempty"`
}

type TaxedPrice struct {
	TotalNet    TypedMoney   `json:"totalNet"`
	TotalGross  TypedMoney   `json:"totalGross"`
	TotalTax    *TypedMoney  `json:"totalTax,omitempty"`
	TaxPortions []TaxPortion `json:"taxPortions"`
}

type TaxPortion struct {
	Name   string     `json:"name,omitempty"`
	Rate   float64    `json:"rate"`
	Amount TypedMoney `json:"amount"`
}

type ShippingInfo struct {
	ShippingMethodName string     `json:"shippingMethodName"`
	Price              TypedMoney `json:"price"`
	TaxRate            *TaxRate   `json:"taxRate,omitempty"`
	ShippingMethod     *Reference `json:"shippingMethod,omitempty"`
}

type TaxRate struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	IncludedInPrice bool    `json:"includedInPrice"`
	Country         string  `json:"country"`
}

type Address struct {
	ID           string `json:"id,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	StreetName   string `json:"streetName,omitempty"`
	StreetNumber string `json:"streetNumber,omitempty"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

type CartDraft struct {
	Currency      string `json:"currency"`
	Country       string `json:"country,omitempty"`
	Locale        string `json:"locale,omitempty"`
	InventoryMode string `json:"inventoryMode,omitempty"`
	CustomerID    string `json:"customerId,omitempty"`
	AnonymousID   string `json:"anonymousId,omitempty"`
}

// CartUpdate is the body of POST /carts/{id}.
type CartUpdate struct {
	Version int            `json:"version"`
	Actions []UpdateAction `json:"actions"`
}

type ShippingMethod struct {
	ID                   string          `json:"id"`
	Version              int             `json:"version"`
	Key                  string          `json:"key,omitempty"`
	Name                 string          `json:"name"`
	LocalizedName        LocalizedString `json:"localizedName,omitempty"`
	Description          string          `json:"description,omitempty"`
	LocalizedDescription LocalizedString `json:"localizedDescription,omitempty"`
	ZoneRates            []ZoneRate      `json:"zoneRates"`
	IsDefault            bool            `json:"isDefault"`
}

type ZoneRate struct {
	Zone          Reference      `json:"zone"`
	ShippingRates []ShippingRate `json:"shippingRates"`
}

type ShippingRate struct {
	Price      TypedMoney `json:"price"`
	IsMatching bool       `json:"isMatching,omitempty"`
}

type Customer struct {
	ID             string    `json:"id"`
	Version        int       `json:"version"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName,omitempty"`
	LastName       string    `json:"lastName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
}

type CustomerDraft struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
}

type CustomerSignin struct {
	Email                   string     `json:"email"`
	Password                string     `json:"password"`
	AnonymousCart           *Reference `json:"anonymousCart,omitempty"`
	AnonymousCartSignInMode string     `json:"anonymousCartSignInMode,omitempty"`
}

type CustomerSignInResult struct {
	Customer Customer `json:"customer"`
	Cart     *Cart    `json:"cart,omitempty"`
}

type OrderFromCartDraft struct {
	Cart        Reference `json:"cart"`
	Version     int       `json:"version"`
	OrderNumber string    `json:"orderNumber,omitempty"`
}

type Order struct {
	ID          string     `json:"id"`
	Version     int        `json:"version"`
	OrderNumber string     `json:"orderNumber,omitempty"`
	CustomerID  string     `json:"customerId,omitempty"`
	AnonymousID string     `json:"anonymousId,omitempty"`
	Locale      string     `json:"locale,omitempty"`
	TotalPrice  TypedMoney `json:"totalPrice"`
	OrderState  string     `json:"orderState"`
	Cart        *Reference `json:"cart,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
