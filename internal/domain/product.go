package domain

// Product is the storefront view of a product projection.
type Product struct {
	Name        string           `json:"name"`
	Key         string           `json:"key"`
	ProductID   string           `json:"productId"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Variants    []ProductVariant `json:"variants"`
	URL         string           `json:"url"`
}

type ProductVariant struct {
	SKU        string                    `json:"sku,omitempty"`
	Key        string                    `json:"key,omitempty"`
	Attributes map[string]AttributeValue `json:"attributes"`
	Price      *Price                    `json:"price,omitempty"`
	Images     []Image                   `json:"images"`
}

type AttributeValue struct {
	Value interface{} `json:"value"`
	Label string      `json:"label"`
}

type Price struct {
	Value      Money            `json:"value"`
	Country    string           `json:"country,omitempty"`
	Discounted *DiscountedPrice `json:"discounted,omitempty"`
}

type DiscountedPrice struct {
	Value Money `json:"value"`
}

type Image struct {
	URL        string     `json:"url"`
	Dimensions Dimensions `json:"dimensions"`
	Label      string     `json:"label,omitempty"`
}

type Dimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

// FilterType distinguishes filter widgets.
type FilterType string

const (
	FilterCheckbox FilterType = "checkbox"
	FilterBoolean  FilterType = "boolean"
)

// Filter is a UI-ready facet. Checkbox filters carry Values.
type Filter struct {
	Key        string        `json:"key"`
	Label      string        `json:"label"`
	Type       FilterType    `json:"type"`
	Values     []FilterValue `json:"values,omitempty"`
	IsSelected bool          `json:"isSelected"`
}

type FilterValue struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	IsSelected bool   `json:"isSelected"`
	Count      int    `json:"count"`
}

// ProductList is a page of search results with facets.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Facets   []Filter  `json:"facets"`
}

// Project is the storefront view of the platform project settings.
type Project struct {
	Name       string   `json:"name"`
	Countries  []string `json:"countries"`
	Currencies []string `json:"currencies"`
	Languages  []string `json:"languages"`
}
