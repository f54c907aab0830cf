// Package mapper turns platform resources into the storefront view models.
// Every function is pure and deterministic for identical input.
package mapper

import (
	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
	"ct-storefront/internal/locale"
)

// MapCart flattens a platform cart and annotates it with discounts.
//
// OriginalPrice is the undiscounted unit price times quantity summed over
// line items. Subtotal is the net tax total when the platform taxed the cart,
// otherwise the sum of discounted line totals; cart-level discounts are not
// deducted from it.
func MapCart(raw commercetools.Cart, loc string) domain.Cart {
	currency := raw.TotalPrice.CurrencyCode
	digits := raw.TotalPrice.FractionDigits

	lineItems := make([]domain.LineItem, 0, len(raw.LineItems))
	var original, lineTotal int64
	for _, li := range raw.LineItems {
		lineItems = append(lineItems, mapLineItem(li, loc))
		original += li.Price.Value.CentAmount * int64(li.Quantity)
		lineTotal += li.TotalPrice.CentAmount
	}

	subtotal := domain.Money{CentAmount: lineTotal, CurrencyCode: currency, FractionDigits: digits}
	var taxInfo *domain.TaxInfo
	if raw.TaxedPrice != nil {
		subtotal = money(raw.TaxedPrice.TotalNet)
		taxInfo = mapTaxInfo(*raw.TaxedPrice)
	}

	discounts := []domain.Discount{}
	if raw.DiscountOnTotalPrice != nil {
		for _, p := range raw.DiscountOnTotalPrice.IncludedDiscounts {
			discounts = append(discounts, portionDiscount(domain.DiscountCart, p, loc))
		}
	}

	codes := make([]domain.DiscountCode, 0, len(raw.DiscountCodes))
	for _, dc := range raw.DiscountCodes {
		code := ""
		if dc.DiscountCode.Obj != nil {
			code = dc.DiscountCode.Obj.Code
		}
		codes = append(codes, domain.DiscountCode{
			Code:           code,
			DiscountCodeID: dc.DiscountCode.ID,
			State:          dc.State,
		})
	}

	var shipping *domain.ShippingInfo
	if si := raw.ShippingInfo; si != nil {
		shipping = &domain.ShippingInfo{
			ShippingMethodName: si.ShippingMethodName,
			Price:              money(si.Price),
		}
		if si.TaxRate != nil {
			rate := si.TaxRate.Amount
			shipping.TaxRate = &rate
		}
	}

	cartLocale := raw.Locale
	if cartLocale == "" {
		cartLocale = loc
	}

	return domain.Cart{
		ID:                    raw.ID,
		Version:               raw.Version,
		CreatedAt:             raw.CreatedAt,
		LastModifiedAt:        raw.LastModifiedAt,
		AnonymousID:           raw.AnonymousID,
		CustomerID:            raw.CustomerID,
		Locale:                cartLocale,
		Country:               raw.Country,
		Currency:              currency,
		CartState:             raw.CartState,
		InventoryMode:         raw.InventoryMode,
		Origin:                raw.Origin,
		LineItems:             lineItems,
		TotalLineItemQuantity: raw.TotalLineItemQuantity,
		OriginalPrice:         domain.Money{CentAmount: original, CurrencyCode: currency, FractionDigits: digits},
		Subtotal:              subtotal,
		TotalPrice:            money(raw.TotalPrice),
		TaxInfo:               taxInfo,
		Discounts:             discounts,
		ShippingInfo:          shipping,
		ShippingAddress:       mapAddress(raw.ShippingAddress),
		BillingAddress:        mapAddress(raw.BillingAddress),
		DiscountCodes:         codes,
	}
}

func mapLineItem(li commercetools.LineItem, loc string) domain.LineItem {
	variant := MapVariant(li.Variant, loc)
	base := li.Price.Value
	qty := int64(li.Quantity)

	// Product discounts live in the price; promotional cart discounts are
	// tracked per quantity. Both can apply to the same line.
	discounts := []domain.Discount{}
	if d := li.Price.Discounted; d != nil {
		discounts = append(discounts, domain.Discount{
			Type:        domain.DiscountProduct,
			DiscountID:  d.Discount.ID,
			Name:        discountName(d.Discount, loc),
			Description: discountDescription(d.Discount, loc),
			Value: domain.Money{
				CentAmount:     (base.CentAmount - d.Value.CentAmount) * qty,
				CurrencyCode:   base.CurrencyCode,
				FractionDigits: base.FractionDigits,
			},
		})
	}
	for _, dpq := range li.DiscountedPricePerQuantity {
		for _, p := range dpq.DiscountedPrice.IncludedDiscounts {
			discounts = append(discounts, portionDiscount(domain.DiscountLineItem, p, loc))
		}
	}

	slug := localized(li.ProductSlug, loc)
	price := variant.Price
	if price == nil {
		price = mapPrice(li.Price)
	}

	return domain.LineItem{
		ID:         li.ID,
		ProductID:  li.ProductID,
		ProductKey: li.ProductKey,
		Name:       localized(li.Name, loc),
		Slug:       slug,
		URL:        productURL(slug, li.ProductKey),
		Variant:    variant,
		Quantity:   li.Quantity,
		Price:      price,
		OriginalPrice: domain.Money{
			CentAmount:     base.CentAmount * qty,
			CurrencyCode:   base.CurrencyCode,
			FractionDigits: base.FractionDigits,
		},
		TotalPrice: money(li.TotalPrice),
		Discounts:  discounts,
	}
}

func portionDiscount(kind domain.DiscountKind, p commercetools.DiscountedPortion, loc string) domain.Discount {
	return domain.Discount{
		Type:        kind,
		DiscountID:  p.Discount.ID,
		Name:        discountName(p.Discount, loc),
		Description: discountDescription(p.Discount, loc),
		Value:       money(p.DiscountedAmount),
	}
}

func discountName(ref commercetools.DiscountReference, loc string) string {
	if ref.Obj == nil {
		return ref.ID
	}
	if name := localized(ref.Obj.Name, loc); name != "" {
		return name
	}
	return firstNonEmpty(ref.Obj.Key, ref.ID)
}

func discountDescription(ref commercetools.DiscountReference, loc string) string {
	if ref.Obj == nil {
		return ""
	}
	return localized(ref.Obj.Description, loc)
}

func mapTaxInfo(tp commercetools.TaxedPrice) *domain.TaxInfo {
	portions := make([]domain.TaxPortion, 0, len(tp.TaxPortions))
	for _, p := range tp.TaxPortions {
		portions = append(portions, domain.TaxPortion{Name: p.Name, Rate: p.Rate, Amount: money(p.Amount)})
	}
	return &domain.TaxInfo{
		TaxedPrice: domain.TaxedPrice{
			TotalNet:   money(tp.TotalNet),
			TotalGross: money(tp.TotalGross),
			TotalTax: domain.Money{
				CentAmount:     tp.TotalGross.CentAmount - tp.TotalNet.CentAmount,
				CurrencyCode:   tp.TotalGross.CurrencyCode,
				FractionDigits: tp.TotalGross.FractionDigits,
			},
		},
		TaxPortions: portions,
	}
}

func mapAddress(a *commercetools.Address) *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		StreetName:   a.StreetName,
		StreetNumber: a.StreetNumber,
		City:         a.City,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Phone:        a.Phone,
		Email:        a.Email,
	}
}

// ToPlatformAddress is the inverse of mapAddress for update actions.
func ToPlatformAddress(a domain.Address) commercetools.Address {
	return commercetools.Address{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		StreetName:   a.StreetName,
		StreetNumber: a.StreetNumber,
		City:         a.City,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Phone:        a.Phone,
		Email:        a.Email,
	}
}

func money(m commercetools.TypedMoney) domain.Money {
	return domain.Money{CentAmount: m.CentAmount, CurrencyCode: m.CurrencyCode, FractionDigits: m.FractionDigits}
}

// localized picks the requested locale, then the default locale.
func localized(s commercetools.LocalizedString, loc string) string {
	if v := s[loc]; v != "" {
		return v
	}
	return s[locale.Default]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func productURL(slug, key string) string {
	return "/" + slug + "/" + key
}
