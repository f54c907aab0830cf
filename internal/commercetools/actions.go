package commercetools

// UpdateAction is one cart update action. Only the fields relevant to Action
// are set; the rest are omitted on the wire.
type UpdateAction struct {
	Action         string     `json:"action"`
	SKU            string     `json:"sku,omitempty"`
	Quantity       int        `json:"quantity,omitempty"`
	LineItemID     string     `json:"lineItemId,omitempty"`
	Code           string     `json:"code,omitempty"`
	DiscountCode   *Reference `json:"discountCode,omitempty"`
	Address        *Address   `json:"address,omitempty"`
	ShippingMethod *Reference `json:"shippingMethod,omitempty"`
}

func AddLineItem(sku string, quantity int) UpdateAction {
	return UpdateAction{Action: "addLineItem", SKU: sku, Quantity: quantity}
}

func RemoveLineItem(lineItemID string) UpdateAction {
	return UpdateAction{Action: "removeLineItem", LineItemID: lineItemID}
}

func AddDiscountCode(code string) UpdateAction {
	return UpdateAction{Action: "addDiscountCode", Code: code}
}

// RemoveDiscountCode references the code by its discount-code id, not by the
// code string.
func RemoveDiscountCode(discountCodeID string) UpdateAction {
	return UpdateAction{
		Action:       "removeDiscountCode",
		DiscountCode: &Reference{TypeID: "discount-code", ID: discountCodeID},
	}
}

func SetShippingAddress(addr Address) UpdateAction {
	return UpdateAction{Action: "setShippingAddress", Address: &addr}
}

func SetBillingAddress(addr Address) UpdateAction {
	return UpdateAction{Action: "setBillingAddress", Address: &addr}
}

func SetShippingMethod(shippingMethodID string) UpdateAction {
	return UpdateAction{
		Action:         "setShippingMethod",
		ShippingMethod: &Reference{TypeID: "shipping-method", ID: shippingMethodID},
	}
}
