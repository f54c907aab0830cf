package domain

// Session is the bearer state carried in the signed session cookie.
// The server never persists it.
type Session struct {
	CustomerID  string            `json:"customerId,omitempty"`
	AnonymousID string            `json:"anonymousId,omitempty"`
	CartID      map[string]string `json:"cartId,omitempty"`
}

// CartFor returns the cart id stored for locale, if any.
func (s Session) CartFor(locale string) string {
	if s.CartID == nil {
		return ""
	}
	return s.CartID[locale]
}

// Equal reports whether both sessions carry the same fields.
func (s Session) Equal(o Session) bool {
	if s.CustomerID != o.CustomerID || s.AnonymousID != o.AnonymousID {
		return false
	}
	if len(s.CartID) != len(o.CartID) {
		return false
	}
	for k, v := range s.CartID {
		if ov, ok := o.CartID[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Apply merges p into a copy of s. Top-level fields are replaced, cart ids
// are merged per locale, and unset entries are removed.
func (s Session) Apply(p Patch) Session {
	out := Session{
		CustomerID:  s.CustomerID,
		AnonymousID: s.AnonymousID,
	}
	if p.customerID != nil {
		out.CustomerID = p.customerID.resolve()
	}
	if p.anonymousID != nil {
		out.AnonymousID = p.anonymousID.resolve()
	}

	carts := make(map[string]string, len(s.CartID)+len(p.cartIDs))
	for k, v := range s.CartID {
		carts[k] = v
	}
	for k, c := range p.cartIDs {
		if c.unset || c.value == "" {
			delete(carts, k)
			continue
		}
		carts[k] = c.value
	}
	if len(carts) > 0 {
		out.CartID = carts
	}
	return out
}

type change struct {
	value string
	unset bool
}

func (c change) resolve() string {
	if c.unset {
		return ""
	}
	return c.value
}

// Patch describes a change to a Session. Fields never touched are kept.
type Patch struct {
	customerID  *change
	anonymousID *change
	cartIDs     map[string]change
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.customerID == nil && p.anonymousID == nil && len(p.cartIDs) == 0
}

func (p Patch) SetCustomer(id string) Patch {
	p.customerID = &change{value: id}
	return p
}

func (p Patch) ClearCustomer() Patch {
	p.customerID = &change{unset: true}
	return p
}

func (p Patch) SetAnonymous(id string) Patch {
	p.anonymousID = &change{value: id}
	return p
}

func (p Patch) ClearAnonymous() Patch {
	p.anonymousID = &change{unset: true}
	return p
}

func (p Patch) SetCart(locale, id string) Patch {
	return p.withCart(locale, change{value: id})
}

func (p Patch) ClearCart(locale string) Patch {
	return p.withCart(locale, change{unset: true})
}

// ClearAllCarts unsets every cart id present in s.
func (p Patch) ClearAllCarts(s Session) Patch {
	for locale := range s.CartID {
		p = p.ClearCart(locale)
	}
	return p
}

func (p Patch) withCart(locale string, c change) Patch {
	next := make(map[string]change, len(p.cartIDs)+1)
	for k, v := range p.cartIDs {
		next[k] = v
	}
	next[locale] = c
	p.cartIDs = next
	return p
}
