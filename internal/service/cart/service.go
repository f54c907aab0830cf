package cart

import (
	"context"
	"errors"
	"strings"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
	"ct-storefront/internal/locale"
	"ct-storefront/internal/mapper"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	inventoryReserveOnOrder = "ReserveOnOrder"
	cartStateActive         = "Active"
)

type cartRepo interface {
	QueryByCustomer(ctx context.Context, customerID, locale string) (*commercetools.Cart, error)
	GetByID(ctx context.Context, id string) (*commercetools.Cart, error)
	Create(ctx context.Context, draft commercetools.CartDraft) (*commercetools.Cart, error)
	Update(ctx context.Context, id string, version int, actions []commercetools.UpdateAction) (*commercetools.Cart, error)
}

type shippingRepo interface {
	MatchingCart(ctx context.Context, cartID string) ([]commercetools.ShippingMethod, error)
}

type orderPlatform interface {
	CreateFromCart(ctx context.Context, cartID string, version int, orderNumber string) (*commercetools.Order, error)
}

type orderLedger interface {
	Record(ctx context.Context, o domain.PlacedOrder) error
}

type Service struct {
	carts          cartRepo
	shipping       shippingRepo
	orders         orderPlatform
	ledger         orderLedger
	logger         *zap.Logger
	newAnonymousID func() string
	newOrderNumber func() string
}

// New builds the cart service. ledger may be nil when no database is
// configured.
func New(carts cartRepo, shipping shippingRepo, orders orderPlatform, ledger orderLedger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:          carts,
		shipping:       shipping,
		orders:         orders,
		ledger:         ledger,
		logger:         logger,
		newAnonymousID: uuid.NewString,
		newOrderNumber: func() string { return ulid.Make().String() },
	}
}

// Resolution is a cart view plus the session changes the caller must issue.
type Resolution struct {
	Cart  domain.Cart
	Patch domain.Patch
}

// Resolve finds or creates the cart for the session and locale.
//
// A signed-in customer gets their active cart for the locale, created when
// missing. Otherwise the session's cart for the locale is used if it can
// still be fetched; stale ids fall through to a new anonymous cart. Read
// failures are recovered, create failures are returned.
func (s *Service) Resolve(ctx context.Context, sess domain.Session, loc string) (*Resolution, error) {
	raw, patch, err := s.resolve(ctx, sess, loc)
	if err != nil {
		return nil, err
	}
	return &Resolution{Cart: mapper.MapCart(*raw, loc), Patch: patch}, nil
}

func (s *Service) resolve(ctx context.Context, sess domain.Session, loc string) (*commercetools.Cart, domain.Patch, error) {
	var patch domain.Patch

	if sess.CustomerID != "" {
		raw, err := s.carts.QueryByCustomer(ctx, sess.CustomerID, loc)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("customer cart lookup failed, creating a new cart",
					zap.String("customerId", sess.CustomerID), zap.String("locale", loc), zap.Error(err))
			}
			raw, err = s.create(ctx, loc, sess.CustomerID, "")
			if err != nil {
				return nil, patch, err
			}
		}
		return raw, patch.SetCart(loc, raw.ID), nil
	}

	if id := sess.CartFor(loc); id != "" {
		raw, err := s.carts.GetByID(ctx, id)
		switch {
		case err != nil:
			s.logger.Info("session cart unavailable, creating a new cart",
				zap.String("cartId", id), zap.String("locale", loc), zap.Error(err))
		case raw.CartState != "" && raw.CartState != cartStateActive:
			s.logger.Info("session cart no longer active, creating a new cart",
				zap.String("cartId", id), zap.String("cartState", raw.CartState))
		default:
			return raw, patch.SetCart(loc, raw.ID), nil
		}
	}

	anonymousID := sess.AnonymousID
	if anonymousID == "" {
		anonymousID = s.newAnonymousID()
	}
	raw, err := s.create(ctx, loc, "", anonymousID)
	if err != nil {
		return nil, patch, err
	}
	return raw, patch.SetAnonymous(anonymousID).SetCart(loc, raw.ID), nil
}

func (s *Service) create(ctx context.Context, loc, customerID, anonymousID string) (*commercetools.Cart, error) {
	country, currency := locale.Info(loc)
	raw, err := s.carts.Create(ctx, commercetools.CartDraft{
		Currency:      currency,
		Country:       country,
		Locale:        loc,
		InventoryMode: inventoryReserveOnOrder,
		CustomerID:    customerID,
		AnonymousID:   anonymousID,
	})
	if err != nil {
		s.logger.Error("create cart failed",
			zap.String("customerId", customerID), zap.String("anonymousId", anonymousID),
			zap.String("locale", loc), zap.Error(err))
		return nil, err
	}
	s.logger.Info("created cart",
		zap.String("cartId", raw.ID), zap.String("customerId", customerID),
		zap.String("anonymousId", anonymousID), zap.String("locale", loc))
	return raw, nil
}

// Mutate submits actions as one batch against version. A stale version
// fails with domain.ErrConflict; the caller re-resolves and retries.
func (s *Service) Mutate(ctx context.Context, cartID string, version int, loc string, actions ...commercetools.UpdateAction) (*domain.Cart, error) {
	if len(actions) == 0 {
		return nil, domain.Invalid("actions required")
	}
	raw, err := s.carts.Update(ctx, cartID, version, actions)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Info("cart version conflict", zap.String("cartId", cartID), zap.Int("version", version))
		}
		return nil, err
	}
	cart := mapper.MapCart(*raw, loc)
	return &cart, nil
}

// mutateCurrent resolves the cart and mutates it at the caller's version
// when given, otherwise at the version just read. When the mutation fails
// after resolving, the returned Resolution carries only the resolver's
// patch so a replacement cart still reaches the session.
func (s *Service) mutateCurrent(ctx context.Context, sess domain.Session, loc string, version *int, actions ...commercetools.UpdateAction) (*Resolution, error) {
	raw, patch, err := s.resolve(ctx, sess, loc)
	if err != nil {
		return nil, err
	}
	v := raw.Version
	if version != nil {
		v = *version
	}
	cart, err := s.Mutate(ctx, raw.ID, v, loc, actions...)
	if err != nil {
		return &Resolution{Patch: patch}, err
	}
	return &Resolution{Cart: *cart, Patch: patch}, nil
}

type AddLineItemInput struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Version  *int   `json:"version,omitempty"`
}

func (s *Service) AddLineItem(ctx context.Context, sess domain.Session, loc string, in AddLineItemInput) (*Resolution, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, domain.Invalid("sku required")
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, domain.Invalid("quantity must be positive")
	}
	return s.mutateCurrent(ctx, sess, loc, in.Version, commercetools.AddLineItem(sku, qty))
}

type RemoveLineItemInput struct {
	LineItemID string `json:"lineItemId"`
	Version    *int   `json:"version,omitempty"`
}

func (s *Service) RemoveLineItem(ctx context.Context, sess domain.Session, loc string, in RemoveLineItemInput) (*Resolution, error) {
	id := strings.TrimSpace(in.LineItemID)
	if id == "" {
		return nil, domain.Invalid("lineItemId required")
	}
	return s.mutateCurrent(ctx, sess, loc, in.Version, commercetools.RemoveLineItem(id))
}

type ApplyDiscountInput struct {
	Code    string `json:"code"`
	Version *int   `json:"version,omitempty"`
}

// ApplyDiscount adds a discount code by its code string.
func (s *Service) ApplyDiscount(ctx context.Context, sess domain.Session, loc string, in ApplyDiscountInput) (*Resolution, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.Invalid("code required")
	}
	res, err := s.mutateCurrent(ctx, sess, loc, in.Version, commercetools.AddDiscountCode(code))
	if err != nil {
		var apiErr *commercetools.APIError
		if errors.As(err, &apiErr) && apiErr.Code() == "DiscountCodeNonApplicable" {
			return nil, domain.Invalid("discount code is not applicable")
		}
		return nil, err
	}
	return res, nil
}

type RemoveDiscountInput struct {
	DiscountCodeID string `json:"discountCodeId"`
	Version        *int   `json:"version,omitempty"`
}

// RemoveDiscount removes a discount code by the reference id shown in the
// cart's discountCodes, not by its code string.
func (s *Service) RemoveDiscount(ctx context.Context, sess domain.Session, loc string, in RemoveDiscountInput) (*Resolution, error) {
	id := strings.TrimSpace(in.DiscountCodeID)
	if id == "" {
		return nil, domain.Invalid("discountCodeId required")
	}
	return s.mutateCurrent(ctx, sess, loc, in.Version, commercetools.RemoveDiscountCode(id))
}

type SetAddressesInput struct {
	Address domain.Address `json:"address"`
	Version *int           `json:"version,omitempty"`
}

// SetAddresses sets the same address for shipping and billing.
func (s *Service) SetAddresses(ctx context.Context, sess domain.Session, loc string, in SetAddressesInput) (*Resolution, error) {
	if err := validateAddress(in.Address); err != nil {
		return nil, err
	}
	addr := mapper.ToPlatformAddress(in.Address)
	return s.mutateCurrent(ctx, sess, loc, in.Version,
		commercetools.SetShippingAddress(addr),
		commercetools.SetBillingAddress(addr),
	)
}

func validateAddress(a domain.Address) error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", a.FirstName},
		{"lastName", a.LastName},
		{"streetName", a.StreetName},
		{"city", a.City},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
		{"email", a.Email},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.Invalid("address requires " + strings.Join(missing, ", "))
	}
	return nil
}

type SetShippingMethodInput struct {
	ShippingMethodID string `json:"shippingMethodId"`
	Version          *int   `json:"version,omitempty"`
}

func (s *Service) SetShippingMethod(ctx context.Context, sess domain.Session, loc string, in SetShippingMethodInput) (*Resolution, error) {
	id := strings.TrimSpace(in.ShippingMethodID)
	if id == "" {
		return nil, domain.Invalid("shippingMethodId required")
	}
	return s.mutateCurrent(ctx, sess, loc, in.Version, commercetools.SetShippingMethod(id))
}

// ShippingMethods lists the methods eligible for the session's cart.
func (s *Service) ShippingMethods(ctx context.Context, sess domain.Session, loc string) ([]domain.ShippingMethod, domain.Patch, error) {
	raw, patch, err := s.resolve(ctx, sess, loc)
	if err != nil {
		return nil, patch, err
	}
	methods, err := s.shipping.MatchingCart(ctx, raw.ID)
	if err != nil {
		return nil, patch, err
	}
	out := make([]domain.ShippingMethod, 0, len(methods))
	for _, m := range methods {
		out = append(out, mapper.MapShippingMethod(m, loc))
	}
	return out, patch, nil
}

type PlaceOrderInput struct {
	Version *int `json:"version,omitempty"`
}

// OrderResult is a placed order plus the session changes to issue.
type OrderResult struct {
	Order domain.Order
	Patch domain.Patch
}

// PlaceOrder converts the session's cart into an order and detaches the cart
// from the session for this locale. Failures after resolving return an
// OrderResult holding only the resolver's patch.
func (s *Service) PlaceOrder(ctx context.Context, sess domain.Session, loc string, in PlaceOrderInput) (*OrderResult, error) {
	raw, patch, err := s.resolve(ctx, sess, loc)
	if err != nil {
		return nil, err
	}
	if len(raw.LineItems) == 0 {
		return &OrderResult{Patch: patch}, domain.Invalid("cart has no line items")
	}
	if raw.ShippingAddress == nil {
		return &OrderResult{Patch: patch}, domain.Invalid("cart has no shipping address")
	}

	version := raw.Version
	if in.Version != nil {
		version = *in.Version
	}
	number := s.newOrderNumber()
	placed, err := s.orders.CreateFromCart(ctx, raw.ID, version, number)
	if err != nil {
		return &OrderResult{Patch: patch}, err
	}
	lineSavings, cartSavings := mapper.MapCart(*raw, loc).Savings()
	s.logger.Info("order placed",
		zap.String("orderId", placed.ID), zap.String("orderNumber", number), zap.String("cartId", raw.ID),
		zap.Int64("lineItemSavings", lineSavings), zap.Int64("cartSavings", cartSavings))

	order := domain.Order{
		ID:          placed.ID,
		OrderNumber: firstNonEmpty(placed.OrderNumber, number),
		CartID:      raw.ID,
		TotalPrice: domain.Money{
			CentAmount:     placed.TotalPrice.CentAmount,
			CurrencyCode:   placed.TotalPrice.CurrencyCode,
			FractionDigits: placed.TotalPrice.FractionDigits,
		},
		OrderState: placed.OrderState,
		CreatedAt:  placed.CreatedAt,
	}
	s.record(ctx, sess, raw, order, loc)

	return &OrderResult{Order: order, Patch: patch.ClearCart(loc)}, nil
}

// record writes the ledger entry. Failures are logged; the order already
// exists on the platform.
func (s *Service) record(ctx context.Context, sess domain.Session, raw *commercetools.Cart, order domain.Order, loc string) {
	if s.ledger == nil {
		return
	}
	entry := domain.PlacedOrder{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		CartID:      raw.ID,
		CustomerID:  optional(firstNonEmpty(sess.CustomerID, raw.CustomerID)),
		AnonymousID: optional(firstNonEmpty(raw.AnonymousID, sess.AnonymousID)),
		Locale:      loc,
		Currency:    order.TotalPrice.CurrencyCode,
		TotalCents:  order.TotalPrice.CentAmount,
		CreatedAt:   order.CreatedAt,
	}
	if err := s.ledger.Record(ctx, entry); err != nil {
		s.logger.Error("record order in ledger failed",
			zap.String("orderId", order.ID), zap.String("orderNumber", order.OrderNumber), zap.Error(err))
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
