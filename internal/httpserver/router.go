package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/domain"
	"ct-storefront/internal/logging"
	cartsvc "ct-storefront/internal/service/cart"
	customersvc "ct-storefront/internal/service/customer"
	productsvc "ct-storefront/internal/service/product"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type catalogService interface {
	Project(ctx context.Context) (*commercetools.Project, error)
	ProductTypes(ctx context.Context) ([]commercetools.ProductType, error)
}

type productService interface {
	Search(ctx context.Context, q productsvc.Query, loc string) (*domain.ProductList, error)
	BySKU(ctx context.Context, sku, loc string) (*domain.Product, error)
}

type cartService interface {
	Resolve(ctx context.Context, sess domain.Session, loc string) (*cartsvc.Resolution, error)
	AddLineItem(ctx context.Context, sess domain.Session, loc string, in cartsvc.AddLineItemInput) (*cartsvc.Resolution, error)
	RemoveLineItem(ctx context.Context, sess domain.Session, loc string, in cartsvc.RemoveLineItemInput) (*cartsvc.Resolution, error)
	ApplyDiscount(ctx context.Context, sess domain.Session, loc string, in cartsvc.ApplyDiscountInput) (*cartsvc.Resolution, error)
	RemoveDiscount(ctx context.Context, sess domain.Session, loc string, in cartsvc.RemoveDiscountInput) (*cartsvc.Resolution, error)
	SetAddresses(ctx context.Context, sess domain.Session, loc string, in cartsvc.SetAddressesInput) (*cartsvc.Resolution, error)
	SetShippingMethod(ctx context.Context, sess domain.Session, loc string, in cartsvc.SetShippingMethodInput) (*cartsvc.Resolution, error)
	ShippingMethods(ctx context.Context, sess domain.Session, loc string) ([]domain.ShippingMethod, domain.Patch, error)
	PlaceOrder(ctx context.Context, sess domain.Session, loc string, in cartsvc.PlaceOrderInput) (*cartsvc.OrderResult, error)
}

type customerService interface {
	SignUp(ctx context.Context, loc string, in customersvc.SignupInput) (*customersvc.Result, error)
	SignIn(ctx context.Context, sess domain.Session, loc string, in customersvc.SigninInput) (*customersvc.Result, error)
	Me(ctx context.Context, sess domain.Session) (*domain.Customer, error)
	Orders(ctx context.Context, sess domain.Session) ([]domain.PlacedOrder, error)
	SignOut(sess domain.Session) domain.Patch
}

type sessionCodec interface {
	Encode(s domain.Session) (string, error)
	Decode(token string) domain.Session
	TTL() time.Duration
}

// Deps bundles the services the router dispatches to.
type Deps struct {
	Catalog   catalogService
	Products  productService
	Carts     cartService
	Customers customerService
	Sessions  sessionCodec

	// CookieName is the session cookie; CookieSecure marks it Secure and
	// SameSite=None for cross-site frontends.
	CookieName   string
	CookieSecure bool
	// FrontendURL is the single origin allowed to send credentials.
	FrontendURL string
	// AuthRatePerMinute limits signin and signup per client IP. Zero
	// disables the limit.
	AuthRatePerMinute int
}

func (d Deps) validate() error {
	switch {
	case d.Catalog == nil:
		return errors.New("httpserver: catalog service required")
	case d.Products == nil:
		return errors.New("httpserver: product service required")
	case d.Carts == nil:
		return errors.New("httpserver: cart service required")
	case d.Customers == nil:
		return errors.New("httpserver: customer service required")
	case d.Sessions == nil:
		return errors.New("httpserver: session codec required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db pinger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.CookieName == "" {
		deps.CookieName = "session"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(logging.Middleware(logger), gin.Recovery())
	if deps.FrontendURL != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{deps.FrontendURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", logging.RequestIDHeader},
			ExposeHeaders:    []string{logging.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	v1 := router.Group("/v1", errorMiddleware(logger), localeMiddleware(), sessionMiddleware(deps.CookieName, deps.Sessions))

	project := v1.Group("/project")
	project.GET("", h.getProject)
	project.GET("/productTypes", h.getProductTypes)

	products := v1.Group("/products")
	products.POST("", h.searchProducts)
	products.GET("/sku/:sku", h.getProductBySKU)

	carts := v1.Group("/carts")
	carts.GET("", h.getCart)
	carts.POST("/addToCart", h.addToCart)
	carts.POST("/discount/apply", h.applyDiscount)
	carts.POST("/discount/remove", h.removeDiscount)
	carts.POST("/addresses", h.setAddresses)
	carts.POST("/removeLineItem", h.removeLineItem)
	carts.GET("/shipping-methods", h.getShippingMethods)
	carts.POST("/shipping-method", h.setShippingMethod)
	carts.POST("/placeOrder", h.placeOrder)

	limiter := newIPRateLimiter(deps.AuthRatePerMinute, authRateBurst)
	customers := v1.Group("/customers")
	customers.POST("/signup", limiter.middleware(), h.signUp)
	customers.POST("/signin", limiter.middleware(), h.signIn)
	customers.GET("/me", h.me)
	customers.GET("/me/orders", h.myOrders)
	customers.POST("/signout", h.signOut)

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "route not found", "")
	})

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}
