package httpserver

import (
	"context"
	"net/http"

	"ct-storefront/internal/domain"
	cartsvc "ct-storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getCart(c *gin.Context) {
	res, err := h.deps.Carts.Resolve(c.Request.Context(), currentSession(c), currentLocale(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, res.Cart, res.Patch)
}

// mutation binds the request body into an input of type T and runs op
// against the session's cart.
func mutation[T any](h *handlers, status int, op func(ctx context.Context, sess domain.Session, loc string, in T) (*cartsvc.Resolution, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in T
		if err := bind(c, &in); err != nil {
			fail(c, err)
			return
		}
		res, err := op(c.Request.Context(), currentSession(c), currentLocale(c), in)
		if err != nil {
			if res != nil {
				h.persist(c, res.Patch)
			}
			fail(c, err)
			return
		}
		h.respond(c, status, res.Cart, res.Patch)
	}
}

func (h *handlers) addToCart(c *gin.Context) {
	mutation(h, http.StatusCreated, h.deps.Carts.AddLineItem)(c)
}

func (h *handlers) applyDiscount(c *gin.Context) {
	mutation(h, http.StatusOK, h.deps.Carts.ApplyDiscount)(c)
}

func (h *handlers) removeDiscount(c *gin.Context) {
	mutation(h, http.StatusOK, h.deps.Carts.RemoveDiscount)(c)
}

func (h *handlers) setAddresses(c *gin.Context) {
	mutation(h, http.StatusOK, h.deps.Carts.SetAddresses)(c)
}

func (h *handlers) removeLineItem(c *gin.Context) {
	mutation(h, http.StatusOK, h.deps.Carts.RemoveLineItem)(c)
}

func (h *handlers) setShippingMethod(c *gin.Context) {
	mutation(h, http.StatusOK, h.deps.Carts.SetShippingMethod)(c)
}

func (h *handlers) getShippingMethods(c *gin.Context) {
	methods, patch, err := h.deps.Carts.ShippingMethods(c.Request.Context(), currentSession(c), currentLocale(c))
	if err != nil {
		h.persist(c, patch)
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, methods, patch)
}

func (h *handlers) placeOrder(c *gin.Context) {
	var in cartsvc.PlaceOrderInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	res, err := h.deps.Carts.PlaceOrder(c.Request.Context(), currentSession(c), currentLocale(c), in)
	if err != nil {
		if res != nil {
			h.persist(c, res.Patch)
		}
		fail(c, err)
		return
	}
	h.respond(c, http.StatusCreated, res.Order, res.Patch)
}
