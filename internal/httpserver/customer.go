package httpserver

import (
	"net/http"

	customersvc "ct-storefront/internal/service/customer"

	"github.com/gin-gonic/gin"
)

func (h *handlers) signUp(c *gin.Context) {
	var in customersvc.SignupInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	res, err := h.deps.Customers.SignUp(c.Request.Context(), currentLocale(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusCreated, res.SignIn, res.Patch)
}

func (h *handlers) signIn(c *gin.Context) {
	var in customersvc.SigninInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	res, err := h.deps.Customers.SignIn(c.Request.Context(), currentSession(c), currentLocale(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, res.SignIn, res.Patch)
}

func (h *handlers) me(c *gin.Context) {
	customer, err := h.deps.Customers.Me(c.Request.Context(), currentSession(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, customer, noPatch)
}

func (h *handlers) myOrders(c *gin.Context) {
	orders, err := h.deps.Customers.Orders(c.Request.Context(), currentSession(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, orders, noPatch)
}

func (h *handlers) signOut(c *gin.Context) {
	patch := h.deps.Customers.SignOut(currentSession(c))
	h.respond(c, http.StatusOK, gin.H{"message": "Signed out successfully"}, patch)
}
