package httpserver

import (
	"net/http"

	"ct-storefront/internal/mapper"
	productsvc "ct-storefront/internal/service/product"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getProject(c *gin.Context) {
	p, err := h.deps.Catalog.Project(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, mapper.MapProject(*p), noPatch)
}

func (h *handlers) getProductTypes(c *gin.Context) {
	types, err := h.deps.Catalog.ProductTypes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, types, noPatch)
}

func (h *handlers) searchProducts(c *gin.Context) {
	body := map[string]interface{}{}
	if err := bind(c, &body); err != nil {
		fail(c, err)
		return
	}
	q, err := productsvc.ParseQuery(body)
	if err != nil {
		fail(c, err)
		return
	}
	list, err := h.deps.Products.Search(c.Request.Context(), q, currentLocale(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, list, noPatch)
}

func (h *handlers) getProductBySKU(c *gin.Context) {
	p, err := h.deps.Products.BySKU(c.Request.Context(), c.Param("sku"), currentLocale(c))
	if err != nil {
		fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, p, noPatch)
}
