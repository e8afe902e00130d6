package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/app/views"
	"github.com/casatartufo/tartufo/pkg/response"
)

// CatalogController exposes the read-only product and slot listings.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// ListProducts returns the full catalog.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.ListProducts()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, views.NewProductViews(products))
}

// GetProduct returns one product by id. A non-numeric id resolves to 404,
// the same as an unknown one.
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w)
		return
	}

	product, err := c.service.GetProduct(uint(id))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, views.NewProductView(product))
}

// ListDeliverySlots returns all seeded slots with display labels.
func (c *CatalogController) ListDeliverySlots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.service.ListDeliverySlots()
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, views.NewDeliverySlotViews(slots))
}
