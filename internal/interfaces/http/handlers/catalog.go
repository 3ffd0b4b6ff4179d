// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/catalog"
)

// CatalogHandler handles the public product catalog endpoints
type CatalogHandler struct {
	catalog *catalog.Service
	log     *logrus.Entry
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(catalogService *catalog.Service, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
		log:     log.WithField("component", "catalog_handler"),
	}
}

// List handles GET /materials?search=
func (h *CatalogHandler) List(c *gin.Context) {
	materials, err := h.catalog.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "materials retrieved", materials)
}

// Get handles GET /materials/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	material, err := h.catalog.Material(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "material retrieved", material)
}

// RecentByCategory handles GET /materials/recent-by-category
func (h *CatalogHandler) RecentByCategory(c *gin.Context) {
	grouped, err := h.catalog.RecentByCategory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "materials retrieved", grouped)
}

// Categories handles GET /categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "categories retrieved", categories)
}
