// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/flowershop-backend/internal/config"
	"github.com/your-org/flowershop-backend/internal/domain/catalog"
)

// CatalogHandler handles storefront flower endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(flowers *catalog.Service, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalogService: flowers,
		config:         cfg,
	}
}

// ListFlowers handles GET /flowers
func (h *CatalogHandler) ListFlowers(c *gin.Context) {
	flowers, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve flowers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Flowers retrieved successfully",
		"data":    flowers,
	})
}

// GetFlower handles GET /flowers/:id
func (h *CatalogHandler) GetFlower(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid flower ID",
		})
		return
	}

	flower, err := h.catalogService.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Flower not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve flower",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Flower retrieved successfully",
		"data":    flower,
	})
}

// GetFlowerByName handles GET /flowers/name/:name
func (h *CatalogHandler) GetFlowerByName(c *gin.Context) {
	name := c.Param("name")

	flower, err := h.catalogService.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Flower not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve flower",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Flower retrieved successfully",
		"data":    flower,
	})
}
