// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/flowershop-backend/internal/config"
	"github.com/your-org/flowershop-backend/internal/domain/catalog"
	"github.com/your-org/flowershop-backend/internal/domain/order"
)

// AdminHandler handles back-office catalog and order management
type AdminHandler struct {
	catalogService *catalog.Service
	orderService   *order.Service
	config         *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(flowers *catalog.Service, orders *order.Service, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		catalogService: flowers,
		orderService:   orders,
		config:         cfg,
	}
}

// CreateFlower handles POST /admin/flowers
func (h *AdminHandler) CreateFlower(c *gin.Context) {
	var req catalog.CreateFlowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	flower, err := h.catalogService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Flower created successfully",
		"data":    flower,
	})
}

// UpdateFlower handles PUT /admin/flowers/:id
func (h *AdminHandler) UpdateFlower(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid flower ID",
		})
		return
	}

	var req catalog.UpdateFlowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	flower, err := h.catalogService.Update(c.Request.Context(), uint(id), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Flower not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update flower",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Flower updated successfully",
		"data":    flower,
	})
}

// DeleteFlower handles DELETE /admin/flowers/:id
func (h *AdminHandler) DeleteFlower(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid flower ID",
		})
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Flower not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete flower",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Flower deleted successfully",
	})
}

// UploadFlowerImage handles POST /admin/flowers/:id/image
func (h *AdminHandler) UploadFlowerImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid flower ID",
		})
		return
	}

	if _, err := h.catalogService.Get(c.Request.Context(), uint(id)); err != nil {
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

	if err := c.Request.ParseMultipartForm(h.config.Upload.MaxSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to parse upload form",
		})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No image file provided",
		})
		return
	}

	if file.Size > h.config.Upload.MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Image exceeds maximum size of %d bytes", h.config.Upload.MaxSize),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !h.allowedExtension(ext) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File type %s is not allowed", ext),
		})
		return
	}

	if err := os.MkdirAll(h.config.Upload.LocalPath, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store image",
		})
		return
	}

	filename := fmt.Sprintf("flower_%d_%s%s", id, uuid.New().String(), ext)
	dst := filepath.Join(h.config.Upload.LocalPath, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store image",
		})
		return
	}

	imageURL := h.config.Upload.BaseURL + "/" + filename
	flower, err := h.catalogService.Update(c.Request.Context(), uint(id), &catalog.UpdateFlowerRequest{
		ImageURL: &imageURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update flower image",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"data":    flower,
	})
}

// ListOrders handles GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// GetOrder handles GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	placed, err := h.orderService.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    placed,
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req struct {
		Status order.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.orderService.UpdateStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, order.ErrInvalidStatusTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update order status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    placed,
	})
}

func (h *AdminHandler) allowedExtension(ext string) bool {
	for _, allowed := range h.config.Upload.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
