package api

import (
	"errors"
	"net/http"

	"pizza-ordering/internal/models"
	"pizza-ordering/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CatalogHandler contains HTTP handlers for the catalog service
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog HTTP handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *CatalogHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	menu := router.Group("/menu")
	{
		menu.GET("/", h.listMenu)
		menu.GET("/types/", h.listPizzaTypes)
		menu.POST("/get_pizza_id/", h.getPizzaID)
	}
}

// listMenu returns the menu listing
func (h *CatalogHandler) listMenu(c *gin.Context) {
	items, err := h.catalogService.ListMenu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

// listPizzaTypes returns the pizza type listing
func (h *CatalogHandler) listPizzaTypes(c *gin.Context) {
	types, err := h.catalogService.ListPizzaTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if types == nil {
		types = []models.PizzaType{}
	}
	c.JSON(http.StatusOK, types)
}

// getPizzaID resolves a (name, size) pair to a catalog identifier.
// Accepts form fields to match the inter-service lookup contract.
func (h *CatalogHandler) getPizzaID(c *gin.Context) {
	name := c.PostForm("name")
	size := c.PostForm("size")
	if name == "" || size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and size required"})
		return
	}

	pizzaID, err := h.catalogService.GetPizzaID(c.Request.Context(), name, size)
	if err != nil {
		if errors.Is(err, service.ErrPizzaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pizza_id": pizzaID})
}
