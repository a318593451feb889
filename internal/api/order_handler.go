package api

import (
	"net/http"

	"pizza-ordering/internal/models"
	"pizza-ordering/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderHandler contains HTTP handlers for the ordering service
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new ordering HTTP handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *OrderHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	order := router.Group("/order")
	{
		order.POST("/", h.createOrder)
		order.GET("/myorder/", h.myOrders)
		order.GET("/branch/", h.branches)
	}
}

// createOrder handles order creation
func (h *OrderHandler) createOrder(c *gin.Context) {
	var req service.PlaceOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.orderService.PlaceOrder(c.Request.Context(), bearerToken(c), &req)
	if err != nil {
		c.JSON(service.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// myOrders lists the authenticated member's order lines
func (h *OrderHandler) myOrders(c *gin.Context) {
	lines, err := h.orderService.MyOrders(c.Request.Context(), bearerToken(c))
	if err != nil {
		c.JSON(service.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	if lines == nil {
		lines = []models.OrderLine{}
	}
	c.JSON(http.StatusOK, lines)
}

// branches lists all branches
func (h *OrderHandler) branches(c *gin.Context) {
	branches, err := h.orderService.Branches(c.Request.Context())
	if err != nil {
		c.JSON(service.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	if branches == nil {
		branches = []models.Branch{}
	}
	c.JSON(http.StatusOK, branches)
}
