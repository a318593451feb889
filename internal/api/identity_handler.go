package api

import (
	"errors"
	"net/http"

	"pizza-ordering/internal/service"
	"pizza-ordering/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IdentityHandler contains HTTP handlers for the identity service
type IdentityHandler struct {
	authService *service.AuthService
}

// NewIdentityHandler creates a new identity HTTP handler
func NewIdentityHandler(authService *service.AuthService) *IdentityHandler {
	return &IdentityHandler{
		authService: authService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *IdentityHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/register/", h.register)
	router.POST("/login/", h.login)
	router.POST("/logout/", h.logout)
	router.POST("/int/auth/verify", h.verify)
}

type registerRequest struct {
	MemberID string `json:"member_id" binding:"required"`
	Password string `json:"password" binding:"required"`
	MemberNm string `json:"member_nm" binding:"required"`
}

// register creates a member account
func (h *IdentityHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields"})
		return
	}

	if err := h.authService.Register(c.Request.Context(), req.MemberID, req.Password, req.MemberNm); err != nil {
		c.JSON(service.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member_id": req.MemberID})
}

type loginRequest struct {
	MemberID string `json:"member_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login checks credentials and returns a token
func (h *IdentityHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields"})
		return
	}

	tok, err := h.authService.Login(c.Request.Context(), req.MemberID, req.Password)
	if err != nil {
		c.JSON(service.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// logout is stateless: the client simply drops the token
func (h *IdentityHandler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out. Please remove token on client."})
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// verify checks a token on behalf of another service
func (h *IdentityHandler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false})
		return
	}

	memberID, err := h.authService.VerifyToken(req.Token)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, token.ErrTokenExpired) {
			reason = "expired"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "reason": reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "member_id": memberID})
}
