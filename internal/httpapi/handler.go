package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbelkin/storefront/internal/logging"
	"github.com/mbelkin/storefront/internal/services"
)

type credentialsRequest struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler translates HTTP requests into session service calls and service
// Results back into JSON responses.
type Handler struct {
	sessions *services.SessionService
	logger   logging.Logger
}

func NewHandler(sessions *services.SessionService, logger logging.Logger) *Handler {
	return &Handler{sessions: sessions, logger: logger.With("module", "httpapi")}
}

func (h *Handler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	writeResult(c, h.sessions.SignUp(c.Request.Context(), req.UserName, req.Password))
}

func (h *Handler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	sctx, err := NewGinSession(c)
	if err != nil {
		h.logger.Error(c.Request.Context(), "session context error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not establish session"})
		return
	}
	writeResult(c, h.sessions.SignIn(c.Request.Context(), sctx, req.UserName, req.Password))
}

func (h *Handler) Refresh(c *gin.Context) {
	sctx, err := NewGinSession(c)
	if err != nil {
		h.logger.Error(c.Request.Context(), "session context error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not refresh session"})
		return
	}
	writeResult(c, h.sessions.Refresh(c.Request.Context(), sctx))
}

func (h *Handler) SignOut(c *gin.Context) {
	sctx, err := NewGinSession(c)
	if err != nil {
		h.logger.Error(c.Request.Context(), "session context error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not close session"})
		return
	}
	writeResult(c, h.sessions.SignOut(c.Request.Context(), sctx))
}

// Me returns the identity claims established by the auth middleware.
func (h *Handler) Me(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  claims.Subject,
		"username": claims.UserName,
		"roles":    claims.Roles,
	})
}

func writeResult(c *gin.Context, res services.Result) {
	if res.Succeeded {
		c.JSON(res.Status, gin.H{"message": res.Message})
		return
	}
	c.JSON(res.Status, gin.H{"error": res.Message})
}
