package controllers

import (
	"Pineapple/middleware"
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	Key string `json:"key" binding:"required"`
}

// @Summary Admin login
// @Description Exchanges the shared admin key for an admin session cookie
// @Tags admin
// @Accept json
// @Produce json
// @Param request body controllers.adminLoginRequest true "Admin key"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Router /admin/login [post]
func AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin key is required"})
		return
	}

	adminKey := os.Getenv("ADMIN_KEY")
	if adminKey == "" || subtle.ConstantTimeCompare([]byte(req.Key), []byte(adminKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin key"})
		return
	}

	if err := middleware.GrantAdminSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

// @Summary Admin logout
// @Tags admin
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /admin/logout [delete]
func AdminLogout(c *gin.Context) {
	if err := middleware.RevokeAdminSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
