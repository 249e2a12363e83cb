package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthRequired gates the quote history and settings surface. Browser
// navigation is redirected to the login page; API clients get a 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") != nil {
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Redirect(http.StatusFound, "/login")
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Autenticación requerida"})
		}
		c.Abort()
	}
}

// AdminRequired restricts configuration edits to the ADMIN role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("role") != "ADMIN" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Solo administradores"})
			c.Abort()
			return
		}
		c.Next()
	}
}
