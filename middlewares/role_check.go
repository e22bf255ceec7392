package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-core/utils"
)

// RequireRole gates a route to the given staff roles. The role claim is
// set by AuthMiddleware, which must run first.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		for _, want := range allowed {
			if role == want {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Errorf("role %v is not allowed here", role))
		c.Abort()
	}
}
