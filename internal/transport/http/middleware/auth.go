package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/hotseat-connect4/pkg/auth"
	"github.com/iamasit07/hotseat-connect4/pkg/httputil"
)

// TableIDKey is where TableAuth leaves the authorized table id.
const TableIDKey = "table_id"

// TableAuth checks the table token (header or cookie) against the :id route param.
func TableAuth(tokens *auth.TableTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID := c.Param("id")

		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := tokens.Authorize(tokenString, tableID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid table token"})
			return
		}

		c.Set(TableIDKey, tableID)
		c.Next()
	}
}
