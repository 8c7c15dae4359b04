package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planroomhq/planroom-server/store"
	"github.com/planroomhq/planroom-server/utils"
)

// CtxAccount is the gin context key holding the authenticated account.
const CtxAccount = "account"

// AuthJWT checks Authorization: Bearer <token>, validates the JWT, loads
// the account from the store and injects it into the request context.
// Handlers downstream pass that account explicitly into the service layer.
func AuthJWT(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifyToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		account, err := st.Accounts().Find(claims.AccountID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Account not found"})
			return
		}

		c.Set(CtxAccount, *account)
		c.Next()
	}
}
