package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/claritybiz/irp-platform/internal/auth"
	"github.com/claritybiz/irp-platform/internal/model"
)

const principalKey = "principal"

// Auth rejects requests without a valid bearer token and stores the
// resolved principal on the context.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		principal, err := parser.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}
