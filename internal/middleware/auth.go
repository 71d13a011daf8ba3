package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/busitron/workhub/internal/modules/serializer"
	"github.com/busitron/workhub/internal/pkg/jwtauth"
)

// JWTAuth returns a middleware that authenticates requests using bearer
// access tokens. It validates the token and sets the claims in the context.
// It also sets the user_id attribute on the current span for telemetry filtering.
func JWTAuth(auth *jwtauth.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ValidateAccess(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		// Set user_id attribute on the current span for telemetry filtering
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("user_id", claims.UserID.String()))
		}

		c.Set("claims", claims)
		c.Next()
	}
}
