package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samsarastore/samsara/internal/types"
)

// RequestContext attaches a request id and, when the upstream gateway has
// authenticated a customer, the customer id to the request context. Actual
// authentication lives in the gateway; this service only consumes the
// already-verified identity header for ownership checks.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxRequestID, uuid.New().String())

		if customerID := c.GetHeader("X-Customer-ID"); customerID != "" {
			ctx = context.WithValue(ctx, types.CtxCustomerID, customerID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
