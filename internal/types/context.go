package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID  ContextKey = "ctx_request_id"
	CtxCustomerID ContextKey = "ctx_customer_id"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetCustomerID returns the authenticated customer id from the context, if any.
// An empty value means the caller carries override capability (internal or
// admin traffic) and ownership checks are skipped.
func GetCustomerID(ctx context.Context) string {
	if customerID, ok := ctx.Value(CtxCustomerID).(string); ok {
		return customerID
	}
	return ""
}
