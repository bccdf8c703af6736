package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/samsarastore/samsara/internal/types"
)

// SetupContext creates a context with a request id, the way the request
// middleware would
func SetupContext() context.Context {
	return context.WithValue(context.Background(), types.CtxRequestID, uuid.New().String())
}

// SetupContextWithCustomer creates a context carrying an authenticated
// customer id for ownership checks
func SetupContextWithCustomer(customerID string) context.Context {
	return context.WithValue(SetupContext(), types.CtxCustomerID, customerID)
}
