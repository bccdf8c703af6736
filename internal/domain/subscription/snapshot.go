package subscription

import (
	"time"

	"github.com/samsarastore/samsara/internal/types"
)

// Snapshot is the read-only view of one subscription at evaluation time.
// It is constructed fresh per request from the store of record, never
// mutated and never persisted; every eligibility check is a pure function
// of a snapshot, a resolved policy and the current wall-clock time.
type Snapshot struct {
	SubscriptionID  string
	CustomerID      string
	PaymentCount    int
	StartDate       time.Time
	NextPaymentDate *time.Time
	LastPaymentDate *time.Time
	BillingPeriod   types.BillingPeriod
	BillingInterval int
	Status          types.SubscriptionStatus
}
