package payment

import (
	"time"

	"github.com/samsarastore/samsara/internal/types"
	"github.com/shopspring/decimal"
)

type Payment struct {
	// ID is the unique identifier for the payment
	ID string `db:"id" json:"id"`

	// SubscriptionID is the subscription this payment was collected for
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`

	// Amount is the charged amount
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// Currency is the currency of the payment in lowercase 3 digit ISO codes
	Currency string `db:"currency" json:"currency"`

	// PaymentStatus is the settlement state of the payment
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`

	// PaidAt is when the payment settled; nil while pending or failed
	PaidAt *time.Time `db:"paid_at" json:"paid_at"`

	types.BaseModel
}

// IsCompleted reports whether the payment counts towards the subscription's
// completed payment total
func (p *Payment) IsCompleted() bool {
	return p.PaymentStatus == types.PaymentStatusSucceeded && p.PaidAt != nil
}
