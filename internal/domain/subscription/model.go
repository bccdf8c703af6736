package subscription

import (
	"time"

	"github.com/samsarastore/samsara/internal/types"
)

type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// CustomerID is the identifier for the owning customer
	CustomerID string `db:"customer_id" json:"customer_id"`

	// ProductID is the identifier for the subscribed product
	ProductID string `db:"product_id" json:"product_id"`

	// VariationID is the identifier for the product variation, if the
	// subscription was purchased against one
	VariationID string `db:"variation_id" json:"variation_id"`

	// Status is the status of the subscription
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`

	// StartDate is the start date of the subscription
	StartDate time.Time `db:"start_date" json:"start_date"`

	// NextPaymentDate is the next scheduled renewal charge
	NextPaymentDate *time.Time `db:"next_payment_date" json:"next_payment_date"`

	// LastPaymentDate is the most recent completed charge as recorded on the
	// subscription itself. The snapshot builder prefers the payment history
	// and falls back to this field.
	LastPaymentDate *time.Time `db:"last_payment_date" json:"last_payment_date"`

	// BillingPeriod is the unit of the billing cycle
	BillingPeriod types.BillingPeriod `db:"billing_period" json:"billing_period"`

	// BillingInterval is the number of billing periods between charges
	BillingInterval int `db:"billing_interval" json:"billing_interval"`

	types.BaseModel
}
