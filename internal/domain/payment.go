package domain

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentLate    PaymentStatus = "late"
)

type PaymentType string

const (
	PaymentRent    PaymentType = "rent"
	PaymentDeposit PaymentType = "deposit"
	PaymentCharges PaymentType = "charges"
)

// Payment is reporting input only; nothing in the store creates or updates payments.
type Payment struct {
	ID         string        `json:"id"`
	TenantID   string        `json:"tenant_id"`
	PropertyID string        `json:"property_id"`
	Amount     float64       `json:"amount"`
	Date       string        `json:"date"`
	Status     PaymentStatus `json:"status"`
	Type       PaymentType   `json:"type"`
}
