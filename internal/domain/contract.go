package domain

import "time"

// DateLayout is the wire format of calendar dates (start_date, end_date, payment date).
const DateLayout = "2006-01-02"

type Contract struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	PropertyID string    `json:"property_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date,omitempty"` // empty means open-ended
	Rent       float64   `json:"rent"`
	Deposit    float64   `json:"deposit"`
	CreatedAt  time.Time `json:"created_at"`
}

type NewContract struct {
	TenantID   string
	PropertyID string
	StartDate  string
	EndDate    string
	Rent       float64
	Deposit    float64
}
