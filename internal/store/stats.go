package store

import "mhimmo/internal/domain"

// Stats is the dashboard summary.
type Stats struct {
	TotalProperties    int     `json:"total_properties"`
	OccupiedProperties int     `json:"occupied_properties"`
	VacantProperties   int     `json:"vacant_properties"`
	TotalTenants       int     `json:"total_tenants"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`
	UnreadMessages     int     `json:"unread_messages"`
	PendingPayments    int     `json:"pending_payments"`
	LatePayments       int     `json:"late_payments"`
}

// Stats computes the dashboard summary; UnreadMessages counts messages
// addressed to viewerID.
func (d Dataset) Stats(viewerID string) Stats {
	st := Stats{TotalProperties: len(d.Properties)}
	for _, p := range d.Properties {
		if p.Status == domain.StatusOccupied {
			st.OccupiedProperties++
		}
	}
	st.VacantProperties = st.TotalProperties - st.OccupiedProperties
	for _, u := range d.Users {
		if u.Role == domain.RoleTenant {
			st.TotalTenants++
		}
	}
	for _, c := range d.Contracts {
		st.MonthlyRevenue += c.Rent
	}
	for _, m := range d.Messages {
		if m.RecipientID == viewerID && !m.Read {
			st.UnreadMessages++
		}
	}
	for _, p := range d.Payments {
		switch p.Status {
		case domain.PaymentPending:
			st.PendingPayments++
		case domain.PaymentLate:
			st.LatePayments++
		}
	}
	return st
}

func (s *Store) Stats(viewerID string) (st Stats) {
	s.View(func(d Dataset) { st = d.Stats(viewerID) })
	return
}
