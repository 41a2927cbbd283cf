package store

import "mhimmo/internal/domain"

func (s *Store) Payments() []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Payments)
}

// PaymentsFiltered returns payments matching the non-empty filters.
func (s *Store) PaymentsFiltered(tenantID string, status domain.PaymentStatus) []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payment, 0, len(s.data.Payments))
	for _, p := range s.data.Payments {
		if tenantID != "" && p.TenantID != tenantID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out
}
