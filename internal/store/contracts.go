package store

import (
	"context"

	"mhimmo/internal/domain"
)

// CreateContract appends a contract and marks the referenced property as
// occupied by the contract's tenant. A property accepts a single contract.
//
// With StrictContracts an unknown property fails with ErrPropertyNotFound and
// nothing is stored; otherwise the contract is stored and only the occupancy
// side effect is skipped.
func (s *Store) CreateContract(ctx context.Context, in domain.NewContract) (domain.Contract, error) {
	s.mu.Lock()
	pi := s.data.propertyIndex(in.PropertyID)
	if pi < 0 && s.strict {
		s.mu.Unlock()
		return domain.Contract{}, domain.ErrPropertyNotFound
	}
	if _, taken := s.byProperty[in.PropertyID]; taken {
		s.mu.Unlock()
		return domain.Contract{}, domain.ErrPropertyOccupied
	}

	c := domain.Contract{
		ID:         freshID(s, "contract", s.data.Contracts, func(c domain.Contract) string { return c.ID }),
		TenantID:   in.TenantID,
		PropertyID: in.PropertyID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Rent:       in.Rent,
		Deposit:    in.Deposit,
		CreatedAt:  s.now(),
	}
	s.data.Contracts = append(s.data.Contracts, c)
	s.byProperty[c.PropertyID] = len(s.data.Contracts) - 1

	writes := []pending{{domain.CollectionContracts, clone(s.data.Contracts)}}
	if pi >= 0 {
		s.deriveLocked(pi)
		writes = append(writes, pending{domain.CollectionProperties, clone(s.data.Properties)})
	} else {
		s.log.Warn("contract references unknown property")
	}
	err := s.commit(ctx, writes...)
	return c, err
}

func (s *Store) Contracts() []domain.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Contracts)
}

// ContractOfProperty is the reverse index lookup.
func (s *Store) ContractOfProperty(propertyID string) (domain.Contract, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ci, ok := s.byProperty[propertyID]
	if !ok {
		return domain.Contract{}, false
	}
	return s.data.Contracts[ci], true
}
