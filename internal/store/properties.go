package store

import (
	"context"

	"mhimmo/internal/domain"
)

// CreateProperty appends a property. A new property is always vacant.
func (s *Store) CreateProperty(ctx context.Context, in domain.NewProperty) (domain.Property, error) {
	s.mu.Lock()
	p := domain.Property{
		ID:          freshID(s, "prop", s.data.Properties, func(p domain.Property) string { return p.ID }),
		Address:     in.Address,
		City:        in.City,
		PostalCode:  in.PostalCode,
		Type:        in.Type,
		Price:       in.Price,
		Deposit:     in.Deposit,
		Surface:     in.Surface,
		Rooms:       in.Rooms,
		Description: in.Description,
		CreatedAt:   s.now(),
	}
	s.data.Properties = append(s.data.Properties, p)
	s.deriveLocked(len(s.data.Properties) - 1)
	p = s.data.Properties[len(s.data.Properties)-1]
	err := s.commit(ctx, pending{domain.CollectionProperties, clone(s.data.Properties)})
	return p, err
}

// UpdateProperty merges patch into the property with the given id. It reports
// false and writes nothing when no such property exists. Occupancy is not
// patchable.
func (s *Store) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (domain.Property, bool, error) {
	s.mu.Lock()
	i := s.data.propertyIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Property{}, false, nil
	}
	patch.Apply(&s.data.Properties[i])
	s.deriveLocked(i)
	p := s.data.Properties[i]
	err := s.commit(ctx, pending{domain.CollectionProperties, clone(s.data.Properties)})
	return p, true, err
}

func (s *Store) Properties() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Properties)
}

func (s *Store) PropertyByID(id string) (domain.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.PropertyByID(id)
}

// VacantProperties lists properties available for a new contract.
func (s *Store) VacantProperties() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Property
	for _, p := range s.data.Properties {
		if p.Status == domain.StatusVacant {
			out = append(out, p)
		}
	}
	return out
}
