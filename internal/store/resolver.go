package store

import "mhimmo/internal/domain"

// Relationship queries. They are linear scans in insertion order; the data
// set is small enough to hold in memory.

func (d Dataset) UserByID(id string) (domain.User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// UserByEmail returns the first user with the given email.
func (d Dataset) UserByEmail(email string) (domain.User, bool) {
	for _, u := range d.Users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

func (d Dataset) PropertyByID(id string) (domain.Property, bool) {
	if i := d.propertyIndex(id); i >= 0 {
		return d.Properties[i], true
	}
	return domain.Property{}, false
}

func (d Dataset) propertyIndex(id string) int {
	for i := range d.Properties {
		if d.Properties[i].ID == id {
			return i
		}
	}
	return -1
}

// PropertyOfTenant returns the first property occupied by tenantID.
func (d Dataset) PropertyOfTenant(tenantID string) (domain.Property, bool) {
	for _, p := range d.Properties {
		if p.TenantID != "" && p.TenantID == tenantID {
			return p, true
		}
	}
	return domain.Property{}, false
}

// ContractOfTenant returns the first contract signed by tenantID.
func (d Dataset) ContractOfTenant(tenantID string) (domain.Contract, bool) {
	for _, c := range d.Contracts {
		if c.TenantID == tenantID {
			return c, true
		}
	}
	return domain.Contract{}, false
}

// ManagerOf returns the manager responsible for tenantID. There is no
// manager assignment: every tenant is served by the first manager on record.
func (d Dataset) ManagerOf(tenantID string) (domain.User, bool) {
	for _, u := range d.Users {
		if u.Role == domain.RoleManager {
			return u, true
		}
	}
	return domain.User{}, false
}

// TenantOverview joins a tenant with the property, contract and manager it resolves to.
type TenantOverview struct {
	Tenant   domain.User      `json:"tenant"`
	Property *domain.Property `json:"property,omitempty"`
	Contract *domain.Contract `json:"contract,omitempty"`
	Manager  *domain.User     `json:"manager,omitempty"`
}

func (d Dataset) Overview(tenant domain.User) TenantOverview {
	o := TenantOverview{Tenant: tenant}
	if p, ok := d.PropertyOfTenant(tenant.ID); ok {
		o.Property = &p
	}
	if c, ok := d.ContractOfTenant(tenant.ID); ok {
		o.Contract = &c
	}
	if m, ok := d.ManagerOf(tenant.ID); ok {
		o.Manager = &m
	}
	return o
}

func (s *Store) PropertyOfTenant(tenantID string) (p domain.Property, ok bool) {
	s.View(func(d Dataset) { p, ok = d.PropertyOfTenant(tenantID) })
	return
}

func (s *Store) ContractOfTenant(tenantID string) (c domain.Contract, ok bool) {
	s.View(func(d Dataset) { c, ok = d.ContractOfTenant(tenantID) })
	return
}

func (s *Store) ManagerOf(tenantID string) (u domain.User, ok bool) {
	s.View(func(d Dataset) { u, ok = d.ManagerOf(tenantID) })
	return
}

// TenantOverviews resolves every tenant in insertion order.
func (s *Store) TenantOverviews() []TenantOverview {
	var out []TenantOverview
	s.View(func(d Dataset) {
		for _, u := range d.Users {
			if u.Role == domain.RoleTenant {
				out = append(out, d.Overview(u))
			}
		}
	})
	return out
}
