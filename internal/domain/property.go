package domain

import "time"

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyStudio    PropertyType = "studio"
	PropertyLoft      PropertyType = "loft"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyStudio, PropertyLoft:
		return true
	}
	return false
}

type PropertyStatus string

const (
	StatusOccupied PropertyStatus = "occupied"
	StatusVacant   PropertyStatus = "vacant"
)

// Property is a rentable unit. Status and TenantID are derived from the
// contract referencing the property and are never set by callers.
type Property struct {
	ID          string         `json:"id"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	PostalCode  string         `json:"postal_code"`
	Type        PropertyType   `json:"type"`
	Price       float64        `json:"price"`
	Deposit     float64        `json:"deposit"`
	Surface     float64        `json:"surface"`
	Rooms       int            `json:"rooms"`
	Description string         `json:"description"`
	Status      PropertyStatus `json:"status"`
	TenantID    string         `json:"tenant_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type NewProperty struct {
	Address     string
	City        string
	PostalCode  string
	Type        PropertyType
	Price       float64
	Deposit     float64
	Surface     float64
	Rooms       int
	Description string
}

// PropertyPatch is a partial update; nil fields are left untouched.
type PropertyPatch struct {
	Address     *string       `json:"address,omitempty"`
	City        *string       `json:"city,omitempty"`
	PostalCode  *string       `json:"postal_code,omitempty"`
	Type        *PropertyType `json:"type,omitempty"`
	Price       *float64      `json:"price,omitempty"`
	Deposit     *float64      `json:"deposit,omitempty"`
	Surface     *float64      `json:"surface,omitempty"`
	Rooms       *int          `json:"rooms,omitempty"`
	Description *string       `json:"description,omitempty"`
}

func (p PropertyPatch) Apply(dst *Property) {
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.City != nil {
		dst.City = *p.City
	}
	if p.PostalCode != nil {
		dst.PostalCode = *p.PostalCode
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Deposit != nil {
		dst.Deposit = *p.Deposit
	}
	if p.Surface != nil {
		dst.Surface = *p.Surface
	}
	if p.Rooms != nil {
		dst.Rooms = *p.Rooms
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
}
