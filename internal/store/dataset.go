package store

import "mhimmo/internal/domain"

// Dataset is the full entity set. It is the unit of restore, snapshot and
// bootstrap, and carries the read-only relationship queries.
type Dataset struct {
	Users      []domain.User     `json:"users"`
	Properties []domain.Property `json:"properties"`
	Contracts  []domain.Contract `json:"contracts"`
	Messages   []domain.Message  `json:"messages"`
	Payments   []domain.Payment  `json:"payments"`
}

// Clone returns a copy whose slices do not alias d.
func (d Dataset) Clone() Dataset {
	return Dataset{
		Users:      clone(d.Users),
		Properties: clone(d.Properties),
		Contracts:  clone(d.Contracts),
		Messages:   clone(d.Messages),
		Payments:   clone(d.Payments),
	}
}

// Records returns the collection c as a slice suitable for serialisation.
func (d Dataset) Records(c domain.Collection) any {
	switch c {
	case domain.CollectionUsers:
		return d.Users
	case domain.CollectionProperties:
		return d.Properties
	case domain.CollectionContracts:
		return d.Contracts
	case domain.CollectionMessages:
		return d.Messages
	case domain.CollectionPayments:
		return d.Payments
	}
	return nil
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
