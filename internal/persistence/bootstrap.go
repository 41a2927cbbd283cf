package persistence

import (
	"time"

	"mhimmo/internal/domain"
	"mhimmo/internal/store"
)

// AdminEmail is the bootstrap owner account.
const AdminEmail = "admin@mhimmo.com"

// BootstrapCredentials is the plain credential table of the bootstrap users.
// It is hashed into the credential store on first start.
var BootstrapCredentials = map[string]string{
	AdminEmail:                "admin123",
	"marie.dubois@mhimmo.com": "manager123",
	"jean.dupont@email.com":   "tenant123",
	"sophie.martin@email.com": "tenant123",
}

// Bootstrap returns the dataset used when the backend holds nothing yet.
// Timestamps are relative to now.
func Bootstrap(now time.Time) store.Dataset {
	now = now.UTC()
	return store.Dataset{
		Users: []domain.User{
			{ID: "admin-1", Name: "Propriétaire Admin", Email: AdminEmail, Role: domain.RoleOwner, Phone: "06 12 34 56 78", CreatedAt: now},
			{ID: "manager-1", Name: "Marie Dubois", Email: "marie.dubois@mhimmo.com", Role: domain.RoleManager, Phone: "06 23 45 67 89", CreatedAt: now},
			{ID: "tenant-1", Name: "Jean Dupont", Email: "jean.dupont@email.com", Role: domain.RoleTenant, Phone: "06 34 56 78 90", CreatedAt: now},
			{ID: "tenant-2", Name: "Sophie Martin", Email: "sophie.martin@email.com", Role: domain.RoleTenant, Phone: "06 45 67 89 01", CreatedAt: now},
		},
		Properties: []domain.Property{
			{
				ID: "prop-1", Address: "123 Rue de la Paix", City: "Paris", PostalCode: "75001",
				Type: domain.PropertyApartment, Price: 1200, Deposit: 2400, Surface: 65, Rooms: 3,
				Description: "Bel appartement lumineux au cœur de Paris, proche des transports.",
				Status:      domain.StatusOccupied, TenantID: "tenant-1", CreatedAt: now,
			},
			{
				ID: "prop-2", Address: "45 Avenue des Champs", City: "Lyon", PostalCode: "69001",
				Type: domain.PropertyStudio, Price: 750, Deposit: 1500, Surface: 30, Rooms: 1,
				Description: "Studio moderne et fonctionnel, idéal pour étudiant ou jeune actif.",
				Status:      domain.StatusOccupied, TenantID: "tenant-2", CreatedAt: now,
			},
			{
				ID: "prop-3", Address: "78 Rue du Commerce", City: "Marseille", PostalCode: "13001",
				Type: domain.PropertyApartment, Price: 950, Deposit: 1900, Surface: 50, Rooms: 2,
				Description: "Appartement rénové avec terrasse, quartier dynamique.",
				Status:      domain.StatusVacant, CreatedAt: now,
			},
		},
		Contracts: []domain.Contract{
			{ID: "contract-1", TenantID: "tenant-1", PropertyID: "prop-1", StartDate: "2024-01-01", Rent: 1200, Deposit: 2400, CreatedAt: now},
			{ID: "contract-2", TenantID: "tenant-2", PropertyID: "prop-2", StartDate: "2024-02-01", EndDate: "2025-02-01", Rent: 750, Deposit: 1500, CreatedAt: now},
		},
		Messages: []domain.Message{
			{
				ID: "msg-1", SenderID: "tenant-1", RecipientID: "manager-1", Type: domain.MessageText,
				Content:   "Bonjour, j'ai un problème avec le chauffage dans mon appartement.",
				CreatedAt: now.Add(-24 * time.Hour), Read: true,
			},
			{
				ID: "msg-2", SenderID: "manager-1", RecipientID: "tenant-1", Type: domain.MessageText,
				Content:   "Bonjour Jean, je vais contacter un technicien pour intervenir rapidement.",
				CreatedAt: now.Add(-23 * time.Hour), Read: true,
			},
			{
				ID: "msg-3", SenderID: "admin-1", RecipientID: "manager-1", Type: domain.MessageText,
				Content:   "Rapport mensuel disponible pour consultation.",
				CreatedAt: now.Add(-time.Hour), Read: false,
			},
		},
		Payments: []domain.Payment{
			{ID: "pay-1", TenantID: "tenant-1", PropertyID: "prop-1", Amount: 1200, Date: "2024-03-01", Status: domain.PaymentPaid, Type: domain.PaymentRent},
			{ID: "pay-2", TenantID: "tenant-2", PropertyID: "prop-2", Amount: 750, Date: "2024-03-01", Status: domain.PaymentPaid, Type: domain.PaymentRent},
			{ID: "pay-3", TenantID: "tenant-1", PropertyID: "prop-1", Amount: 1200, Date: "2024-04-01", Status: domain.PaymentPending, Type: domain.PaymentRent},
		},
	}
}
