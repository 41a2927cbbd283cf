package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhimmo/internal/domain"
	"mhimmo/internal/store"
)

var ref = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type tickClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func seqIDs() func(string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("new-%s-%d", prefix, n)
	}
}

type recordingMirror struct {
	mu     sync.Mutex
	writes []domain.Collection
	fail   map[domain.Collection]error
}

func (m *recordingMirror) Mirror(_ context.Context, c domain.Collection, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail[c]; err != nil {
		return err
	}
	m.writes = append(m.writes, c)
	return nil
}

func fixture() store.Dataset {
	return store.Dataset{
		Users: []domain.User{
			{ID: "admin-1", Name: "Admin", Email: "admin@mhimmo.com", Role: domain.RoleOwner, CreatedAt: ref},
			{ID: "manager-1", Name: "Marie", Email: "marie@mhimmo.com", Role: domain.RoleManager, CreatedAt: ref},
			{ID: "tenant-1", Name: "Jean", Email: "jean@email.com", Role: domain.RoleTenant, CreatedAt: ref},
			{ID: "tenant-2", Name: "Sophie", Email: "sophie@email.com", Role: domain.RoleTenant, CreatedAt: ref},
		},
		Properties: []domain.Property{
			{ID: "prop-1", City: "Paris", Type: domain.PropertyApartment, Price: 1200, Rooms: 3, CreatedAt: ref},
			{ID: "prop-2", City: "Lyon", Type: domain.PropertyStudio, Price: 750, Rooms: 1, CreatedAt: ref},
		},
		Contracts: []domain.Contract{
			{ID: "contract-1", TenantID: "tenant-1", PropertyID: "prop-1", StartDate: "2024-01-01", Rent: 1200, Deposit: 2400, CreatedAt: ref},
		},
		Payments: []domain.Payment{
			{ID: "pay-1", TenantID: "tenant-1", PropertyID: "prop-1", Amount: 1200, Date: "2024-03-01", Status: domain.PaymentPaid, Type: domain.PaymentRent},
			{ID: "pay-2", TenantID: "tenant-1", PropertyID: "prop-1", Amount: 1200, Date: "2024-04-01", Status: domain.PaymentPending, Type: domain.PaymentRent},
		},
	}
}

func newStore(t *testing.T, strict bool) (*store.Store, *recordingMirror) {
	t.Helper()
	m := &recordingMirror{}
	s := store.New(store.Options{
		StrictContracts: strict,
		Now:             (&tickClock{cur: ref}).Now,
		NewID:           seqIDs(),
		Mirror:          m,
	})
	s.Restore(fixture())
	return s, m
}

func TestRestore_DerivesOccupancyFromContracts(t *testing.T) {
	ds := fixture()
	// stale stored state must not leak through
	ds.Properties[1].Status = domain.StatusOccupied
	ds.Properties[1].TenantID = "tenant-2"

	s := store.New(store.Options{})
	s.Restore(ds)

	p1, ok := s.PropertyByID("prop-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusOccupied, p1.Status)
	assert.Equal(t, "tenant-1", p1.TenantID)

	p2, ok := s.PropertyByID("prop-2")
	require.True(t, ok)
	assert.Equal(t, domain.StatusVacant, p2.Status)
	assert.Empty(t, p2.TenantID)
}

func TestCreateUser(t *testing.T) {
	s, m := newStore(t, true)
	u, err := s.CreateUser(context.Background(), domain.NewUser{Name: "Paul", Email: "jean@email.com", Role: domain.RoleTenant})
	require.NoError(t, err)
	assert.Equal(t, "new-user-1", u.ID)
	assert.Equal(t, ref.Add(time.Second), u.CreatedAt)
	assert.Len(t, s.Users(), 5)
	assert.Equal(t, []domain.Collection{domain.CollectionUsers}, m.writes)

	// duplicate emails are accepted; lookups return the first match
	byEmail, ok := s.UserByEmail("jean@email.com")
	require.True(t, ok)
	assert.Equal(t, "tenant-1", byEmail.ID)
}

func TestCreateProperty_AlwaysVacant(t *testing.T) {
	s, m := newStore(t, true)
	p, err := s.CreateProperty(context.Background(), domain.NewProperty{
		Address: "78 Rue du Commerce", City: "Marseille", PostalCode: "13001",
		Type: domain.PropertyLoft, Price: 950, Deposit: 1900, Surface: 50, Rooms: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVacant, p.Status)
	assert.Empty(t, p.TenantID)
	assert.Equal(t, []domain.Collection{domain.CollectionProperties}, m.writes)

	vacant := s.VacantProperties()
	require.Len(t, vacant, 2)
	assert.Equal(t, p.ID, vacant[1].ID)
}

func TestCreateContract_OccupiesProperty(t *testing.T) {
	for _, strict := range []bool{true, false} {
		t.Run(fmt.Sprintf("strict=%v", strict), func(t *testing.T) {
			s, m := newStore(t, strict)
			c, err := s.CreateContract(context.Background(), domain.NewContract{
				TenantID: "tenant-2", PropertyID: "prop-2", StartDate: "2024-02-01", EndDate: "2025-02-01", Rent: 750, Deposit: 1500,
			})
			require.NoError(t, err)

			p, ok := s.PropertyByID("prop-2")
			require.True(t, ok)
			assert.Equal(t, domain.StatusOccupied, p.Status)
			assert.Equal(t, c.TenantID, p.TenantID)

			got, ok := s.ContractOfProperty("prop-2")
			require.True(t, ok)
			assert.Equal(t, c, got)

			assert.Equal(t, []domain.Collection{domain.CollectionContracts, domain.CollectionProperties}, m.writes)
		})
	}
}

func TestCreateContract_UnknownProperty(t *testing.T) {
	in := domain.NewContract{TenantID: "tenant-2", PropertyID: "prop-missing", StartDate: "2024-02-01", Rent: 500}

	t.Run("strict rejects and stores nothing", func(t *testing.T) {
		s, m := newStore(t, true)
		_, err := s.CreateContract(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
		assert.Len(t, s.Contracts(), 1)
		assert.Empty(t, m.writes)
	})

	t.Run("lenient keeps the contract and skips the side effect", func(t *testing.T) {
		s, m := newStore(t, false)
		c, err := s.CreateContract(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, s.Contracts(), 2)
		assert.Equal(t, "prop-missing", c.PropertyID)
		assert.Equal(t, []domain.Collection{domain.CollectionContracts}, m.writes)
		for _, p := range s.Properties() {
			assert.NotEqual(t, "tenant-2", p.TenantID)
		}
	})
}

func TestCreateContract_PropertyAlreadyLet(t *testing.T) {
	s, _ := newStore(t, true)
	_, err := s.CreateContract(context.Background(), domain.NewContract{TenantID: "tenant-2", PropertyID: "prop-1"})
	assert.ErrorIs(t, err, domain.ErrPropertyOccupied)

	p, _ := s.PropertyByID("prop-1")
	assert.Equal(t, "tenant-1", p.TenantID)
}

func TestUpdateProperty(t *testing.T) {
	s, m := newStore(t, true)
	city := "Nice"
	price := 1300.0

	p, found, err := s.UpdateProperty(context.Background(), "prop-1", domain.PropertyPatch{City: &city, Price: &price})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Nice", p.City)
	assert.Equal(t, 1300.0, p.Price)
	assert.Equal(t, 3, p.Rooms)
	assert.Equal(t, domain.StatusOccupied, p.Status)
	assert.Equal(t, "tenant-1", p.TenantID)

	_, found, err = s.UpdateProperty(context.Background(), "nope", domain.PropertyPatch{City: &city})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, m.writes, 1)
}

func TestCreateMessage_ForcedUnread(t *testing.T) {
	s, _ := newStore(t, true)
	msg, err := s.CreateMessage(context.Background(), domain.NewMessage{SenderID: "tenant-1", RecipientID: "manager-1", Content: "Bonjour"})
	require.NoError(t, err)
	assert.False(t, msg.Read)
	assert.Equal(t, domain.MessageText, msg.Type)
	assert.Equal(t, "new-msg-1", msg.ID)
}

func TestMarkRead_OnlyRecipientSide(t *testing.T) {
	s, _ := newStore(t, true)
	ctx := context.Background()
	_, _ = s.CreateMessage(ctx, domain.NewMessage{SenderID: "tenant-1", RecipientID: "manager-1", Content: "a"})
	_, _ = s.CreateMessage(ctx, domain.NewMessage{SenderID: "tenant-1", RecipientID: "manager-1", Content: "b"})
	_, _ = s.CreateMessage(ctx, domain.NewMessage{SenderID: "manager-1", RecipientID: "tenant-1", Content: "c"})

	n, err := s.MarkRead(ctx, "manager-1", "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, m := range s.Messages() {
		if m.RecipientID == "tenant-1" {
			assert.False(t, m.Read)
		} else {
			assert.True(t, m.Read)
		}
	}

	n, err = s.MarkRead(ctx, "manager-1", "tenant-1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMirrorFailure_KeepsMutation(t *testing.T) {
	boom := errors.New("backend down")
	m := &recordingMirror{fail: map[domain.Collection]error{domain.CollectionUsers: boom}}
	s := store.New(store.Options{Mirror: m})

	u, err := s.CreateUser(context.Background(), domain.NewUser{Name: "x", Role: domain.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrPersist)
	assert.ErrorIs(t, err, boom)

	got, ok := s.UserByID(u.ID)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestGeneratedIDsDoNotCollide(t *testing.T) {
	s := store.New(store.Options{})
	ctx := context.Background()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		m, err := s.CreateMessage(ctx, domain.NewMessage{SenderID: "a", RecipientID: "b", Content: "x"})
		require.NoError(t, err)
		require.False(t, seen[m.ID])
		seen[m.ID] = true
	}
}

func TestCreate_RedrawsTakenIDs(t *testing.T) {
	ids := []string{"prop-1", "prop-2", "prop-7"}
	s := store.New(store.Options{
		NewID: func(string) string {
			id := ids[0]
			ids = ids[1:]
			return id
		},
	})
	s.Restore(fixture())

	p, err := s.CreateProperty(context.Background(), domain.NewProperty{City: "Nantes", Type: domain.PropertyStudio, Price: 600})
	require.NoError(t, err)
	assert.Equal(t, "prop-7", p.ID)
	assert.Equal(t, domain.StatusVacant, p.Status)
	assert.Empty(t, p.TenantID)
	assert.Len(t, s.Properties(), 3)
}

func TestCreate_PanicsWhenGeneratorOnlyRepeats(t *testing.T) {
	s := store.New(store.Options{NewID: func(p string) string { return p + "-1" }})
	s.Restore(fixture())
	assert.Panics(t, func() {
		_, _ = s.CreateContract(context.Background(), domain.NewContract{TenantID: "tenant-2", PropertyID: "prop-2"})
	})
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s, _ := newStore(t, true)
	snap := s.Snapshot()
	snap.Users[0].Name = "changed"
	u, _ := s.UserByID("admin-1")
	assert.Equal(t, "Admin", u.Name)
}

func TestPaymentsFiltered(t *testing.T) {
	s, _ := newStore(t, true)
	assert.Len(t, s.PaymentsFiltered("tenant-1", ""), 2)
	assert.Len(t, s.PaymentsFiltered("", domain.PaymentPending), 1)
	assert.Empty(t, s.PaymentsFiltered("tenant-2", ""))
}

func TestSearchUsers(t *testing.T) {
	s, _ := newStore(t, true)
	assert.Len(t, s.SearchUsers("", ""), 4)
	assert.Len(t, s.SearchUsers("", domain.RoleTenant), 2)
	got := s.SearchUsers("MARIE", "")
	require.Len(t, got, 1)
	assert.Equal(t, "manager-1", got[0].ID)
}
