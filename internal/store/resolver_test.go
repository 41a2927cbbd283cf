package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhimmo/internal/domain"
)

func TestResolver(t *testing.T) {
	s, _ := newStore(t, true)

	p, ok := s.PropertyOfTenant("tenant-1")
	require.True(t, ok)
	assert.Equal(t, "prop-1", p.ID)

	_, ok = s.PropertyOfTenant("tenant-2")
	assert.False(t, ok)

	c, ok := s.ContractOfTenant("tenant-1")
	require.True(t, ok)
	assert.Equal(t, "contract-1", c.ID)

	_, ok = s.ContractOfTenant("tenant-2")
	assert.False(t, ok)

	m, ok := s.ManagerOf("tenant-2")
	require.True(t, ok)
	assert.Equal(t, "manager-1", m.ID)
}

func TestResolver_SeesLatestMutation(t *testing.T) {
	s, _ := newStore(t, true)
	_, err := s.CreateContract(context.Background(), domain.NewContract{TenantID: "tenant-2", PropertyID: "prop-2"})
	require.NoError(t, err)

	p, ok := s.PropertyOfTenant("tenant-2")
	require.True(t, ok)
	assert.Equal(t, "prop-2", p.ID)
}

func TestTenantOverviews(t *testing.T) {
	s, _ := newStore(t, true)
	out := s.TenantOverviews()
	require.Len(t, out, 2)

	assert.Equal(t, "tenant-1", out[0].Tenant.ID)
	require.NotNil(t, out[0].Property)
	require.NotNil(t, out[0].Contract)
	require.NotNil(t, out[0].Manager)
	assert.Equal(t, "prop-1", out[0].Property.ID)

	assert.Equal(t, "tenant-2", out[1].Tenant.ID)
	assert.Nil(t, out[1].Property)
	assert.Nil(t, out[1].Contract)
}

func TestManagerOf_NoManager(t *testing.T) {
	ds := fixture()
	ds.Users = ds.Users[:1]
	_, ok := ds.ManagerOf("tenant-1")
	assert.False(t, ok)
}
