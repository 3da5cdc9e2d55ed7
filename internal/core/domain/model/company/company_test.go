package company_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() company.DeliveryConfig {
	return company.DeliveryConfig{
		MaxDeliveryRadiusKm:      8,
		DeliveryFee:              7.50,
		AverageDeliveryMinutes:   35,
		AcceptsScheduledDelivery: true,
	}
}

func newCompany(t *testing.T) *company.Company {
	t.Helper()
	location, err := kernel.NewGeoPoint(-23.5505, -46.6333)
	require.NoError(t, err)
	c, err := company.NewCompany(
		kernel.NewUUID(), "Cantina da Nonna", "+55 11 3333-4444",
		"Rua Oscar Freire 200", location, validConfig(), time.Now(),
	)
	require.NoError(t, err)
	return c
}

func TestNewCompany(t *testing.T) {
	t.Run("starts active with the given config", func(t *testing.T) {
		c := newCompany(t)

		require.NoError(t, c.Validate())
		assert.True(t, c.IsActive())
		assert.Equal(t, validConfig(), c.Config())
		assert.Zero(t, c.Reputation())
	})

	t.Run("requires name and address", func(t *testing.T) {
		location, _ := kernel.NewGeoPoint(0, 0)

		_, err := company.NewCompany(kernel.NewUUID(), "", "", "addr", location, validConfig(), time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = company.NewCompany(kernel.NewUUID(), "name", "", "", location, validConfig(), time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires constructed coordinates", func(t *testing.T) {
		_, err := company.NewCompany(kernel.NewUUID(), "name", "", "addr",
			kernel.GeoPoint{}, validConfig(), time.Now())
		require.Error(t, err)
	})

	t.Run("rejects non-positive radius or average time", func(t *testing.T) {
		location, _ := kernel.NewGeoPoint(0, 0)

		bad := validConfig()
		bad.MaxDeliveryRadiusKm = 0
		_, err := company.NewCompany(kernel.NewUUID(), "name", "", "addr", location, bad, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		bad = validConfig()
		bad.AverageDeliveryMinutes = 0
		_, err = company.NewCompany(kernel.NewUUID(), "name", "", "addr", location, bad, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCompany_ApplyConfigPatch(t *testing.T) {
	t.Run("nil fields are left unchanged", func(t *testing.T) {
		c := newCompany(t)
		fee := 12.0

		require.NoError(t, c.ApplyConfigPatch(company.ConfigPatch{DeliveryFee: &fee}))

		got := c.Config()
		assert.Equal(t, 12.0, got.DeliveryFee)
		assert.Equal(t, validConfig().MaxDeliveryRadiusKm, got.MaxDeliveryRadiusKm)
		assert.Equal(t, validConfig().AverageDeliveryMinutes, got.AverageDeliveryMinutes)
		assert.Equal(t, validConfig().AcceptsScheduledDelivery, got.AcceptsScheduledDelivery)
	})

	t.Run("invalid patch leaves config untouched", func(t *testing.T) {
		c := newCompany(t)
		radius := -1.0

		err := c.ApplyConfigPatch(company.ConfigPatch{MaxDeliveryRadiusKm: &radius})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, validConfig(), c.Config())
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		c := newCompany(t)
		require.NoError(t, c.ApplyConfigPatch(company.ConfigPatch{}))
		assert.Equal(t, validConfig(), c.Config())
	})
}

func TestCompany_ApplyReputation(t *testing.T) {
	c := newCompany(t)

	require.NoError(t, c.ApplyReputation(company.Reputation{Average: 4.2, Count: 5}))
	assert.Equal(t, 4.2, c.Reputation().Average)

	require.ErrorIs(t, c.ApplyReputation(company.Reputation{Average: 5.5}), errs.ErrValueIsOutOfRange)
	assert.Equal(t, 4.2, c.Reputation().Average)
}

func TestRestoreCompany(t *testing.T) {
	original := newCompany(t)
	original.Deactivate()
	require.NoError(t, original.ApplyReputation(company.Reputation{Average: 3.9, Count: 7}))

	restored, err := company.RestoreCompany(company.Snapshot{
		ID:         original.ID(),
		Name:       original.Name(),
		Phone:      original.Phone(),
		Address:    original.Address(),
		Location:   original.Location(),
		IsActive:   original.IsActive(),
		Config:     original.Config(),
		Reputation: original.Reputation(),
		CreatedAt:  original.CreatedAt(),
	})

	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.True(t, restored.IsEqual(original))
	assert.False(t, restored.IsActive())
	assert.Equal(t, original.Reputation(), restored.Reputation())
	assert.Equal(t, original.Config(), restored.Config())
}
