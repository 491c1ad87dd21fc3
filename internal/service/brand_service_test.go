package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoulbrew/sitescope/internal/domain"
)

func TestBrandsDisplayOrder(t *testing.T) {
	svc := NewBrandService(newTestSnapshot(t))

	infos := svc.Brands(context.Background())
	require.Len(t, infos, 3)
	assert.Equal(t, "메가커피", infos[0].Name)
	assert.Equal(t, "#FFD400", infos[0].Color)
	assert.Equal(t, 5, infos[0].Summary.TotalStores)

	// No precomputed summary ships for 빽다방; the zero value stands in.
	assert.Equal(t, "빽다방", infos[2].Name)
	assert.Zero(t, infos[2].Summary.TotalStores)
}

func TestGetProfile(t *testing.T) {
	snap := newTestSnapshot(t)
	svc := NewBrandService(snap)

	profile, err := svc.GetProfile(context.Background(), "메가커피")
	require.NoError(t, err)

	assert.Equal(t, "메가커피", profile.Name)
	assert.Equal(t, 5, profile.TotalStores) // 4 + 1
	assert.Equal(t, 2, profile.DongCount)
	assert.Equal(t, int64(1200), profile.MinMonthlySales)
	assert.Equal(t, int64(2000), profile.MaxMonthlySales)
	assert.InDelta(t, 1600.0, profile.AvgMonthlySales, 1e-9)

	top, err := snap.DongByCode("1168064000")
	require.NoError(t, err)
	mok, err := snap.DongByCode("1147054000")
	require.NoError(t, err)
	want := (top.AttractivenessScore + mok.AttractivenessScore) / 2
	assert.InDelta(t, want, profile.AvgAttractiveness, 1e-9)
}

func TestGetProfileBrandAbsentEverywhere(t *testing.T) {
	svc := NewBrandService(newTestSnapshot(t))

	profile, err := svc.GetProfile(context.Background(), "빽다방")
	require.NoError(t, err)

	assert.Equal(t, "빽다방", profile.Name)
	assert.Zero(t, profile.TotalStores)
	assert.Zero(t, profile.DongCount)
	assert.Zero(t, profile.AvgMonthlySales)
	assert.Zero(t, profile.MinMonthlySales)
	assert.Zero(t, profile.MaxMonthlySales)
	assert.Zero(t, profile.AvgAttractiveness)
}

func TestGetProfileUnknownBrand(t *testing.T) {
	svc := NewBrandService(newTestSnapshot(t))

	_, err := svc.GetProfile(context.Background(), "스타벅스")
	assert.ErrorIs(t, err, domain.ErrUnknownBrand)
}

func TestListProfiles(t *testing.T) {
	svc := NewBrandService(newTestSnapshot(t))

	t.Run("empty selection means all brands", func(t *testing.T) {
		profiles, err := svc.ListProfiles(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, profiles, 3)
		assert.Equal(t, "메가커피", profiles[0].Name)
	})

	t.Run("active selection only", func(t *testing.T) {
		profiles, err := svc.ListProfiles(context.Background(), []string{"컴포즈커피"})
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, 3, profiles[0].TotalStores)
		assert.Equal(t, 2, profiles[0].DongCount)
	})

	t.Run("unknown brand fails the whole request", func(t *testing.T) {
		_, err := svc.ListProfiles(context.Background(), []string{"메가커피", "스타벅스"})
		assert.ErrorIs(t, err, domain.ErrUnknownBrand)
	})
}
