package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parkspot/internal/model"
)

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	created := createUser(t, repo, "a@b.com")

	found, err := repo.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "missing@b.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "a@b.com")

	err := repo.Create(context.Background(), &model.User{Name: "x", Email: "a@b.com", PasswordHash: "h"})
	assert.Error(t, err)
}

func TestUserRepository_FindByIDWithSpots(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	spots := NewSpotRepository(gormDB)
	now := time.Now().UTC().Truncate(time.Second)

	owner := createUser(t, users, "owner@b.com")
	other := createUser(t, users, "other@b.com")
	createSpot(t, spots, model.NewEmptySpot(now))
	second := createSpot(t, spots, model.NewOwnedSpot(owner, now))
	createSpot(t, spots, model.NewOwnedSpot(other, now))

	free := createSpot(t, spots, model.NewEmptySpot(now))
	ok, err := spots.ReserveIfFree(ctx, free.ID, owner.ID, 2, now)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := users.FindByIDWithSpots(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@b.com", got.Email)
	require.Len(t, got.Spots, 2)
	assert.Equal(t, second.ID, got.Spots[0].ID)
	assert.Equal(t, free.ID, got.Spots[1].ID)
	assert.Equal(t, 2, got.Spots[1].HoursReserved)

	// released spots no longer belong to the driver
	released, err := spots.ReleaseExpired(ctx, []uint{free.ID}, now.Add(3*time.Hour), false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	got, err = users.FindByIDWithSpots(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Spots, 1)
	assert.Equal(t, second.ID, got.Spots[0].ID)

	_, err = users.FindByIDWithSpots(ctx, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
