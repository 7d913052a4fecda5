package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kabisa/ebmbridge/internal/business/domain"
	"github.com/kabisa/ebmbridge/internal/business/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Business{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateAndLookupByTIN(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateBusinessRequest{
		Name:     "Kabisa Electric",
		TIN:      "944000008",
		Email:    "billing@kabisa.rw",
		Location: "Kigali",
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	got, err := svc.GetByTIN(ctx, "944000008")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Kabisa Electric", got.Name)
}

func TestCreateRejectsBadTIN(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateBusinessRequest{Name: "x", TIN: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidTIN)

	_, err = svc.Create(ctx, domain.CreateBusinessRequest{Name: "x", TIN: "94400000a"})
	assert.ErrorIs(t, err, domain.ErrInvalidTIN)
}

func TestCreateRejectsDuplicateTIN(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateBusinessRequest{Name: "first", TIN: "944000008"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateBusinessRequest{Name: "second", TIN: "944000008"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInactiveBusinessIsHiddenFromTINLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateBusinessRequest{Name: "Kabisa", TIN: "944000008"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, domain.UpdateBusinessRequest{ID: created.ID.String(), Active: &inactive})
	require.NoError(t, err)

	_, err = svc.GetByTIN(ctx, "944000008")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Still reachable by id for administration.
	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateBusinessRequest{Name: "Kabisa", TIN: "944000008"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
