package app

import (
	"context"
	"testing"

	"github.com/Freeeeeet/appointment_service/internal/repository/memory"
	"github.com/Freeeeeet/appointment_service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()
	users := service.NewUserService(store, zap.NewNop())

	require.NoError(t, SeedAdmin(ctx, users, "", "", zap.NewNop()))
	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, SeedAdmin(ctx, users, "root@example.com", "rootpass", zap.NewNop()))
	require.NoError(t, SeedAdmin(ctx, users, "root@example.com", "rootpass", zap.NewNop()))

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsAdmin())
}
