package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playqueue/internal/store"
	"playqueue/internal/store/memory"
	"playqueue/shared/go/models"
)

func TestGetReturnsDefaults(t *testing.T) {
	svc := New(memory.NewSettingsRepository(), nil)

	got, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.False(t, got.ShuffleMode)
	assert.Equal(t, models.RepeatOff, got.RepeatMode)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestUpdateLeavesUnsetFieldsAlone(t *testing.T) {
	svc := New(memory.NewSettingsRepository(), nil)
	ctx := context.Background()

	repeat := models.RepeatOne
	got, err := svc.Update(ctx, "user-1", models.SettingsUpdate{RepeatMode: &repeat})
	require.NoError(t, err)
	assert.Equal(t, models.RepeatOne, got.RepeatMode)
	assert.False(t, got.ShuffleMode)

	shuffle := true
	got, err = svc.Update(ctx, "user-1", models.SettingsUpdate{ShuffleMode: &shuffle})
	require.NoError(t, err)
	assert.Equal(t, models.RepeatOne, got.RepeatMode)
	assert.True(t, got.ShuffleMode)

	again, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestUpdateRejectsUnknownRepeatMode(t *testing.T) {
	svc := New(memory.NewSettingsRepository(), nil)
	ctx := context.Background()

	bad := models.RepeatMode("forever")
	_, err := svc.Update(ctx, "user-1", models.SettingsUpdate{RepeatMode: &bad})
	assert.ErrorIs(t, err, store.ErrInvalidMode)

	got, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.RepeatOff, got.RepeatMode)
}

func TestSettingsAreScopedPerUser(t *testing.T) {
	svc := New(memory.NewSettingsRepository(), nil)
	ctx := context.Background()

	shuffle := true
	_, err := svc.Update(ctx, "alice", models.SettingsUpdate{ShuffleMode: &shuffle})
	require.NoError(t, err)

	bob, err := svc.Get(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, bob.ShuffleMode)
}
