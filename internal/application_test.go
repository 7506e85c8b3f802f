package application

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

func TestNewGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory storage", func(t *testing.T) {
		// When: the memory storage is configured
		repo, closeRepo, err := newGameRepository(ctx, &config.Config{Storage: config.StorageMemory})

		// Then: a working repository is returned
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("local")))
		assert.NoError(t, closeRepo())
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, &config.Config{Storage: "etcd"})

		assert.ErrorIs(t, err, ErrUnknownStorage)
	})

	t.Run("Redis without host", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, &config.Config{Storage: config.StorageRedis})

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})
}

func TestRunApp_UnknownMode(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	conf := &config.Config{Mode: "desktop", Storage: config.StorageMemory, GameID: "local"}

	err := RunApp(logger, conf)

	assert.ErrorIs(t, err, ErrUnknownMode)
}
