package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/repository"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
)

func asciiOutput(buf *bytes.Buffer) *termenv.Output {
	return termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii))
}

func runConsole(t *testing.T, input string) (*usecase.GameManager, string) {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), "local")

	_, err := manager.Start(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	console := New(logger, manager, strings.NewReader(input), asciiOutput(&buf))

	require.NoError(t, console.Run(ctx))

	return manager, buf.String()
}

func TestRender(t *testing.T) {
	// Given: X in the corner and O in the centre
	game := entity.NewGame("local")
	_, err := game.ApplyMove(0)
	require.NoError(t, err)
	_, err = game.ApplyMove(4)
	require.NoError(t, err)

	// When: the board is rendered without colours
	var buf bytes.Buffer
	out := Render(asciiOutput(&buf), game.Snapshot())

	// Then: marks and free keys are laid out in a grid
	expected := strings.Join([]string{
		" X │ 2 │ 3 ",
		rowSeparator,
		" 4 │ O │ 6 ",
		rowSeparator,
		" 7 │ 8 │ 9 ",
		"",
		"Player X's turn",
		"",
	}, "\n")

	assert.Equal(t, expected, out)
}

func TestRender_FinishedGameHidesKeys(t *testing.T) {
	// Given: X has won on the top row
	game := entity.NewGame("local")
	for _, cell := range []int{0, 3, 1, 4, 2} {
		_, err := game.ApplyMove(cell)
		require.NoError(t, err)
	}

	// When: the board is rendered
	var buf bytes.Buffer
	out := Render(asciiOutput(&buf), game.Snapshot())

	// Then: no key is offered any more
	assert.Contains(t, out, " O │ O │   ")
	assert.Contains(t, out, "Player X wins!")
	assert.NotContains(t, out, "9")
}

func TestConsole_Run(t *testing.T) {
	t.Run("Plays until a win", func(t *testing.T) {
		// When: X takes the top row
		manager, out := runConsole(t, "1\n4\n2\n5\n3\nq\n")

		// Then: the win is announced
		assert.Contains(t, out, "Player X wins!")

		game, err := manager.State(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWon, game.Status)
	})

	t.Run("Ignores invalid input", func(t *testing.T) {
		// When: an occupied cell, an out of range key and garbage are entered
		manager, out := runConsole(t, "5\n5\n0\n10\nhello\n")

		// Then: only the first move counts
		game, err := manager.State(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, game.Moves)
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Contains(t, out, "Player O's turn")
	})

	t.Run("Resets the game", func(t *testing.T) {
		// When: a move is made and the game is reset
		manager, _ := runConsole(t, "1\nr\n")

		// Then: the board is empty again
		game, err := manager.State(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("local"), game)
	})

	t.Run("Stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), "local")
		_, err := manager.Start(context.Background())
		require.NoError(t, err)

		var buf bytes.Buffer
		reader, writer := io.Pipe()
		defer writer.Close()

		console := New(logger, manager, reader, asciiOutput(&buf))

		assert.NoError(t, console.Run(ctx))
	})
}
