package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const prompt = "Choose a cell (1-9), r to reset, q to quit: "

type gameUseCase interface {
	State(ctx context.Context) (*entity.Game, error)
	ApplyMove(ctx context.Context, cell int) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
}

// Console plays the game on a terminal, one command per line.
type Console struct {
	logger *slog.Logger
	game   gameUseCase
	input  io.Reader
	output *termenv.Output
}

func New(logger *slog.Logger, game gameUseCase, input io.Reader, output *termenv.Output) *Console {
	return &Console{
		logger: logger.With("component", "terminal"),
		game:   game,
		input:  input,
		output: output,
	}
}

// Run - reads commands until q, end of input or ctx cancellation.
func (that *Console) Run(ctx context.Context) error {
	lines, scanErr := that.readLines(ctx)

	game, err := that.game.State(ctx)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	for {
		if err = that.draw(game); err != nil {
			return err
		}

		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			return <-scanErr
		}

		command := strings.ToLower(strings.TrimSpace(line))
		if command == "q" {
			return nil
		}

		next, execErr := that.execute(ctx, command)
		if execErr != nil {
			return execErr
		}

		if next != nil {
			game = next
		}
	}
}

// execute returns the game to draw next, or nil when the command had no effect.
func (that *Console) execute(ctx context.Context, command string) (*entity.Game, error) {
	log := that.logger.With("method", "execute", "command", command)

	if command == "r" {
		game, err := that.game.Reset(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reset game: %w", err)
		}
		return game, nil
	}

	key, err := strconv.Atoi(command)
	if err != nil {
		log.Debug("ignoring unknown command")
		return nil, nil
	}

	game, err := that.game.ApplyMove(ctx, key-1)
	if errors.Is(err, apperror.ErrInvalidMove) {
		log.Debug("move rejected", "reason", err)
		return game, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	return game, nil
}

func (that *Console) draw(game *entity.Game) error {
	if that.output.Profile != termenv.Ascii {
		that.output.ClearScreen()
	}

	if _, err := io.WriteString(that.output, Render(that.output, game.Snapshot())+"\n"+prompt); err != nil {
		return fmt.Errorf("failed to draw board: %w", err)
	}

	return nil
}

func (that *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}

		if err := scanner.Err(); err != nil {
			scanErr <- fmt.Errorf("failed to read input: %w", err)
			return
		}

		scanErr <- nil
	}()

	return lines, scanErr
}
