package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/repository"
)

// subscriberBuffer is how many updates a slow subscriber may lag behind before updates are dropped.
const subscriberBuffer = 8

var ErrNotStarted = errors.New("game manager is not started")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

// GameManager owns the single game the presentation layers share.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	gameID   string

	gameMutex sync.Mutex
	game      *entity.Game

	subscribersMutex sync.Mutex
	subscribers      map[int]chan *entity.Game
	nextSubscriberID int
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, gameID string) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager", "gameID", gameID),
		gameRepo: gameRepo,
		gameID:   gameID,

		subscribers: make(map[int]chan *entity.Game),
	}
}

// Start - restores the stored game or creates a new one.
func (that *GameManager) Start(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "Start")

	that.gameMutex.Lock()
	defer that.gameMutex.Unlock()

	game, err := that.gameRepo.GetByID(ctx, that.gameID)
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		game = entity.NewGame(that.gameID)
		if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		log.Info("new game created")
	case err != nil:
		return nil, fmt.Errorf("failed to get game: %w", err)
	default:
		if err = game.Validate(); err != nil {
			log.Warn("stored game is invalid, resetting", "error", err)

			game.ID = that.gameID
			game.Reset()
			if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
				return nil, fmt.Errorf("failed to reset game: %w", err)
			}
		}

		log.Info("game restored", "status", game.Status, "moves", game.Moves)
	}

	that.game = game

	return game.Clone(), nil
}

func (that *GameManager) State(_ context.Context) (*entity.Game, error) {
	that.gameMutex.Lock()
	defer that.gameMutex.Unlock()

	if that.game == nil {
		return nil, ErrNotStarted
	}

	return that.game.Clone(), nil
}

// ApplyMove - plays cell for the current player. A rejected move returns the unchanged game with the error.
func (that *GameManager) ApplyMove(ctx context.Context, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "ApplyMove", "cell", cell)

	that.gameMutex.Lock()
	defer that.gameMutex.Unlock()

	if that.game == nil {
		return nil, ErrNotStarted
	}

	game := that.game.Clone()
	mark := game.Turn

	status, err := game.ApplyMove(cell)
	if errors.Is(err, apperror.ErrInvalidMove) {
		log.Debug("move rejected", "reason", err)
		return that.game.Clone(), err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	if err = that.commit(ctx, game); err != nil {
		return nil, err
	}

	log.Info("move applied", "player", mark, "status", status)

	if game.IsFinished() {
		log.Info("game finished", "result", game.StatusText())
	}

	return game.Clone(), nil
}

func (that *GameManager) Reset(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "Reset")

	that.gameMutex.Lock()
	defer that.gameMutex.Unlock()

	if that.game == nil {
		return nil, ErrNotStarted
	}

	game := that.game.Clone()
	game.Reset()

	if err := that.commit(ctx, game); err != nil {
		return nil, err
	}

	log.Info("game reset")

	return game.Clone(), nil
}

// Subscribe - returns a channel receiving the game after every change. It is closed once ctx is done.
func (that *GameManager) Subscribe(ctx context.Context) <-chan *entity.Game {
	updates := make(chan *entity.Game, subscriberBuffer)

	that.subscribersMutex.Lock()
	id := that.nextSubscriberID
	that.nextSubscriberID++
	that.subscribers[id] = updates
	that.subscribersMutex.Unlock()

	go func() {
		<-ctx.Done()

		that.subscribersMutex.Lock()
		delete(that.subscribers, id)
		close(updates)
		that.subscribersMutex.Unlock()
	}()

	return updates
}

// commit stores game and makes it current. Must be called with gameMutex held.
func (that *GameManager) commit(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	that.game = game
	that.publish(game)

	return nil
}

func (that *GameManager) publish(game *entity.Game) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	for id, updates := range that.subscribers {
		select {
		case updates <- game.Clone():
		default:
			that.logger.Warn("subscriber is too slow, update dropped", "subscriber", id)
		}
	}
}
