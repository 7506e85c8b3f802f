package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	State(ctx context.Context) (*entity.Game, error)
	ApplyMove(ctx context.Context, cell int) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
}

type Server struct {
	logger     *slog.Logger
	game       gameUseCase
	socketPort string
}

func New(logger *slog.Logger, game gameUseCase, socketPort string) *Server {
	return &Server{
		logger:     logger.With("component", "rest"),
		game:       game,
		socketPort: socketPort,
	}
}

// Router - builds the HTTP routes.
func (that *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", that.handlePing).Methods(http.MethodGet)
	router.HandleFunc("/", that.handleIndex).Methods(http.MethodGet)

	router.HandleFunc("/api/game", that.handleGetGame).Methods(http.MethodGet)
	router.HandleFunc("/api/game/move", that.handleMove).Methods(http.MethodPost)
	router.HandleFunc("/api/game/reset", that.handleReset).Methods(http.MethodPost)

	return router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
