package rest

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

//go:embed static/index.html
var static embed.FS

var indexTemplate = template.Must(template.ParseFS(static, "static/index.html"))

type moveRequest struct {
	Cell *int `json:"cell"`
}

type gameResponse struct {
	entity.Snapshot
	Error string `json:"error,omitempty"`
}

func (that *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := indexTemplate.Execute(w, map[string]string{"SocketPort": that.socketPort}); err != nil {
		that.logger.Error("failed to render index page", "error", err)
	}
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetGame")

	game, err := that.game.State(r.Context())
	if err != nil {
		log.Error("failed to get game", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to get the game")
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Snapshot: game.Snapshot()})
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMove")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Cell == nil {
		that.writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	game, err := that.game.ApplyMove(r.Context(), *req.Cell)
	if errors.Is(err, apperror.ErrInvalidMove) {
		that.writeJSON(w, http.StatusConflict, gameResponse{Snapshot: game.Snapshot(), Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to apply move", "cell", *req.Cell, "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to apply the move")
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Snapshot: game.Snapshot()})
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleReset")

	game, err := that.game.Reset(r.Context())
	if err != nil {
		log.Error("failed to reset game", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to reset the game")
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Snapshot: game.Snapshot()})
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, gameResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body gameResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
