package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

const (
	actionGameState = "game:state"
	actionGameMove  = "game:move"
	actionGameReset = "game:reset"
)

func (that *Server) handleGameState(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameState")

	game, err := that.game.State(ctx)
	if err != nil {
		log.Error("failed to get game", "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to get the game")
	}

	return c.send(actionGameState, snapshotPayload(game))
}

// handleGameMove - applies a move. Successful moves reach every client through the subscription.
func (that *Server) handleGameMove(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameMove")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, "invalid payload")
	}

	if payloadReq.Cell == nil {
		log.Warn("cell is missing in payload")
		return that.sendErrorResponse(c, msg.Action, "cell is required")
	}

	game, err := that.game.ApplyMove(ctx, *payloadReq.Cell)
	if errors.Is(err, apperror.ErrInvalidMove) {
		payload := snapshotPayload(game)
		payload.Error = err.Error()
		return c.send(msg.Action, payload)
	}

	if err != nil {
		log.Error("failed to apply move", "cell", *payloadReq.Cell, "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to apply the move")
	}

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameReset")

	if _, err := that.game.Reset(ctx); err != nil {
		log.Error("failed to reset game", "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to reset the game")
	}

	return nil
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	if err := c.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
