package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusTied       = "tied"
)

const BoardSize = 9

var (
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrCorruptedGame     = errors.New("game state is inconsistent")

	winningLines = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// WinningLines returns the rows, columns and diagonals that win the game.
func WinningLines() [8][3]int {
	return winningLines
}

type Game struct {
	ID     string            `json:"id"`
	Board  [BoardSize]string `json:"board"`
	Turn   string            `json:"player_turn"`
	Winner string            `json:"winner,omitempty"`
	Status string            `json:"status"`
	Moves  int               `json:"moves"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  [BoardSize]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Turn:   PlayerX,
		Status: StatusInProgress,
	}
}

// ApplyMove places the current player's mark on cell and returns the resulting status.
// A rejected move leaves the game untouched.
func (that *Game) ApplyMove(cell int) (string, error) {
	if cell < 0 || cell >= len(that.Board) {
		return that.Status, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.IsFinished() {
		return that.Status, apperror.ErrGameFinished
	}

	if that.Board[cell] != EmptyCell {
		return that.Status, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = that.Turn
	that.Moves++

	// the win check must run for the mover, before the turn passes
	switch {
	case that.checkWin():
		that.Status = StatusWon
		that.Winner = that.Turn
	case that.checkTie():
		that.Status = StatusTied
	default:
		that.Turn = Opponent(that.Turn)
	}

	return that.Status, nil
}

// checkWin reports whether the current player owns a complete line.
func (that *Game) checkWin() bool {
	for _, line := range winningLines {
		if that.Board[line[0]] == that.Turn && that.Board[line[1]] == that.Turn && that.Board[line[2]] == that.Turn {
			return true
		}
	}

	return false
}

func (that *Game) checkTie() bool {
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Reset starts a new round on the same game.
func (that *Game) Reset() {
	that.Board = [BoardSize]string{}
	that.Turn = PlayerX
	that.Winner = ""
	that.Status = StatusInProgress
	that.Moves = 0
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsTied() bool {
	return that.Status == StatusTied
}

func (that *Game) IsFinished() bool {
	return that.IsWon() || that.IsTied()
}

func (that *Game) ConfirmInProgress() error {
	switch {
	case that.IsInProgress():
		return nil
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// IsCellPlayable reports whether a click on cell would be accepted.
func (that *Game) IsCellPlayable(cell int) bool {
	if cell < 0 || cell >= len(that.Board) {
		return false
	}

	return that.IsInProgress() && that.Board[cell] == EmptyCell
}

// StatusText is the status line shown under the board.
func (that *Game) StatusText() string {
	switch {
	case that.IsWon():
		return fmt.Sprintf("Player %s wins!", that.Winner)
	case that.IsTied():
		return "It's a tie!"
	default:
		return fmt.Sprintf("Player %s's turn", that.Turn)
	}
}

func (that *Game) Clone() *Game {
	game := *that
	return &game
}

// Validate checks a game restored from storage against the board invariants.
func (that *Game) Validate() error {
	var xCount, oCount int
	for i, cell := range that.Board {
		switch cell {
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		case EmptyCell:
		default:
			return fmt.Errorf("%w: cell %d holds %q", ErrCorruptedGame, i, cell)
		}
	}

	if !IsMark(that.Turn) {
		return fmt.Errorf("%w: turn %q", ErrCorruptedGame, that.Turn)
	}

	if that.Moves != xCount+oCount {
		return fmt.Errorf("%w: %d moves but %d marks", ErrCorruptedGame, that.Moves, xCount+oCount)
	}

	if xCount != oCount && xCount != oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrCorruptedGame, xCount, oCount)
	}

	// the last mover is X when X is ahead
	lastMover := PlayerO
	if xCount > oCount {
		lastMover = PlayerX
	}

	switch that.Status {
	case StatusInProgress:
		if that.Winner != "" || that.lineOwner() != "" || that.checkTie() {
			return fmt.Errorf("%w: game should be over", ErrCorruptedGame)
		}
		if that.Turn != Opponent(lastMover) {
			return fmt.Errorf("%w: turn %q", ErrCorruptedGame, that.Turn)
		}
	case StatusWon:
		if that.Winner != lastMover || that.Turn != that.Winner || !that.checkWin() {
			return fmt.Errorf("%w: winner %q", ErrCorruptedGame, that.Winner)
		}
	case StatusTied:
		if that.Winner != "" || !that.checkTie() || that.lineOwner() != "" {
			return fmt.Errorf("%w: board is not a tie", ErrCorruptedGame)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}

	return nil
}

func (that *Game) lineOwner() string {
	for _, line := range winningLines {
		a, b, c := that.Board[line[0]], that.Board[line[1]], that.Board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return ""
}
