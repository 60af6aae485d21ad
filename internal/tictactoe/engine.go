package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

const (
	Size  = 3
	Cells = Size * Size
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidMark = errors.New("invalid mark")

	WinCombos = [][3]int{
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

// Engine owns the board of a single episode. It has no notion of turns: the caller decides
// which mark is placed on every move.
type Engine struct {
	board  entity.Board
	over   bool
	winner string
}

func NewEngine() *Engine {
	return &Engine{}
}

// Move places mark at (row, col) and recomputes the terminal status.
func (that *Engine) Move(mark string, row, col int) error {
	if that.over {
		return apperror.ErrGameFinished
	}

	if err := validateMove(that.board, mark, row, col); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	that.board[row*Size+col] = mark
	that.updateGameStatus()

	return nil
}

// MoveIndex is Move with a row-major cell index.
func (that *Engine) MoveIndex(mark string, cell int) error {
	if cell < 0 || cell >= Cells {
		return fmt.Errorf("invalid move: %w: cell %d", ErrInvalidCell, cell)
	}

	return that.Move(mark, cell/Size, cell%Size)
}

func (that *Engine) Board() entity.Board {
	return that.board
}

func (that *Engine) IsOver() bool {
	return that.over
}

// Winner returns the winning mark. The second value is false on a tie or an ongoing game.
func (that *Engine) Winner() (string, bool) {
	return that.winner, that.winner != ""
}

// LegalCells returns the indexes of empty cells, or nothing once the game is over.
func (that *Engine) LegalCells() []int {
	if that.over {
		return nil
	}

	cells := make([]int, 0, Cells)
	for i, cell := range that.board {
		if cell == entity.EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, mark string, row, col int) error {
	if !entity.IsMark(mark) {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("%w: row %d col %d", ErrInvalidCell, row, col)
	}

	if board[row*Size+col] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func (that *Engine) updateGameStatus() {
	switch winner := checkGameStatus(that.board); winner {
	case entity.PlayerX, entity.PlayerO:
		that.winner = winner
		that.over = true
	case entity.PlayerTie:
		that.over = true
	}
}

func checkGameStatus(board entity.Board) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	if board.IsFull() {
		return entity.PlayerTie
	}

	return ""
}
