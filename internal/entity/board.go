package entity

import "strings"

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

const (
	OutcomeWin  = "win"
	OutcomeLose = "lose"
	OutcomeTie  = "tie"
)

// Board is a 3x3 grid stored in row-major order.
type Board [9]string

// IsMark reports whether mark is one of the two playable symbols.
func IsMark(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

// Opponent returns the other playable symbol.
func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Count returns how many cells hold mark.
func (that Board) Count(mark string) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that Board) IsFull() bool {
	return that.Count(EmptyCell) == 0
}

// Values encodes the board for a learner: X is 1, O is -1, empty is 0.
func (that Board) Values() [9]float64 {
	var values [9]float64
	for i, cell := range that {
		switch cell {
		case PlayerX:
			values[i] = 1
		case PlayerO:
			values[i] = -1
		}
	}

	return values
}

func (that Board) String() string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}
		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteString("|")
			}
			cell := that[row*3+col]
			if cell == EmptyCell {
				cell = " "
			}
			sb.WriteString(" " + cell + " ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
