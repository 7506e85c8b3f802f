package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// IsMark reports whether value is a mark a player can place.
func IsMark(value string) bool {
	return value == PlayerX || value == PlayerO
}

// Opponent returns the mark that moves after mark.
func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
