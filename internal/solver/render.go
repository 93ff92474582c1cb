// internal/solver/render.go
//
// Text rendering of a scored guess, one square per letter.

package solver

import "strings"

// Squares used by Render.
const (
	GreenSquare  = "🟩" // Correct
	YellowSquare = "🟨" // MisplacedLetter
	WhiteSquare  = "⬜" // Absent
)

// Render draws a result as colored squares.
func Render(result []Correctness) string {
	var b strings.Builder
	for _, c := range result {
		switch c {
		case Correct:
			b.WriteString(GreenSquare)
		case MisplacedLetter:
			b.WriteString(YellowSquare)
		default:
			b.WriteString(WhiteSquare)
		}
	}
	return b.String()
}
