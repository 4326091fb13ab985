// Package render draws the board for terminals, using colors when the output supports them.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

const (
	colorA     = "1" // red
	colorB     = "4" // blue
	colorLegal = "2" // green
)

type Renderer struct {
	out *termenv.Output
}

// Renderer detecting the color profile of 'w'
func New(w io.Writer) *Renderer {
	return &Renderer{out: termenv.NewOutput(w)}
}

func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

func (r *Renderer) cell(s *uttt.State, a uttt.Action, legal bool) string {
	style := r.out.String(string(s.Cell(a).Rune()))

	switch s.Cell(a) {
	case uttt.CellA:
		style = style.Foreground(r.out.Profile.Color(colorA)).Bold()
	case uttt.CellB:
		style = style.Foreground(r.out.Profile.Color(colorB)).Bold()
	default:
		if legal {
			style = style.Foreground(r.out.Profile.Color(colorLegal))
		} else {
			style = style.Faint()
		}
	}

	if a == s.LastMove() {
		style = style.Underline()
	}
	return style.String()
}

// Board as text: rows are labelled with the macro and the local row digits,
// columns with the macro (A-C) and the local (a-c) letters, as in the move notation.
func (r *Renderer) Board(s *uttt.State) string {
	builder := strings.Builder{}
	legal := uttt.NewMoveList()
	s.GenerateMoves(legal)

	builder.WriteString("      A       B       C\n")
	builder.WriteString("    a b c   a b c   a b c\n")

	for row := 0; row < 9; row++ {
		macroRow, localRow := row/3, row%3
		if row > 0 && localRow == 0 {
			builder.WriteString("    ------+-------+------\n")
		}

		if localRow == 0 {
			builder.WriteByte(byte('3' - macroRow))
		} else {
			builder.WriteByte(' ')
		}
		builder.WriteByte(' ')
		builder.WriteByte(byte('3' - localRow))
		builder.WriteByte(' ')

		for col := 0; col < 9; col++ {
			macroCol, localCol := col/3, col%3
			if col > 0 {
				if localCol == 0 {
					builder.WriteString(" | ")
				} else {
					builder.WriteByte(' ')
				}
			}

			a := uttt.NewAction(macroRow, macroCol, localRow, localCol)
			builder.WriteString(r.cell(s, a, legal.Contains(a)))
		}
		builder.WriteByte('\n')
	}

	builder.WriteString(r.Status(s))
	builder.WriteByte('\n')
	return builder.String()
}

// Single line describing whose turn it is, or how the game ended
func (r *Renderer) Status(s *uttt.State) string {
	if !s.IsTerminal() {
		return fmt.Sprintf("%s to move, active board: %s, ply %d", s.SideToMove(), s.ActiveBoard(), s.Ply())
	}

	if winner, ok := s.Winner(); ok {
		return r.out.String(fmt.Sprintf("%s wins after %d plies", winner, s.Ply())).Bold().String()
	}
	return r.out.String(fmt.Sprintf("draw after %d plies", s.Ply())).Bold().String()
}

// Macro board, the outcome of every sub-board
func (r *Renderer) Outcomes(s *uttt.State) string {
	builder := strings.Builder{}
	outcomes := s.LocalOutcomes()

	for row := range 3 {
		for col := range 3 {
			if col > 0 {
				builder.WriteByte(' ')
			}

			var symbol string
			switch outcomes[row][col] {
			case uttt.WonByA:
				symbol = r.out.String("X").Foreground(r.out.Profile.Color(colorA)).Bold().String()
			case uttt.WonByB:
				symbol = r.out.String("O").Foreground(r.out.Profile.Color(colorB)).Bold().String()
			case uttt.Drawn:
				symbol = "="
			default:
				symbol = "."
			}
			builder.WriteString(symbol)
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

func (r *Renderer) Print(s *uttt.State) {
	fmt.Fprint(r.out, r.Board(s))
}
