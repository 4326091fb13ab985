package uttt

import (
	"fmt"
	"math/rand"
	"testing"
)

// Reference implementation, rescans all cells
func slowLocalOutcome(square [9]Cell) LocalOutcome {
	for _, p := range _patterns {
		v := square[p[0]]
		if v != CellEmpty && v == square[p[1]] && v == square[p[2]] {
			return wonBy(Player(v))
		}
	}
	if _isFilled(square[:], CellEmpty) {
		return Drawn
	}
	return InProgress
}

func TestRandomPlayout(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	pos := NewState(PlayerA)

	for i := 0; i < 2000; i++ {
		t.Run(fmt.Sprintf("Playout-%d", i), func(t *testing.T) {
			movesLeft := 81
			p := pos.Clone()
			ml := NewMoveList()
			for !p.IsTerminal() && movesLeft > 0 {
				p.GenerateMoves(ml)
				if ml.Size() == 0 {
					t.Fatal("No legal moves available")
				}
				p.MakeMove(ml.Get(r.Intn(ml.Size())))
				movesLeft--

				for bi := range 9 {
					if want := slowLocalOutcome(p.board[bi]); p.localOutcome[bi] != want {
						t.Fatalf("sub-board %d: outcome=%s, want=%s\n%s", bi, p.localOutcome[bi], want, p)
					}
				}
			}
			if p.Termination() == TerminationNone {
				t.Fatal("Game ended without a termination condition")
			}
		})
	}
}

func TestCheckLocalOutcome(t *testing.T) {
	tests := []struct {
		a, b uint16
		want LocalOutcome
	}{
		{0, 0, InProgress},
		{0b000000111, 0b000011000, WonByA},
		{0b000001001, 0b001010100, WonByB},
		{0b110001110, 0b001110001, Drawn},
		{0b100010001, 0b011101110, WonByA},
	}

	for _, tt := range tests {
		if got := checkLocalOutcome(tt.a, tt.b); got != tt.want {
			t.Errorf("checkLocalOutcome(%09b, %09b)=%s, want=%s", tt.a, tt.b, got, tt.want)
		}
	}
}
