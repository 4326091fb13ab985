package search

import (
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type pvLine struct {
	moves [MaxPly]uttt.Action
	size  int
}

// Set the line to 'move' followed by the child's line
func (pv *pvLine) update(move uttt.Action, child *pvLine) {
	pv.moves[0] = move
	copy(pv.moves[1:], child.moves[:child.size])
	pv.size = child.size + 1
}

func (pv *pvLine) slice() []uttt.Action {
	line := make([]uttt.Action, pv.size)
	copy(line, pv.moves[:pv.size])
	return line
}

// Score of a root move, 'exact' is false if the score is only an upper bound
type rootRecord struct {
	score int
	exact bool
	pv    []uttt.Action
}

// Single searching goroutine, owns its copy of the position
type worker struct {
	engine   *Engine
	pos      *uttt.State
	prevPv   []uttt.Action
	interval uint64
	lists    [MaxPly + 1]uttt.MoveList
}

func newWorker(engine *Engine, pos *uttt.State, prevPv []uttt.Action, interval uint64) *worker {
	return &worker{
		engine:   engine,
		pos:      pos,
		prevPv:   prevPv,
		interval: interval,
	}
}

// Search every 'stride'-th root move starting at 'offset', with a window local to this worker
func (w *worker) searchMoves(moves []uttt.Action, records []rootRecord, offset, stride, depth int) {
	alpha := -infinity
	var child pvLine

	for i := offset; i < len(moves); i += stride {
		m := moves[i]
		onPv := len(w.prevPv) > 0 && w.prevPv[0] == m

		child.size = 0
		w.pos.MakeMove(m)
		score := -w.negamax(depth-1, 1, -infinity, -alpha, onPv, &child)
		w.pos.UndoMove()

		if w.engine.aborted.Load() {
			return
		}

		var line pvLine
		line.update(m, &child)
		records[i] = rootRecord{score: score, exact: score > alpha, pv: line.slice()}
		if score > alpha {
			alpha = score
		}
	}
}

// Value of a terminal position for the side to move, faster wins score higher
func terminalScore(pos *uttt.State, ply int) int {
	winner, ok := pos.Winner()
	switch {
	case !ok:
		return 0
	case winner == pos.SideToMove():
		return Mate - ply
	default:
		return -(Mate - ply)
	}
}

// Fail-soft negamax, scores are from the side to move's perspective
func (w *worker) negamax(depth, ply, alpha, beta int, onPv bool, pv *pvLine) int {
	e := w.engine
	nodes := e.nodes.Add(1)

	if e.canAbort {
		if e.aborted.Load() {
			return 0
		}
		if nodes%w.interval == 0 && !e.limiter.Ok(nodes, 0) {
			e.aborted.Store(true)
			return 0
		}
	}

	if w.pos.IsTerminal() {
		return terminalScore(w.pos, ply)
	}
	if depth <= 0 {
		return e.evaluator.Evaluate(w.pos)
	}

	ml := &w.lists[ply]
	w.pos.GenerateMoves(ml)
	if onPv && ply < len(w.prevPv) {
		ml.MoveToFront(w.prevPv[ply])
	} else {
		onPv = false
	}

	best := -infinity
	var child pvLine

	for _, m := range ml.Slice() {
		child.size = 0
		w.pos.MakeMove(m)
		score := -w.negamax(depth-1, ply+1, -beta, -alpha, onPv && m == w.prevPv[ply], &child)
		w.pos.UndoMove()

		if e.aborted.Load() {
			return 0
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				pv.update(m, &child)
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
