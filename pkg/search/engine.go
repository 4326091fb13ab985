// Package search implements a depth-limited alpha-beta (negamax) decision
// engine with iterative deepening under a wall-clock budget.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-uttt/pkg/eval"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

var ErrNoLegalMove = errors.New("no legal move")

const (
	// Maximum number of plies in a game, every move fills one of the 81 cells
	MaxPly = 81

	// Score of a won terminal state at the root, reduced by the ply it's reached at
	Mate = 1_000_000

	// Scores beyond this are terminal (proven) results
	mateThreshold = Mate - MaxPly - 1

	infinity = Mate + 1
)

// Default movetime of an engine created without explicit limits, in milliseconds
const DefaultMovetime = 1000

type Engine struct {
	evaluator eval.Evaluator
	limiter   LimiterLike
	listener  StatsListener
	logger    zerolog.Logger

	nodes   atomic.Uint64
	aborted atomic.Bool
	// Whether the current iteration may be interrupted
	canAbort bool
}

type Option func(*Engine)

func WithEvaluator(e eval.Evaluator) Option {
	return func(engine *Engine) {
		engine.evaluator = e
	}
}

func WithLimits(limits *Limits) Option {
	return func(engine *Engine) {
		engine.limiter.SetLimits(limits)
	}
}

func WithLimiter(limiter LimiterLike) Option {
	return func(engine *Engine) {
		limiter.SetLimits(engine.limiter.Limits())
		engine.limiter = limiter
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(engine *Engine) {
		engine.logger = logger
	}
}

func WithListener(listener StatsListener) Option {
	return func(engine *Engine) {
		engine.listener = listener
	}
}

// Create new engine, by default using the heuristic evaluator with default weights
// and a 1 second movetime. The engine is not safe for concurrent searches.
func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		evaluator: eval.NewHeuristic(eval.DefaultWeights()),
		limiter:   NewLimiter(),
		listener:  NewStatsListener(),
		logger:    zerolog.Nop(),
	}
	engine.limiter.SetLimits(DefaultLimits().SetMovetime(DefaultMovetime))

	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

func (e *Engine) SetContext(ctx context.Context) {
	e.limiter.SetContext(ctx)
}

func (e *Engine) SetLimits(limits *Limits) {
	e.limiter.SetLimits(limits)
}

func (e *Engine) Limits() *Limits {
	return e.limiter.Limits()
}

func (e *Engine) SetListener(listener StatsListener) {
	e.listener = listener
}

// Set the stop signal, the search returns the result of the last completed depth
func (e *Engine) Stop() {
	e.limiter.SetStop(true)
}

// Choose a move for the side to move within given time budget. A zero (or negative)
// budget still completes the depth 1 search. Uses the engine's limits for everything
// else than the movetime.
func (e *Engine) ChooseAction(s *uttt.State, budget time.Duration) (uttt.Action, error) {
	limits := *e.limiter.Limits()
	limits.SetMovetime(max(int(budget.Milliseconds()), 0))

	result, err := e.search(s, &limits)
	return result.BestMove, err
}

// Search the state with the engine's limits
func (e *Engine) Search(s *uttt.State) (Result, error) {
	return e.search(s, e.limiter.Limits())
}

func (e *Engine) search(root *uttt.State, limits *Limits) (Result, error) {
	rootMoves := root.LegalActions()
	if len(rootMoves) == 0 {
		return Result{BestMove: uttt.ActionNone},
			fmt.Errorf("%w: %s (%s)", ErrNoLegalMove, root.Notation(), root.Termination())
	}

	previous := e.limiter.Limits()
	e.limiter.SetLimits(limits)
	defer e.limiter.SetLimits(previous)

	e.limiter.Reset()
	e.nodes.Store(0)

	// Can't go deeper than the number of empty cells
	maxDepth := min(max(limits.Depth, 1), MaxPly-root.Ply())
	threads := max(limits.NThreads, 1)
	interval := max(limits.CheckInterval, 1)

	result := Result{
		BestMove: rootMoves[0],
		Turn:     root.SideToMove(),
	}
	var pv []uttt.Action
	proven := false

	e.logger.Debug().
		Str("position", root.Notation()).
		Int("max-depth", maxDepth).
		Int("threads", threads).
		Int("movetime", limits.Movetime).
		Msg("search-start")

	for depth := 1; depth <= maxDepth; depth++ {
		// Depth 1 is always searched, so that there is a move to play
		if depth > 1 && !e.limiter.Ok(e.nodes.Load(), depth) {
			break
		}

		e.canAbort = depth > 1
		e.aborted.Store(false)

		line, score, ok := e.searchRoot(root, pv, depth, threads, interval)
		if !ok {
			e.logger.Debug().Int("depth", depth).Msg("iteration-interrupted")
			break
		}

		pv = line
		result = e.makeResult(root, line, score, depth)
		e.listener.invokeDepth(result)
		e.logger.Debug().
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", result.Nodes).
			Str("pv", pvString(line)).
			Msg("depth-completed")

		if abs(score) > mateThreshold {
			proven = true
			break
		}
	}

	// Guard against returning anything else than a legal root action
	if !root.IsLegal(result.BestMove) {
		e.logger.Warn().Str("move", result.BestMove.String()).Msg("illegal-best-move")
		result.BestMove = rootMoves[0]
		result.Pv = []uttt.Action{rootMoves[0]}
	}

	e.limiter.EvaluateStopReason(e.nodes.Load(), result.Depth+1)
	result.StopReason = e.limiter.StopReason()
	if result.Depth >= maxDepth {
		result.StopReason |= StopDepth
	}
	if proven {
		result.StopReason |= StopProven
	}
	result.Elapsed = time.Duration(e.limiter.Elapsed()) * time.Millisecond
	result.Nodes = e.nodes.Load()
	result.Nps = result.Nodes * 1000 / uint64(max(result.Elapsed.Milliseconds(), 1))
	e.listener.invokeStop(result)

	e.logger.Info().
		Str("bestmove", result.BestMove.String()).
		Str("eval", result.StringValue()).
		Int("depth", result.Depth).
		Uint64("nodes", result.Nodes).
		Uint64("nps", result.Nps).
		Str("stop", result.StopReason.String()).
		Msg("search-done")

	return result, nil
}

func (e *Engine) makeResult(root *uttt.State, pv []uttt.Action, score, depth int) Result {
	elapsed := time.Duration(e.limiter.Elapsed()) * time.Millisecond
	nodes := e.nodes.Load()

	scoreType := ValueScore
	if abs(score) > mateThreshold {
		scoreType = MateScore
	}

	return Result{
		BestMove:  pv[0],
		Score:     score,
		ScoreType: scoreType,
		Pv:        pv,
		Depth:     depth,
		Nodes:     nodes,
		Nps:       nodes * 1000 / uint64(max(elapsed.Milliseconds(), 1)),
		Elapsed:   elapsed,
		Turn:      root.SideToMove(),
	}
}

// Search all root moves at given depth, split between 'threads' workers. Returns
// the principal variation and its score, 'ok' is false if the iteration was interrupted.
func (e *Engine) searchRoot(root *uttt.State, prevPv []uttt.Action, depth, threads int, interval uint64) ([]uttt.Action, int, bool) {
	ml := uttt.NewMoveList()
	root.GenerateMoves(ml)
	if len(prevPv) > 0 {
		ml.MoveToFront(prevPv[0])
	}
	moves := ml.Slice()

	threads = min(threads, len(moves))
	records := make([]rootRecord, len(moves))
	workers := make([]*worker, threads)
	for i := range workers {
		workers[i] = newWorker(e, root.Clone(), prevPv, interval)
	}

	if threads == 1 {
		workers[0].searchMoves(moves, records, 0, 1, depth)
	} else {
		g := errgroup.Group{}
		for i, w := range workers {
			g.Go(func() error {
				w.searchMoves(moves, records, i, threads, depth)
				return nil
			})
		}
		_ = g.Wait()
	}

	if e.aborted.Load() {
		return nil, 0, false
	}

	// Pick the highest exact score, first in search order on ties. Bounded scores
	// never exceed their worker's best exact score, so they can't be better.
	best := -1
	for i := range records {
		if records[i].exact && (best == -1 || records[i].score > records[best].score) {
			best = i
		}
	}
	return records[best].pv, records[best].score, true
}
