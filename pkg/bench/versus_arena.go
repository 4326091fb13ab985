// Package bench plays series of games between two agents (search engines with
// different configurations, or a random baseline) and collects the statistics.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type VersusArena struct {
	VersusArenaStats
	Player1  AgentFactory
	Player2  AgentFactory
	P1Name   string
	P2Name   string
	NGames   int
	NWorkers int
	Budget   time.Duration // thinking time per move
	First    uttt.Player   // player making the first move of every game
	Listener ListenerLike
	logger   zerolog.Logger
}

func NewVersusArena(player1, player2 AgentFactory) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		P1Name:   "player1",
		P2Name:   "player2",
		NGames:   100,
		NWorkers: 2,
		Budget:   100 * time.Millisecond,
		First:    uttt.PlayerA,
		Listener: DefaultListener{},
		logger:   zerolog.Nop(),
	}
}

func (va *VersusArena) Setup(budget time.Duration, nGames, nWorkers int) *VersusArena {
	va.Budget = budget
	va.NGames = max(nGames, 0)
	va.NWorkers = max(nWorkers, 1)
	return va
}

func (va *VersusArena) WithNames(p1, p2 string) *VersusArena {
	va.P1Name, va.P2Name = p1, p2
	return va
}

func (va *VersusArena) WithListener(listener ListenerLike) *VersusArena {
	va.Listener = listener
	return va
}

func (va *VersusArena) WithLogger(logger zerolog.Logger) *VersusArena {
	va.logger = logger
	return va
}

// Play all games, blocking until they finish. Games are distributed equally between
// the workers, and the agents alternate who moves first. Returns the first agent
// failure, or the context's error if it was cancelled.
func (va *VersusArena) Start(ctx context.Context) (VersusSummaryInfo, error) {
	va.VersusArenaStats = VersusArenaStats{}
	workers := max(min(va.NWorkers, va.NGames), 1)

	g, ctx := errgroup.WithContext(ctx)
	for id := range workers {
		g.Go(func() error {
			return va.worker(ctx, id, workers)
		})
	}

	err := g.Wait()
	summary := va.summary(workers)
	va.Listener.Summary(summary)
	return summary, err
}

func (va *VersusArena) summary(workers int) VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          workers,
		P1Name:           va.P1Name,
		P2Name:           va.P2Name,
	}
}

// Plays every 'stride'-th game, starting at game 'id'
func (va *VersusArena) worker(ctx context.Context, id, stride int) error {
	p1 := va.Player1(id)
	p2 := va.Player2(id)
	for _, agent := range []Agent{p1, p2} {
		if ca, ok := agent.(ContextAgent); ok {
			ca.SetContext(ctx)
		}
	}
	log := va.logger.With().Int("worker", id).Logger()

	for game := id; game < va.NGames; game += stride {
		if err := ctx.Err(); err != nil {
			return err
		}

		p1First := game%2 == 0
		first, second := p1, p2
		if !p1First {
			first, second = p2, p1
		}

		record, err := va.playGame(ctx, first, second)
		if err != nil {
			log.Error().Err(err).Int("game", game).Msg("game-failed")
			return err
		}

		outcome := computeOutcome(record.state, va.First)
		result := toAgentResult(outcome, p1First)
		va.add(result, outcome)

		va.Listener.OnFinishedGame(GameRecord{
			ID:          uuid.NewString(),
			WorkerID:    id,
			P1First:     p1First,
			Moves:       record.moves,
			Result:      result,
			Termination: record.state.Termination(),
		})
	}

	log.Debug().Msg("worker-finished")
	return nil
}

type playedGame struct {
	state *uttt.State
	moves []uttt.Action
}

func (va *VersusArena) playGame(ctx context.Context, first, second Agent) (playedGame, error) {
	gamePos := uttt.NewState(va.First)
	moves := make([]uttt.Action, 0, search.MaxPly)
	agents := [2]Agent{first, second}

	for turn := 0; !gamePos.IsTerminal(); turn ^= 1 {
		if err := ctx.Err(); err != nil {
			return playedGame{}, err
		}

		m, err := agents[turn].ChooseAction(gamePos, va.Budget)
		if err != nil {
			return playedGame{}, fmt.Errorf("agent failed on %s: %w", gamePos.Notation(), err)
		}
		if err := gamePos.MakeLegalMove(m); err != nil {
			return playedGame{}, err
		}
		moves = append(moves, m)
	}

	return playedGame{state: gamePos, moves: moves}, nil
}
