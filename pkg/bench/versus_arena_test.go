package bench

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type recordingListener struct {
	mu      sync.Mutex
	records []GameRecord
	summary VersusSummaryInfo
}

func (l *recordingListener) OnFinishedGame(record GameRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

func (l *recordingListener) Summary(info VersusSummaryInfo) {
	l.summary = info
}

func TestToAgentResult(t *testing.T) {
	tests := []struct {
		name        string
		outcome     GameOutcome
		p1WentFirst bool
		want        VersusMatchResult
	}{
		{"draw", GameOutcome{IsDraw: true}, true, VersusDraw},
		{"p1 first and wins", GameOutcome{FirstPlayerWon: true}, true, VersusPl1Win},
		{"p1 first and loses", GameOutcome{FirstPlayerWon: false}, true, VersusPl2Win},
		{"p2 first and wins", GameOutcome{FirstPlayerWon: true}, false, VersusPl2Win},
		{"p2 first and loses", GameOutcome{FirstPlayerWon: false}, false, VersusPl1Win},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAgentResult(tt.outcome, tt.p1WentFirst))
		})
	}
}

func TestComputeOutcome(t *testing.T) {
	s, err := uttt.ParseNotation("ooo6/9/9/9/ooo6/9/9/9/ooo6 x -")
	require.NoError(t, err)

	assert.Equal(t, GameOutcome{FirstPlayerWon: true}, computeOutcome(s, uttt.PlayerB))
	assert.Equal(t, GameOutcome{FirstPlayerWon: false}, computeOutcome(s, uttt.PlayerA))
	assert.Panics(t, func() { computeOutcome(uttt.NewState(uttt.PlayerA), uttt.PlayerA) })
}

func TestRandomVersusRandom(t *testing.T) {
	listener := &recordingListener{}
	arena := NewVersusArena(RandomAgents(1), RandomAgents(100)).
		Setup(0, 20, 3).
		WithListener(listener).
		WithLogger(zerolog.Nop())

	summary, err := arena.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, summary.TotalGames)
	assert.Equal(t, 20, summary.P1Wins+summary.P2Wins+summary.Draws)
	assert.Equal(t, summary.P1Wins+summary.P2Wins, summary.FirstToMoveWins+summary.SecondToMoveWins)
	assert.Equal(t, 3, summary.Workers)
	assert.Equal(t, summary, listener.summary)
	require.Len(t, listener.records, 20)

	ids := map[string]bool{}
	for _, record := range listener.records {
		assert.False(t, ids[record.ID], "duplicate game id %s", record.ID)
		ids[record.ID] = true
		assert.NotEqual(t, uttt.TerminationNone, record.Termination)

		// Replaying the moves must reach the same end
		s := uttt.NewState(uttt.PlayerA)
		for _, m := range record.Moves {
			require.NoError(t, s.MakeLegalMove(m))
		}
		assert.Equal(t, record.Termination, s.Termination())
	}
}

func TestEngineBeatsRandom(t *testing.T) {
	engines := EngineAgents(
		search.WithLimits(search.DefaultLimits().SetDepth(3)),
		search.WithLogger(zerolog.Nop()),
	)
	arena := NewVersusArena(engines, RandomAgents(7)).
		WithNames("engine", "random").
		Setup(time.Second, 6, 2)

	summary, err := arena.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, summary.TotalGames)
	assert.Greater(t, summary.P1Wins, summary.P2Wins)
}

func TestCancelledArena(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := NewVersusArena(RandomAgents(1), RandomAgents(2)).Setup(0, 10, 2)
	summary, err := arena.Start(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.TotalGames)
}

func TestCancelInterruptsThinkingEngines(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engines := EngineAgents(
		search.WithLimits(search.DefaultLimits().SetCheckInterval(256)),
		search.WithLogger(zerolog.Nop()),
	)
	arena := NewVersusArena(engines, engines).Setup(time.Minute, 4, 2)

	time.AfterFunc(50*time.Millisecond, cancel)
	start := time.Now()
	summary, err := arena.Start(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Zero(t, summary.TotalGames)
}
