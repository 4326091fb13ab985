package bench

import (
	"github.com/rs/zerolog"
)

// Receives arena events, OnFinishedGame may be called concurrently by the workers
type ListenerLike interface {
	OnFinishedGame(record GameRecord)
	Summary(info VersusSummaryInfo)
}

type DefaultListener struct{}

func (DefaultListener) OnFinishedGame(GameRecord) {}
func (DefaultListener) Summary(VersusSummaryInfo) {}

// Logs every finished game and the summary
type LogListener struct {
	logger zerolog.Logger
}

func NewLogListener(logger zerolog.Logger) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) OnFinishedGame(record GameRecord) {
	l.logger.Info().
		Str("game", record.ID).
		Int("worker", record.WorkerID).
		Bool("player1-first", record.P1First).
		Int("moves", len(record.Moves)).
		Str("winner", record.Result.String()).
		Str("termination", record.Termination.String()).
		Msg("game-finished")
}

func (l *LogListener) Summary(info VersusSummaryInfo) {
	l.logger.Info().
		Int("games", info.TotalGames).
		Int(info.P1Name, info.P1Wins).
		Int(info.P2Name, info.P2Wins).
		Int("draws", info.Draws).
		Int("first-to-move-wins", info.FirstToMoveWins).
		Int("second-to-move-wins", info.SecondToMoveWins).
		Msg("arena-summary")
}
