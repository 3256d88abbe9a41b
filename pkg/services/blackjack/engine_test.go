package blackjack

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource plays back a fixed list of actions
type scriptedSource struct {
	actions []PlayerAction
	tables  []Table
}

func (s *scriptedSource) NextAction(ctx context.Context, table Table) (PlayerAction, error) {
	s.tables = append(s.tables, table)
	if len(s.actions) == 0 {
		return 0, io.EOF
	}
	action := s.actions[0]
	s.actions = s.actions[1:]
	return action, nil
}

func newTestEngine(cards ...int) *Engine {
	return NewEngine(entities.NewStackedShoe(ranks(cards...)...),
		WithIDGenerator(func() string { return "round-1" }))
}

func TestPlayRoundBlackjackNeedsNoInput(t *testing.T) {
	engine := newTestEngine(1, 10, 10, 9)
	src := &scriptedSource{}
	obs := &recordingObserver{}

	outcome, err := engine.PlayRound(context.Background(), 100, 10, src, obs)
	require.NoError(t, err)

	assert.Equal(t, int64(15), outcome.TotalPayout)
	assert.Equal(t, "round-1", outcome.RoundID)
	assert.Empty(t, src.tables)
	require.Len(t, obs.tables, 1)
	assert.False(t, obs.tables[0].HideHole)
	assert.Same(t, outcome, obs.outcome)
}

func TestPlayRoundStand(t *testing.T) {
	engine := newTestEngine(10, 10, 8, 4, 3)
	src := &scriptedSource{actions: []PlayerAction{ActionStand}}
	obs := &recordingObserver{}

	outcome, err := engine.PlayRound(context.Background(), 100, 10, src, obs)
	require.NoError(t, err)

	assert.Equal(t, int64(10), outcome.TotalPayout)
	assert.Equal(t, int64(110), outcome.BalanceAfter())
	require.Len(t, src.tables, 1)
	assert.True(t, src.tables[0].HideHole)
	assert.Equal(t, int64(90), src.tables[0].Spendable)
}

func TestPlayRoundRejectsIneligibleAction(t *testing.T) {
	engine := newTestEngine(10, 10, 5, 7, 8)
	src := &scriptedSource{actions: []PlayerAction{ActionSplit, ActionHit}}
	obs := &recordingObserver{}

	outcome, err := engine.PlayRound(context.Background(), 100, 10, src, obs)
	require.NoError(t, err)

	require.Len(t, obs.rejected, 1)
	assert.True(t, types.IsGameError(obs.rejected[0], types.ErrActionNotEligible))
	assert.Equal(t, int64(-10), outcome.TotalPayout)
	assert.Equal(t, entities.ResultBust, outcome.Hands[0].Result)
}

func TestPlayRoundSplitAndDouble(t *testing.T) {
	engine := newTestEngine(8, 10, 8, 7, 3, 2, 10, 7)
	src := &scriptedSource{actions: []PlayerAction{ActionSplit, ActionDoubleDown, ActionDoubleDown}}

	outcome, err := engine.PlayRound(context.Background(), 100, 10, src, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Hands, 2)
	assert.Equal(t, int64(20), outcome.Hands[0].Wager)
	assert.Equal(t, int64(20), outcome.Hands[1].Wager)
	// [8 3 10] beats 17, [8 2 7] ties it
	assert.Equal(t, int64(20), outcome.Hands[0].Payout)
	assert.Equal(t, int64(0), outcome.Hands[1].Payout)
	assert.Equal(t, int64(20), outcome.TotalPayout)
}

func TestPlayRoundSourceErrorAbortsRound(t *testing.T) {
	engine := newTestEngine(10, 10, 5, 7)
	src := &scriptedSource{}
	obs := &recordingObserver{}

	outcome, err := engine.PlayRound(context.Background(), 100, 10, src, obs)
	assert.Nil(t, outcome)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Nil(t, obs.outcome)
}

func TestPlayRoundInvalidWager(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.PlayRound(context.Background(), 50, 60, &scriptedSource{}, nil)
	assert.True(t, types.IsGameError(err, types.ErrInvalidWager))

	_, err = engine.PlayRound(context.Background(), 50, -1, &scriptedSource{}, nil)
	assert.True(t, types.IsGameError(err, types.ErrInvalidWager))
}

func TestPlayRoundLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	engine := NewEngine(entities.NewStackedShoe(ranks(1, 10, 10, 9)...),
		WithLogger(logging.NewLoggerTo(&buf, logging.DEBUG)),
		WithRules(Rules{AllowResplit: false}))

	_, err := engine.PlayRound(context.Background(), 100, 10, &scriptedSource{}, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "dealt")
	assert.Contains(t, buf.String(), "settled with total payout 15")
	assert.False(t, engine.Rules().AllowResplit)
}

func TestEngineSharesShoeAcrossRounds(t *testing.T) {
	engine := newTestEngine(1, 10, 10, 9, 10, 10, 8, 4, 3)

	_, err := engine.PlayRound(context.Background(), 100, 10, &scriptedSource{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, engine.Shoe().Remaining())

	outcome, err := engine.PlayRound(context.Background(), 115, 10, &scriptedSource{actions: []PlayerAction{ActionStand}}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(125), outcome.BalanceAfter())
}
