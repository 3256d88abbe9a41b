package blackjack

import (
	"context"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/google/uuid"
)

// Engine plays rounds of blackjack against a shared shoe
type Engine struct {
	rules  Rules
	shoe   *entities.Shoe
	pause  time.Duration
	logger *logging.Logger
	newID  func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithRules sets the house rules
func WithRules(rules Rules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithDealerPause sets the pause between dealer draws
func WithDealerPause(pause time.Duration) Option {
	return func(e *Engine) {
		e.pause = pause
	}
}

// WithLogger sets the engine logger
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIDGenerator overrides how round IDs are generated
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// NewEngine creates an engine drawing from shoe. A nil shoe gets a freshly
// shuffled one.
func NewEngine(shoe *entities.Shoe, opts ...Option) *Engine {
	if shoe == nil {
		shoe = entities.NewShoe(nil)
	}
	e := &Engine{
		rules:  DefaultRules,
		shoe:   shoe,
		logger: logging.Discard,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the house rules
func (e *Engine) Rules() Rules {
	return e.rules
}

// Shoe returns the shoe the engine draws from
func (e *Engine) Shoe() *entities.Shoe {
	return e.shoe
}

// NewRound starts a round without dealing it
func (e *Engine) NewRound(balance, wager int64, obs Observer) (*Round, error) {
	return NewRound(e.newID(), e.shoe, e.rules, balance, wager, obs)
}

// PlayRound plays one full round and returns its outcome. Applying the total
// payout to the balance is left to the caller. If src fails the round is
// abandoned and no outcome is returned.
func (e *Engine) PlayRound(ctx context.Context, balance, wager int64, src ActionSource, obs Observer) (*Outcome, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	round, err := e.NewRound(balance, wager, obs)
	if err != nil {
		return nil, err
	}
	if err := round.Deal(); err != nil {
		return nil, err
	}
	e.logger.Debug("round %s dealt: dealer %v, player %v", round.ID, round.dealer.Cards, round.hands[0].Cards)

	if round.HadNaturals() {
		obs.TableChanged(round.Table(false))
	}

	for round.Phase() == PhasePlayerTurn {
		if err := e.takeTurn(ctx, round, src, obs); err != nil {
			e.logger.Warn("round %s abandoned: %v", round.ID, err)
			return nil, err
		}
	}

	if round.Phase() == PhaseDealerTurn {
		if err := round.PlayDealer(ctx, e.pause); err != nil {
			e.logger.Warn("round %s abandoned during dealer turn: %v", round.ID, err)
			return nil, err
		}
	}

	outcome, err := round.Settle()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("round %s settled with total payout %d", round.ID, outcome.TotalPayout)
	e.logger.Dump("outcome", outcome)

	obs.RoundSettled(outcome)
	return outcome, nil
}

// takeTurn prompts until one eligible action has been applied
func (e *Engine) takeTurn(ctx context.Context, round *Round, src ActionSource, obs Observer) error {
	table := round.Table(true)
	obs.TableChanged(table)

	for {
		action, err := src.NextAction(ctx, table)
		if err != nil {
			return err
		}

		err = round.Apply(action)
		if err == nil {
			if action == ActionDoubleDown {
				obs.TableChanged(round.Table(true))
			}
			return nil
		}
		if !types.IsGameError(err, types.ErrActionNotEligible) {
			return err
		}

		_, hand := round.ActiveHand()
		obs.ActionRejected(err, hand.Eligible)
	}
}
