package blackjack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/console"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/statistics"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
)

// Table is the player's side of the session: it takes bets and actions and
// shows everything that happens
type Table interface {
	blackjack.ActionSource
	blackjack.Observer
	ReadWager(ctx context.Context, balance int64) (console.WagerInput, error)
	NewPlayer(balance int64)
	OnTheHouse(amount int64)
	ShowStatistics(summary *statistics.Summary)
	ShowError(err error)
	Goodbye()
	Broke()
}

// Session runs rounds at the table until the player leaves or runs out of chips
type Session struct {
	engine  *blackjack.Engine
	wallet  wallet.WalletService
	history game.Repository
	stats   *statistics.Service
	table   Table
	logger  *logging.Logger
}

// NewSession creates a session. history may be nil, in which case rounds are
// not recorded and the stats command is unavailable.
func NewSession(engine *blackjack.Engine, walletService wallet.WalletService, history game.Repository, table Table, logger *logging.Logger) *Session {
	if engine == nil {
		panic("engine cannot be nil")
	}
	if walletService == nil {
		panic("wallet service cannot be nil")
	}
	if table == nil {
		panic("table cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard
	}

	s := &Session{
		engine:  engine,
		wallet:  walletService,
		history: history,
		table:   table,
		logger:  logger,
	}
	if history != nil {
		s.stats = statistics.NewService(history)
	}
	return s
}

// Run plays until the player exits, input ends or the balance reaches zero.
// Every payout is persisted before the next bet is taken.
func (s *Session) Run(ctx context.Context) error {
	balance, err := s.start(ctx)
	if err != nil {
		return err
	}

	for {
		input, err := s.table.ReadWager(ctx, balance)
		if errors.Is(err, io.EOF) {
			s.table.Goodbye()
			return nil
		}
		if err != nil {
			return err
		}

		switch input.Command {
		case console.CommandExit:
			s.table.Goodbye()
			return nil
		case console.CommandStats:
			s.showStatistics(ctx)
			continue
		}

		balance, err = s.playRound(ctx, balance, input.Amount)
		if errors.Is(err, io.EOF) {
			s.table.Goodbye()
			return nil
		}
		if err != nil {
			return err
		}

		if balance <= 0 {
			s.table.Broke()
			return nil
		}
	}
}

// start loads the profile and tops it up when the player arrives broke
func (s *Session) start(ctx context.Context) (int64, error) {
	profile, created, err := s.wallet.GetOrCreateProfile(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load profile: %w", err)
	}
	if created {
		s.table.NewPlayer(profile.Balance)
	}

	balance, granted, err := s.wallet.EnsurePlayable(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to top up balance: %w", err)
	}
	if granted {
		s.table.OnTheHouse(balance)
	}
	return balance, nil
}

func (s *Session) playRound(ctx context.Context, balance, wager int64) (int64, error) {
	outcome, err := s.engine.PlayRound(ctx, balance, wager, s.table, s.table)
	if err != nil {
		return balance, err
	}

	newBalance, err := s.wallet.ApplyPayout(ctx, outcome.RoundID, outcome.TotalPayout)
	if err != nil {
		return balance, fmt.Errorf("failed to apply payout for round %s: %w", outcome.RoundID, err)
	}

	if s.history != nil {
		if err := s.history.SaveRoundRecord(ctx, outcome.Record(time.Now())); err != nil {
			s.logger.Error("failed to record round %s: %v", outcome.RoundID, err)
		}
	}
	return newBalance, nil
}

func (s *Session) showStatistics(ctx context.Context) {
	if s.stats == nil {
		s.table.ShowError(types.NewGameError(types.ErrStorageError, "Statistics are not available."))
		return
	}
	summary, err := s.stats.Summary(ctx)
	if err != nil {
		s.logger.Error("failed to load statistics: %v", err)
		s.table.ShowError(types.WrapError(types.ErrStorageError, "Statistics are not available right now.", err))
		return
	}
	s.table.ShowStatistics(summary)
}
