package blackjack

import (
	"context"
	"fmt"
	"time"

	"github.com/fadedpez/blackjack/internal/types"
)

// PlayDealer completes the dealer hand. The dealer draws while below 17 and
// a bust settles every unresolved hand as a win. pause is waited between
// successive draws.
func (r *Round) PlayDealer(ctx context.Context, pause time.Duration) error {
	if r.phase != PhaseDealerTurn {
		return types.NewGameError(types.ErrInvalidState,
			fmt.Sprintf("dealer cannot play during %s", r.phase))
	}

	r.obs.Notice(Notice{Kind: NoticeDealerTurn})
	r.obs.TableChanged(r.Table(false))

	for draws := 0; r.dealer.Value() < DealerStandsOn; draws++ {
		if draws > 0 {
			if err := sleep(ctx, pause); err != nil {
				return err
			}
		}

		r.dealer.Cards = append(r.dealer.Cards, r.shoe.Draw())
		r.obs.Notice(Notice{Kind: NoticeDealerHits})
		r.obs.TableChanged(r.Table(false))

		if r.dealer.IsBust() {
			r.busted = true
			r.obs.Notice(Notice{Kind: NoticeDealerBusts, Hand: -1})
			for _, hand := range r.hands {
				if !hand.Payout.IsSettled() {
					hand.settle(hand.Wager)
				}
			}
			r.advance()
			return nil
		}
	}

	r.obs.Notice(Notice{Kind: NoticeDealerStands})
	r.advance()
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
