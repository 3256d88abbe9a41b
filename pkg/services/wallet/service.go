package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
	"github.com/google/uuid"
)

// DefaultStartingBalance is given to new players and to broke players at startup
const DefaultStartingBalance int64 = 500

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidBalance    = errors.New("starting balance must be positive")
)

// Service handles the player's balance. Every change is persisted before the
// call returns.
type Service struct {
	repo            walletRepo.Repository
	startingBalance int64
}

// NewService creates a new wallet service
func NewService(repo walletRepo.Repository, startingBalance int64) (*Service, error) {
	if startingBalance <= 0 {
		return nil, ErrInvalidBalance
	}
	return &Service{
		repo:            repo,
		startingBalance: startingBalance,
	}, nil
}

// StartingBalance returns the balance new players start with
func (s *Service) StartingBalance() int64 {
	return s.startingBalance
}

// GetOrCreateProfile retrieves the profile or creates one with the starting
// balance. The bool reports whether the profile was created.
func (s *Service) GetOrCreateProfile(ctx context.Context) (*entities.PlayerProfile, bool, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err == nil {
		return profile, false, nil
	}

	if !errors.Is(err, walletRepo.ErrProfileNotFound) {
		return nil, false, err
	}

	newProfile := &entities.PlayerProfile{
		Balance:     s.startingBalance,
		LastUpdated: time.Now(),
	}

	if err := s.repo.SaveProfile(ctx, newProfile); err != nil {
		return nil, false, err
	}

	log.Printf("[WALLET] Created profile with %d chips", newProfile.Balance)
	return newProfile, true, nil
}

// Balance returns the current balance
func (s *Service) Balance(ctx context.Context) (int64, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		return 0, err
	}
	return profile.Balance, nil
}

// ApplyPayout adds a round's signed payout to the balance and records it.
// Zero payouts are still saved and recorded. Returns the new balance.
func (s *Service) ApplyPayout(ctx context.Context, roundID string, payout int64) (int64, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		log.Printf("[WALLET] Error getting profile: %v", err)
		return 0, err
	}

	if profile.Balance+payout < 0 {
		return profile.Balance, fmt.Errorf("%w: payout %d with balance %d", ErrInsufficientFunds, payout, profile.Balance)
	}

	profile.Balance += payout
	profile.LastUpdated = time.Now()

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		log.Printf("[WALLET] Error saving profile: %v", err)
		return 0, err
	}

	transaction := &entities.Transaction{
		ID:           uuid.New().String(),
		Amount:       payout,
		Type:         entities.TransactionTypePayout,
		ReferenceID:  roundID,
		Description:  "Round payout",
		Timestamp:    time.Now(),
		BalanceAfter: profile.Balance,
	}

	if err := s.repo.AddTransaction(ctx, transaction); err != nil {
		log.Printf("[WALLET] Error recording payout for round %s: %v", roundID, err)
		return profile.Balance, err
	}

	return profile.Balance, nil
}

// EnsurePlayable tops a broke player back up to the starting balance. The
// bool reports whether chips were granted.
func (s *Service) EnsurePlayable(ctx context.Context) (int64, bool, error) {
	profile, _, err := s.GetOrCreateProfile(ctx)
	if err != nil {
		return 0, false, err
	}

	if profile.Balance > 0 {
		return profile.Balance, false, nil
	}

	grant := s.startingBalance - profile.Balance
	profile.Balance = s.startingBalance
	profile.LastUpdated = time.Now()

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return 0, false, err
	}

	log.Printf("[WALLET] Granted %d chips on the house", grant)

	transaction := &entities.Transaction{
		ID:           uuid.New().String(),
		Amount:       grant,
		Type:         entities.TransactionTypeBonus,
		Description:  "Chips on the house",
		Timestamp:    time.Now(),
		BalanceAfter: profile.Balance,
	}

	if err := s.repo.AddTransaction(ctx, transaction); err != nil {
		return profile.Balance, true, err
	}

	return profile.Balance, true, nil
}

// RecentTransactions returns up to limit transactions, most recent first
func (s *Service) RecentTransactions(ctx context.Context, limit int) ([]*entities.Transaction, error) {
	return s.repo.GetTransactions(ctx, limit)
}
