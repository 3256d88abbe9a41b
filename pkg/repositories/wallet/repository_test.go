package wallet

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs the same behaviour checks against every Repository
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() Repository
	ctx     context.Context
	repo    Repository
}

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() Repository { return NewMemoryRepository() },
	})
}

func TestFileRepository(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() Repository {
		repo, err := NewFileRepository(filepath.Join(s.T().TempDir(), "player_profile.json"))
		s.Require().NoError(err)
		return repo
	}
	suite.Run(t, s)
}

func TestSQLiteRepository(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() Repository {
		repo, err := NewSQLiteRepository(filepath.Join(s.T().TempDir(), "blackjack.db"))
		s.Require().NoError(err)
		s.T().Cleanup(func() { repo.Close() })
		return repo
	}
	suite.Run(t, s)
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *RepositoryTestSuite) TestMissingProfile() {
	_, err := s.repo.GetProfile(s.ctx)
	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *RepositoryTestSuite) TestSaveAndGetProfile() {
	profile := &entities.PlayerProfile{Balance: 500}
	s.Require().NoError(s.repo.SaveProfile(s.ctx, profile))
	s.False(profile.LastUpdated.IsZero())

	loaded, err := s.repo.GetProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(500), loaded.Balance)

	profile.Balance = 0
	s.Require().NoError(s.repo.SaveProfile(s.ctx, profile))

	loaded, err = s.repo.GetProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), loaded.Balance)
}

func (s *RepositoryTestSuite) TestTransactionsNewestFirst() {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, amount := range []int64{10, -20, 30} {
		s.Require().NoError(s.repo.AddTransaction(s.ctx, &entities.Transaction{
			Amount:       amount,
			Type:         entities.TransactionTypePayout,
			ReferenceID:  "round",
			Description:  "Round payout",
			Timestamp:    base.Add(time.Duration(i) * time.Second),
			BalanceAfter: 100 + amount,
		}))
	}

	transactions, err := s.repo.GetTransactions(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(transactions, 2)
	s.Equal(int64(30), transactions[0].Amount)
	s.Equal(int64(-20), transactions[1].Amount)
	s.NotEmpty(transactions[0].ID)
	s.Equal(entities.TransactionTypePayout, transactions[0].Type)
	s.True(base.Add(2 * time.Second).Equal(transactions[0].Timestamp))

	all, err := s.repo.GetTransactions(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositoryTestSuite) TestAddTransactionFillsDefaults() {
	tx := &entities.Transaction{Amount: 500, Type: entities.TransactionTypeBonus}
	s.Require().NoError(s.repo.AddTransaction(s.ctx, tx))

	s.NotEmpty(tx.ID)
	s.False(tx.Timestamp.IsZero())
}

func TestFileRepositoryFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "player_profile.json")
	ctx := context.Background()

	// Profiles written by older versions only carry the balance
	if err := os.WriteFile(path, []byte(`{"balance": 250}`), 0644); err != nil {
		t.Fatal(err)
	}

	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	profile, err := repo.GetProfile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Balance != 250 {
		t.Errorf("expected balance 250, got %d", profile.Balance)
	}

	profile.Balance = 275
	if err := repo.SaveProfile(ctx, profile); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"balance":275}` {
		t.Errorf("unexpected profile file %s", data)
	}

	if err := repo.AddTransaction(ctx, &entities.Transaction{Amount: 25, Type: entities.TransactionTypePayout}); err != nil {
		t.Fatal(err)
	}

	// A new repository picks up the saved transactions
	reopened, err := NewFileRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	transactions, err := reopened.GetTransactions(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 1 || transactions[0].Amount != 25 {
		t.Errorf("unexpected transactions %+v", transactions)
	}
}

func TestFileRepositoryCorruptProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player_profile.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	repo, err := NewFileRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetProfile(context.Background()); err == nil || err == ErrProfileNotFound {
		t.Errorf("expected a decode error, got %v", err)
	}
}
