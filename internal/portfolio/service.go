// Package portfolio derives the full display view of a wallet: every
// materialized subaccount's balances, positions, and trigger orders.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/perpview/perpview/internal/domain"
	"github.com/perpview/perpview/internal/drift"
)

// AccountSource provides subaccount enumeration and raw account snapshots.
type AccountSource interface {
	SubaccountCount(ctx context.Context, wallet string) (int, error)
	AccountSnapshot(ctx context.Context, wallet string, subaccountID int) (domain.AccountSnapshot, error)
}

// BalanceService aggregates raw spot balances into display rows.
type BalanceService interface {
	Aggregate(ctx context.Context, balances []domain.RawBalance) ([]domain.Balance, []domain.Skip)
}

// PositionService formats raw perp positions into display rows.
type PositionService interface {
	Format(ctx context.Context, wallet string, subaccountID int, snap domain.AccountSnapshot) ([]domain.Position, []domain.Skip)
}

// OrderService formats raw open orders into the standalone trigger list.
type OrderService interface {
	Format(snap domain.AccountSnapshot) ([]domain.TriggerOrder, []domain.Skip)
}

// Service drives the per-subaccount derivation pipeline.
type Service struct {
	source      AccountSource
	balances    BalanceService
	positions   PositionService
	orders      OrderService
	concurrency int
}

// NewService creates a new portfolio Service. All dependencies are required.
// concurrency bounds the number of subaccounts derived in parallel.
func NewService(source AccountSource, balances BalanceService, positions PositionService, orders OrderService, concurrency int) *Service {
	if source == nil {
		panic("portfolio.NewService: source is nil")
	}
	if balances == nil {
		panic("portfolio.NewService: balances is nil")
	}
	if positions == nil {
		panic("portfolio.NewService: positions is nil")
	}
	if orders == nil {
		panic("portfolio.NewService: orders is nil")
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		source:      source,
		balances:    balances,
		positions:   positions,
		orders:      orders,
		concurrency: concurrency,
	}
}

// Derive builds the display view for one wallet. Subaccounts are derived
// concurrently but always emitted in ascending index order; an absent or
// failing subaccount is omitted without failing the wallet-level query. The
// only fatal input error is a malformed wallet address.
func (s *Service) Derive(ctx context.Context, wallet string) (domain.WalletPortfolio, error) {
	if err := domain.ValidateWalletAddress(wallet); err != nil {
		return domain.WalletPortfolio{}, err
	}

	count, err := s.source.SubaccountCount(ctx, wallet)
	if err != nil {
		return domain.WalletPortfolio{}, fmt.Errorf("enumerating subaccounts for %s: %w", wallet, err)
	}

	// Index-addressed results keep the output ordered by subaccount index
	// regardless of which fetch completes first.
	results := make([]*domain.Subaccount, count)

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i := range count {
		wg.Add(1)
		go func(subaccountID int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			sub, err := s.deriveSubaccount(ctx, wallet, subaccountID)
			if err != nil {
				if errors.Is(err, drift.ErrAccountNotFound) {
					slog.Debug("subaccount not materialized, skipping",
						"wallet", wallet, "subaccountId", subaccountID)
				} else {
					slog.Warn("failed to derive subaccount, omitting from result",
						"wallet", wallet, "subaccountId", subaccountID, "error", err)
				}
				return
			}
			results[subaccountID] = sub
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.WalletPortfolio{}, err
	}

	subaccounts := make([]domain.Subaccount, 0, count)
	for _, sub := range results {
		if sub != nil {
			subaccounts = append(subaccounts, *sub)
		}
	}

	return domain.WalletPortfolio{Wallet: wallet, Subaccounts: subaccounts}, nil
}

func (s *Service) deriveSubaccount(ctx context.Context, wallet string, subaccountID int) (*domain.Subaccount, error) {
	snap, err := s.source.AccountSnapshot(ctx, wallet, subaccountID)
	if err != nil {
		return nil, err
	}

	balances, balanceSkips := s.balances.Aggregate(ctx, snap.SpotBalances)
	positions, positionSkips := s.positions.Format(ctx, wallet, subaccountID, snap)
	orders, orderSkips := s.orders.Format(snap)

	var skips []domain.Skip
	skips = append(skips, balanceSkips...)
	skips = append(skips, positionSkips...)
	skips = append(skips, orderSkips...)

	if balances == nil {
		balances = []domain.Balance{}
	}
	if positions == nil {
		positions = []domain.Position{}
	}
	if orders == nil {
		orders = []domain.TriggerOrder{}
	}

	return &domain.Subaccount{
		SubaccountID: subaccountID,
		Name:         domain.DecodeSubaccountName(snap.RawName),
		Balances:     balances,
		Positions:    positions,
		Orders:       orders,
		Warnings:     domain.SkipWarnings(skips),
	}, nil
}
