package export

import (
	"context"
	"fmt"

	"github.com/perpview/perpview/internal/domain"
)

// WorkbookWriter writes a derived wallet portfolio to a spreadsheet destination.
type WorkbookWriter interface {
	Write(ctx context.Context, view domain.WalletPortfolio) error
}

// PortfolioDeriver runs the wallet-level derivation pipeline.
type PortfolioDeriver interface {
	Derive(ctx context.Context, wallet string) (domain.WalletPortfolio, error)
}

// Service derives a wallet portfolio and delegates writing to a WorkbookWriter.
type Service struct {
	portfolios PortfolioDeriver
	writer     WorkbookWriter
}

// NewService creates a new export Service.
func NewService(portfolios PortfolioDeriver, writer WorkbookWriter) *Service {
	if portfolios == nil {
		panic("portfolios is required")
	}
	if writer == nil {
		panic("writer is required")
	}
	return &Service{portfolios: portfolios, writer: writer}
}

// Export derives the portfolio for wallet and writes it out.
func (s *Service) Export(ctx context.Context, wallet string) error {
	view, err := s.portfolios.Derive(ctx, wallet)
	if err != nil {
		return fmt.Errorf("deriving portfolio: %w", err)
	}
	if err := s.writer.Write(ctx, view); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
