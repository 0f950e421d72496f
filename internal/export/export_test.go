package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/perpview/perpview/internal/domain"
)

type mockDeriver struct {
	view domain.WalletPortfolio
	err  error
}

func (m *mockDeriver) Derive(_ context.Context, _ string) (domain.WalletPortfolio, error) {
	return m.view, m.err
}

type mockWriter struct {
	written *domain.WalletPortfolio
	err     error
}

func (m *mockWriter) Write(_ context.Context, view domain.WalletPortfolio) error {
	m.written = &view
	return m.err
}

func sampleView() domain.WalletPortfolio {
	tp := "25.00"
	return domain.WalletPortfolio{
		Wallet: "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T",
		Subaccounts: []domain.Subaccount{
			{
				SubaccountID: 0,
				Name:         "Main",
				Balances: []domain.Balance{
					{Token: "SOL", Amount: "12.345678900", Value: "$2,469.14"},
					{Token: "USDC", Amount: "5000.000000", Value: "$5,000.00"},
				},
				Positions: []domain.Position{
					{
						Market:          "SOL-PERP",
						MarketIndex:     0,
						Side:            domain.SideLong,
						Size:            "10",
						EntryPrice:      "20.50",
						MarkPrice:       "21.25",
						PnL:             "78.75",
						TakeProfitPrice: &tp,
					},
				},
				Orders: []domain.TriggerOrder{
					{Market: "SOL-PERP", Label: "Take Profit", Size: "10.5", TriggerPrice: "25.00", OrderID: 42},
				},
			},
			{
				SubaccountID: 2,
				Name:         "Hedge",
				Balances: []domain.Balance{
					{Token: "USDT", Amount: "100.000000", Value: "$100.00"},
				},
			},
		},
	}
}

func TestService_Export(t *testing.T) {
	deriver := &mockDeriver{view: sampleView()}
	writer := &mockWriter{}
	svc := NewService(deriver, writer)

	if err := svc.Export(context.Background(), deriver.view.Wallet); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if writer.written == nil {
		t.Fatal("writer was not invoked")
	}
	if writer.written.Wallet != deriver.view.Wallet {
		t.Errorf("wallet = %q, want %q", writer.written.Wallet, deriver.view.Wallet)
	}
}

func TestService_Export_DeriveFailure(t *testing.T) {
	deriver := &mockDeriver{err: errors.New("gateway down")}
	writer := &mockWriter{}
	svc := NewService(deriver, writer)

	err := svc.Export(context.Background(), "11111111111111111111111111111111")
	if err == nil {
		t.Fatal("expected error")
	}
	if writer.written != nil {
		t.Error("writer should not be invoked on derive failure")
	}
}

func TestXlsxWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	w := NewXlsxWriter(path)

	if err := w.Write(context.Background(), sampleView()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Balances", "Positions", "Orders"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %q", sheet)
		}
	}

	checks := []struct {
		sheet, cell, want string
	}{
		{"Balances", "C1", "Token"},
		{"Balances", "C2", "SOL"},
		{"Balances", "E2", "$2,469.14"},
		{"Balances", "B4", "Hedge"},
		{"Balances", "C4", "USDT"},
		{"Positions", "C2", "SOL-PERP"},
		{"Positions", "D2", "Long"},
		{"Positions", "H2", "78.75"},
		{"Positions", "I2", "25.00"},
		{"Positions", "J2", ""},
		{"Orders", "D2", "Take Profit"},
		{"Orders", "G2", "42"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestXlsxWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	if err := NewXlsxWriter(path).Write(ctx, sampleView()); err == nil {
		t.Fatal("expected context error")
	}
}
