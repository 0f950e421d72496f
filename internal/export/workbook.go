package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/perpview/perpview/internal/domain"
)

var (
	balanceHeaders  = []any{"Subaccount", "Name", "Token", "Amount", "Value"}
	positionHeaders = []any{"Subaccount", "Name", "Market", "Side", "Size", "Entry Price", "Mark Price", "PnL", "Take Profit", "Stop Loss"}
	orderHeaders    = []any{"Subaccount", "Name", "Market", "Type", "Size", "Trigger Price", "Order ID"}
)

// XlsxWriter implements WorkbookWriter by producing an .xlsx file on disk.
type XlsxWriter struct {
	path string
}

// NewXlsxWriter creates an XlsxWriter that writes to path.
func NewXlsxWriter(path string) *XlsxWriter {
	return &XlsxWriter{path: path}
}

// Write builds a workbook with Balances, Positions and Orders sheets,
// one row per entry across all subaccounts, and saves it.
func (w *XlsxWriter) Write(ctx context.Context, view domain.WalletPortfolio) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Balances")
	if _, err := f.NewSheet("Positions"); err != nil {
		return fmt.Errorf("creating Positions sheet: %w", err)
	}
	if _, err := f.NewSheet("Orders"); err != nil {
		return fmt.Errorf("creating Orders sheet: %w", err)
	}

	if err := writeRows(f, "Balances", buildBalanceRows(view)); err != nil {
		return err
	}
	if err := writeRows(f, "Positions", buildPositionRows(view)); err != nil {
		return err
	}
	if err := writeRows(f, "Orders", buildOrderRows(view)); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func buildBalanceRows(view domain.WalletPortfolio) [][]any {
	rows := [][]any{balanceHeaders}
	for _, sub := range view.Subaccounts {
		for _, b := range sub.Balances {
			rows = append(rows, []any{sub.SubaccountID, sub.Name, b.Token, b.Amount, b.Value})
		}
	}
	return rows
}

func buildPositionRows(view domain.WalletPortfolio) [][]any {
	rows := [][]any{positionHeaders}
	for _, sub := range view.Subaccounts {
		for _, p := range sub.Positions {
			rows = append(rows, []any{
				sub.SubaccountID, sub.Name, p.Market, string(p.Side),
				p.Size, p.EntryPrice, p.MarkPrice, p.PnL,
				deref(p.TakeProfitPrice), deref(p.StopLossPrice),
			})
		}
	}
	return rows
}

func buildOrderRows(view domain.WalletPortfolio) [][]any {
	rows := [][]any{orderHeaders}
	for _, sub := range view.Subaccounts {
		for _, o := range sub.Orders {
			rows = append(rows, []any{sub.SubaccountID, sub.Name, o.Market, o.Label, o.Size, o.TriggerPrice, o.OrderID})
		}
	}
	return rows
}

func deref(s *string) any {
	if s == nil {
		return ""
	}
	return *s
}
