// Package report renders ledger analytics as an xlsx workbook.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
)

// Sheet names, in workbook order.
const (
	SheetRealized = "Realized"
	SheetHoldings = "Holdings"
	SheetMonthly  = "Monthly"
)

// Currency is the ISO code amounts are rendered in.
const Currency = money.INR

// Data is everything one workbook shows.
type Data struct {
	GeneratedAt time.Time
	Trades      []accounting.RealizedTrade
	Holdings    []accounting.Holding
	Monthly     []accounting.MonthlyNet
	Totals      accounting.Totals
}

// Generator builds xlsx workbooks.
type Generator struct{}

// New returns a Generator.
func New() *Generator {
	return &Generator{}
}

// FormatAmount renders a decimal amount in Currency, rounded to its minor unit.
func FormatAmount(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction)).IntPart()
	return money.New(minor, Currency).Display()
}

// Generate returns the workbook bytes.
func (g *Generator) Generate(ctx context.Context, data Data) ([]byte, error) {
	op := "report.Generate"
	if len(data.Trades) == 0 && len(data.Holdings) == 0 {
		return nil, errors.New("nothing to report")
	}

	slog.DebugContext(ctx, "Generate start", slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.ErrorContext(ctx, "got error while closing file", slog.String("op", op), slog.Any("error", err))
		}
	}()

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Equity ledger report",
		Created: data.GeneratedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("set document properties: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name string
		fill func(*excelize.File, string, Data) error
	}{
		{SheetRealized, fillRealized},
		{SheetHoldings, fillHoldings},
		{SheetMonthly, fillMonthly},
	}
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := s.fill(f, s.name, data); err != nil {
			return nil, fmt.Errorf("fill sheet %s: %w", s.name, err)
		}
		if err := f.SetRowStyle(s.name, 1, 1, header); err != nil {
			return nil, fmt.Errorf("style sheet %s: %w", s.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.ErrorContext(ctx, "got error while deleting Sheet1", slog.String("op", op), slog.Any("error", err))
	}
	if idx, err := f.GetSheetIndex(SheetRealized); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	slog.DebugContext(ctx, "Generate completed", slog.String("op", op), slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// writeRow writes values starting at column A of row.
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func fillRealized(f *excelize.File, sheet string, data Data) error {
	if err := writeRow(f, sheet, 1, []any{
		"Date", "Stock", "Qty", "Sell Price", "Buy Cost", "Brokerage", "Net", "Return %", "Hold Days", "Result",
	}); err != nil {
		return err
	}

	row := 2
	for _, t := range data.Trades {
		result := "Win"
		if !t.Win() {
			result = "Loss"
		}
		if err := writeRow(f, sheet, row, []any{
			t.Date.Format(time.DateOnly),
			t.Stock,
			t.Qty.InexactFloat64(),
			t.SellPrice.InexactFloat64(),
			FormatAmount(t.BuyCost),
			FormatAmount(t.BuyBrokerage.Add(t.SellBrokerage)),
			FormatAmount(t.Net),
			t.ReturnPct.Round(2).InexactFloat64(),
			t.HoldDays.Round(1).InexactFloat64(),
			result,
		}); err != nil {
			return err
		}
		row++
	}

	return writeRow(f, sheet, row+1, []any{
		"Total", "", "", "", "", FormatAmount(data.Totals.Brokerage), FormatAmount(data.Totals.Net),
		"", "", fmt.Sprintf("%d wins / %d losses", data.Totals.Wins, data.Totals.Losses),
	})
}

func fillHoldings(f *excelize.File, sheet string, data Data) error {
	if err := writeRow(f, sheet, 1, []any{
		"Stock", "Qty", "Avg Cost", "Invested", "Lots", "First Buy", "Last Price",
	}); err != nil {
		return err
	}

	for i, h := range data.Holdings {
		firstBuy := ""
		if !h.Cycle.FirstBuyDate.IsZero() {
			firstBuy = h.Cycle.FirstBuyDate.Format(time.DateOnly)
		}
		if err := writeRow(f, sheet, i+2, []any{
			h.Stock,
			h.Qty.InexactFloat64(),
			FormatAmount(h.AvgCost),
			FormatAmount(h.Invested),
			len(h.Lots),
			firstBuy,
			h.LastPrice.InexactFloat64(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func fillMonthly(f *excelize.File, sheet string, data Data) error {
	if err := writeRow(f, sheet, 1, []any{"Month", "Net"}); err != nil {
		return err
	}

	for i, m := range data.Monthly {
		if err := writeRow(f, sheet, i+2, []any{m.Month, FormatAmount(m.Net)}); err != nil {
			return err
		}
	}
	return nil
}
