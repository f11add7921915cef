// Package metrics derives cost of goods sold, the reconciliation expense figure
// and the pricing markup from a classified report.
package metrics

import (
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// DefaultTargetProfitRatio is the profit share of sales charged into the markup
// when the caller does not choose one.
var DefaultTargetProfitRatio = decimal.RequireFromString("0.10")

const markupPlaces = 2

type Calculator struct {
	TargetProfitRatio   decimal.Decimal
	IncludeEventRevenue bool
}

type Option func(*Calculator)

func WithTargetProfitRatio(ratio decimal.Decimal) Option {
	return func(c *Calculator) {
		c.TargetProfitRatio = ratio
	}
}

// WithEventRevenue adds the "Eventos" revenue line to total sales.
func WithEventRevenue(include bool) Option {
	return func(c *Calculator) {
		c.IncludeEventRevenue = include
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{TargetProfitRatio: DefaultTargetProfitRatio}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Derive combines the classification with the caller supplied inventory.
func (c *Calculator) Derive(cl domain.Classification, inv domain.InventorySnapshot) domain.AnalysisResult {
	h := cl.Headlines

	sales := h.TotalSales
	if c.IncludeEventRevenue {
		sales = sales.Add(h.EventRevenue)
	}

	expenses := cl.Totals.Clone()
	if expenses == nil {
		expenses = domain.NewCategoryTotals()
	}

	return domain.AnalysisResult{
		TotalSales:            sales,
		CostOfGoodsSold:       CostOfGoodsSold(h, inv),
		ExpensesExcludingCOGS: h.DeclaredTotalExpenses.Sub(h.DirectCosts()),
		DeclaredNetProfit:     h.DeclaredNetProfit,
		GasAndIce:             h.Gas.Add(h.Ice),
		Expenses:              expenses,
		Headlines:             h,
		Inventory:             inv,
		Items:                 append([]domain.ClassifiedLine(nil), cl.Items...),
		Unmatched:             append([]string(nil), cl.Unmatched...),
	}
}

// CostOfGoodsSold is opening + rawSupplies - closing + gas + ice. Gas and ice
// are always part of it, whatever the markup selection.
func CostOfGoodsSold(h domain.HeadlineFigures, inv domain.InventorySnapshot) decimal.Decimal {
	return inv.Opening.Add(h.RawSupplies).Sub(inv.Closing).Add(h.Gas).Add(h.Ice)
}

// Markup uses the calculator's target profit ratio.
func (c *Calculator) Markup(result *domain.AnalysisResult, sel domain.MarkupSelection) decimal.NullDecimal {
	return Markup(result, sel, c.TargetProfitRatio)
}

// Markup computes (COGS + selected expenses + sales * ratio) / COGS rounded to
// two places. A zero COGS yields 0. The result is invalid (not ready) when
// there is no analysis to work from.
func Markup(result *domain.AnalysisResult, sel domain.MarkupSelection, ratio decimal.Decimal) decimal.NullDecimal {
	if result == nil || result.Expenses == nil {
		return decimal.NullDecimal{}
	}

	cogs := result.CostOfGoodsSold
	if cogs.IsZero() {
		return decimal.NewNullDecimal(decimal.Zero)
	}

	surcharge := result.Expenses.Sum(sel.Categories()...)
	profit := result.TotalSales.Mul(ratio)

	factor := cogs.Add(surcharge).Add(profit).Div(cogs).Round(markupPlaces)
	return decimal.NewNullDecimal(factor)
}
