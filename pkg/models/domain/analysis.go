package domain

import "github.com/shopspring/decimal"

type Headline string

const (
	HeadlineTotalSales            Headline = "totalSales"
	HeadlineEventRevenue          Headline = "eventRevenue"
	HeadlineRawSupplies           Headline = "rawSupplies"
	HeadlineGas                   Headline = "gas"
	HeadlineIce                   Headline = "ice"
	HeadlineDeclaredNetProfit     Headline = "declaredNetProfit"
	HeadlineDeclaredTotalExpenses Headline = "declaredTotalExpenses"
)

func (h Headline) Valid() bool {
	switch h {
	case HeadlineTotalSales, HeadlineEventRevenue, HeadlineRawSupplies, HeadlineGas, HeadlineIce,
		HeadlineDeclaredNetProfit, HeadlineDeclaredTotalExpenses:
		return true
	}
	return false
}

// HeadlineFigures are the single-valued totals of the report. A later line
// for the same figure overwrites an earlier one.
type HeadlineFigures struct {
	TotalSales            decimal.Decimal
	EventRevenue          decimal.Decimal
	RawSupplies           decimal.Decimal
	Gas                   decimal.Decimal
	Ice                   decimal.Decimal
	DeclaredNetProfit     decimal.Decimal
	DeclaredTotalExpenses decimal.Decimal
}

func (h *HeadlineFigures) Set(field Headline, amount decimal.Decimal) {
	switch field {
	case HeadlineTotalSales:
		h.TotalSales = amount
	case HeadlineEventRevenue:
		h.EventRevenue = amount
	case HeadlineRawSupplies:
		h.RawSupplies = amount
	case HeadlineGas:
		h.Gas = amount
	case HeadlineIce:
		h.Ice = amount
	case HeadlineDeclaredNetProfit:
		h.DeclaredNetProfit = amount
	case HeadlineDeclaredTotalExpenses:
		h.DeclaredTotalExpenses = amount
	}
}

// DirectCosts is rawSupplies + gas + ice.
func (h HeadlineFigures) DirectCosts() decimal.Decimal {
	return h.RawSupplies.Add(h.Gas).Add(h.Ice)
}

// ClassifiedLine records which rule consumed a report line.
type ClassifiedLine struct {
	Line   string
	Label  string
	Target string
	Amount decimal.Decimal
}

// Classification is the output of a single pass over the report lines.
type Classification struct {
	Headlines HeadlineFigures
	Totals    CategoryTotals
	Items     []ClassifiedLine
	Unmatched []string
}

type InventorySnapshot struct {
	Opening decimal.Decimal
	Closing decimal.Decimal
}

type AnalysisRequest struct {
	Lines     []string
	Inventory InventorySnapshot
	Catalog   string
}

type AnalysisResult struct {
	TotalSales            decimal.Decimal
	CostOfGoodsSold       decimal.Decimal
	ExpensesExcludingCOGS decimal.Decimal
	DeclaredNetProfit     decimal.Decimal
	GasAndIce             decimal.Decimal
	Expenses              CategoryTotals
	Headlines             HeadlineFigures
	Inventory             InventorySnapshot
	Items                 []ClassifiedLine
	Unmatched             []string
}

// LabelTotal is the part of a category total fed by one catalog label.
type LabelTotal struct {
	Category Category
	Label    string
	Amount   decimal.Decimal
}

// LabelTotals sums the category items per label, in order of first
// appearance. Headline and ignored items are left out.
func (r AnalysisResult) LabelTotals() []LabelTotal {
	type labelKey struct {
		category Category
		label    string
	}

	var out []LabelTotal
	index := make(map[labelKey]int)
	for _, item := range r.Items {
		c := Category(item.Target)
		if !c.Valid() {
			continue
		}
		key := labelKey{category: c, label: item.Label}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, LabelTotal{Category: c, Label: item.Label})
		}
		out[i].Amount = out[i].Amount.Add(item.Amount)
	}
	return out
}
