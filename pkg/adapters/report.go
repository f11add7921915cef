package adapters

import (
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/normalize"
	"github.com/shopspring/decimal"
)

const notReady = "n/d"

// ReportOptions describes how a result was priced and how much of it to show.
type ReportOptions struct {
	Catalog           string
	Selection         domain.MarkupSelection
	TargetProfitRatio decimal.Decimal
	Markup            decimal.NullDecimal
	Trace             bool
}

func FormatMarkup(m decimal.NullDecimal) string {
	if !m.Valid {
		return notReady
	}
	return m.Decimal.StringFixed(2)
}

func MapAnalysisResultToReport(r domain.AnalysisResult, opts ReportOptions) *domain.Report {
	report := &domain.Report{
		Title:    "Análise DRE",
		Catalog:  opts.Catalog,
		Currency: normalize.CurrencyMarker,
		Summary: []domain.ReportDetail{
			{Name: "Receita Total", Value: normalize.Format(r.TotalSales), Description: "totalSales"},
			{Name: "CMV Real", Value: normalize.Format(r.CostOfGoodsSold), Description: "costOfGoodsSold"},
			{Name: "Despesas sem CMV", Value: normalize.Format(r.ExpensesExcludingCOGS), Description: "expensesExcludingCOGS"},
			{Name: "Lucro Declarado", Value: normalize.Format(r.DeclaredNetProfit), Description: "declaredNetProfit"},
			{Name: "Gás e Gelo", Value: normalize.Format(r.GasAndIce), Description: "gasAndIce"},
			{Name: "Lucro Alvo", Value: opts.TargetProfitRatio.Mul(decimal.NewFromInt(100)).String(), Unit: "%", Description: "targetProfitRatio"},
			{Name: "Markup", Value: FormatMarkup(opts.Markup), Unit: "x", Description: "markupFactor"},
		},
	}

	expenses := domain.ReportSection{
		Title: "Despesas por Categoria",
		Total: normalize.Format(r.Expenses.Sum(domain.Categories()...)),
	}
	for _, c := range domain.Categories() {
		unit := ""
		if opts.Selection.Includes(c) {
			unit = "markup"
		}
		expenses.Details = append(expenses.Details, domain.ReportDetail{
			Name:        c.DisplayName(),
			Value:       normalize.Format(r.Expenses.Get(c)),
			Unit:        unit,
			Description: string(c),
		})
	}

	h := r.Headlines
	headlines := domain.ReportSection{
		Title: "Números de Cabeçalho",
		Details: []domain.ReportDetail{
			{Name: "Receitas com Vendas", Value: normalize.Format(h.TotalSales), Description: string(domain.HeadlineTotalSales)},
			{Name: "Eventos", Value: normalize.Format(h.EventRevenue), Description: string(domain.HeadlineEventRevenue)},
			{Name: "Custos com Insumos", Value: normalize.Format(h.RawSupplies), Description: string(domain.HeadlineRawSupplies)},
			{Name: "Gás", Value: normalize.Format(h.Gas), Description: string(domain.HeadlineGas)},
			{Name: "Gelo", Value: normalize.Format(h.Ice), Description: string(domain.HeadlineIce)},
			{Name: "Despesas (-)", Value: normalize.Format(h.DeclaredTotalExpenses), Description: string(domain.HeadlineDeclaredTotalExpenses)},
			{Name: "Saldo (=)", Value: normalize.Format(h.DeclaredNetProfit), Description: string(domain.HeadlineDeclaredNetProfit)},
			{Name: "Estoque Inicial", Value: normalize.Format(r.Inventory.Opening), Description: "inventory.opening"},
			{Name: "Estoque Final", Value: normalize.Format(r.Inventory.Closing), Description: "inventory.closing"},
		},
	}

	report.Sections = append(report.Sections, expenses, headlines)
	if breakdown, ok := labelBreakdown(r); ok {
		report.Sections = append(report.Sections, breakdown)
	}

	if opts.Trace {
		report.Sections = append(report.Sections, traceSections(r)...)
	}
	return report
}

// labelBreakdown lists the label subtotals of every category fed by more than
// one label, such as the consulting lines under third-party services.
func labelBreakdown(r domain.AnalysisResult) (domain.ReportSection, bool) {
	totals := r.LabelTotals()
	labels := make(map[domain.Category]int)
	for _, lt := range totals {
		labels[lt.Category]++
	}

	section := domain.ReportSection{Title: "Composição por Rótulo"}
	for _, c := range domain.Categories() {
		if labels[c] < 2 {
			continue
		}
		for _, lt := range totals {
			if lt.Category != c {
				continue
			}
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        lt.Label,
				Value:       normalize.Format(lt.Amount),
				Unit:        string(c),
				Description: c.DisplayName(),
			})
		}
	}
	return section, len(section.Details) > 0
}

func traceSections(r domain.AnalysisResult) []domain.ReportSection {
	classified := domain.ReportSection{Title: "Linhas Classificadas"}
	for _, item := range r.Items {
		target := item.Target
		if target == "" {
			target = "ignorada"
		}
		classified.Details = append(classified.Details, domain.ReportDetail{
			Name:        item.Label,
			Value:       normalize.Format(item.Amount),
			Unit:        target,
			Description: item.Line,
		})
	}

	unmatched := domain.ReportSection{Title: "Linhas Não Reconhecidas"}
	for _, line := range r.Unmatched {
		unmatched.Details = append(unmatched.Details, domain.ReportDetail{
			Name:        "-",
			Value:       normalize.Format(normalize.Amount(line)),
			Description: line,
		})
	}

	return []domain.ReportSection{classified, unmatched}
}
