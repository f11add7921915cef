package adapters

import (
	"github.com/mathe-alves-alv/analise-dre/pkg/models/api"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/metrics"
)

func MapInventoryApiToDomain(inv api.Inventory) (domain.InventorySnapshot, error) {
	return metrics.ParseInventory(string(inv.Opening), string(inv.Closing))
}

// MapSelectionApiToDomain treats a nil key list as "every category".
func MapSelectionApiToDomain(keys []string) (domain.MarkupSelection, error) {
	if keys == nil {
		return domain.SelectAll(), nil
	}
	return domain.ParseMarkupSelection(keys)
}

func MapExpensesDomainToApi(t domain.CategoryTotals) api.Expenses {
	return api.Expenses{
		Administrative:     t.Get(domain.CategoryAdministrative),
		Personnel:          t.Get(domain.CategoryPersonnel),
		NonOperational:     t.Get(domain.CategoryNonOperational),
		Financial:          t.Get(domain.CategoryFinancial),
		Taxes:              t.Get(domain.CategoryTaxes),
		Marketing:          t.Get(domain.CategoryMarketing),
		ThirdPartyServices: t.Get(domain.CategoryThirdPartyServices),
		Maintenance:        t.Get(domain.CategoryMaintenance),
		BasicBasket:        t.Get(domain.CategoryBasicBasket),
	}
}

func MapExpensesApiToDomain(e api.Expenses) domain.CategoryTotals {
	t := domain.NewCategoryTotals()
	t.Add(domain.CategoryAdministrative, e.Administrative)
	t.Add(domain.CategoryPersonnel, e.Personnel)
	t.Add(domain.CategoryNonOperational, e.NonOperational)
	t.Add(domain.CategoryFinancial, e.Financial)
	t.Add(domain.CategoryTaxes, e.Taxes)
	t.Add(domain.CategoryMarketing, e.Marketing)
	t.Add(domain.CategoryThirdPartyServices, e.ThirdPartyServices)
	t.Add(domain.CategoryMaintenance, e.Maintenance)
	t.Add(domain.CategoryBasicBasket, e.BasicBasket)
	return t
}

func MapHeadlinesDomainToApi(h domain.HeadlineFigures) api.Headlines {
	return api.Headlines{
		TotalSales:            h.TotalSales,
		EventRevenue:          h.EventRevenue,
		RawSupplies:           h.RawSupplies,
		Gas:                   h.Gas,
		Ice:                   h.Ice,
		DeclaredNetProfit:     h.DeclaredNetProfit,
		DeclaredTotalExpenses: h.DeclaredTotalExpenses,
	}
}

func MapHeadlinesApiToDomain(h api.Headlines) domain.HeadlineFigures {
	return domain.HeadlineFigures{
		TotalSales:            h.TotalSales,
		EventRevenue:          h.EventRevenue,
		RawSupplies:           h.RawSupplies,
		Gas:                   h.Gas,
		Ice:                   h.Ice,
		DeclaredNetProfit:     h.DeclaredNetProfit,
		DeclaredTotalExpenses: h.DeclaredTotalExpenses,
	}
}

func MapAnalysisResultDomainToApi(r domain.AnalysisResult) api.AnalysisResult {
	items := make([]api.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, api.LineItem{
			Line:   item.Line,
			Label:  item.Label,
			Target: item.Target,
			Amount: item.Amount,
		})
	}

	var labelTotals []api.LabelTotal
	for _, lt := range r.LabelTotals() {
		labelTotals = append(labelTotals, api.LabelTotal{
			Category: string(lt.Category),
			Label:    lt.Label,
			Amount:   lt.Amount,
		})
	}

	return api.AnalysisResult{
		TotalSales:            r.TotalSales,
		CostOfGoodsSold:       r.CostOfGoodsSold,
		ExpensesExcludingCOGS: r.ExpensesExcludingCOGS,
		DeclaredNetProfit:     r.DeclaredNetProfit,
		GasAndIce:             r.GasAndIce,
		Expenses:              MapExpensesDomainToApi(r.Expenses),
		Headlines:             MapHeadlinesDomainToApi(r.Headlines),
		Inventory: api.InventorySnapshot{
			Opening: r.Inventory.Opening,
			Closing: r.Inventory.Closing,
		},
		Items:       items,
		LabelTotals: labelTotals,
		Unmatched:   append([]string(nil), r.Unmatched...),
	}
}

// MapAnalysisResultApiToDomain restores a result a caller saved earlier so the
// markup can be recomputed without the report lines.
func MapAnalysisResultApiToDomain(r api.AnalysisResult) domain.AnalysisResult {
	items := make([]domain.ClassifiedLine, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.ClassifiedLine{
			Line:   item.Line,
			Label:  item.Label,
			Target: item.Target,
			Amount: item.Amount,
		})
	}

	return domain.AnalysisResult{
		TotalSales:            r.TotalSales,
		CostOfGoodsSold:       r.CostOfGoodsSold,
		ExpensesExcludingCOGS: r.ExpensesExcludingCOGS,
		DeclaredNetProfit:     r.DeclaredNetProfit,
		GasAndIce:             r.GasAndIce,
		Expenses:              MapExpensesApiToDomain(r.Expenses),
		Headlines:             MapHeadlinesApiToDomain(r.Headlines),
		Inventory: domain.InventorySnapshot{
			Opening: r.Inventory.Opening,
			Closing: r.Inventory.Closing,
		},
		Items:     items,
		Unmatched: append([]string(nil), r.Unmatched...),
	}
}
