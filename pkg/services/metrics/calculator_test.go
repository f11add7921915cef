package metrics

import (
	"context"
	"testing"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/catalog"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/classify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func classifyLines(t *testing.T, lines ...string) domain.Classification {
	t.Helper()
	cl, err := classify.NewClassifier(catalog.Default())
	require.NoError(t, err)
	return cl.Classify(context.Background(), lines)
}

func inventory(opening, closing string) domain.InventorySnapshot {
	return domain.InventorySnapshot{Opening: dec(opening), Closing: dec(closing)}
}

func TestNewCalculator_Defaults(t *testing.T) {
	c := NewCalculator()

	assert.True(t, c.TargetProfitRatio.Equal(dec("0.10")))
	assert.False(t, c.IncludeEventRevenue)

	c = NewCalculator(WithTargetProfitRatio(dec("0.25")), WithEventRevenue(true))
	assert.True(t, c.TargetProfitRatio.Equal(dec("0.25")))
	assert.True(t, c.IncludeEventRevenue)
}

func TestDerive_HeadlineScenario(t *testing.T) {
	// Given
	cl := classifyLines(t,
		"Receitas com Vendas R$ 217.387,81",
		"Custos com Insumos R$ 98.580,90",
		"Gás R$ 3.210,38",
		"Gelo R$ 1.218,00",
		"Despesas (-) R$ 257.958,78",
		"Saldo (=) R$ 513,18",
	)

	// When
	got := NewCalculator().Derive(cl, inventory("38000", "37000"))

	// Then
	assert.True(t, got.TotalSales.Equal(dec("217387.81")), got.TotalSales.String())
	assert.True(t, got.CostOfGoodsSold.Equal(dec("104009.28")), got.CostOfGoodsSold.String())
	assert.True(t, got.ExpensesExcludingCOGS.Equal(dec("154949.50")), got.ExpensesExcludingCOGS.String())
	assert.True(t, got.DeclaredNetProfit.Equal(dec("513.18")))
	assert.True(t, got.GasAndIce.Equal(dec("4428.38")))
	assert.Len(t, got.Expenses, len(domain.Categories()))

	markup := Markup(&got, domain.SelectAll(), DefaultTargetProfitRatio)
	require.True(t, markup.Valid)
	assert.Equal(t, "1.21", markup.Decimal.StringFixed(2))
}

func TestDerive_EmptyInput(t *testing.T) {
	got := NewCalculator().Derive(classifyLines(t), inventory("0", "0"))

	assert.True(t, got.TotalSales.IsZero())
	assert.True(t, got.CostOfGoodsSold.IsZero())
	assert.True(t, got.ExpensesExcludingCOGS.IsZero())
	for _, c := range domain.Categories() {
		assert.True(t, got.Expenses.Get(c).IsZero(), c)
	}

	markup := Markup(&got, domain.SelectAll(), DefaultTargetProfitRatio)
	require.True(t, markup.Valid, "zero cost is a defined markup, not a missing one")
	assert.True(t, markup.Decimal.IsZero())
}

func TestDerive_EventRevenue(t *testing.T) {
	cl := classifyLines(t,
		"Receitas com Vendas R$ 1.000,00",
		"Eventos R$ 300,00",
	)

	excluded := NewCalculator().Derive(cl, inventory("0", "0"))
	included := NewCalculator(WithEventRevenue(true)).Derive(cl, inventory("0", "0"))

	assert.True(t, excluded.TotalSales.Equal(dec("1000")))
	assert.True(t, included.TotalSales.Equal(dec("1300")))
}

func TestDerive_CostOfGoodsSoldIdentity(t *testing.T) {
	tests := []struct {
		name             string
		supplies, gas    string
		ice              string
		opening, closing string
	}{
		{name: "stock grew", supplies: "1000", gas: "10", ice: "5", opening: "200", closing: "500"},
		{name: "stock shrank", supplies: "1000.01", gas: "0.99", ice: "0", opening: "500", closing: "200"},
		{name: "no purchases", supplies: "0", gas: "0", ice: "0", opening: "50.5", closing: "50.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := domain.Classification{
				Headlines: domain.HeadlineFigures{RawSupplies: dec(tt.supplies), Gas: dec(tt.gas), Ice: dec(tt.ice)},
				Totals:    domain.NewCategoryTotals(),
			}
			inv := inventory(tt.opening, tt.closing)

			got := NewCalculator().Derive(cl, inv)

			want := inv.Opening.Add(dec(tt.supplies)).Sub(inv.Closing).Add(dec(tt.gas)).Add(dec(tt.ice))
			assert.True(t, got.CostOfGoodsSold.Equal(want), "want %s, got %s", want, got.CostOfGoodsSold)
		})
	}
}

func TestDerive_DoesNotShareTotals(t *testing.T) {
	cl := classifyLines(t, "Energia R$ 10,00")

	got := NewCalculator().Derive(cl, inventory("0", "0"))
	cl.Totals.Add(domain.CategoryAdministrative, dec("5"))

	assert.True(t, got.Expenses.Get(domain.CategoryAdministrative).Equal(dec("10")))
}

func TestMarkup_Selection(t *testing.T) {
	// Given: COGS 100, administrative 50, personnel 30, sales 1000
	cl := classifyLines(t,
		"Receitas com Vendas R$ 1.000,00",
		"Custos com Insumos R$ 100,00",
		"Energia R$ 50,00",
		"Salários e Ordenados R$ 30,00",
	)
	result := NewCalculator().Derive(cl, inventory("0", "0"))

	adminOnly, err := domain.NewMarkupSelection(domain.CategoryAdministrative)
	require.NoError(t, err)

	tests := []struct {
		name  string
		sel   domain.MarkupSelection
		ratio string
		want  string
	}{
		{name: "every category", sel: domain.SelectAll(), ratio: "0.10", want: "2.80"},
		{name: "administrative only", sel: adminOnly, ratio: "0.10", want: "2.50"},
		{name: "nothing selected", sel: domain.MarkupSelection{}, ratio: "0.10", want: "2.00"},
		{name: "personnel excluded", sel: domain.SelectAll().Without(domain.CategoryPersonnel), ratio: "0.10", want: "2.50"},
		{name: "higher profit target", sel: domain.SelectAll(), ratio: "0.20", want: "3.80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When
			got := Markup(&result, tt.sel, dec(tt.ratio))

			// Then
			require.True(t, got.Valid)
			assert.Equal(t, tt.want, got.Decimal.StringFixed(2))
		})
	}
}

func TestMarkup_SelectionDoesNotChangeResult(t *testing.T) {
	cl := classifyLines(t, "Custos com Insumos R$ 100,00", "Energia R$ 50,00")
	result := NewCalculator().Derive(cl, inventory("0", "0"))

	_ = Markup(&result, domain.MarkupSelection{}, DefaultTargetProfitRatio)

	assert.True(t, result.Expenses.Get(domain.CategoryAdministrative).Equal(dec("50")))
}

func TestMarkup_RoundsToTwoPlaces(t *testing.T) {
	result := domain.AnalysisResult{
		CostOfGoodsSold: dec("3"),
		Expenses:        domain.NewCategoryTotals(),
		TotalSales:      dec("1"),
	}

	got := Markup(&result, domain.SelectAll(), dec("0.10"))

	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("1.03")), got.Decimal.String())
}

func TestMarkup_NotReady(t *testing.T) {
	assert.False(t, Markup(nil, domain.SelectAll(), DefaultTargetProfitRatio).Valid)
	assert.False(t, Markup(&domain.AnalysisResult{CostOfGoodsSold: dec("10")}, domain.SelectAll(), DefaultTargetProfitRatio).Valid)
}

func TestCalculator_MarkupUsesConfiguredRatio(t *testing.T) {
	result := domain.AnalysisResult{
		CostOfGoodsSold: dec("100"),
		TotalSales:      dec("1000"),
		Expenses:        domain.NewCategoryTotals(),
	}

	got := NewCalculator(WithTargetProfitRatio(dec("0.05"))).Markup(&result, domain.SelectAll())

	require.True(t, got.Valid)
	assert.Equal(t, "1.50", got.Decimal.StringFixed(2))
}
