package classify

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got}, msgAndArgs...)...)
}

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	cl, err := NewClassifier(catalog.Default())
	require.NoError(t, err)
	return cl
}

func readFixture(t *testing.T, name string) []string {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestNewClassifier_NilCatalog(t *testing.T) {
	cl, err := NewClassifier(nil)
	assert.Error(t, err)
	assert.Nil(t, cl)
}

func TestClassify_HeadlineScenario(t *testing.T) {
	// Given
	lines := []string{
		"Receitas com Vendas R$ 217.387,81",
		"Custos com Insumos R$ 98.580,90",
		"Gás R$ 3.210,38",
		"Gelo R$ 1.218,00",
		"Despesas (-) R$ 257.958,78",
		"Saldo (=) R$ 513,18",
	}

	// When
	got := newClassifier(t).Classify(context.Background(), lines)

	// Then
	assertDecimal(t, "217387.81", got.Headlines.TotalSales)
	assertDecimal(t, "98580.90", got.Headlines.RawSupplies)
	assertDecimal(t, "3210.38", got.Headlines.Gas)
	assertDecimal(t, "1218.00", got.Headlines.Ice)
	assertDecimal(t, "257958.78", got.Headlines.DeclaredTotalExpenses)
	assertDecimal(t, "513.18", got.Headlines.DeclaredNetProfit)
	assert.Len(t, got.Items, 6)
	assert.Empty(t, got.Unmatched)
	for _, c := range domain.Categories() {
		assertDecimal(t, "0", got.Totals.Get(c), c)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	got := newClassifier(t).Classify(context.Background(), nil)

	assert.Equal(t, domain.HeadlineFigures{}.TotalSales.String(), got.Headlines.TotalSales.String())
	assert.True(t, got.Headlines.DirectCosts().IsZero())
	assert.Len(t, got.Totals, len(domain.Categories()))
	for _, c := range domain.Categories() {
		assert.True(t, got.Totals.Get(c).IsZero(), c)
	}
	assert.Empty(t, got.Items)
	assert.Empty(t, got.Unmatched)
}

func TestClassify_LastHeadlineWins(t *testing.T) {
	lines := []string{
		"Receitas com Vendas R$ 100,00",
		"Energia R$ 10,00",
		"Receitas com Vendas R$ 250,00",
	}

	got := newClassifier(t).Classify(context.Background(), lines)

	assertDecimal(t, "250", got.Headlines.TotalSales)
}

func TestClassify_CategoriesAreAdditive(t *testing.T) {
	lines := []string{
		"Energia R$ 1.000,00",
		"Internet R$ 200,50",
		"Energia R$ 10,00",
		"Salários e Ordenados R$ 5.000,00",
		"Uber R$ 45,90",
	}

	got := newClassifier(t).Classify(context.Background(), lines)

	assertDecimal(t, "1210.50", got.Totals.Get(domain.CategoryAdministrative))
	assertDecimal(t, "5045.90", got.Totals.Get(domain.CategoryPersonnel))
}

func TestClassify_MarketingConsultingIsNotDoubleCounted(t *testing.T) {
	// Given
	lines := []string{"Consultoria Marketing R$ 500,00"}

	// When
	got := newClassifier(t).Classify(context.Background(), lines)

	// Then
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Consultoria Marketing", got.Items[0].Label)
	assert.Equal(t, string(domain.CategoryThirdPartyServices), got.Items[0].Target)
	assertDecimal(t, "500", got.Totals.Get(domain.CategoryThirdPartyServices))
	assertDecimal(t, "0", got.Totals.Get(domain.CategoryMarketing))

	sum := got.Totals.Sum(domain.Categories()...)
	assertDecimal(t, "500", sum)
}

func TestClassify_FinancialHeader(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		want      string
		unmatched int
	}{
		{name: "positive header is a contribution", line: "DESPESAS FINANCEIRAS R$ 1.830,12", want: "1830.12"},
		{name: "zero header is skipped", line: "DESPESAS FINANCEIRAS R$ 0,00", want: "0", unmatched: 1},
		{name: "header without amount is skipped", line: "DESPESAS FINANCEIRAS", want: "0", unmatched: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newClassifier(t).Classify(context.Background(), []string{tt.line})

			assertDecimal(t, tt.want, got.Totals.Get(domain.CategoryFinancial))
			assert.Len(t, got.Unmatched, tt.unmatched)
		})
	}
}

func TestClassify_IgnoredAndUnknownLines(t *testing.T) {
	lines := []string{
		"DESPESAS ADMINISTRATIVAS R$ 9.999,00",
		"Investimento Atos. R$ 1.000,00",
		"Tarifas Bancárias R$ 35,00",
		"DESPESAS",
	}

	got := newClassifier(t).Classify(context.Background(), lines)

	assert.True(t, got.Totals.Sum(domain.Categories()...).IsZero())
	assert.Equal(t, []string{"Tarifas Bancárias R$ 35,00", "DESPESAS"}, got.Unmatched)
	require.Len(t, got.Items, 2)
	assert.Empty(t, got.Items[0].Target)
	assert.Empty(t, got.Items[1].Target)
}

func TestClassify_EventRevenueCapturedSeparately(t *testing.T) {
	lines := []string{
		"Receitas com Vendas R$ 1.000,00",
		"Eventos R$ 300,00",
		"DESPESAS COM EVENTOS R$ 120,00",
		"Insumos evento R$ 120,00",
	}

	got := newClassifier(t).Classify(context.Background(), lines)

	assertDecimal(t, "1000", got.Headlines.TotalSales)
	assertDecimal(t, "300", got.Headlines.EventRevenue)
	assert.True(t, got.Headlines.RawSupplies.IsZero())
}

func TestClassify_ExhaustiveFixture(t *testing.T) {
	// Given: a full month where every expense line is known to the catalog
	lines := readFixture(t, "dre_abril_2025.txt")

	// When
	got := newClassifier(t).Classify(context.Background(), lines)

	// Then
	want := map[domain.Category]string{
		domain.CategoryAdministrative:     "28183.37",
		domain.CategoryPersonnel:          "56950.00",
		domain.CategoryNonOperational:     "1715.75",
		domain.CategoryFinancial:          "1830.12",
		domain.CategoryTaxes:              "15460.00",
		domain.CategoryMarketing:          "6000.00",
		domain.CategoryThirdPartyServices: "2500.00",
		domain.CategoryMaintenance:        "1090.00",
		domain.CategoryBasicBasket:        "1320.00",
	}
	for c, v := range want {
		assertDecimal(t, v, got.Totals.Get(c), c)
	}
	assertDecimal(t, "217387.81", got.Headlines.TotalSales)
	assertDecimal(t, "2500", got.Headlines.EventRevenue)
	assertDecimal(t, "103009.28", got.Headlines.DirectCosts())
	assertDecimal(t, "218058.52", got.Headlines.DeclaredTotalExpenses)
	assertDecimal(t, "1829.29", got.Headlines.DeclaredNetProfit)
	assert.Len(t, got.Unmatched, 3)

	classified := got.Totals.Sum(domain.Categories()...).Add(got.Headlines.DirectCosts())
	assert.True(t, classified.LessThanOrEqual(got.Headlines.DeclaredTotalExpenses),
		"classified %s exceeds declared %s", classified, got.Headlines.DeclaredTotalExpenses)
}

func TestClassify_DirectCostsIgnoreLineOrder(t *testing.T) {
	lines := readFixture(t, "dre_abril_2025.txt")
	reversed := make([]string, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}
	cl := newClassifier(t)

	forward := cl.Classify(context.Background(), lines)
	backward := cl.Classify(context.Background(), reversed)

	assert.True(t, forward.Headlines.DirectCosts().Equal(backward.Headlines.DirectCosts()))
	for _, c := range domain.Categories() {
		assert.True(t, forward.Totals.Get(c).Equal(backward.Totals.Get(c)), c)
	}
}

func TestClassify_RunsAreIndependent(t *testing.T) {
	cl := newClassifier(t)
	lines := []string{"Energia R$ 100,00"}

	first := cl.Classify(context.Background(), lines)
	second := cl.Classify(context.Background(), lines)

	assertDecimal(t, "100", first.Totals.Get(domain.CategoryAdministrative))
	assertDecimal(t, "100", second.Totals.Get(domain.CategoryAdministrative))
}
