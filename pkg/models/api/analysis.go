package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a caller supplied number. It accepts a JSON number or a string in
// either canonical ("38000.50") or report ("38.000,50") notation.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

type Inventory struct {
	Opening Amount `json:"opening"`
	Closing Amount `json:"closing"`
}

// AnalysisRequest carries the report either as lines or as plain text. A
// missing selection selects every category; an empty one selects none.
type AnalysisRequest struct {
	Lines             []string         `json:"lines,omitempty"`
	Text              string           `json:"text,omitempty"`
	Inventory         Inventory        `json:"inventory"`
	Selection         []string         `json:"selection,omitempty"`
	TargetProfitRatio *decimal.Decimal `json:"targetProfitRatio,omitempty"`
	Catalog           string           `json:"catalog,omitempty"`
}

type Expenses struct {
	Administrative     decimal.Decimal `json:"administrative"`
	Personnel          decimal.Decimal `json:"personnel"`
	NonOperational     decimal.Decimal `json:"nonOperational"`
	Financial          decimal.Decimal `json:"financial"`
	Taxes              decimal.Decimal `json:"taxes"`
	Marketing          decimal.Decimal `json:"marketing"`
	ThirdPartyServices decimal.Decimal `json:"thirdPartyServices"`
	Maintenance        decimal.Decimal `json:"maintenance"`
	BasicBasket        decimal.Decimal `json:"basicBasket"`
}

type Headlines struct {
	TotalSales            decimal.Decimal `json:"totalSales"`
	EventRevenue          decimal.Decimal `json:"eventRevenue"`
	RawSupplies           decimal.Decimal `json:"rawSupplies"`
	Gas                   decimal.Decimal `json:"gas"`
	Ice                   decimal.Decimal `json:"ice"`
	DeclaredNetProfit     decimal.Decimal `json:"declaredNetProfit"`
	DeclaredTotalExpenses decimal.Decimal `json:"declaredTotalExpenses"`
}

type InventorySnapshot struct {
	Opening decimal.Decimal `json:"opening"`
	Closing decimal.Decimal `json:"closing"`
}

type LineItem struct {
	Line   string          `json:"line"`
	Label  string          `json:"label"`
	Target string          `json:"target,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type LabelTotal struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
}

type AnalysisResult struct {
	TotalSales            decimal.Decimal   `json:"totalSales"`
	CostOfGoodsSold       decimal.Decimal   `json:"costOfGoodsSold"`
	ExpensesExcludingCOGS decimal.Decimal   `json:"expensesExcludingCOGS"`
	DeclaredNetProfit     decimal.Decimal   `json:"declaredNetProfit"`
	GasAndIce             decimal.Decimal   `json:"gasAndIce"`
	Expenses              Expenses          `json:"expenses"`
	Headlines             Headlines         `json:"headlines"`
	Inventory             InventorySnapshot `json:"inventory"`
	Items                 []LineItem        `json:"items,omitempty"`
	LabelTotals           []LabelTotal      `json:"labelTotals,omitempty"`
	Unmatched             []string          `json:"unmatched,omitempty"`
}

type AnalysisResponse struct {
	ID                string              `json:"id"`
	Catalog           string              `json:"catalog"`
	Result            AnalysisResult      `json:"result"`
	Selection         []string            `json:"selection"`
	TargetProfitRatio decimal.Decimal     `json:"targetProfitRatio"`
	MarkupFactor      decimal.NullDecimal `json:"markupFactor"`
}

type MarkupRequest struct {
	Result            *AnalysisResult  `json:"result"`
	Selection         []string         `json:"selection,omitempty"`
	TargetProfitRatio *decimal.Decimal `json:"targetProfitRatio,omitempty"`
}

type MarkupResponse struct {
	Selection         []string            `json:"selection"`
	TargetProfitRatio decimal.Decimal     `json:"targetProfitRatio"`
	MarkupFactor      decimal.NullDecimal `json:"markupFactor"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
