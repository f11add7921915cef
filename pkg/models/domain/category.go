package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryAdministrative     Category = "administrative"
	CategoryPersonnel          Category = "personnel"
	CategoryNonOperational     Category = "nonOperational"
	CategoryFinancial          Category = "financial"
	CategoryTaxes              Category = "taxes"
	CategoryMarketing          Category = "marketing"
	CategoryThirdPartyServices Category = "thirdPartyServices"
	CategoryMaintenance        Category = "maintenance"
	CategoryBasicBasket        Category = "basicBasket"
)

var ErrUnknownCategory = errors.New("unknown category")

// categories is the fixed bucket set, in report order.
var categories = []Category{
	CategoryAdministrative,
	CategoryPersonnel,
	CategoryNonOperational,
	CategoryFinancial,
	CategoryTaxes,
	CategoryMarketing,
	CategoryThirdPartyServices,
	CategoryMaintenance,
	CategoryBasicBasket,
}

var displayNames = map[Category]string{
	CategoryAdministrative:     "Despesas Administrativas",
	CategoryPersonnel:          "Despesas com Pessoal",
	CategoryNonOperational:     "Despesas Não Operacionais",
	CategoryFinancial:          "Despesas Financeiras",
	CategoryTaxes:              "Despesas com Impostos",
	CategoryMarketing:          "Despesas com Marketing",
	CategoryThirdPartyServices: "Serviços de Terceiros",
	CategoryMaintenance:        "Manutenções",
	CategoryBasicBasket:        "Cesta Básica",
}

// Categories returns every category key in report order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := displayNames[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName is the label the report itself uses for the section.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// CategoryTotals accumulates amounts per category. Every key of Categories()
// is present, starting at zero.
type CategoryTotals map[Category]decimal.Decimal

func NewCategoryTotals() CategoryTotals {
	totals := make(CategoryTotals, len(categories))
	for _, c := range categories {
		totals[c] = decimal.Zero
	}
	return totals
}

func (t CategoryTotals) Add(c Category, amount decimal.Decimal) {
	t[c] = t[c].Add(amount)
}

func (t CategoryTotals) Get(c Category) decimal.Decimal {
	return t[c]
}

// Sum adds the totals of the given categories.
func (t CategoryTotals) Sum(cs ...Category) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range cs {
		sum = sum.Add(t[c])
	}
	return sum
}

func (t CategoryTotals) Clone() CategoryTotals {
	if t == nil {
		return nil
	}
	out := make(CategoryTotals, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// MarkupSelection is the set of categories whose totals are charged into the
// markup. It is a value object: the zero value selects nothing.
type MarkupSelection struct {
	set map[Category]struct{}
}

func NewMarkupSelection(cs ...Category) (MarkupSelection, error) {
	set := make(map[Category]struct{}, len(cs))
	for _, c := range cs {
		if !c.Valid() {
			return MarkupSelection{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
		set[c] = struct{}{}
	}
	return MarkupSelection{set: set}, nil
}

// ParseMarkupSelection builds a selection from raw keys as received from a
// caller (flags, JSON).
func ParseMarkupSelection(keys []string) (MarkupSelection, error) {
	cs := make([]Category, 0, len(keys))
	for _, k := range keys {
		c, err := ParseCategory(k)
		if err != nil {
			return MarkupSelection{}, err
		}
		cs = append(cs, c)
	}
	return NewMarkupSelection(cs...)
}

// SelectAll selects every category.
func SelectAll() MarkupSelection {
	s, _ := NewMarkupSelection(categories...)
	return s
}

// Without returns a copy of s with the given categories removed.
func (s MarkupSelection) Without(cs ...Category) MarkupSelection {
	set := make(map[Category]struct{}, len(s.set))
	for c := range s.set {
		set[c] = struct{}{}
	}
	for _, c := range cs {
		delete(set, c)
	}
	return MarkupSelection{set: set}
}

func (s MarkupSelection) Includes(c Category) bool {
	_, ok := s.set[c]
	return ok
}

// Categories returns the selected keys in report order.
func (s MarkupSelection) Categories() []Category {
	out := make([]Category, 0, len(s.set))
	for _, c := range categories {
		if s.Includes(c) {
			out = append(out, c)
		}
	}
	return out
}

// Keys returns the selected keys as strings, sorted.
func (s MarkupSelection) Keys() []string {
	out := make([]string, 0, len(s.set))
	for c := range s.set {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}
