package commands

import (
	"fmt"
	"io"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/runtime/terminal/export"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/analysis"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/config"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/normalize"
	"github.com/shopspring/decimal"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// Env holds what the commands share. Config and Analyzer are filled in by the
// root command before any subcommand runs.
type Env struct {
	Config   *config.Config
	Analyzer analysis.Analyzer
	Reporter *export.Reporter
	Input    io.Reader
}

func checkOutput(output string) error {
	switch output {
	case OutputText, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output %q, use %s or %s", output, OutputText, OutputJSON)
	}
}

// selectionFlags resolves --include and --exclude into a markup selection.
// Without --include every category is selected.
type selectionFlags struct {
	include []string
	exclude []string
}

func (f selectionFlags) resolve() (domain.MarkupSelection, error) {
	sel := domain.SelectAll()
	if len(f.include) > 0 {
		var err error
		if sel, err = domain.ParseMarkupSelection(f.include); err != nil {
			return domain.MarkupSelection{}, err
		}
	}

	excluded := make([]domain.Category, 0, len(f.exclude))
	for _, key := range f.exclude {
		c, err := domain.ParseCategory(key)
		if err != nil {
			return domain.MarkupSelection{}, err
		}
		excluded = append(excluded, c)
	}
	return sel.Without(excluded...), nil
}

// ratio returns the --target-profit value, or the configured one when unset.
func ratio(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return fallback, nil
	}
	r, err := normalize.Decimal(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --target-profit: %w", err)
	}
	if r.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid --target-profit: %s is negative", r)
	}
	return r, nil
}
