package analysis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/catalog"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/classify"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/metrics"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Analyzer turns report lines into an analysis result and prices it
type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	Markup(ctx context.Context, result *domain.AnalysisResult, sel domain.MarkupSelection, ratio decimal.Decimal) decimal.NullDecimal
	// TargetProfitRatio is the ratio used when a caller does not pick one
	TargetProfitRatio() decimal.Decimal
	Catalogs() catalog.Registry
}

type service struct {
	catalogs   catalog.Registry
	calculator *metrics.Calculator
}

func NewService(catalogs catalog.Registry, calculator *metrics.Calculator) (Analyzer, error) {
	if catalogs == nil {
		return nil, fmt.Errorf("catalog registry must be provided")
	}
	if calculator == nil {
		calculator = metrics.NewCalculator()
	}
	return &service{catalogs: catalogs, calculator: calculator}, nil
}

func (s *service) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := metrics.NewInventory(req.Inventory.Opening, req.Inventory.Closing); err != nil {
		return nil, err
	}

	c, err := s.catalogs.Get(req.Catalog)
	if err != nil {
		return nil, err
	}

	cl, err := classify.NewClassifier(c)
	if err != nil {
		return nil, err
	}

	lines := CleanLines(req.Lines)
	classification := cl.Classify(ctx, lines)
	result := s.calculator.Derive(classification, req.Inventory)

	logger.Info().
		Str("catalog", c.Name()).
		Int("lines", len(lines)).
		Int("unmatched", len(result.Unmatched)).
		Str("total_sales", result.TotalSales.String()).
		Str("cogs", result.CostOfGoodsSold.String()).
		Msg("analysis completed")

	return &result, nil
}

func (s *service) Markup(
	ctx context.Context,
	result *domain.AnalysisResult,
	sel domain.MarkupSelection,
	ratio decimal.Decimal,
) decimal.NullDecimal {
	factor := metrics.Markup(result, sel, ratio)

	event := zerolog.Ctx(ctx).Debug().
		Strs("selection", sel.Keys()).
		Str("ratio", ratio.String())
	if factor.Valid {
		event = event.Str("markup", factor.Decimal.StringFixed(2))
	}
	event.Msg("markup computed")

	return factor
}

func (s *service) TargetProfitRatio() decimal.Decimal {
	return s.calculator.TargetProfitRatio
}

func (s *service) Catalogs() catalog.Registry {
	return s.catalogs
}

// MaxLineSize is the longest report line ReadLines accepts.
const MaxLineSize = 1024 * 1024

// ReadLines splits plain report text into trimmed, non-empty lines. A line
// longer than MaxLineSize fails with an error wrapping bufio.ErrTooLong.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report lines: %w", err)
	}
	return CleanLines(lines), nil
}

// SplitLines is ReadLines for text already in memory.
func SplitLines(text string) ([]string, error) {
	return ReadLines(strings.NewReader(text))
}

// CleanLines trims every line and drops the empty ones.
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
