package classify

import (
	"context"
	"fmt"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/catalog"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/normalize"
	"github.com/rs/zerolog"
)

// Classifier dispatches report lines to headline figures and category totals
// using a catalog. It holds no per-run state and is safe for concurrent use.
type Classifier struct {
	catalog *catalog.Catalog
}

func NewClassifier(c *catalog.Catalog) (*Classifier, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	return &Classifier{catalog: c}, nil
}

func (cl *Classifier) Catalog() *catalog.Catalog {
	return cl.catalog
}

// Classify makes a single ordered pass over lines. Each line feeds at most one
// target; lines no rule accepts are skipped.
func (cl *Classifier) Classify(ctx context.Context, lines []string) domain.Classification {
	logger := zerolog.Ctx(ctx)

	result := domain.Classification{
		Totals: domain.NewCategoryTotals(),
	}

	for _, line := range lines {
		amount := normalize.Amount(line)

		rule, ok := cl.catalog.Match(line, amount)
		if !ok {
			result.Unmatched = append(result.Unmatched, line)
			logger.Debug().Str("line", line).Msg("no rule matched report line")
			continue
		}

		switch rule.Mode {
		case catalog.ModeAssign:
			h, _ := rule.Headline()
			result.Headlines.Set(h, amount)
		case catalog.ModeAdd, catalog.ModeAddPositive:
			c, _ := rule.Category()
			result.Totals.Add(c, amount)
		case catalog.ModeIgnore:
		}

		result.Items = append(result.Items, domain.ClassifiedLine{
			Line:   line,
			Label:  rule.Label,
			Target: rule.Target,
			Amount: amount,
		})
	}

	logger.Debug().
		Str("catalog", cl.catalog.Name()).
		Int("lines", len(lines)).
		Int("classified", len(result.Items)).
		Int("unmatched", len(result.Unmatched)).
		Msg("report lines classified")

	return result
}
