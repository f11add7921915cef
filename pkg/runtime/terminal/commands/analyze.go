package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mathe-alves-alv/analise-dre/pkg/adapters"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/api"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/analysis"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/metrics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	env *Env

	input            string
	opening          string
	closing          string
	inventoryProfile string
	catalog          string
	targetProfit     string
	output           string
	trace            bool
	selection        selectionFlags
}

func NewAnalyzeCmd(env *Env) *cobra.Command {
	ac := &AnalyzeCmd{env: env}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify a DRE report and compute its markup",
		Args:  cobra.NoArgs,
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.input, "input", "", "Report text file, one line per entry (- for stdin)")
	cmd.Flags().StringVar(&ac.opening, "opening", "", "Opening inventory value")
	cmd.Flags().StringVar(&ac.closing, "closing", "", "Closing inventory value")
	cmd.Flags().StringVar(&ac.inventoryProfile, "inventory-profile", "", "Inventory profile from inventory.file")
	cmd.Flags().StringVar(&ac.catalog, "catalog", "", "Catalog name (default from config)")
	cmd.Flags().StringVar(&ac.targetProfit, "target-profit", "", "Target profit ratio, e.g. 0.10")
	cmd.Flags().StringVar(&ac.output, "output", OutputText, "Output format: text or json")
	cmd.Flags().BoolVar(&ac.trace, "trace", false, "Show how every line was classified")
	cmd.Flags().StringSliceVar(&ac.selection.include, "include", nil, "Categories charged into the markup (default all)")
	cmd.Flags().StringSliceVar(&ac.selection.exclude, "exclude", nil, "Categories left out of the markup")

	_ = cmd.MarkFlagRequired("input")
	cmd.MarkFlagsMutuallyExclusive("inventory-profile", "opening")
	cmd.MarkFlagsMutuallyExclusive("inventory-profile", "closing")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := checkOutput(ac.output); err != nil {
		return err
	}
	sel, err := ac.selection.resolve()
	if err != nil {
		return err
	}
	r, err := ratio(ac.targetProfit, ac.env.Analyzer.TargetProfitRatio())
	if err != nil {
		return err
	}
	inv, err := ac.inventory(cmd)
	if err != nil {
		return err
	}
	c, err := ac.env.Analyzer.Catalogs().Get(ac.catalog)
	if err != nil {
		return err
	}
	lines, err := ac.readLines()
	if err != nil {
		return err
	}

	id := uuid.NewString()
	ctx = zerolog.Ctx(ctx).With().Str("analysis_id", id).Logger().WithContext(ctx)

	result, err := ac.env.Analyzer.Analyze(ctx, domain.AnalysisRequest{
		Lines:     lines,
		Inventory: inv,
		Catalog:   c.Name(),
	})
	if err != nil {
		return fmt.Errorf("failed to analyze report: %w", err)
	}
	markup := ac.env.Analyzer.Markup(ctx, result, sel, r)

	if ac.output == OutputJSON {
		return ac.env.Reporter.JSON(api.AnalysisResponse{
			ID:                id,
			Catalog:           c.Name(),
			Result:            adapters.MapAnalysisResultDomainToApi(*result),
			Selection:         sel.Keys(),
			TargetProfitRatio: r,
			MarkupFactor:      markup,
		})
	}

	return ac.env.Reporter.Handle(adapters.MapAnalysisResultToReport(*result, adapters.ReportOptions{
		Catalog:           c.Name(),
		Selection:         sel,
		TargetProfitRatio: r,
		Markup:            markup,
		Trace:             ac.trace,
	}))
}

func (ac *AnalyzeCmd) inventory(cmd *cobra.Command) (domain.InventorySnapshot, error) {
	if ac.inventoryProfile == "" {
		return metrics.ParseInventory(ac.opening, ac.closing)
	}

	registry, err := ac.env.Config.InventoryProfiles()
	if err != nil {
		return domain.InventorySnapshot{}, err
	}
	return registry.GetSnapshot(cmd.Context(), ac.inventoryProfile)
}

func (ac *AnalyzeCmd) readLines() ([]string, error) {
	var r io.Reader = ac.env.Input
	if ac.input != "-" {
		f, err := os.Open(ac.input)
		if err != nil {
			return nil, fmt.Errorf("failed to open report: %w", err)
		}
		defer f.Close()
		r = f
	}
	return analysis.ReadLines(r)
}
