package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mathe-alves-alv/analise-dre/pkg/adapters"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/api"
	"github.com/spf13/cobra"
)

type MarkupCmd struct {
	env *Env

	resultPath   string
	targetProfit string
	output       string
	selection    selectionFlags
}

func NewMarkupCmd(env *Env) *cobra.Command {
	mc := &MarkupCmd{env: env}
	cmd := &cobra.Command{
		Use:   "markup",
		Short: "Recompute the markup of a saved analysis with another selection",
		Args:  cobra.NoArgs,
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.resultPath, "result", "", "JSON written by analyze --output json")
	cmd.Flags().StringVar(&mc.targetProfit, "target-profit", "", "Target profit ratio, e.g. 0.10")
	cmd.Flags().StringVar(&mc.output, "output", OutputText, "Output format: text or json")
	cmd.Flags().StringSliceVar(&mc.selection.include, "include", nil, "Categories charged into the markup (default all)")
	cmd.Flags().StringSliceVar(&mc.selection.exclude, "exclude", nil, "Categories left out of the markup")

	_ = cmd.MarkFlagRequired("result")

	return cmd
}

func (mc *MarkupCmd) run(cmd *cobra.Command, _ []string) error {
	if err := checkOutput(mc.output); err != nil {
		return err
	}
	sel, err := mc.selection.resolve()
	if err != nil {
		return err
	}
	r, err := ratio(mc.targetProfit, mc.env.Analyzer.TargetProfitRatio())
	if err != nil {
		return err
	}

	saved, err := readSavedResult(mc.resultPath)
	if err != nil {
		return err
	}

	result := adapters.MapAnalysisResultApiToDomain(*saved)
	markup := mc.env.Analyzer.Markup(cmd.Context(), &result, sel, r)

	if mc.output == OutputJSON {
		return mc.env.Reporter.JSON(api.MarkupResponse{
			Selection:         sel.Keys(),
			TargetProfitRatio: r,
			MarkupFactor:      markup,
		})
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Markup: %s\n", adapters.FormatMarkup(markup))
	return err
}

// readSavedResult accepts either a full analyze response or a bare result.
func readSavedResult(path string) (*api.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved result: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse saved result: %w", err)
	}
	if inner, ok := doc["result"]; ok {
		data = inner
	}

	var result api.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse saved result: %w", err)
	}
	return &result, nil
}
