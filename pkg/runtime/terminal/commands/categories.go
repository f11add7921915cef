package commands

import (
	"fmt"

	"github.com/mathe-alves-alv/analise-dre/pkg/adapters"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/spf13/cobra"
)

type CategoriesCmd struct {
	env    *Env
	output string
}

func NewCategoriesCmd(env *Env) *cobra.Command {
	cc := &CategoriesCmd{env: env}
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the expense category keys accepted by --include and --exclude",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.output, "output", OutputText, "Output format: text or json")

	return cmd
}

func (cc *CategoriesCmd) run(cmd *cobra.Command, _ []string) error {
	if err := checkOutput(cc.output); err != nil {
		return err
	}

	categories := adapters.MapCategoriesDomainToApi(domain.Categories())
	if cc.output == OutputJSON {
		return cc.env.Reporter.JSON(categories)
	}

	for _, c := range categories {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", c.Key, c.Name)
	}
	return nil
}
