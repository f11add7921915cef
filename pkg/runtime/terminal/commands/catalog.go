package commands

import (
	"fmt"

	"github.com/mathe-alves-alv/analise-dre/pkg/adapters"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/catalog"
	"github.com/spf13/cobra"
)

type CatalogCmd struct {
	env *Env

	name   string
	list   bool
	output string
}

func NewCatalogCmd(env *Env) *cobra.Command {
	cc := &CatalogCmd{env: env}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the label rules of a catalog in evaluation order",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.name, "catalog", "", "Catalog name (default from config)")
	cmd.Flags().BoolVar(&cc.list, "list", false, "List the available catalogs")
	cmd.Flags().StringVar(&cc.output, "output", OutputText, "Output format: text or json")

	return cmd
}

func (cc *CatalogCmd) run(cmd *cobra.Command, _ []string) error {
	if err := checkOutput(cc.output); err != nil {
		return err
	}
	registry := cc.env.Analyzer.Catalogs()

	if cc.list {
		names := registry.List()
		if cc.output == OutputJSON {
			return cc.env.Reporter.JSON(names)
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	c, err := registry.Get(cc.name)
	if err != nil {
		return err
	}
	if cc.output == OutputJSON {
		return cc.env.Reporter.JSON(adapters.MapCatalogDomainToApi(c))
	}
	return cc.env.Reporter.Handle(catalogReport(c))
}

func catalogReport(c *catalog.Catalog) *domain.Report {
	section := domain.ReportSection{Title: "Regras"}
	for i, r := range c.Rules() {
		target := r.Target
		if target == "" {
			target = "-"
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("%02d %s", i+1, r.Label),
			Value:       string(r.Match),
			Unit:        string(r.Mode),
			Description: target,
		})
	}

	return &domain.Report{
		Title: fmt.Sprintf("Catálogo %s", c.Name()),
		Summary: []domain.ReportDetail{
			{Name: "Descrição", Value: c.Description()},
			{Name: "Regras", Value: fmt.Sprint(len(section.Details))},
		},
		Sections: []domain.ReportSection{section},
	}
}
