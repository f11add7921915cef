package adapters

import (
	"github.com/mathe-alves-alv/analise-dre/pkg/models/api"
	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/catalog"
)

func MapCategoriesDomainToApi(cs []domain.Category) []api.Category {
	out := make([]api.Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, api.Category{Key: string(c), Name: c.DisplayName()})
	}
	return out
}

func MapRuleDomainToApi(r catalog.Rule) api.Rule {
	return api.Rule{
		Label:   r.Label,
		Pattern: r.Pattern,
		Match:   string(r.Match),
		Target:  r.Target,
		Mode:    string(r.Mode),
	}
}

func MapCatalogDomainToApi(c *catalog.Catalog) api.Catalog {
	rules := c.Rules()
	out := api.Catalog{
		Name:        c.Name(),
		Description: c.Description(),
		Rules:       make([]api.Rule, 0, len(rules)),
	}
	for _, r := range rules {
		out.Rules = append(out.Rules, MapRuleDomainToApi(r))
	}
	return out
}

func MapCatalogSummaryDomainToApi(c *catalog.Catalog) api.CatalogSummary {
	return api.CatalogSummary{
		Name:        c.Name(),
		Description: c.Description(),
		Rules:       len(c.Rules()),
	}
}
