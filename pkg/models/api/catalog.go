package api

type Category struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type CatalogSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rules       int    `json:"rules"`
}

type Rule struct {
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
	Match   string `json:"match"`
	Target  string `json:"target,omitempty"`
	Mode    string `json:"mode"`
}

type Catalog struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rules       []Rule `json:"rules"`
}
