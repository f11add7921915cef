// Package catalog holds the label rules that map report lines to headline
// figures and expense categories.
//
// A catalog is an ordered rule list evaluated top-down; the first rule that
// accepts a line consumes it. Catalogs are data: they are read from YAML and
// are immutable once built.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const DefaultName = "default"

type Mode string

const (
	// ModeAssign overwrites a headline figure.
	ModeAssign Mode = "assign"
	// ModeAdd adds the line amount to a category bucket.
	ModeAdd Mode = "add"
	// ModeAddPositive adds to a category only when the amount is strictly
	// positive. Otherwise the rule does not match and evaluation continues.
	ModeAddPositive Mode = "addPositive"
	// ModeIgnore consumes a structural line without effect.
	ModeIgnore Mode = "ignore"
)

type MatchKind string

const (
	MatchContains MatchKind = "contains"
	MatchPrefix   MatchKind = "prefix"
)

type Rule struct {
	Label   string    `yaml:"label,omitempty" json:"label"`
	Pattern string    `yaml:"pattern" json:"pattern"`
	Match   MatchKind `yaml:"match,omitempty" json:"match"`
	Target  string    `yaml:"target,omitempty" json:"target,omitempty"`
	Mode    Mode      `yaml:"mode,omitempty" json:"mode"`
}

func (r Rule) Matches(line string) bool {
	if r.Match == MatchPrefix {
		return strings.HasPrefix(line, r.Pattern)
	}
	return strings.Contains(line, r.Pattern)
}

func (r Rule) Headline() (domain.Headline, bool) {
	h := domain.Headline(r.Target)
	return h, h.Valid()
}

func (r Rule) Category() (domain.Category, bool) {
	c := domain.Category(r.Target)
	return c, c.Valid()
}

// covers reports whether every line matched by r is also matched by other.
func (r Rule) covers(other Rule) bool {
	switch r.Match {
	case MatchPrefix:
		return other.Match == MatchPrefix && strings.HasPrefix(other.Pattern, r.Pattern)
	default:
		return strings.Contains(other.Pattern, r.Pattern)
	}
}

type Catalog struct {
	name        string
	description string
	rules       []Rule
}

type document struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Rules       []Rule `yaml:"rules"`
}

// New fills rule defaults and validates the rule list.
func New(name, description string, rules []Rule) (*Catalog, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("catalog name cannot be empty")
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("catalog %q has no rules", name)
	}

	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		normalized = append(normalized, withDefaults(r))
	}

	c := &Catalog{name: name, description: description, rules: normalized}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func withDefaults(r Rule) Rule {
	if r.Match == "" {
		r.Match = MatchContains
	}
	if r.Label == "" {
		r.Label = r.Pattern
	}
	if r.Mode == "" {
		if _, ok := r.Headline(); ok {
			r.Mode = ModeAssign
		} else if _, ok := r.Category(); ok {
			r.Mode = ModeAdd
		}
	}
	return r
}

// Parse reads a catalog document in YAML.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Name, doc.Description, doc.Rules)
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

//go:embed default.yaml
var defaultDocument []byte

var defaultCatalog = mustParse(defaultDocument)

func mustParse(b []byte) *Catalog {
	c, err := Parse(bytes.NewReader(b))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded catalog: %v", err))
	}
	return c
}

// Default returns the built-in catalog for the restaurant DRE layout.
func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) Name() string {
	return c.name
}

func (c *Catalog) Description() string {
	return c.description
}

// Rules returns a copy of the rules in evaluation order.
func (c *Catalog) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Match returns the first rule that accepts line given its normalized amount.
func (c *Catalog) Match(line string, amount decimal.Decimal) (Rule, bool) {
	for _, r := range c.rules {
		if !r.Matches(line) {
			continue
		}
		if r.Mode == ModeAddPositive && !amount.IsPositive() {
			continue
		}
		return r, true
	}
	return Rule{}, false
}

// Validate checks every rule and rejects rules that can never fire because an
// earlier rule already consumes all lines they would match.
func (c *Catalog) Validate() error {
	for i, r := range c.rules {
		if err := validateRule(r); err != nil {
			return fmt.Errorf("catalog %q rule %d (%q): %w", c.name, i, r.Label, err)
		}
		for j := 0; j < i; j++ {
			prev := c.rules[j]
			if prev.Mode == ModeAddPositive {
				continue
			}
			if prev.covers(r) {
				return fmt.Errorf("catalog %q rule %d (%q) is shadowed by rule %d (%q)",
					c.name, i, r.Label, j, prev.Label)
			}
		}
	}
	return nil
}

func validateRule(r Rule) error {
	if strings.TrimSpace(r.Pattern) == "" {
		return fmt.Errorf("empty pattern")
	}
	switch r.Match {
	case MatchContains, MatchPrefix:
	default:
		return fmt.Errorf("unknown match kind %q", r.Match)
	}

	_, isHeadline := r.Headline()
	_, isCategory := r.Category()

	switch r.Mode {
	case ModeAssign:
		if !isHeadline {
			return fmt.Errorf("mode %s requires a headline target, got %q", r.Mode, r.Target)
		}
	case ModeAdd, ModeAddPositive:
		if !isCategory {
			return fmt.Errorf("mode %s requires a category target, got %q", r.Mode, r.Target)
		}
	case ModeIgnore:
		if r.Target != "" {
			return fmt.Errorf("mode %s takes no target, got %q", r.Mode, r.Target)
		}
	case "":
		return fmt.Errorf("unknown target %q", r.Target)
	default:
		return fmt.Errorf("unknown mode %q", r.Mode)
	}
	return nil
}
