// Package prompt holds the catalogue of model prompts. Defaults are embedded
// and an optional TOML file can redefine entries by name.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/sonnq3591/plg-hsdt/pkg/llm"
)

// Names of the catalogue entries.
const (
	TenderName       = "tender_name"
	SupplyScope      = "supply_scope"
	LegalBasis       = "legal_basis"
	WorkPurpose      = "work_purpose"
	StepCount        = "step_count"
	ProcedureSection = "procedure_section"
)

// DocumentToken is replaced by the extracted document text.
const DocumentToken = "{document}"

//go:embed defaults.toml
var defaults []byte

// Prompt is one catalogue entry.
type Prompt struct {
	Name      string `toml:"-"`
	System    string `toml:"system"`
	User      string `toml:"user"`
	MaxTokens int    `toml:"max_tokens"`
}

// Request renders the prompt for document.
func (p Prompt) Request(document string) llm.Request {
	return llm.Request{
		Name:      p.Name,
		System:    strings.TrimSpace(strings.ReplaceAll(p.System, DocumentToken, document)),
		User:      strings.TrimSpace(strings.ReplaceAll(p.User, DocumentToken, document)),
		MaxTokens: p.MaxTokens,
	}
}

// Catalogue maps names to prompts.
type Catalogue struct {
	prompts map[string]Prompt
}

// Default returns the embedded catalogue.
func Default() (*Catalogue, error) {
	return Load("")
}

// Load returns the embedded catalogue with the entries of the TOML file at
// overridePath, if any, replacing defaults of the same name. Fields left out
// of an override entry keep their default value.
func Load(overridePath string) (*Catalogue, error) {
	prompts, err := parse(defaults)
	if err != nil {
		return nil, fmt.Errorf("could not parse default prompts: %w", err)
	}

	if overridePath != "" {
		b, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("could not read prompts file: %w", err)
		}

		var overrides map[string]map[string]any
		if err := toml.Unmarshal(b, &overrides); err != nil {
			return nil, fmt.Errorf("could not parse prompts file: %w", err)
		}
		for name, fields := range overrides {
			p := prompts[name]
			p.Name = name
			if err := merge(&p, fields); err != nil {
				return nil, fmt.Errorf("prompt %q: %w", name, err)
			}
			prompts[name] = p
		}
	}

	c := &Catalogue{prompts: prompts}
	for _, name := range []string{TenderName, SupplyScope, LegalBasis, WorkPurpose, StepCount, ProcedureSection} {
		if _, err := c.Get(name); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func parse(b []byte) (map[string]Prompt, error) {
	var prompts map[string]Prompt
	if err := toml.Unmarshal(b, &prompts); err != nil {
		return nil, err
	}
	for name, p := range prompts {
		p.Name = name
		prompts[name] = p
	}

	return prompts, nil
}

func merge(p *Prompt, fields map[string]any) error {
	for k, v := range fields {
		switch k {
		case "system", "user":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%s must be a string", k)
			}
			if k == "system" {
				p.System = s
			} else {
				p.User = s
			}
		case "max_tokens":
			n, ok := v.(int64)
			if !ok || n <= 0 {
				return fmt.Errorf("max_tokens must be a positive integer")
			}
			p.MaxTokens = int(n)
		default:
			return fmt.Errorf("unknown field %q", k)
		}
	}

	return nil
}

// Get returns the prompt called name.
func (c *Catalogue) Get(name string) (Prompt, error) {
	p, ok := c.prompts[name]
	if !ok || p.User == "" || p.MaxTokens <= 0 {
		return Prompt{}, fmt.Errorf("prompt %q is missing or incomplete", name)
	}

	return p, nil
}

// MustGet is Get for names known to be present after Load.
func (c *Catalogue) MustGet(name string) Prompt {
	p, err := c.Get(name)
	if err != nil {
		panic(err)
	}

	return p
}
