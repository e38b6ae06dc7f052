// Package catalog loads job catalogs and provides the data sources the matcher reads jobs from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/job-skill-matcher/internal/schemas"
	"github.com/jonathan/job-skill-matcher/internal/skills"
	"github.com/jonathan/job-skill-matcher/internal/types"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns a fresh copy of the bundled catalog.
func Seed() (*types.Catalog, error) {
	return Parse(seedJSON)
}

// Parse validates raw catalog JSON against the catalog schema, decodes it and
// validates every job record.
func Parse(data []byte) (*types.Catalog, error) {
	if err := schemas.ValidateCatalog(data); err != nil {
		return nil, err
	}

	var c types.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if c.Jobs == nil {
		c.Jobs = []types.Job{}
	}
	for i := range c.Jobs {
		if c.Jobs[i].RequiredSkills == nil {
			c.Jobs[i].RequiredSkills = []string{}
		}
		if c.Jobs[i].SuggestedSkills == nil {
			c.Jobs[i].SuggestedSkills = []string{}
		}
	}
	return &c, nil
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) (*types.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load reads the catalog at path, or the bundled seed when path is empty.
func Load(path string) (*types.Catalog, error) {
	if path == "" {
		return Seed()
	}
	return LoadFile(path)
}

// SkillNames returns the skill universe for the index: every skill named by the
// jobs followed by the catalog's own known-skill list.
func SkillNames(c *types.Catalog, jobs []types.Job) []string {
	return skills.CollectCatalog(jobs, c.Skills...)
}

// Abbreviations returns the catalog's abbreviation map layered over the defaults.
func Abbreviations(c *types.Catalog) skills.Abbreviations {
	merged := skills.NewAbbreviations(skills.DefaultAbbreviations())
	for token, name := range skills.NewAbbreviations(c.Abbreviations) {
		merged[token] = name
	}
	return merged
}
