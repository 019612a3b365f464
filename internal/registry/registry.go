package registry

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed schema.json
var schemaJSON []byte

// Package describes one tracked upstream project and its tagging scheme.
type Package struct {
	Name string `yaml:"name" json:"name"`
	Host string `yaml:"host" json:"host"`
	// Repo is "owner/name", set for github hosts.
	Repo string `yaml:"repo" json:"repo,omitempty"`
	// BaseURL and Project are set for gitlab hosts.
	BaseURL string `yaml:"base_url" json:"base_url,omitempty"`
	Project string `yaml:"project" json:"project,omitempty"`
	// TagPrefix is the literal text a release tag must start with,
	// followed by a dotted numeric version. Empty means bare versions.
	TagPrefix string `yaml:"tag_prefix" json:"tag_prefix"`
}

type Registry struct {
	Packages []Package `yaml:"packages" json:"packages"`
}

// Names returns package names in declaration order.
func (r Registry) Names() []string {
	out := make([]string, 0, len(r.Packages))
	for _, p := range r.Packages {
		out = append(out, p.Name)
	}
	return out
}

// Load parses the embedded defaults and, when overridePath is non-empty,
// merges that file's packages over them by name. Packages new to the
// override file are appended after the defaults.
func Load(overridePath string) (Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(defaultsYAML, &reg); err != nil {
		return Registry{}, fmt.Errorf("defaults: %w", err)
	}
	if overridePath != "" {
		b, err := os.ReadFile(overridePath)
		if err != nil {
			return Registry{}, err
		}
		var part Registry
		if err := yaml.Unmarshal(b, &part); err != nil {
			return Registry{}, fmt.Errorf("%s: %w", overridePath, err)
		}
		reg = merge(reg, part)
	}
	if err := validateNoDuplicates(reg); err != nil {
		return Registry{}, err
	}
	if err := ValidateAgainstSchema(reg); err != nil {
		return Registry{}, err
	}
	return reg, nil
}

func merge(base, overlay Registry) Registry {
	idx := map[string]int{}
	for i, p := range base.Packages {
		idx[p.Name] = i
	}
	for _, p := range overlay.Packages {
		if i, ok := idx[p.Name]; ok {
			base.Packages[i] = p
			continue
		}
		idx[p.Name] = len(base.Packages)
		base.Packages = append(base.Packages, p)
	}
	return base
}

func validateNoDuplicates(reg Registry) error {
	seen := map[string]struct{}{}
	for _, p := range reg.Packages {
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("duplicate package name: %s", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

func ValidateAgainstSchema(reg Registry) error {
	if len(schemaJSON) == 0 {
		return errors.New("schema not embedded")
	}
	b, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	docLoader := gojsonschema.NewBytesLoader(b)
	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	var msgs []string
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New("schema validation failed: " + strings.Join(msgs, "; "))
}
