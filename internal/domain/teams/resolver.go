package teams

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Resolver canonicalizes upstream team names. It is read-only after construction.
type Resolver struct {
	codes map[string]string
}

// NewResolver builds a resolver from the builtin table with overrides applied on top.
func NewResolver(overrides map[string]string) *Resolver {
	codes := make(map[string]string, len(builtin)+len(overrides))
	for _, t := range builtin {
		codes[t.Name] = t.Code
	}
	for name, code := range overrides {
		codes[normalize(name)] = code
	}
	return &Resolver{codes: codes}
}

// Resolve returns the code for name, or the normalized name itself when unknown.
func (r *Resolver) Resolve(name string) string {
	key := normalize(name)
	if r == nil {
		return key
	}
	if code, ok := r.codes[key]; ok {
		return code
	}
	return key
}

// Known reports whether name maps to a code.
func (r *Resolver) Known(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.codes[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

type aliasFile struct {
	Aliases map[string]string `toml:"aliases"`
	Teams   []Team            `toml:"teams"`
}

// LoadAliases reads name overrides from a TOML file. Both forms are accepted:
//
//	[aliases]
//	"TEAM CANADA" = "CAN"
//
//	[[teams]]
//	name = "TEAM EUROPE"
//	code = "EUR"
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read team aliases: %w", err)
	}
	var file aliasFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse team aliases %s: %w", path, err)
	}
	out := make(map[string]string, len(file.Aliases)+len(file.Teams))
	for name, code := range file.Aliases {
		out[name] = code
	}
	for _, t := range file.Teams {
		if t.Name == "" || t.Code == "" {
			return nil, fmt.Errorf("parse team aliases %s: team entry needs name and code", path)
		}
		out[t.Name] = t.Code
	}
	return out, nil
}
