package cssdistill

import (
	"encoding/json"
	"io"
)

// Manifest is the serializable name -> literal record, the inverse of the
// internal literal -> name tables.
type Manifest struct {
	Version    string                       `json:"version"`
	Roles      map[string]string            `json:"roles,omitempty"`
	Categories map[string]map[string]string `json:"categories"`
	Counts     map[string]int               `json:"counts"`
}

// Manifest builds the export record from the result tables.
func (r *Result) Manifest() Manifest {
	m := Manifest{
		Version:    "1",
		Categories: make(map[string]map[string]string),
		Counts:     make(map[string]int),
	}

	if len(r.Roles) > 0 {
		m.Roles = make(map[string]string, len(r.Roles))
		for role, lit := range r.Roles {
			m.Roles[string(role)] = lit
		}
	}

	for _, cat := range allCategories {
		toks := r.Tokens[cat]
		if len(toks) == 0 {
			continue
		}
		byName := make(map[string]string, len(toks))
		for _, tok := range toks {
			byName[tok.Name] = tok.Literal
			m.Counts[tok.Name] = tok.Count
		}
		m.Categories[string(cat)] = byName
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func (r *Result) WriteManifest(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.Manifest())
}
