// Package spec defines the serializable boundary types of the table
// generator: the grammar definition it ingests, the compiled table bundle a
// parsing driver consumes, and the report produced for diagnostics.
package spec

import (
	"encoding/json"
	"fmt"
	"io"
)

// GrammarDef is the in-memory grammar data model in its serializable form.
// It deliberately defines no grammar syntax of its own; whatever loads
// grammar definitions (a file parser, an embedded literal) produces this
// value and hands it to grammar.GrammarBuilder.
type GrammarDef struct {
	Name        string           `json:"name"`
	Terminals   []string         `json:"terminals"`
	Productions []*ProductionDef `json:"productions"`
	Start       string           `json:"start"`
}

// ProductionDef is one production. An empty RHS denotes an epsilon
// production.
type ProductionDef struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

// ParseGrammarDef reads a JSON-encoded grammar definition.
func ParseGrammarDef(r io.Reader) (*GrammarDef, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	def := &GrammarDef{}
	if err := json.Unmarshal(d, def); err != nil {
		return nil, fmt.Errorf("cannot parse a grammar definition: %w", err)
	}
	return def, nil
}
