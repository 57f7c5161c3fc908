package spec

import (
	"strings"
	"testing"
)

func TestParseGrammarDef(t *testing.T) {
	src := `
{
    "name": "expr",
    "terminals": ["add", "id"],
    "productions": [
        {"lhs": "expr", "rhs": ["expr", "add", "id"]},
        {"lhs": "expr", "rhs": ["id"]},
        {"lhs": "opt", "rhs": []}
    ],
    "start": "expr"
}
`
	def, err := ParseGrammarDef(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if def.Name != "expr" {
		t.Fatalf("unexpected name; want: expr, got: %v", def.Name)
	}
	if len(def.Terminals) != 2 {
		t.Fatalf("unexpected terminal count; want: 2, got: %v", len(def.Terminals))
	}
	if len(def.Productions) != 3 {
		t.Fatalf("unexpected production count; want: 3, got: %v", len(def.Productions))
	}
	if def.Start != "expr" {
		t.Fatalf("unexpected start symbol; want: expr, got: %v", def.Start)
	}

	// An absent or empty RHS both denote an epsilon production.
	if len(def.Productions[2].RHS) != 0 {
		t.Fatalf("unexpected RHS; want an empty RHS, got: %v", def.Productions[2].RHS)
	}
}

func TestParseGrammarDef_malformedSource(t *testing.T) {
	if _, err := ParseGrammarDef(strings.NewReader(`{]`)); err == nil {
		t.Fatalf("an error must occur")
	}
}
