package grammar

import (
	"errors"
	"testing"

	"github.com/rokuyo/slrgen/spec"
)

func exprGrammarDef() *spec.GrammarDef {
	return &spec.GrammarDef{
		Name:      "expr",
		Terminals: []string{"add", "mul", "l_paren", "r_paren", "id"},
		Productions: []*spec.ProductionDef{
			{LHS: "expr", RHS: []string{"expr", "add", "term"}},
			{LHS: "expr", RHS: []string{"term"}},
			{LHS: "term", RHS: []string{"term", "mul", "factor"}},
			{LHS: "term", RHS: []string{"factor"}},
			{LHS: "factor", RHS: []string{"l_paren", "expr", "r_paren"}},
			{LHS: "factor", RHS: []string{"id"}},
		},
		Start: "expr",
	}
}

func genGrammar(t *testing.T, def *spec.GrammarDef) *Grammar {
	t.Helper()

	b := GrammarBuilder{
		Def: def,
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

func TestGrammarBuilder_Build(t *testing.T) {
	t.Run("a well-formed definition builds an augmented grammar", func(t *testing.T) {
		gram := genGrammar(t, exprGrammarDef())

		if gram.Name() != "expr" {
			t.Fatalf("unexpected name; want: expr, got: %v", gram.Name())
		}

		// The augmented start production S' → expr joins the six defined
		// productions.
		if gram.productionSet.count() != 7 {
			t.Fatalf("unexpected production count; want: 7, got: %v", gram.productionSet.count())
		}

		augStart, ok := gram.symbolTable.ToSymbol("expr'")
		if !ok {
			t.Fatalf("the augmented start symbol was not registered")
		}
		if !augStart.IsStart() {
			t.Fatalf("%v must be the augmented start symbol", augStart)
		}
		if augStart != gram.augmentedStartSymbol {
			t.Fatalf("unexpected augmented start symbol; want: %v, got: %v", augStart, gram.augmentedStartSymbol)
		}

		prods, ok := gram.productionSet.findByLHS(augStart)
		if !ok || len(prods) != 1 {
			t.Fatalf("the augmented start symbol must have exactly one production")
		}
		if prods[0].num != productionNumStart {
			t.Fatalf("unexpected number of the augmented start production; want: %v, got: %v", productionNumStart, prods[0].num)
		}
	})

	t.Run("the augmented start symbol avoids user-defined names", func(t *testing.T) {
		// A non-terminal may legitimately carry the primed start name; the
		// augmentation must not collide with it.
		gram := genGrammar(t, &spec.GrammarDef{
			Name:      "primed",
			Terminals: []string{"foo", "bar"},
			Productions: []*spec.ProductionDef{
				{LHS: "s", RHS: []string{"foo"}},
				{LHS: "s'", RHS: []string{"bar"}},
			},
			Start: "s",
		})

		augText, ok := gram.symbolTable.ToText(gram.augmentedStartSymbol)
		if !ok {
			t.Fatalf("the augmented start symbol was not registered")
		}
		if augText != "s''" {
			t.Fatalf("unexpected augmented start name; want: s'', got: %v", augText)
		}

		userSym, ok := gram.symbolTable.ToSymbol("s'")
		if !ok {
			t.Fatalf("the user-defined non-terminal s' was not registered")
		}
		if userSym.IsStart() {
			t.Fatalf("s' must stay an ordinary non-terminal; got: %v", userSym)
		}

		// The synthetic start production must survive the user's productions.
		startProd, ok := gram.productionSet.findByNum(productionNumStart)
		if !ok {
			t.Fatalf("the start production was not found")
		}
		if startProd.lhs != gram.augmentedStartSymbol {
			t.Fatalf("the start production must derive from the augmented start symbol; got: %v", startProd.lhs)
		}
		startSym, _ := gram.symbolTable.ToSymbol("s")
		if startProd.rhsLen != 1 || startProd.rhs[0] != startSym {
			t.Fatalf("the start production must derive the start symbol alone; got: %v", startProd.rhs)
		}
	})

	tests := []struct {
		caption string
		def     *spec.GrammarDef
		cause   *SemanticError
		symbol  string
	}{
		{
			caption: "a definition without a name is rejected",
			def: &spec.GrammarDef{
				Terminals: []string{"foo"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo"}},
				},
				Start: "s",
			},
			cause: semErrNoGrammarName,
		},
		{
			caption: "a definition without productions is rejected",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo"},
				Start:     "s",
			},
			cause: semErrNoProduction,
		},
		{
			caption: "an undefined RHS symbol is reported by name",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo", "bar"}},
				},
				Start: "s",
			},
			cause:  semErrUndefinedSym,
			symbol: "bar",
		},
		{
			caption: "a start symbol without a production is rejected",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo"}},
				},
				Start: "t",
			},
			cause:  semErrUndefinedStart,
			symbol: "t",
		},
		{
			caption: "duplicate productions are rejected",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo"}},
					{LHS: "s", RHS: []string{"foo"}},
				},
				Start: "s",
			},
			cause:  semErrDuplicateProduction,
			symbol: "s",
		},
		{
			caption: "duplicate terminals are rejected",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo", "foo"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo"}},
				},
				Start: "s",
			},
			cause:  semErrDuplicateTerminal,
			symbol: "foo",
		},
		{
			caption: "a terminal must not take the reserved end-of-input name",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo", "<eof>"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo"}},
				},
				Start: "s",
			},
			cause:  semErrReservedName,
			symbol: "<eof>",
		},
		{
			caption: "a non-terminal must not take the reserved end-of-input name",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo"}},
					{LHS: "<eof>", RHS: []string{"foo"}},
				},
				Start: "s",
			},
			cause:  semErrReservedName,
			symbol: "<eof>",
		},
		{
			caption: "a name used as both a terminal and a non-terminal is rejected",
			def: &spec.GrammarDef{
				Name:      "test",
				Terminals: []string{"foo", "s"},
				Productions: []*spec.ProductionDef{
					{LHS: "s", RHS: []string{"foo"}},
				},
				Start: "s",
			},
			cause:  semErrDuplicateName,
			symbol: "s",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			b := GrammarBuilder{
				Def: tt.def,
			}
			_, err := b.Build()
			if err == nil {
				t.Fatalf("an error must occur")
			}

			var errs MalformedGrammarErrors
			if !errors.As(err, &errs) {
				t.Fatalf("unexpected error type: %T", err)
			}

			found := false
			for _, e := range errs {
				if e.Cause == tt.cause && e.Symbol == tt.symbol {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("expected cause was not reported; want: %v (symbol: %v), got: %v", tt.cause, tt.symbol, errs)
			}
		})
	}
}

func TestGrammarBuilder_Build_reportsAllDefects(t *testing.T) {
	def := &spec.GrammarDef{
		Name:      "test",
		Terminals: []string{"foo"},
		Productions: []*spec.ProductionDef{
			{LHS: "s", RHS: []string{"foo", "bar"}},
			{LHS: "t", RHS: []string{"foo", "baz"}},
		},
		Start: "s",
	}

	b := GrammarBuilder{
		Def: def,
	}
	_, err := b.Build()
	if err == nil {
		t.Fatalf("an error must occur")
	}

	var errs MalformedGrammarErrors
	if !errors.As(err, &errs) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if len(errs) != 2 {
		t.Fatalf("every defect must be reported; want: 2 errors, got: %v", errs)
	}
}
