package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/rokuyo/slrgen/grammar/symbol"
	"github.com/rokuyo/slrgen/spec"
)

func genActualParsingTable(t *testing.T, gram *Grammar) (*ParsingTable, *lrTableBuilder) {
	t.Helper()

	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}
	flw, err := genFollowSet(gram.productionSet, fst)
	if err != nil {
		t.Fatal(err)
	}
	automaton, err := genLR0Automaton(gram.productionSet, gram.augmentedStartSymbol)
	if err != nil {
		t.Fatal(err)
	}

	b := &lrTableBuilder{
		automaton:    automaton,
		prods:        gram.productionSet,
		follow:       flw,
		termCount:    gram.symbolTable.TerminalCount(),
		nonTermCount: gram.symbolTable.NonTerminalCount(),
		symTab:       gram.symbolTable,
	}
	ptab, err := b.build()
	if err != nil {
		t.Fatal(err)
	}
	return ptab, b
}

func TestLRTableBuilder_build(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.grammar")
	defer teardown()

	gram := genGrammar(t, exprGrammarDef())
	ptab, b := genActualParsingTable(t, gram)

	if len(b.conflicts) != 0 {
		t.Fatalf("the expression grammar must be conflict-free; got: %v conflicts", len(b.conflicts))
	}
	if ptab.InitialState != stateNumInitial {
		t.Fatalf("unexpected initial state; want: %v, got: %v", stateNumInitial, ptab.InitialState)
	}

	idSym, _ := gram.symbolTable.ToSymbol("id")
	lParenSym, _ := gram.symbolTable.ToSymbol("l_paren")
	addSym, _ := gram.symbolTable.ToSymbol("add")
	exprSym, _ := gram.symbolTable.ToSymbol("expr")

	// The initial state shifts the FIRST terminals of the start symbol and
	// nothing else.
	if ty, _, _ := ptab.getAction(ptab.InitialState, idSym.Num()); ty != ActionTypeShift {
		t.Fatalf("the initial state must shift on id; got: %v", ty)
	}
	if ty, _, _ := ptab.getAction(ptab.InitialState, lParenSym.Num()); ty != ActionTypeShift {
		t.Fatalf("the initial state must shift on l_paren; got: %v", ty)
	}
	if ty, _, _ := ptab.getAction(ptab.InitialState, addSym.Num()); ty != ActionTypeError {
		t.Fatalf("the initial state must fail on add; got: %v", ty)
	}

	// goto(0, expr) leads to the accepting state, where end-of-input reduces
	// the start production.
	gTy, next := ptab.getGoTo(ptab.InitialState, exprSym.Num())
	if gTy != GoToTypeRegistered {
		t.Fatalf("goto on the start symbol must be registered in the initial state")
	}
	if next != ptab.AcceptState {
		t.Fatalf("goto on the start symbol must lead to the accepting state; want: %v, got: %v", ptab.AcceptState, next)
	}
	aTy, _, prod := ptab.getAction(ptab.AcceptState, symbol.SymbolEOF.Num())
	if aTy != ActionTypeAccept {
		t.Fatalf("the accepting state must accept on end-of-input; got: %v", aTy)
	}
	if prod != productionNumStart {
		t.Fatalf("accepting must reduce the start production; got: %v", prod)
	}

	// The accept action appears in the end-of-input column only.
	for _, term := range gram.symbolTable.TerminalSymbols() {
		if term.IsEOF() {
			continue
		}
		if ty, _, _ := ptab.getAction(ptab.AcceptState, term.Num()); ty == ActionTypeAccept {
			t.Fatalf("accept must not appear on terminal %v", term)
		}
	}
}

func TestLRTableBuilder_build_shiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.grammar")
	defer teardown()

	def := &spec.GrammarDef{
		Name:      "ambiguous",
		Terminals: []string{"a"},
		Productions: []*spec.ProductionDef{
			{LHS: "s", RHS: []string{"seq"}},
			{LHS: "seq", RHS: []string{"seq", "a"}},
			{LHS: "seq", RHS: []string{"a", "seq"}},
			{LHS: "seq", RHS: []string{"a"}},
		},
		Start: "s",
	}
	gram := genGrammar(t, def)
	ptab, b := genActualParsingTable(t, gram)

	if len(b.conflicts) == 0 {
		t.Fatalf("the ambiguous grammar must have conflicts")
	}

	aSym, _ := gram.symbolTable.ToSymbol("a")
	for _, c := range b.conflicts {
		sr, ok := c.(*shiftReduceConflict)
		if !ok {
			t.Fatalf("unexpected conflict type: %T", c)
		}
		if sr.sym != aSym {
			t.Fatalf("unexpected conflicting symbol; want: %v, got: %v", aSym, sr.sym)
		}

		// The shift must stay in the table.
		ty, next, _ := ptab.getAction(sr.state, sr.sym.Num())
		if ty != ActionTypeShift {
			t.Fatalf("the shift must win a shift/reduce conflict; got: %v", ty)
		}
		if next != sr.nextState {
			t.Fatalf("the adopted shift must lead to %v; got: %v", sr.nextState, next)
		}
	}
}

func TestLRTableBuilder_build_reduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.grammar")
	defer teardown()

	def := &spec.GrammarDef{
		Name:      "rr",
		Terminals: []string{"a"},
		Productions: []*spec.ProductionDef{
			{LHS: "s", RHS: []string{"x"}},
			{LHS: "s", RHS: []string{"y"}},
			{LHS: "x", RHS: []string{"a"}},
			{LHS: "y", RHS: []string{"a"}},
		},
		Start: "s",
	}
	gram := genGrammar(t, def)
	ptab, b := genActualParsingTable(t, gram)

	if len(b.conflicts) != 1 {
		t.Fatalf("unexpected conflict count; want: 1, got: %v", len(b.conflicts))
	}
	rr, ok := b.conflicts[0].(*reduceReduceConflict)
	if !ok {
		t.Fatalf("unexpected conflict type: %T", b.conflicts[0])
	}
	if !rr.sym.IsEOF() {
		t.Fatalf("the conflict must occur on end-of-input; got: %v", rr.sym)
	}
	if rr.adopted != rr.prodNum1 {
		t.Fatalf("the first-assigned reduction must be adopted; want: %v, got: %v", rr.prodNum1, rr.adopted)
	}

	ty, _, prod := ptab.getAction(rr.state, rr.sym.Num())
	if ty != ActionTypeReduce {
		t.Fatalf("the adopted action must stay a reduction; got: %v", ty)
	}
	if prod != rr.adopted {
		t.Fatalf("the adopted reduction must stay in the table; want: %v, got: %v", rr.adopted, prod)
	}
}

func TestLRTableBuilder_build_deterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.grammar")
	defer teardown()

	gram := genGrammar(t, exprGrammarDef())
	ptab1, _ := genActualParsingTable(t, gram)
	ptab2, _ := genActualParsingTable(t, gram)

	if len(ptab1.actionTable) != len(ptab2.actionTable) {
		t.Fatalf("the action table size must be stable across runs")
	}
	for i, e := range ptab1.actionTable {
		if ptab2.actionTable[i] != e {
			t.Fatalf("the action table must be stable across runs; cell: %v", i)
		}
	}
	for i, e := range ptab1.goToTable {
		if ptab2.goToTable[i] != e {
			t.Fatalf("the goto table must be stable across runs; cell: %v", i)
		}
	}
}
