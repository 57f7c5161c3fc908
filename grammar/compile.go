package grammar

import (
	"github.com/rokuyo/slrgen/grammar/symbol"
	"github.com/rokuyo/slrgen/spec"
)

// Compile runs the whole pipeline over a validated grammar: FIRST/FOLLOW
// analysis, LR(0) automaton construction, and SLR(1) table derivation. It
// returns the compiled table bundle together with the report describing
// every state and every recorded conflict.
//
// Conflicts do not fail compilation; the table stays inspectable. Callers
// must treat a non-zero conflict count as "not parseable by this
// construction" and must not hand the bundle to a driver.
func Compile(gram *Grammar) (*spec.CompiledGrammar, *spec.Report, error) {
	tracer().Debugf("compiling grammar %q", gram.name)

	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		return nil, nil, err
	}
	flw, err := genFollowSet(gram.productionSet, fst)
	if err != nil {
		return nil, nil, err
	}
	automaton, err := genLR0Automaton(gram.productionSet, gram.augmentedStartSymbol)
	if err != nil {
		return nil, nil, err
	}
	tracer().Debugf("automaton has %d states", len(automaton.states))

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
		return nil, nil, err
	}
	tracer().Debugf("table has %d conflicts", len(b.conflicts))

	action := make([]int, len(ptab.actionTable))
	for i, e := range ptab.actionTable {
		action[i] = int(e)
	}
	goTo := make([]int, len(ptab.goToTable))
	for i, e := range ptab.goToTable {
		goTo[i] = int(e)
	}

	prods := gram.productionSet.all()
	lhsSymbols := make([]int, prods[len(prods)-1].num.Int()+1)
	altSymCounts := make([]int, len(lhsSymbols))
	for _, p := range prods {
		lhsSymbols[p.num.Int()] = p.lhs.Num().Int()
		altSymCounts[p.num.Int()] = p.rhsLen
	}

	termTexts, err := gram.symbolTable.TerminalTexts()
	if err != nil {
		return nil, nil, err
	}
	nonTermTexts, err := gram.symbolTable.NonTerminalTexts()
	if err != nil {
		return nil, nil, err
	}

	cgram := &spec.CompiledGrammar{
		Name: gram.name,
		Syntactic: &spec.SyntacticSpec{
			Action:                  action,
			GoTo:                    goTo,
			StateCount:              ptab.stateCount,
			InitialState:            ptab.InitialState.Int(),
			AcceptState:             ptab.AcceptState.Int(),
			StartProduction:         productionNumStart.Int(),
			LHSSymbols:              lhsSymbols,
			AlternativeSymbolCounts: altSymCounts,
			Terminals:               termTexts,
			TerminalCount:           gram.symbolTable.TerminalCount(),
			NonTerminals:            nonTermTexts,
			NonTerminalCount:        gram.symbolTable.NonTerminalCount(),
			EOFSymbol:               symbol.SymbolEOF.Num().Int(),
			ConflictCount:           len(b.conflicts),
		},
	}

	report, err := b.genReport(ptab, gram)
	if err != nil {
		return nil, nil, err
	}

	return cgram, report, nil
}
