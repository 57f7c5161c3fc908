package grammar

import (
	"fmt"
	"sort"

	"github.com/rokuyo/slrgen/grammar/symbol"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// actionEntry encodes one action table cell: 0 is empty (syntax error), a
// negative value is a shift to the negated state, a positive value is a
// reduction of that production. Reducing the augmented start production is
// the accept action; it occurs only in the EOF column because FOLLOW of the
// augmented start symbol is exactly {EOF}.
type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state * -1)
}

func newReduceActionEntry(prod productionNum) actionEntry {
	return actionEntry(prod)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (ActionType, stateNum, productionNum) {
	if e == actionEntryEmpty {
		return ActionTypeError, stateNumInitial, productionNumNil
	}
	if e < 0 {
		return ActionTypeShift, stateNum(e * -1), productionNumNil
	}
	if productionNum(e) == productionNumStart {
		return ActionTypeAccept, stateNumInitial, productionNumStart
	}
	return ActionTypeReduce, stateNumInitial, productionNum(e)
}

type GoToType string

const (
	GoToTypeRegistered = GoToType("registered")
	GoToTypeError      = GoToType("error")
)

type goToEntry uint

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state)
}

func (e goToEntry) describe() (GoToType, stateNum) {
	if e == goToEntryEmpty {
		return GoToTypeError, stateNumInitial
	}
	return GoToTypeRegistered, stateNum(e)
}

type conflict interface {
	conflict()
}

// shiftReduceConflict records a cell where a shift and a reduction were both
// admissible. The shift stays in the table.
type shiftReduceConflict struct {
	state     stateNum
	sym       symbol.Symbol
	nextState stateNum
	prodNum   productionNum
}

func (c *shiftReduceConflict) conflict() {
}

// reduceReduceConflict records a cell where two different reductions were
// admissible. The first-assigned reduction stays in the table.
type reduceReduceConflict struct {
	state    stateNum
	sym      symbol.Symbol
	prodNum1 productionNum
	prodNum2 productionNum
	adopted  productionNum
}

func (c *reduceReduceConflict) conflict() {
}

var (
	_ conflict = &shiftReduceConflict{}
	_ conflict = &reduceReduceConflict{}
)

// ParsingTable holds the dense action and goto tables of one construction
// run. It is immutable once built.
type ParsingTable struct {
	actionTable      []actionEntry
	goToTable        []goToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int

	InitialState stateNum
	AcceptState  stateNum
}

func (t *ParsingTable) getAction(state stateNum, sym symbol.SymbolNum) (ActionType, stateNum, productionNum) {
	pos := state.Int()*t.terminalCount + sym.Int()
	return t.actionTable[pos].describe()
}

func (t *ParsingTable) getGoTo(state stateNum, sym symbol.SymbolNum) (GoToType, stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Int()
	return t.goToTable[pos].describe()
}

func (t *ParsingTable) readAction(row int, col int) actionEntry {
	return t.actionTable[row*t.terminalCount+col]
}

func (t *ParsingTable) writeAction(row int, col int, act actionEntry) {
	t.actionTable[row*t.terminalCount+col] = act
}

func (t *ParsingTable) writeGoTo(state stateNum, sym symbol.Symbol, nextState stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Num().Int()
	t.goToTable[pos] = newGoToEntry(nextState)
}

type lrTableBuilder struct {
	automaton    *lr0Automaton
	prods        *productionSet
	follow       *followSet
	termCount    int
	nonTermCount int
	symTab       *symbol.Table

	conflicts []conflict
}

// build walks every state of the automaton and emits its table rows. Within
// a state all shift and goto entries are written before any reduce entry, so
// on a shift/reduce collision the shift is the first-assigned action and
// keeps the cell. Conflicts are recorded, never resolved away: any conflict
// marks the grammar as not parseable by this construction.
func (b *lrTableBuilder) build() (*ParsingTable, error) {
	var ptab *ParsingTable
	{
		initialState := b.automaton.states[b.automaton.initialState]
		ptab = &ParsingTable{
			actionTable:      make([]actionEntry, len(b.automaton.states)*b.termCount),
			goToTable:        make([]goToEntry, len(b.automaton.states)*b.nonTermCount),
			stateCount:       len(b.automaton.states),
			terminalCount:    b.termCount,
			nonTerminalCount: b.nonTermCount,
			InitialState:     initialState.num,
		}
	}

	for _, state := range b.automaton.stateList() {
		for _, sym := range sortedNextSymbols(state) {
			nextState := b.automaton.states[state.next[sym]]
			if sym.IsTerminal() {
				b.writeShiftAction(ptab, state.num, sym, nextState.num)
			} else {
				ptab.writeGoTo(state.num, sym, nextState.num)
			}
		}

		for _, prodNum := range sortedReducibleProductions(state) {
			prod, ok := b.prods.findByNum(prodNum)
			if !ok {
				return nil, fmt.Errorf("reducible production not found: %v", prodNum)
			}

			flw, err := b.follow.find(prod.lhs)
			if err != nil {
				return nil, err
			}

			for _, sym := range sortedFollowTerminals(flw) {
				b.writeReduceAction(ptab, state.num, sym, prodNum)
			}
			if flw.eof {
				b.writeReduceAction(ptab, state.num, symbol.SymbolEOF, prodNum)
			}
		}

		if state.accept {
			ptab.AcceptState = state.num
		}
	}

	return ptab, nil
}

// writeShiftAction writes a shift entry. The cell can already be occupied
// only by a reduction written for an earlier state pass, which cannot happen
// with the shift-first write order; the guard still records the conflict and
// leaves the first-assigned action in place.
func (b *lrTableBuilder) writeShiftAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, nextState stateNum) {
	act := tab.readAction(state.Int(), sym.Num().Int())
	if !act.isEmpty() {
		ty, _, p := act.describe()
		if ty == ActionTypeReduce || ty == ActionTypeAccept {
			tracer().Debugf("shift/reduce conflict at (%v, %v)", state, sym)
			b.conflicts = append(b.conflicts, &shiftReduceConflict{
				state:     state,
				sym:       sym,
				nextState: nextState,
				prodNum:   p,
			})
			return
		}
	}
	tab.writeAction(state.Int(), sym.Num().Int(), newShiftActionEntry(nextState))
}

// writeReduceAction writes a reduce entry. On a collision the first-assigned
// action keeps the cell and the conflict is recorded: a shift in the cell
// wins over the reduction (shift priority), an earlier reduction wins over a
// later one.
func (b *lrTableBuilder) writeReduceAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, prod productionNum) {
	act := tab.readAction(state.Int(), sym.Num().Int())
	if !act.isEmpty() {
		ty, s, p := act.describe()
		switch ty {
		case ActionTypeReduce, ActionTypeAccept:
			if p == prod {
				return
			}
			tracer().Debugf("reduce/reduce conflict at (%v, %v)", state, sym)
			b.conflicts = append(b.conflicts, &reduceReduceConflict{
				state:    state,
				sym:      sym,
				prodNum1: p,
				prodNum2: prod,
				adopted:  p,
			})
		case ActionTypeShift:
			tracer().Debugf("shift/reduce conflict at (%v, %v)", state, sym)
			b.conflicts = append(b.conflicts, &shiftReduceConflict{
				state:     state,
				sym:       sym,
				nextState: s,
				prodNum:   prod,
			})
		}
		return
	}
	tab.writeAction(state.Int(), sym.Num().Int(), newReduceActionEntry(prod))
}

func sortedNextSymbols(state *lrState) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(state.next))
	for sym := range state.next {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

func sortedReducibleProductions(state *lrState) []productionNum {
	prods := make([]productionNum, 0, len(state.reducible))
	for prodNum := range state.reducible {
		prods = append(prods, prodNum)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i] < prods[j]
	})
	return prods
}

func sortedFollowTerminals(flw *followEntry) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(flw.terms))
	for sym := range flw.terms {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
