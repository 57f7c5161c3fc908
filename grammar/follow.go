package grammar

import (
	"fmt"

	"github.com/rokuyo/slrgen/grammar/symbol"
)

// followEntry is the FOLLOW set of one non-terminal. End-of-input is tracked
// separately from the terminal set because it has no place in the terminal
// namespace of a grammar definition.
type followEntry struct {
	terms map[symbol.Symbol]struct{}
	eof   bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		terms: map[symbol.Symbol]struct{}{},
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.terms[sym]; ok {
		return false
	}
	e.terms[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if e.eof {
		return false
	}
	e.eof = true
	return true
}

func (e *followEntry) mergeFirst(fst *firstEntry) bool {
	if fst == nil {
		return false
	}
	changed := false
	for sym := range fst.terms {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

func (e *followEntry) mergeFollow(flw *followEntry) bool {
	if flw == nil {
		return false
	}
	changed := false
	for sym := range flw.terms {
		if e.add(sym) {
			changed = true
		}
	}
	if flw.eof && e.addEOF() {
		changed = true
	}
	return changed
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollowSet(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.all() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", sym)
	}
	return e, nil
}

// genFollowSet computes FOLLOW for every non-terminal by repeated passes over
// the production set after FIRST has stabilized. For an occurrence N in
// A → α N β, FIRST(β) joins FOLLOW(N), and FOLLOW(A) joins FOLLOW(N) when β
// is nullable (the empty β included). FOLLOW of the augmented start symbol is
// seeded with end-of-input.
func genFollowSet(prods *productionSet, first *firstSet) (*followSet, error) {
	flw := newFollowSet(prods)

	startEntry, err := flw.find(symbol.SymbolStart)
	if err != nil {
		return nil, err
	}
	startEntry.addEOF()

	for {
		more := false
		for _, prod := range prods.all() {
			for i, sym := range prod.rhs {
				if !sym.IsNonTerminal() {
					continue
				}

				e, err := flw.find(sym)
				if err != nil {
					return nil, err
				}

				fst, err := first.find(prod, i+1)
				if err != nil {
					return nil, err
				}
				if e.mergeFirst(fst) {
					more = true
				}

				if fst.nullable {
					lhsEntry, err := flw.find(prod.lhs)
					if err != nil {
						return nil, err
					}
					if e.mergeFollow(lhsEntry) {
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}

	return flw, nil
}
