package grammar

import (
	"fmt"

	"github.com/rokuyo/slrgen/grammar/symbol"
)

// firstEntry is the FIRST set of one non-terminal, or of one production
// suffix. The nullable flag doubles as the ε contribution marker: a
// non-terminal is nullable iff its FIRST entry has it set.
type firstEntry struct {
	terms    map[symbol.Symbol]struct{}
	nullable bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		terms: map[symbol.Symbol]struct{}{},
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.terms[sym]; ok {
		return false
	}
	e.terms[sym] = struct{}{}
	return true
}

func (e *firstEntry) addNullable() bool {
	if e.nullable {
		return false
	}
	e.nullable = true
	return true
}

// mergeTerminals adds target's terminals, ignoring its nullable flag.
func (e *firstEntry) mergeTerminals(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.terms {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

type firstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(prods *productionSet) *firstSet {
	fst := &firstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, prod := range prods.all() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}
	return fst
}

func (fst *firstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

// find computes FIRST of the RHS suffix of prod starting at position head.
// The entry is nullable when every symbol from head onward is nullable, the
// empty suffix included.
func (fst *firstSet) find(prod *production, head int) (*firstEntry, error) {
	entry := newFirstEntry()
	if head >= prod.rhsLen {
		entry.addNullable()
		return entry, nil
	}
	for _, sym := range prod.rhs[head:] {
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", sym)
		}
		entry.mergeTerminals(e)
		if !e.nullable {
			return entry, nil
		}
	}
	entry.addNullable()
	return entry, nil
}

// genFirstSet computes FIRST (and nullability) for every non-terminal by
// repeated passes over the production set until a full pass changes nothing.
// Termination is guaranteed: entries only grow and are bounded by the finite
// terminal set.
func genFirstSet(prods *productionSet) (*firstSet, error) {
	fst := newFirstSet(prods)
	for {
		more := false
		for _, prod := range prods.all() {
			acc := fst.findBySymbol(prod.lhs)
			changed, err := firstPass(fst, acc, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return fst, nil
}

func firstPass(fst *firstSet, acc *firstEntry, prod *production) (bool, error) {
	changed := false
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("an entry of FIRST was not found; symbol: %v", sym)
		}
		if acc.mergeTerminals(e) {
			changed = true
		}
		if !e.nullable {
			return changed, nil
		}
	}
	// Either an epsilon production or an all-nullable RHS.
	if acc.addNullable() {
		changed = true
	}
	return changed, nil
}
