package grammar

import (
	"fmt"
	"sort"

	"github.com/rokuyo/slrgen/grammar/symbol"
)

// lr0Automaton is the canonical collection of LR(0) states. States are
// addressed by kernel fingerprint; their numbers are assigned in discovery
// order, starting at 0 for the initial state.
type lr0Automaton struct {
	initialState kernelID
	states       map[kernelID]*lrState
}

// stateList returns the states ordered by state number.
func (a *lr0Automaton) stateList() []*lrState {
	states := make([]*lrState, 0, len(a.states))
	for _, state := range a.states {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].num < states[j].num
	})
	return states
}

// genLR0Automaton constructs the canonical collection over a worklist of
// kernels. A goto target whose kernel fingerprint is already known is reused
// instead of creating a new state, which keeps the automaton finite and
// minimal for the grammar.
func genLR0Automaton(prods *productionSet, startSym symbol.Symbol) (*lr0Automaton, error) {
	if !startSym.IsStart() {
		return nil, fmt.Errorf("passed symbol is not an augmented start symbol")
	}

	automaton := &lr0Automaton{
		states: map[kernelID]*lrState{},
	}

	currentState := stateNumInitial
	knownKernels := map[kernelID]struct{}{}
	uncheckedKernels := []*kernel{}

	// The initial kernel holds the single item S' →・S.
	{
		prods, _ := prods.findByLHS(startSym)
		initialItem, err := newLRItem(prods[0], 0)
		if err != nil {
			return nil, err
		}

		k, err := newKernel([]*lrItem{initialItem})
		if err != nil {
			return nil, err
		}

		automaton.initialState = k.id
		knownKernels[k.id] = struct{}{}
		uncheckedKernels = append(uncheckedKernels, k)
	}

	for len(uncheckedKernels) > 0 {
		nextUncheckedKernels := []*kernel{}
		for _, k := range uncheckedKernels {
			state, neighbours, err := genStateAndNeighbourKernels(k, prods)
			if err != nil {
				return nil, err
			}
			state.num = currentState
			currentState = currentState.next()
			tracer().Debugf("state %v = kernel %v", state.num, state.id)

			automaton.states[state.id] = state

			for _, k := range neighbours {
				if _, known := knownKernels[k.id]; known {
					continue
				}
				knownKernels[k.id] = struct{}{}
				nextUncheckedKernels = append(nextUncheckedKernels, k)
			}
		}
		uncheckedKernels = nextUncheckedKernels
	}

	return automaton, nil
}

func genStateAndNeighbourKernels(k *kernel, prods *productionSet) (*lrState, []*kernel, error) {
	items, err := genClosure(k.items, prods)
	if err != nil {
		return nil, nil, err
	}
	neighbours, err := genNeighbourKernels(items, prods)
	if err != nil {
		return nil, nil, err
	}

	next := map[symbol.Symbol]kernelID{}
	kernels := []*kernel{}
	for _, n := range neighbours {
		next[n.symbol] = n.kernel.id
		kernels = append(kernels, n.kernel)
	}

	reducible := map[productionNum]struct{}{}
	accept := false
	for _, item := range items {
		if item.reducible {
			reducible[item.prod] = struct{}{}
			if item.prod == productionNumStart {
				accept = true
			}
		}
	}

	return &lrState{
		kernel:    k,
		next:      next,
		reducible: reducible,
		accept:    accept,
	}, kernels, nil
}

// genClosure closes an item set under non-terminal expansion: whenever the
// dotted symbol of an item is a non-terminal N, a dot-0 item joins the set
// for every production of N. The closure is idempotent and monotone; the
// result is deduplicated by item identity.
func genClosure(items []*lrItem, prods *productionSet) ([]*lrItem, error) {
	closure := []*lrItem{}
	knownItems := map[itemID]struct{}{}
	uncheckedItems := []*lrItem{}
	for _, item := range items {
		if _, exist := knownItems[item.id]; exist {
			continue
		}
		closure = append(closure, item)
		knownItems[item.id] = struct{}{}
		uncheckedItems = append(uncheckedItems, item)
	}
	for len(uncheckedItems) > 0 {
		nextUncheckedItems := []*lrItem{}
		for _, item := range uncheckedItems {
			if !item.dottedSymbol.IsNonTerminal() {
				continue
			}

			ps, _ := prods.findByLHS(item.dottedSymbol)
			for _, prod := range ps {
				item, err := newLRItem(prod, 0)
				if err != nil {
					return nil, err
				}
				if _, exist := knownItems[item.id]; exist {
					continue
				}
				closure = append(closure, item)
				knownItems[item.id] = struct{}{}
				nextUncheckedItems = append(nextUncheckedItems, item)
			}
		}
		uncheckedItems = nextUncheckedItems
	}

	return closure, nil
}

type neighbourKernel struct {
	symbol symbol.Symbol
	kernel *kernel
}

// genNeighbourKernels computes the goto function for every symbol appearing
// after a dot in items: each item advances over its dotted symbol, and the
// advanced items are grouped per symbol into new kernels. Symbols are
// processed in sorted order so state discovery is deterministic.
func genNeighbourKernels(items []*lrItem, prods *productionSet) ([]*neighbourKernel, error) {
	kItemMap := map[symbol.Symbol][]*lrItem{}
	for _, item := range items {
		if item.dottedSymbol.IsNil() {
			continue
		}
		prod, ok := prods.findByNum(item.prod)
		if !ok {
			return nil, fmt.Errorf("a production was not found: %v", item.prod)
		}
		kItem, err := newLRItem(prod, item.dot+1)
		if err != nil {
			return nil, err
		}
		kItemMap[item.dottedSymbol] = append(kItemMap[item.dottedSymbol], kItem)
	}

	nextSyms := make([]symbol.Symbol, 0, len(kItemMap))
	for sym := range kItemMap {
		nextSyms = append(nextSyms, sym)
	}
	sort.Slice(nextSyms, func(i, j int) bool {
		return nextSyms[i] < nextSyms[j]
	})

	kernels := make([]*neighbourKernel, 0, len(nextSyms))
	for _, sym := range nextSyms {
		k, err := newKernel(kItemMap[sym])
		if err != nil {
			return nil, err
		}
		kernels = append(kernels, &neighbourKernel{
			symbol: sym,
			kernel: k,
		})
	}

	return kernels, nil
}
