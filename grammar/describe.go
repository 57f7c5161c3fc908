package grammar

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/rokuyo/slrgen/spec"
)

// genReport renders the automaton, the tables, and the recorded conflicts
// into the serializable diagnostics form.
func (b *lrTableBuilder) genReport(tab *ParsingTable, gram *Grammar) (*spec.Report, error) {
	var terms []*spec.Terminal
	{
		termSyms := b.symTab.TerminalSymbols()
		terms = make([]*spec.Terminal, len(termSyms)+1)
		for _, sym := range termSyms {
			name, ok := b.symTab.ToText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate terminals: symbol not found: %v", sym)
			}
			terms[sym.Num()] = &spec.Terminal{
				Number: sym.Num().Int(),
				Name:   name,
			}
		}
	}

	var nonTerms []*spec.NonTerminal
	{
		nonTermSyms := b.symTab.NonTerminalSymbols()
		nonTerms = make([]*spec.NonTerminal, len(nonTermSyms)+1)
		for _, sym := range nonTermSyms {
			name, ok := b.symTab.ToText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate non-terminals: symbol not found: %v", sym)
			}
			nonTerms[sym.Num()] = &spec.NonTerminal{
				Number: sym.Num().Int(),
				Name:   name,
			}
		}
	}

	var prods []*spec.Production
	{
		ps := b.prods.all()
		prods = make([]*spec.Production, ps[len(ps)-1].num.Int()+1)
		for _, p := range ps {
			rhs := make([]int, len(p.rhs))
			for i, e := range p.rhs {
				if e.IsTerminal() {
					rhs[i] = e.Num().Int()
				} else {
					rhs[i] = e.Num().Int() * -1
				}
			}
			prods[p.num.Int()] = &spec.Production{
				Number: p.num.Int(),
				LHS:    p.lhs.Num().Int(),
				RHS:    rhs,
			}
		}
	}

	var states []*spec.State
	{
		srConflicts := map[stateNum][]*shiftReduceConflict{}
		rrConflicts := map[stateNum][]*reduceReduceConflict{}
		for _, con := range b.conflicts {
			switch c := con.(type) {
			case *shiftReduceConflict:
				srConflicts[c.state] = append(srConflicts[c.state], c)
			case *reduceReduceConflict:
				rrConflicts[c.state] = append(rrConflicts[c.state], c)
			}
		}

		states = make([]*spec.State, len(b.automaton.states))
		for _, s := range b.automaton.stateList() {
			kernel := make([]*spec.Item, len(s.items))
			for i, item := range s.items {
				kernel[i] = &spec.Item{
					Production: item.prod.Int(),
					Dot:        item.dot,
				}
			}
			sort.Slice(kernel, func(i, j int) bool {
				if kernel[i].Production != kernel[j].Production {
					return kernel[i].Production < kernel[j].Production
				}
				return kernel[i].Dot < kernel[j].Dot
			})

			var shift []*spec.Transition
			var reduce []*spec.Reduce
			var goTo []*spec.Transition
			{
			TERMINALS_LOOP:
				for _, t := range b.symTab.TerminalSymbols() {
					act, next, prod := tab.getAction(s.num, t.Num())
					switch act {
					case ActionTypeShift:
						shift = append(shift, &spec.Transition{
							Symbol: t.Num().Int(),
							State:  next.Int(),
						})
					case ActionTypeReduce, ActionTypeAccept:
						for _, r := range reduce {
							if r.Production == prod.Int() {
								r.LookAhead = append(r.LookAhead, t.Num().Int())
								continue TERMINALS_LOOP
							}
						}
						reduce = append(reduce, &spec.Reduce{
							LookAhead:  []int{t.Num().Int()},
							Production: prod.Int(),
						})
					}
				}

				for _, n := range b.symTab.NonTerminalSymbols() {
					ty, next := tab.getGoTo(s.num, n.Num())
					if ty == GoToTypeRegistered {
						goTo = append(goTo, &spec.Transition{
							Symbol: n.Num().Int(),
							State:  next.Int(),
						})
					}
				}

				sort.Slice(shift, func(i, j int) bool {
					return shift[i].State < shift[j].State
				})
				sort.Slice(reduce, func(i, j int) bool {
					return reduce[i].Production < reduce[j].Production
				})
				sort.Slice(goTo, func(i, j int) bool {
					return goTo[i].State < goTo[j].State
				})
			}

			sr := []*spec.SRConflict{}
			rr := []*spec.RRConflict{}
			{
				for _, c := range srConflicts[s.num] {
					sr = append(sr, &spec.SRConflict{
						Symbol:       c.sym.Num().Int(),
						State:        s.num.Int(),
						Production:   c.prodNum.Int(),
						AdoptedState: c.nextState.Int(),
					})
				}
				sort.Slice(sr, func(i, j int) bool {
					return sr[i].Symbol < sr[j].Symbol
				})

				for _, c := range rrConflicts[s.num] {
					rr = append(rr, &spec.RRConflict{
						Symbol:            c.sym.Num().Int(),
						Production1:       c.prodNum1.Int(),
						Production2:       c.prodNum2.Int(),
						AdoptedProduction: c.adopted.Int(),
					})
				}
				sort.Slice(rr, func(i, j int) bool {
					return rr[i].Symbol < rr[j].Symbol
				})
			}

			states[s.num.Int()] = &spec.State{
				Number:     s.num.Int(),
				Kernel:     kernel,
				Shift:      shift,
				Reduce:     reduce,
				GoTo:       goTo,
				SRConflict: sr,
				RRConflict: rr,
			}
		}
	}

	return &spec.Report{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
		States:       states,
	}, nil
}

// dotEdge is one labelled transition of the automaton, collected for export.
type dotEdge struct {
	from  stateNum
	to    stateNum
	label string
}

func stateComparator(a, b interface{}) int {
	s1 := a.(*lrState)
	s2 := b.(*lrState)
	return utils.IntComparator(s1.num.Int(), s2.num.Int())
}

// WriteDOT exports the grammar's LR(0) automaton in the GraphViz dot format.
// The automaton is rebuilt for the export; construction is deterministic, so
// the states match the numbers a Compile of the same grammar reports.
func WriteDOT(gram *Grammar, w io.Writer) error {
	automaton, err := genLR0Automaton(gram.productionSet, gram.augmentedStartSymbol)
	if err != nil {
		return err
	}

	states := treeset.NewWith(stateComparator)
	edges := arraylist.New()
	for _, s := range automaton.stateList() {
		states.Add(s)
		for _, sym := range sortedNextSymbols(s) {
			label, ok := gram.symbolTable.ToText(sym)
			if !ok {
				return fmt.Errorf("symbol not found: %v", sym)
			}
			edges.Add(&dotEdge{
				from:  s.num,
				to:    automaton.states[s.next[sym]].num,
				label: label,
			})
		}
	}

	if _, err := io.WriteString(w, "digraph {\n"); err != nil {
		return err
	}
	it := states.Iterator()
	for it.Next() {
		s := it.Value().(*lrState)
		items := make([]string, 0, len(s.items))
		for _, item := range s.items {
			str, err := itemString(gram, item)
			if err != nil {
				return err
			}
			items = append(items, str)
		}
		fmt.Fprintf(w, "    s%v [shape=box label=%q]\n", s.num, fmt.Sprintf("%v\n%v", s.num, strings.Join(items, "\n")))
	}
	eit := edges.Iterator()
	for eit.Next() {
		e := eit.Value().(*dotEdge)
		fmt.Fprintf(w, "    s%v -> s%v [label=%q]\n", e.from, e.to, e.label)
	}
	if _, err := io.WriteString(w, "}\n"); err != nil {
		return err
	}
	return nil
}

// itemString renders a kernel item like `expr → expr・add term`.
func itemString(gram *Grammar, item *lrItem) (string, error) {
	prod, ok := gram.productionSet.findByNum(item.prod)
	if !ok {
		return "", fmt.Errorf("a production was not found: %v", item.prod)
	}
	lhs, ok := gram.symbolTable.ToText(prod.lhs)
	if !ok {
		return "", fmt.Errorf("symbol not found: %v", prod.lhs)
	}

	s := lhs + " →"
	for i, sym := range prod.rhs {
		text, ok := gram.symbolTable.ToText(sym)
		if !ok {
			return "", fmt.Errorf("symbol not found: %v", sym)
		}
		if i == item.dot {
			s += "・" + text
		} else {
			s += " " + text
		}
	}
	if item.dot == prod.rhsLen {
		s += "・"
	}
	return s, nil
}
