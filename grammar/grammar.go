// Package grammar builds the LR(0) automaton over dotted items for a
// context-free grammar and derives SLR(1) action/goto tables from it.
package grammar

import (
	"github.com/rokuyo/slrgen/grammar/symbol"
	"github.com/rokuyo/slrgen/spec"
)

// Grammar is the validated, immutable in-memory form of a grammar
// definition. It is augmented with a synthetic start production S' → start,
// which public accessors do not expose; the augmentation gives the automaton
// a single unambiguous accept point.
type Grammar struct {
	name                 string
	symbolTable          *symbol.Table
	productionSet        *productionSet
	augmentedStartSymbol symbol.Symbol
	startSymbol          symbol.Symbol
}

func (g *Grammar) Name() string {
	return g.name
}

// GrammarBuilder validates a grammar definition and produces an immutable
// Grammar. Every structural defect found is reported; the builder does not
// stop at the first one.
type GrammarBuilder struct {
	Def *spec.GrammarDef

	errs MalformedGrammarErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.Def.Name == "" {
		b.errs = append(b.errs, &MalformedGrammarError{
			Cause: semErrNoGrammarName,
		})
	}
	if len(b.Def.Productions) == 0 {
		b.errs = append(b.errs, &MalformedGrammarError{
			Cause: semErrNoProduction,
		})
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	symTab := symbol.NewTable()

	terms := map[string]struct{}{}
	for _, t := range b.Def.Terminals {
		if t == symbol.NameEOF {
			b.errs = append(b.errs, &MalformedGrammarError{
				Cause:  semErrReservedName,
				Symbol: t,
			})
			continue
		}
		if _, ok := terms[t]; ok {
			b.errs = append(b.errs, &MalformedGrammarError{
				Cause:  semErrDuplicateTerminal,
				Symbol: t,
			})
			continue
		}
		terms[t] = struct{}{}
	}

	lhsNames := map[string]struct{}{}
	for _, prod := range b.Def.Productions {
		if prod.LHS == symbol.NameEOF {
			b.errs = append(b.errs, &MalformedGrammarError{
				Cause:  semErrReservedName,
				Symbol: prod.LHS,
			})
			continue
		}
		if _, ok := terms[prod.LHS]; ok {
			b.errs = append(b.errs, &MalformedGrammarError{
				Cause:  semErrDuplicateName,
				Symbol: prod.LHS,
			})
			continue
		}
		lhsNames[prod.LHS] = struct{}{}
	}

	if _, ok := lhsNames[b.Def.Start]; !ok {
		b.errs = append(b.errs, &MalformedGrammarError{
			Cause:  semErrUndefinedStart,
			Symbol: b.Def.Start,
		})
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	// The augmented start symbol carries the user's start name with a prime
	// appended, the conventional S' rendition. Primes accumulate until the
	// name is fresh so a user-defined name never takes the start symbol's
	// number.
	augStartText := b.Def.Start + "'"
	for {
		_, isTerm := terms[augStartText]
		_, isNonTerm := lhsNames[augStartText]
		if !isTerm && !isNonTerm {
			break
		}
		augStartText += "'"
	}
	augStartSym, err := symTab.RegisterStartSymbol(augStartText)
	if err != nil {
		return nil, err
	}
	for _, t := range b.Def.Terminals {
		if _, err := symTab.RegisterTerminal(t); err != nil {
			return nil, err
		}
	}
	for _, prod := range b.Def.Productions {
		if _, err := symTab.RegisterNonTerminal(prod.LHS); err != nil {
			return nil, err
		}
	}

	startSym, _ := symTab.ToSymbol(b.Def.Start)

	prods := newProductionSet()
	{
		p, err := newProduction(augStartSym, []symbol.Symbol{startSym})
		if err != nil {
			return nil, err
		}
		prods.append(p)
	}
	for _, prodDef := range b.Def.Productions {
		lhsSym, _ := symTab.ToSymbol(prodDef.LHS)

		rhsSyms := make([]symbol.Symbol, 0, len(prodDef.RHS))
		undefined := false
		for _, elem := range prodDef.RHS {
			elemSym, ok := symTab.ToSymbol(elem)
			if !ok {
				b.errs = append(b.errs, &MalformedGrammarError{
					Cause:  semErrUndefinedSym,
					Symbol: elem,
				})
				undefined = true
				continue
			}
			rhsSyms = append(rhsSyms, elemSym)
		}
		if undefined {
			continue
		}

		p, err := newProduction(lhsSym, rhsSyms)
		if err != nil {
			return nil, err
		}
		if added := prods.append(p); !added {
			b.errs = append(b.errs, &MalformedGrammarError{
				Cause:  semErrDuplicateProduction,
				Symbol: prodDef.LHS,
			})
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return &Grammar{
		name:                 b.Def.Name,
		symbolTable:          symTab,
		productionSet:        prods,
		augmentedStartSymbol: augStartSym,
		startSymbol:          startSym,
	}, nil
}
