package grammar

import (
	"fmt"
	"strconv"

	"github.com/rokuyo/slrgen/grammar/symbol"
)

type productionNum uint16

const (
	productionNumNil = productionNum(0)

	// The augmented start production always takes number 1; reducing it is
	// the accept action.
	productionNumStart = productionNum(1)

	productionNumMin = productionNum(2)
)

func (n productionNum) Int() int {
	return int(n)
}

func (n productionNum) String() string {
	return strconv.Itoa(int(n))
}

type production struct {
	num    productionNum
	lhs    symbol.Symbol
	rhs    []symbol.Symbol
	rhsLen int
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*production, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; RHS: %v", rhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	return &production{
		lhs:    lhs,
		rhs:    rhs,
		rhsLen: len(rhs),
	}, nil
}

// fingerprint identifies a production by content, independent of the number
// assigned at registration.
func (p *production) fingerprint() string {
	seq := make([]byte, 0, (p.rhsLen+1)*2)
	seq = append(seq, p.lhs.Bytes()...)
	for _, sym := range p.rhs {
		seq = append(seq, sym.Bytes()...)
	}
	return string(seq)
}

func (p *production) isEmpty() bool {
	return p.rhsLen == 0
}

// productionSet owns all productions of a grammar, assigns their stable
// numbers, and groups them by LHS for closure expansion.
type productionSet struct {
	lhs2Prods map[symbol.Symbol][]*production
	byContent map[string]*production
	byNum     []*production // indexed by production number; reserved entries are nil
	num       productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*production{},
		byContent: map[string]*production{},
		byNum:     make([]*production, productionNumMin),
		num:       productionNumMin,
	}
}

// append registers prod and assigns its number. It reports false when an
// identical production was already registered.
func (ps *productionSet) append(prod *production) bool {
	fp := prod.fingerprint()
	if _, ok := ps.byContent[fp]; ok {
		return false
	}

	if prod.lhs.IsStart() {
		prod.num = productionNumStart
		ps.byNum[productionNumStart.Int()] = prod
	} else {
		prod.num = ps.num
		ps.num++
		ps.byNum = append(ps.byNum, prod)
	}

	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.byContent[fp] = prod

	return true
}

func (ps *productionSet) findByNum(num productionNum) (*production, bool) {
	if num.Int() >= len(ps.byNum) {
		return nil, false
	}
	prod := ps.byNum[num.Int()]
	return prod, prod != nil
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*production, bool) {
	if lhs.IsNil() {
		return nil, false
	}
	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

// all returns every production ordered by number; the reserved number 0 entry
// is skipped.
func (ps *productionSet) all() []*production {
	prods := make([]*production, 0, len(ps.byContent))
	for _, prod := range ps.byNum {
		if prod == nil {
			continue
		}
		prods = append(prods, prod)
	}
	return prods
}

func (ps *productionSet) count() int {
	return len(ps.byContent)
}
