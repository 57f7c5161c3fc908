package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"

	"github.com/rokuyo/slrgen/grammar/symbol"
)

// itemID packs a production number and a dot position. Item identity is
// exactly (production, dot), so the packed form is content-addressed and
// orders items deterministically.
type itemID uint32

func newItemID(prod productionNum, dot int) itemID {
	return itemID(uint32(prod)<<16 | uint32(dot))
}

func (id itemID) String() string {
	return fmt.Sprintf("p%v.%v", uint32(id)>>16, uint32(id)&0xffff)
}

// lrItem is a production with a dot position marking parse progress through
// its RHS.
type lrItem struct {
	id   itemID
	prod productionNum

	// E → E + T
	//
	// Dot | Dotted Symbol | Item
	// ----+---------------+------------
	// 0   | E             | E →・E + T
	// 1   | +             | E → E・+ T
	// 2   | T             | E → E +・T
	// 3   | Nil           | E → E + T・
	dot          int
	dottedSymbol symbol.Symbol

	// initial marks the start item S' →・S.
	initial bool

	// reducible marks a complete item like E → E + T・.
	reducible bool

	// kernel marks kernel items: the initial item and every item with the
	// dot past position 0.
	kernel bool
}

func newLRItem(prod *production, dot int) (*lrItem, error) {
	if prod == nil {
		return nil, fmt.Errorf("production must be non-nil")
	}
	if dot < 0 || dot > prod.rhsLen {
		return nil, fmt.Errorf("dot must be between 0 and %v", prod.rhsLen)
	}

	dottedSymbol := symbol.SymbolNil
	if dot < prod.rhsLen {
		dottedSymbol = prod.rhs[dot]
	}

	initial := prod.lhs.IsStart() && dot == 0

	return &lrItem{
		id:           newItemID(prod.num, dot),
		prod:         prod.num,
		dot:          dot,
		dottedSymbol: dottedSymbol,
		initial:      initial,
		reducible:    dot == prod.rhsLen,
		kernel:       initial || dot > 0,
	}, nil
}

// kernelID is a fingerprint over a kernel's canonicalized item content. Two
// item sets that close to the same state always carry the same kernel, so
// equal fingerprints identify equal states.
type kernelID [32]byte

func (id kernelID) String() string {
	return fmt.Sprintf("%x", binary.LittleEndian.Uint32(id[:]))
}

type kernel struct {
	id    kernelID
	items []*lrItem
}

// newKernel canonicalizes items by deduplicating and sorting them, then
// fingerprints the result.
func newKernel(items []*lrItem) (*kernel, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("a kernel needs at least one item")
	}

	var sortedItems []*lrItem
	{
		m := map[itemID]*lrItem{}
		for _, item := range items {
			if !item.kernel {
				return nil, fmt.Errorf("not a kernel item: %v", item.id)
			}
			m[item.id] = item
		}
		sortedItems = make([]*lrItem, 0, len(m))
		for _, item := range m {
			sortedItems = append(sortedItems, item)
		}
		sort.Slice(sortedItems, func(i, j int) bool {
			return sortedItems[i].id < sortedItems[j].id
		})
	}

	var id kernelID
	{
		b := make([]byte, 0, len(sortedItems)*4)
		for _, item := range sortedItems {
			b = binary.LittleEndian.AppendUint32(b, uint32(item.id))
		}
		id = sha256.Sum256(b)
	}

	return &kernel{
		id:    id,
		items: sortedItems,
	}, nil
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

func (n stateNum) next() stateNum {
	return stateNum(n + 1)
}

// lrState is a node of the automaton: a kernel plus everything derived from
// its closure. States are created once during construction and are immutable
// afterwards.
type lrState struct {
	*kernel
	num stateNum

	// next is the transition relation: an edge exists per symbol appearing
	// after some dot in the closure.
	next map[symbol.Symbol]kernelID

	// reducible holds the productions of the complete items in the closure.
	reducible map[productionNum]struct{}

	// accept marks the state containing the complete start item S' → S・.
	accept bool
}
