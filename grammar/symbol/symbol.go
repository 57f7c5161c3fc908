package symbol

import (
	"fmt"
	"sort"
)

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol identifies a terminal or non-terminal symbol. The zero value is the
// nil symbol.
//
// A symbol packs its kind and number into 16 bits:
//
//	1 bit   terminal (1) or non-terminal (0)
//	1 bit   special: EOF for terminals, the augmented start for non-terminals
//	14 bits symbol number
//
// Terminals and non-terminals are numbered independently, so the two
// namespaces never collide.
type Symbol uint16

const (
	maskKind    = uint16(0x8000)
	maskSpecial = uint16(0x4000)
	maskNum     = uint16(0x3fff)

	SymbolNil = Symbol(0)

	// SymbolEOF is the end-of-input marker. It behaves as a terminal symbol.
	SymbolEOF = Symbol(maskKind | maskSpecial | 1)

	// SymbolStart is the augmented start symbol introduced by the grammar
	// builder. It never appears in a user-defined production's RHS.
	SymbolStart = Symbol(maskSpecial | 1)

	// NameEOF contains `<` and `>` to avoid conflicting with user-defined symbols.
	NameEOF = "<eof>"

	// The number 1 is taken by EOF in the terminal namespace and by the
	// augmented start symbol in the non-terminal namespace.
	numMin = SymbolNum(2)
	numMax = SymbolNum(0x3fff)
)

func newSymbol(terminal bool, num SymbolNum) (Symbol, error) {
	if num > numMax {
		return SymbolNil, fmt.Errorf("symbol number exceeds %v: %v", numMax, num)
	}
	if terminal {
		return Symbol(maskKind | uint16(num)), nil
	}
	return Symbol(uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	return SymbolNum(uint16(s) & maskNum)
}

func (s Symbol) IsNil() bool {
	return s.Num() == 0
}

func (s Symbol) IsTerminal() bool {
	return !s.IsNil() && uint16(s)&maskKind > 0
}

func (s Symbol) IsNonTerminal() bool {
	return !s.IsNil() && uint16(s)&maskKind == 0
}

// IsStart reports whether s is the augmented start symbol.
func (s Symbol) IsStart() bool {
	return s.IsNonTerminal() && uint16(s)&maskSpecial > 0
}

func (s Symbol) IsEOF() bool {
	return s.IsTerminal() && uint16(s)&maskSpecial > 0
}

// Bytes returns a big-endian rendition of s for fingerprinting.
func (s Symbol) Bytes() []byte {
	return []byte{byte(uint16(s) >> 8), byte(uint16(s))}
}

func (s Symbol) String() string {
	switch {
	case s.IsNil():
		return "nil"
	case s.IsStart():
		return fmt.Sprintf("s%v", s.Num())
	case s.IsEOF():
		return fmt.Sprintf("e%v", s.Num())
	case s.IsTerminal():
		return fmt.Sprintf("t%v", s.Num())
	}
	return fmt.Sprintf("n%v", s.Num())
}

// Table assigns symbols to names and resolves them back. Row 0 of both
// namespaces is reserved for the nil symbol, row 1 for EOF and the augmented
// start symbol respectively.
type Table struct {
	text2Sym     map[string]Symbol
	sym2Text     map[Symbol]string
	termTexts    []string
	nonTermTexts []string
	termNum      SymbolNum
	nonTermNum   SymbolNum
}

func NewTable() *Table {
	return &Table{
		text2Sym: map[string]Symbol{
			NameEOF: SymbolEOF,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF: NameEOF,
		},
		termTexts: []string{
			"",      // nil
			NameEOF, // EOF
		},
		nonTermTexts: []string{
			"", // nil
			"", // the augmented start symbol
		},
		termNum:    numMin,
		nonTermNum: numMin,
	}
}

// RegisterStartSymbol binds text to the augmented start symbol.
func (t *Table) RegisterStartSymbol(text string) (Symbol, error) {
	t.text2Sym[text] = SymbolStart
	t.sym2Text[SymbolStart] = text
	t.nonTermTexts[SymbolStart.Num().Int()] = text
	return SymbolStart, nil
}

func (t *Table) RegisterNonTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		return sym, nil
	}
	sym, err := newSymbol(false, t.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	t.nonTermNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	t.nonTermTexts = append(t.nonTermTexts, text)
	return sym, nil
}

func (t *Table) RegisterTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		return sym, nil
	}
	sym, err := newSymbol(true, t.termNum)
	if err != nil {
		return SymbolNil, err
	}
	t.termNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	t.termTexts = append(t.termTexts, text)
	return sym, nil
}

func (t *Table) ToSymbol(text string) (Symbol, bool) {
	sym, ok := t.text2Sym[text]
	return sym, ok
}

func (t *Table) ToText(sym Symbol) (string, bool) {
	text, ok := t.sym2Text[sym]
	return text, ok
}

// TerminalSymbols lists all registered terminals, EOF included, ordered by
// symbol number.
func (t *Table) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, t.termNum.Int()-1)
	for sym := range t.sym2Text {
		if !sym.IsTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// NonTerminalSymbols lists all registered non-terminals, the augmented start
// symbol included, ordered by symbol number.
func (t *Table) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, t.nonTermNum.Int()-1)
	for sym := range t.sym2Text {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// TerminalTexts returns terminal names indexed by symbol number.
func (t *Table) TerminalTexts() ([]string, error) {
	if t.termNum == numMin {
		return nil, fmt.Errorf("symbol table has no terminals")
	}
	return t.termTexts, nil
}

// NonTerminalTexts returns non-terminal names indexed by symbol number.
func (t *Table) NonTerminalTexts() ([]string, error) {
	if t.nonTermNum == numMin || t.nonTermTexts[SymbolStart.Num().Int()] == "" {
		return nil, fmt.Errorf("symbol table has no non-terminals or no start symbol")
	}
	return t.nonTermTexts, nil
}

// TerminalCount returns the number of columns a table keyed by terminal
// number needs, the reserved columns included.
func (t *Table) TerminalCount() int {
	return len(t.termTexts)
}

// NonTerminalCount returns the number of columns a table keyed by
// non-terminal number needs, the reserved columns included.
func (t *Table) NonTerminalCount() int {
	return len(t.nonTermTexts)
}
