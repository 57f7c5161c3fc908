package symbol

import "testing"

func TestSymbol(t *testing.T) {
	tab := NewTable()
	start, err := tab.RegisterStartSymbol("expr'")
	if err != nil {
		t.Fatal(err)
	}
	expr, err := tab.RegisterNonTerminal("expr")
	if err != nil {
		t.Fatal(err)
	}
	id, err := tab.RegisterTerminal("id")
	if err != nil {
		t.Fatal(err)
	}
	add, err := tab.RegisterTerminal("add")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption     string
		sym         Symbol
		isNil       bool
		terminal    bool
		nonTerminal bool
		start       bool
		eof         bool
		num         SymbolNum
	}{
		{caption: "nil symbol", sym: SymbolNil, isNil: true},
		{caption: "EOF", sym: SymbolEOF, terminal: true, eof: true, num: 1},
		{caption: "augmented start", sym: start, nonTerminal: true, start: true, num: 1},
		{caption: "non-terminal", sym: expr, nonTerminal: true, num: 2},
		{caption: "first terminal", sym: id, terminal: true, num: 2},
		{caption: "second terminal", sym: add, terminal: true, num: 3},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if v := tt.sym.IsNil(); v != tt.isNil {
				t.Errorf("IsNil: want: %v, got: %v", tt.isNil, v)
			}
			if v := tt.sym.IsTerminal(); v != tt.terminal {
				t.Errorf("IsTerminal: want: %v, got: %v", tt.terminal, v)
			}
			if v := tt.sym.IsNonTerminal(); v != tt.nonTerminal {
				t.Errorf("IsNonTerminal: want: %v, got: %v", tt.nonTerminal, v)
			}
			if v := tt.sym.IsStart(); v != tt.start {
				t.Errorf("IsStart: want: %v, got: %v", tt.start, v)
			}
			if v := tt.sym.IsEOF(); v != tt.eof {
				t.Errorf("IsEOF: want: %v, got: %v", tt.eof, v)
			}
			if v := tt.sym.Num(); v != tt.num {
				t.Errorf("Num: want: %v, got: %v", tt.num, v)
			}
		})
	}
}

func TestTable(t *testing.T) {
	tab := NewTable()
	if _, err := tab.RegisterStartSymbol("s'"); err != nil {
		t.Fatal(err)
	}
	s, err := tab.RegisterNonTerminal("s")
	if err != nil {
		t.Fatal(err)
	}
	foo, err := tab.RegisterTerminal("foo")
	if err != nil {
		t.Fatal(err)
	}

	// Registration is idempotent per name.
	if sym, err := tab.RegisterTerminal("foo"); err != nil || sym != foo {
		t.Fatalf("re-registration must return the original symbol; want: %v, got: %v (err: %v)", foo, sym, err)
	}

	if sym, ok := tab.ToSymbol("s"); !ok || sym != s {
		t.Fatalf("ToSymbol(s): want: %v, got: %v", s, sym)
	}
	if text, ok := tab.ToText(foo); !ok || text != "foo" {
		t.Fatalf("ToText(foo): want: %v, got: %v", "foo", text)
	}
	if _, ok := tab.ToSymbol("bar"); ok {
		t.Fatal("an unregistered name must not resolve")
	}

	terms := tab.TerminalSymbols()
	if len(terms) != 2 || terms[0] != SymbolEOF || terms[1] != foo {
		t.Fatalf("unexpected terminal symbols: %v", terms)
	}
	nonTerms := tab.NonTerminalSymbols()
	if len(nonTerms) != 2 || nonTerms[0] != SymbolStart || nonTerms[1] != s {
		t.Fatalf("unexpected non-terminal symbols: %v", nonTerms)
	}

	termTexts, err := tab.TerminalTexts()
	if err != nil {
		t.Fatal(err)
	}
	if termTexts[foo.Num().Int()] != "foo" {
		t.Fatalf("terminal texts are not indexed by symbol number: %v", termTexts)
	}
	nonTermTexts, err := tab.NonTerminalTexts()
	if err != nil {
		t.Fatal(err)
	}
	if nonTermTexts[SymbolStart.Num().Int()] != "s'" {
		t.Fatalf("non-terminal texts are not indexed by symbol number: %v", nonTermTexts)
	}
}
