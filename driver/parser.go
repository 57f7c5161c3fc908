package driver

import (
	"fmt"
	"io"

	"github.com/rokuyo/slrgen/spec"
)

// Node is a concrete syntax tree node. Leaf nodes carry the lexeme of the
// shifted token; interior nodes carry the reduced non-terminal's name.
type Node struct {
	KindName string
	Text     string
	Children []*Node
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Text != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

type SyntaxError struct {
	Token             *Token
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	if e.Token.EOF {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected token: %v", e.Token.Lexeme)
}

type semanticFrame struct {
	cst *Node
}

// Parser runs the shift/reduce loop over a compiled table. One Parser
// instance parses one input.
type Parser struct {
	gram       *spec.CompiledGrammar
	toks       TokenStream
	stateStack []int
	semStack   []*semanticFrame
	cst        *Node
	synErr     *SyntaxError
}

// NewParser rejects grammars compiled with conflicts: their tables are
// inspectable but must not drive a parse.
func NewParser(gram *spec.CompiledGrammar, toks TokenStream) (*Parser, error) {
	if gram.Syntactic.ConflictCount > 0 {
		return nil, fmt.Errorf("grammar has %v conflicts and cannot drive a parser", gram.Syntactic.ConflictCount)
	}

	return &Parser{
		gram:       gram,
		toks:       toks,
		stateStack: []int{},
	}, nil
}

// Parse consumes the token stream until an accept or a syntax error. A syntax
// error is reported via SyntaxError, not via the returned error; the returned
// error covers token stream failures only.
func (p *Parser) Parse() error {
	p.push(p.gram.Syntactic.InitialState)
	tok, err := p.toks.Next()
	if err != nil {
		return err
	}

	for {
		act := p.lookupAction(tok)
		switch {
		case act < 0: // Shift
			p.push(act * -1)
			p.actOnShift(tok)

			tok, err = p.toks.Next()
			if err != nil {
				return err
			}
		case act > 0: // Reduce
			prodNum := act

			accepted := p.reduce(prodNum)
			if accepted {
				p.cst = p.semStack[len(p.semStack)-1].cst
				return nil
			}

			p.actOnReduction(prodNum)
		default: // Error
			p.synErr = &SyntaxError{
				Token:             tok,
				ExpectedTerminals: p.searchLookahead(p.top()),
			}
			return nil
		}
	}
}

func (p *Parser) lookupAction(tok *Token) int {
	termCount := p.gram.Syntactic.TerminalCount
	return p.gram.Syntactic.Action[p.top()*termCount+tok.TerminalID]
}

func (p *Parser) reduce(prodNum int) bool {
	tab := p.gram.Syntactic
	if prodNum == tab.StartProduction {
		return true
	}
	lhs := tab.LHSSymbols[prodNum]
	n := tab.AlternativeSymbolCounts[prodNum]
	p.pop(n)
	nextState := tab.GoTo[p.top()*tab.NonTerminalCount+lhs]
	p.push(nextState)
	return false
}

func (p *Parser) actOnShift(tok *Token) {
	p.semStack = append(p.semStack, &semanticFrame{
		cst: &Node{
			KindName: p.gram.Syntactic.Terminals[tok.TerminalID],
			Text:     tok.Lexeme,
		},
	})
}

func (p *Parser) actOnReduction(prodNum int) {
	tab := p.gram.Syntactic
	lhs := tab.LHSSymbols[prodNum]

	// When an alternative is empty, n is 0 and the handle is an empty slice.
	n := tab.AlternativeSymbolCounts[prodNum]
	handle := p.semStack[len(p.semStack)-n:]

	children := make([]*Node, len(handle))
	for i, f := range handle {
		children[i] = f.cst
	}

	p.semStack = p.semStack[:len(p.semStack)-n]
	p.semStack = append(p.semStack, &semanticFrame{
		cst: &Node{
			KindName: tab.NonTerminals[lhs],
			Children: children,
		},
	})
}

func (p *Parser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

func (p *Parser) push(state int) {
	p.stateStack = append(p.stateStack, state)
}

func (p *Parser) pop(n int) {
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
}

// CST returns the concrete syntax tree of an accepted parse, nil otherwise.
func (p *Parser) CST() *Node {
	return p.cst
}

// SyntaxError returns the recorded syntax error, nil on an accepted parse.
func (p *Parser) SyntaxError() *SyntaxError {
	return p.synErr
}

func (p *Parser) searchLookahead(state int) []string {
	kinds := []string{}
	termCount := p.gram.Syntactic.TerminalCount
	base := state * termCount
	for term := 0; term < termCount; term++ {
		if p.gram.Syntactic.Action[base+term] == 0 {
			continue
		}

		if term == p.gram.Syntactic.EOFSymbol {
			kinds = append(kinds, "<eof>")
			continue
		}

		kinds = append(kinds, p.gram.Syntactic.Terminals[term])
	}

	return kinds
}
