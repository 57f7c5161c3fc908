package driver

import (
	"fmt"

	"github.com/rokuyo/slrgen/spec"
)

// Token is one unit of parser input. A driver consumes terminals, not
// characters; tokenization happens upstream.
type Token struct {
	// TerminalID is the terminal number in the compiled grammar's terminal
	// namespace.
	TerminalID int

	// Lexeme is the matched text. It may be empty for synthetic tokens.
	Lexeme string

	// EOF marks the end-of-input token. An EOF token carries no lexeme.
	EOF bool
}

// TokenStream feeds tokens to a parser. Next returns an EOF token at the end
// of input and keeps returning it on further calls.
type TokenStream interface {
	Next() (*Token, error)
}

type sliceTokenStream struct {
	toks []*Token
	pos  int
	eof  int
}

// NewTokenStream wraps pre-tokenized input. Each element pairs a terminal
// name from the compiled grammar with its lexeme; unknown names are an error.
func NewTokenStream(g *spec.CompiledGrammar, toks [][2]string) (TokenStream, error) {
	term2Num := map[string]int{}
	for num, text := range g.Syntactic.Terminals {
		if text == "" {
			continue
		}
		term2Num[text] = num
	}

	ts := make([]*Token, len(toks))
	for i, t := range toks {
		num, ok := term2Num[t[0]]
		if !ok {
			return nil, fmt.Errorf("undefined terminal: %v", t[0])
		}
		ts[i] = &Token{
			TerminalID: num,
			Lexeme:     t[1],
		}
	}

	return &sliceTokenStream{
		toks: ts,
		eof:  g.Syntactic.EOFSymbol,
	}, nil
}

func (s *sliceTokenStream) Next() (*Token, error) {
	if s.pos >= len(s.toks) {
		return &Token{
			TerminalID: s.eof,
			EOF:        true,
		}, nil
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, nil
}
