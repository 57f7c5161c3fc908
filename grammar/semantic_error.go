package grammar

import (
	"fmt"
	"strings"
)

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoGrammarName       = newSemanticError("name is missing")
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrUndefinedStart      = newSemanticError("the start symbol has no production")
	semErrDuplicateProduction = newSemanticError("duplicate production")
	semErrDuplicateTerminal   = newSemanticError("duplicate terminal")
	semErrDuplicateName       = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrReservedName        = newSemanticError("the name is reserved")
)

// MalformedGrammarError reports one structural defect found while validating
// a grammar definition. Symbol names the offending symbol when there is one.
type MalformedGrammarError struct {
	Cause  *SemanticError
	Symbol string
}

func (e *MalformedGrammarError) Error() string {
	if e.Symbol == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%v: %v", e.Cause.Error(), e.Symbol)
}

func (e *MalformedGrammarError) Unwrap() error {
	return e.Cause
}

// MalformedGrammarErrors aggregates every defect of one build so a caller
// sees the whole list at once.
type MalformedGrammarErrors []*MalformedGrammarError

func (e MalformedGrammarErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}
	return b.String()
}
