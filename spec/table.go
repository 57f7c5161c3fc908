package spec

// CompiledGrammar is the immutable bundle handed to a parsing driver.
type CompiledGrammar struct {
	Name      string         `json:"name"`
	Syntactic *SyntacticSpec `json:"syntactic"`
}

// SyntacticSpec carries the action and goto tables plus everything a driver
// needs to run a shift/reduce loop over them.
//
// Both tables are dense row-major matrices indexed by state number. An action
// entry is 0 for a syntax error, a negative value -s for a shift to state s,
// and a positive value p for a reduction of production p; reducing the start
// production is the accept action and appears only in the EOF column. A goto
// entry is 0 for an error and the target state number otherwise.
type SyntacticSpec struct {
	Action                  []int    `json:"action"`
	GoTo                    []int    `json:"goto"`
	StateCount              int      `json:"state_count"`
	InitialState            int      `json:"initial_state"`
	AcceptState             int      `json:"accept_state"`
	StartProduction         int      `json:"start_production"`
	LHSSymbols              []int    `json:"lhs_symbols"`
	AlternativeSymbolCounts []int    `json:"alternative_symbol_counts"`
	Terminals               []string `json:"terminals"`
	TerminalCount           int      `json:"terminal_count"`
	NonTerminals            []string `json:"non_terminals"`
	NonTerminalCount        int      `json:"non_terminal_count"`
	EOFSymbol               int      `json:"eof_symbol"`
	ConflictCount           int      `json:"conflict_count"`
}
