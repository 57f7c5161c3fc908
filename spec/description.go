package spec

type Terminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type NonTerminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Production renders RHS symbols as terminal numbers for terminals and
// negated non-terminal numbers for non-terminals.
type Production struct {
	Number int   `json:"number"`
	LHS    int   `json:"lhs"`
	RHS    []int `json:"rhs"`
}

type Item struct {
	Production int `json:"production"`
	Dot        int `json:"dot"`
}

type Transition struct {
	Symbol int `json:"symbol"`
	State  int `json:"state"`
}

type Reduce struct {
	LookAhead  []int `json:"look_ahead"`
	Production int   `json:"production"`
}

// SRConflict reports a shift/reduce collision. The shift always stays in the
// table; AdoptedState names its target.
type SRConflict struct {
	Symbol       int `json:"symbol"`
	State        int `json:"state"`
	Production   int `json:"production"`
	AdoptedState int `json:"adopted_state"`
}

// RRConflict reports a reduce/reduce collision. The first-assigned reduction
// stays in the table.
type RRConflict struct {
	Symbol            int `json:"symbol"`
	Production1       int `json:"production_1"`
	Production2       int `json:"production_2"`
	AdoptedProduction int `json:"adopted_production"`
}

type State struct {
	Number     int           `json:"number"`
	Kernel     []*Item       `json:"kernel"`
	Shift      []*Transition `json:"shift"`
	Reduce     []*Reduce     `json:"reduce"`
	GoTo       []*Transition `json:"goto"`
	SRConflict []*SRConflict `json:"sr_conflict"`
	RRConflict []*RRConflict `json:"rr_conflict"`
}

type Report struct {
	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`
	States       []*State       `json:"states"`
}

// HasConflicts reports whether any state recorded a conflict. A grammar with
// conflicts is not parseable by the SLR(1) construction and its table must
// not be handed to a driver.
func (r *Report) HasConflicts() bool {
	for _, s := range r.States {
		if len(s.SRConflict) > 0 || len(s.RRConflict) > 0 {
			return true
		}
	}
	return false
}
