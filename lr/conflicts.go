package lr

import "fmt"

// ConflictKind tells shift/reduce from reduce/reduce conflicts.
type ConflictKind int

// Kinds of conflicts.
const (
	ShiftReduceConflict ConflictKind = iota
	ReduceReduceConflict
)

func (k ConflictKind) String() string {
	if k == ReduceReduceConflict {
		return "reduce/reduce"
	}
	return "shift/reduce"
}

// Conflict describes a parser table cell with more than one candidate action.
// Actions are encoded as in Tables. Chosen is meaningless if Removed is set.
type Conflict struct {
	Kind       ConflictKind
	State      int
	Token      *Symbol
	Existing   int32 // action present in the table
	Production int   // production to reduce
	Chosen     int32 // action kept in the table
	Resolved   bool  // resolved by precedence and associativity
	Removed    bool  // non-associative operator: cell turned into an error
}

func (c Conflict) String() string {
	how := "unresolved"
	if c.Resolved {
		how = "resolved"
	}
	choice := fmt.Sprintf("chose %s", actionString(c.Chosen))
	if c.Removed {
		choice = "error entry"
	}
	return fmt.Sprintf("state %d, token %s: %s conflict between %s and reduce %d, %s (%s)",
		c.State, c.Token, c.Kind, actionString(c.Existing), c.Production, choice, how)
}

func actionString(a int32) string {
	switch {
	case a == 0:
		return "accept"
	case a > 0:
		return fmt.Sprintf("shift %d", a)
	}
	return fmt.Sprintf("reduce %d", -a)
}

// resolve adds reductions to the action chains. For every state in
// state order, and every item ready to reduce, there is a reduction for every
// lookahead token, unless the table already holds an action for the token.
func (lrgen *TableGenerator) resolve() error {
	for _, state := range lrgen.dfa.States() {
		for _, item := range state.kernel {
			if err := lrgen.reduceOne(state, item); err != nil {
				return err
			}
		}
		for _, item := range state.epsilon {
			if err := lrgen.reduceOne(state, item); err != nil {
				return err
			}
		}
	}
	lrgen.HasConflicts = len(lrgen.conflicts) > 0
	return nil
}

func (lrgen *TableGenerator) reduceOne(state *CFSMState, item *Item) error {
	if item.PeekSymbol() != nil {
		return nil
	}
	prod := item.prod
	reduce := int32(-prod.Serial)
	chain := lrgen.actions[state.ID]
	it := item.LA.Iterator()
	for it.Next() {
		token := it.Value()
		tsym := lrgen.g.Symbol(token)
		if tsym == nil {
			return fatal(ErrInconsistent, "lookahead %d in state %d is not a terminal", token, state.ID)
		}
		if prod.Serial == 0 && !lrgen.accepts(token) {
			return fatal(ErrInconsistent, "goal production with lookahead %s in state %d", tsym, state.ID)
		}
		entry := chain.Find(token)
		if entry == nil {
			chain.Prepend(token, reduce)
			lrgen.reductions++
			continue
		}
		c := Conflict{State: state.ID, Token: tsym, Existing: entry.Action, Production: prod.Serial}
		if entry.Action <= 0 { // reduce/reduce
			c.Kind = ReduceReduceConflict
			if reduce > entry.Action { // smaller production number wins
				entry.Action = reduce
			}
			c.Chosen = entry.Action
			lrgen.ReduceReduce++
			lrgen.diag.Warnf(state.ID, "reduce/reduce conflict on %s between productions %d and %d, chose %d",
				tsym, -c.Existing, prod.Serial, -c.Chosen)
			lrgen.conflicts = append(lrgen.conflicts, c)
			continue
		}
		c.Kind = ShiftReduceConflict
		c.Chosen = entry.Action
		tprec := lrgen.g.Precedence(token)
		if prod.Prec > 0 && tprec.Level > 0 {
			c.Resolved = true
			switch {
			case tprec.Level < prod.Prec || (tprec.Level == prod.Prec && tprec.Assoc == AssocLeft):
				entry.Action = reduce
				c.Chosen = reduce
			case tprec.Level == prod.Prec && tprec.Assoc == AssocNonAssoc:
				chain.Remove(token)
				c.Removed = true
			}
			tracer().Debugf("state %d: %v", state.ID, c)
		} else {
			lrgen.ShiftReduce++
			lrgen.diag.Warnf(state.ID, "shift/reduce conflict on %s between shift %d and reduce %d, chose shift",
				tsym, c.Existing, prod.Serial)
		}
		lrgen.conflicts = append(lrgen.conflicts, c)
	}
	return nil
}
