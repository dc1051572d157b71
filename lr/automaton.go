package lr

import (
	"github.com/npillmayer/lrgen/lr/iteratable"
)

// === LALR(1) automaton construction ========================================

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Sethi & Ullman,
// section 4.7, and to Allen Holub's "Compiler Design in C", chapter 5.
//
// States are identified by the LR(0) cores of their kernels, thus the automaton
// has as many states as the LR(0) automaton. Whenever a successor state is
// reached again with lookaheads it does not have yet, the lookaheads are merged
// into its kernel and the state is scheduled again, until nothing changes.

// buildCFSM constructs the LALR(1) automaton. Shift and goto transitions are
// recorded into the action and goto chains of the table generator.
func (lrgen *TableGenerator) buildCFSM() (*CFSM, error) {
	tracer().Debugf("=== build CFSM ==================================================")
	g := lrgen.g
	cfsm := emptyCFSM(g)
	start := lrgen.pool.get(g.Production(0), 0)
	for _, t := range lrgen.accept {
		start.LA.Add(t.Value)
	}
	s0, _, err := cfsm.table.lookupOrCreate([]*Item{start}, lrgen.opts.Limits)
	if err != nil {
		return nil, err
	}
	cfsm.S0 = s0
	work := newWorklist()
	work.push(s0)
	for state := work.pop(); state != nil; state = work.pop() {
		lrgen.ensureChains(len(cfsm.table.states))
		closure, err := lrgen.closure(state)
		if err != nil {
			return nil, err
		}
		closure = lrgen.kernelClosure(state, closure)
		sortItems(closure)
		n, err := lrgen.moveEpsilon(state, closure)
		if err != nil {
			return nil, err
		}
		rest := closure[n:]
		for len(rest) > 0 {
			sym := rest[0].PeekSymbol()
			if sym == nil {
				return nil, fatal(ErrInconsistent, "item %v ready to reduce in state %d is not an epsilon item",
					rest[0], state.ID)
			}
			k := 1
			for k < len(rest) && rest[k].PeekSymbol() == sym {
				k++
			}
			run := rest[:k:k]
			rest = rest[k:]
			for _, item := range run {
				item.dot++
			}
			next, status, err := cfsm.table.lookupOrCreate(run, lrgen.opts.Limits)
			if err != nil {
				return nil, err
			}
			if !state.closed {
				if err := lrgen.addTransition(cfsm, state, next, sym); err != nil {
					return nil, err
				}
			}
			if status == stateNew {
				tracer().Debugf("state %d --%s--> new state %d", state.ID, sym, next.ID)
				work.push(next)
				continue
			}
			changed, err := mergeLookaheads(next, run)
			if err != nil {
				return nil, err
			}
			if changed {
				tracer().Debugf("state %d --%s--> state %d: lookaheads changed", state.ID, sym, next.ID)
				cfsm.merges++
				work.push(next)
			}
			for _, item := range run {
				lrgen.pool.put(item)
			}
		}
		state.closed = true
	}
	lrgen.maxUnfinished = work.max
	lrgen.ensureChains(len(cfsm.table.states))
	return cfsm, nil
}

// closure computes the LR(1) closure of a state's kernel, excluding the kernel
// items themselves. For an item [A → α . B β, L] it adds [B → . γ, FIRST(β L)]
// for every production B → γ, until no item or lookahead is added any more.
func (lrgen *TableGenerator) closure(state *CFSMState) ([]*Item, error) {
	var items []*Item
	var err error
	changed := false
	for _, k := range state.kernel {
		var c bool
		if items, c, err = lrgen.close(k, items); err != nil {
			return nil, err
		}
		changed = changed || c
	}
	for changed {
		changed = false
		for i := 0; i < len(items); i++ {
			var c bool
			if items, c, err = lrgen.close(items[i], items); err != nil {
				return nil, err
			}
			changed = changed || c
		}
	}
	return items, nil
}

func (lrgen *TableGenerator) close(item *Item, items []*Item) ([]*Item, bool, error) {
	B := item.PeekSymbol()
	if B == nil || !B.IsNonTerminal() {
		return items, false, nil
	}
	la := item.LA
	if rest := item.prod.rhs[item.dot+1:]; len(rest) > 0 {
		la = iteratable.NewSet()
		if FirstOfRHS(la, rest) {
			la.Union(item.LA)
		}
	}
	changed := false
	for _, p := range B.Productions {
		ci := findProduction(items, p)
		if ci == nil {
			if exceeds(len(items)+1, lrgen.opts.Limits.MaxClosure) {
				return nil, false, fatal(ErrCapacity, "more than %d closure items",
					lrgen.opts.Limits.MaxClosure)
			}
			ci = lrgen.pool.get(p, 0)
			items = append(items, ci)
			changed = true
		}
		if ci.LA.Union(la) {
			changed = true
		}
	}
	return items, changed, nil
}

func findProduction(items []*Item, p *Production) *Item {
	for _, i := range items {
		if i.prod == p {
			return i
		}
	}
	return nil
}

// kernelClosure appends copies of all kernel items which are not ready to
// reduce. Shifting them will create kernel items of successor states.
func (lrgen *TableGenerator) kernelClosure(state *CFSMState, closure []*Item) []*Item {
	for _, k := range state.kernel {
		if k.PeekSymbol() == nil {
			continue
		}
		i := lrgen.pool.get(k.prod, k.dot)
		i.LA.Union(k.LA)
		closure = append(closure, i)
	}
	return closure
}

// moveEpsilon moves the items ready to reduce from the head of a sorted closure
// into the permanent epsilon list of a state. Returns the number of items moved.
func (lrgen *TableGenerator) moveEpsilon(state *CFSMState, closure []*Item) (int, error) {
	n := 0
	for ; n < len(closure) && closure[n].PeekSymbol() == nil; n++ {
		item := closure[n]
		if !item.prod.IsEpsilon() {
			return 0, fatal(ErrInconsistent, "non-epsilon item %v ready to reduce in closure of state %d",
				item, state.ID)
		}
		if old := findProduction(state.epsilon, item.prod); old != nil {
			old.LA.Union(item.LA)
			lrgen.pool.put(item)
			continue
		}
		if exceeds(len(state.epsilon)+1, lrgen.opts.Limits.MaxEpsilon) {
			return 0, fatal(ErrCapacity, "more than %d epsilon items in state %d",
				lrgen.opts.Limits.MaxEpsilon, state.ID)
		}
		state.epsilon = append(state.epsilon, item)
	}
	return n, nil
}

// mergeLookaheads merges the lookaheads of candidate kernel items into the
// kernel of an existing state. Both have to be sorted by core.
func mergeLookaheads(state *CFSMState, items []*Item) (bool, error) {
	if !sameCore(state.kernel, items) {
		return false, fatal(ErrInconsistent, "kernel mismatch merging lookaheads into state %d", state.ID)
	}
	changed := false
	for k, i := range items {
		if state.kernel[k].LA.Union(i.LA) {
			changed = true
		}
	}
	return changed, nil
}

// addTransition records a shift (terminals) or a goto (non-terminals).
func (lrgen *TableGenerator) addTransition(cfsm *CFSM, from, to *CFSMState, sym *Symbol) error {
	var chain = lrgen.actions[from.ID]
	col := sym.Value
	if sym.IsNonTerminal() {
		chain = lrgen.gotos[from.ID]
		col = sym.Adjusted()
	}
	if chain.Find(col) != nil {
		return fatal(ErrInconsistent, "duplicate transition on %s in state %d", sym, from.ID)
	}
	chain.Prepend(col, int32(to.ID))
	lrgen.transitions++
	cfsm.addEdge(from, to, sym)
	return nil
}
