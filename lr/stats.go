package lr

import (
	"fmt"
	"io"
	"strings"
	"unsafe"
)

// Stats summarizes a table construction.
type Stats struct {
	Terminals     int
	NonTerminals  int
	Productions   int
	States        int // LALR(1) states
	LRStates      int // states plus lookahead re-propagations
	Items         int // items allocated
	Transitions   int // non-error table entries before compression
	Pairs         int // table entries after compression
	Bytes         int // estimated size of the compressed tables
	MaxUnfinished int // high-water mark of the worklist
	ShiftReduce   int
	ReduceReduce  int
	Warnings      int
	Errors        int
}

// Stats returns statistics for the last successful call to CreateTables.
func (lrgen *TableGenerator) Stats() Stats {
	s := Stats{
		Terminals:    len(lrgen.g.terminals),
		NonTerminals: len(lrgen.g.nonterminals),
		Productions:  len(lrgen.g.productions),
		Items:        lrgen.pool.total,
		Transitions:  lrgen.transitions + lrgen.reductions,
		ShiftReduce:  lrgen.ShiftReduce,
		ReduceReduce: lrgen.ReduceReduce,
	}
	d := lrgen.Diagnostics()
	s.Warnings, s.Errors = d.Warnings(), d.Errors()
	if lrgen.dfa != nil {
		s.States = lrgen.dfa.Size()
		s.LRStates = s.States + lrgen.dfa.merges
		s.MaxUnfinished = lrgen.maxUnfinished
	}
	if lrgen.tables != nil {
		s.Pairs = lrgen.tables.Action.Pairs() + lrgen.tables.Goto.Pairs()
		ptr := int(unsafe.Sizeof(uintptr(0)))
		s.Bytes = 2*ptr*s.States + s.States + s.Pairs*2
	}
	return s
}

// WriteStats writes statistics in a human readable form.
func WriteStats(w io.Writer, s Stats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d      terminals\n", s.Terminals)
	fmt.Fprintf(&b, "%4d      nonterminals\n", s.NonTerminals)
	fmt.Fprintf(&b, "%4d      productions\n", s.Productions)
	fmt.Fprintf(&b, "%4d      LALR(1) states (LR:%d LALR:%d)\n", s.States, s.LRStates, s.States)
	fmt.Fprintf(&b, "%4d      items\n", s.Items)
	fmt.Fprintf(&b, "%4d      nonerror transitions in tables\n", s.Transitions)
	fmt.Fprintf(&b, "%4d      unfinished states (maximum)\n", s.MaxUnfinished)
	fmt.Fprintf(&b, "%4d      bytes required for compressed tables\n", s.Bytes)
	fmt.Fprintf(&b, "%4d      shift/reduce conflicts\n", s.ShiftReduce)
	fmt.Fprintf(&b, "%4d      reduce/reduce conflicts\n", s.ReduceReduce)
	_, err := io.WriteString(w, b.String())
	return err
}
