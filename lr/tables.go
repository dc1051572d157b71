package lr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lrgen/lr/sparse"
)

// Tables are the parser tables for an LALR(1) grammar.
//
// Actions are encoded as follows: a positive value is a shift to this state,
// a negative value is a reduce by the negated production number, and 0 means
// accept. Missing entries are syntax errors. Goto columns are non-terminal
// values adjusted to start at 0 (see Symbol.Adjusted).
type Tables struct {
	Action *sparse.Compressed
	Goto   *sparse.Compressed
	LHS    []int // adjusted LHS value, indexed by production number
	RHSLen []int // length of the right-hand side, indexed by production number
}

// ActionFor looks up the action for a terminal value in a state.
func (t *Tables) ActionFor(state, terminal int) (int32, bool) {
	return t.Action.Lookup(state, terminal)
}

// GotoFor looks up the successor state after reducing a production to
// an (adjusted) non-terminal.
func (t *Tables) GotoFor(state, lhs int) (int, bool) {
	v, ok := t.Goto.Lookup(state, lhs)
	return int(v), ok
}

// Format writes the tables in human readable form.
func (t *Tables) Format(w io.Writer) error {
	if err := t.Action.Format(w, "Yya", "Yy_action"); err != nil {
		return err
	}
	if err := t.Goto.Format(w, "Yyg", "Yy_goto"); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\nYy_lhs[%d] = %s\n", len(t.LHS), intList(t.LHS))
	fmt.Fprintf(&b, "\nYy_reduce[%d] = %s\n", len(t.RHSLen), intList(t.RHSLen))
	_, err := io.WriteString(w, b.String())
	return err
}

func intList(l []int) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		if i%10 == 0 {
			b.WriteString("\n\t")
		}
		fmt.Fprintf(&b, "%3d", v)
	}
	b.WriteString("\n}")
	return b.String()
}

// === Table generator =======================================================

// TableGenerator is a generator object to construct LALR(1) parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR-parser recognizing grammar G.
// A TableGenerator is good for a single build.
type TableGenerator struct {
	g             *Grammar
	ga            *LRAnalysis
	opts          Options
	accept        []*Symbol
	dfa           *CFSM
	pool          itemPool
	actions       []*sparse.Chain // indexed by state
	gotos         []*sparse.Chain // indexed by state
	tables        *Tables
	diag          *Diagnostics
	conflicts     []Conflict
	transitions   int
	reductions    int
	maxUnfinished int
	ShiftReduce   int  // unresolved shift/reduce conflicts
	ReduceReduce  int  // reduce/reduce conflicts
	HasConflicts  bool // any conflict found, resolved or not
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis, opts ...Option) *TableGenerator {
	lrgen := &TableGenerator{
		g:    ga.Grammar(),
		ga:   ga,
		diag: &Diagnostics{},
	}
	for _, opt := range opts {
		opt(&lrgen.opts)
	}
	lrgen.diag.quiet = lrgen.opts.NoWarnings
	return lrgen
}

// CreateTables constructs the LALR(1) automaton, resolves conflicts and
// compresses the resulting tables. A *FatalError is returned if construction
// cannot complete; non-fatal errors and warnings are available from
// Diagnostics().
func (lrgen *TableGenerator) CreateTables() error {
	if lrgen.tables != nil {
		return nil
	}
	g := lrgen.g
	if g.Goal == nil || len(g.Goal.Productions) != 1 || g.Production(0).LHS != g.Goal {
		return fatal(ErrGoalProductions, "grammar %s", g.Name)
	}
	if exceeds(len(g.productions), lrgen.opts.Limits.MaxProductions) {
		return fatal(ErrCapacity, "more than %d productions", lrgen.opts.Limits.MaxProductions)
	}
	if err := lrgen.acceptSymbols(); err != nil {
		return err
	}
	tracer().Infof("building LALR(1) tables for grammar %s", g.Name)
	dfa, err := lrgen.buildCFSM()
	if err != nil {
		lrgen.dfa = nil
		return err
	}
	lrgen.dfa = dfa
	if err = lrgen.resolve(); err != nil {
		return err
	}
	lrgen.tables = lrgen.emit()
	tracer().Infof("%d states, %d shift/reduce and %d reduce/reduce conflicts",
		dfa.Size(), lrgen.ShiftReduce, lrgen.ReduceReduce)
	if lrgen.opts.Verbose > 0 && lrgen.opts.Doc != nil {
		if err = lrgen.Document(lrgen.opts.Doc); err != nil {
			return fmt.Errorf("writing state documentation: %w", err)
		}
	}
	return nil
}

func (lrgen *TableGenerator) acceptSymbols() error {
	lrgen.accept = lrgen.accept[:0]
	if len(lrgen.opts.AcceptOn) == 0 {
		lrgen.accept = append(lrgen.accept, lrgen.g.EOI)
		return nil
	}
	for _, name := range lrgen.opts.AcceptOn {
		t := lrgen.g.SymbolByName(name)
		if t == nil || !t.IsTerminal() {
			return fatal(ErrNoGoal, "accept symbol %s is not a terminal", name)
		}
		lrgen.accept = append(lrgen.accept, t)
	}
	return nil
}

func (lrgen *TableGenerator) accepts(term int) bool {
	for _, t := range lrgen.accept {
		if t.Value == term {
			return true
		}
	}
	return false
}

func (lrgen *TableGenerator) ensureChains(n int) {
	for len(lrgen.actions) < n {
		lrgen.actions = append(lrgen.actions, sparse.NewChain())
		lrgen.gotos = append(lrgen.gotos, sparse.NewChain())
	}
}

// emit compresses the action and goto chains and derives the LHS and
// reduce-length tables.
func (lrgen *TableGenerator) emit() *Tables {
	t := &Tables{
		Action: sparse.Compress(lrgen.actions),
		Goto:   sparse.Compress(lrgen.gotos),
		LHS:    make([]int, len(lrgen.g.productions)),
		RHSLen: make([]int, len(lrgen.g.productions)),
	}
	for _, p := range lrgen.g.productions {
		t.LHS[p.Serial] = p.LHS.Adjusted()
		t.RHSLen[p.Serial] = p.Len()
	}
	return t
}

// CFSM returns the LALR(1) automaton for a grammar. Clients have to call
// CreateTables() first.
func (lrgen *TableGenerator) CFSM() *CFSM {
	return lrgen.dfa
}

// Tables returns the compressed parser tables, or nil if CreateTables() has
// not been called successfully.
func (lrgen *TableGenerator) Tables() *Tables {
	if lrgen.tables == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
	}
	return lrgen.tables
}

// Diagnostics returns all diagnostics, including those of grammar validation.
func (lrgen *TableGenerator) Diagnostics() *Diagnostics {
	all := &Diagnostics{}
	if gd := lrgen.g.Diagnostics(); gd != nil {
		all.merge(gd)
	}
	all.merge(lrgen.diag)
	return all
}

// Conflicts returns all conflicts found, in order of detection.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// AcceptingStates returns all states of the CFSM which contain the completed
// goal production. Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]int, 0, 1)
	for _, state := range lrgen.dfa.States() {
		if state.Accept() {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// IsFatal is a helper to check whether an error returned by CreateTables is
// fatal, i.e., no tables have been produced.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}

// ===========================================================================

// ActionTableAsHTML exports the ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.tables == nil {
		return errors.New("ACTION table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(lrgen, "ACTION", lrgen.tables.Action, lrgen.g.terminals, false, w)
}

// GotoTableAsHTML exports the GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.tables == nil {
		return errors.New("GOTO table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(lrgen, "GOTO", lrgen.tables.Goto, lrgen.g.nonterminals, true, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *sparse.Compressed,
	symvec []*Symbol, adjusted bool, w io.Writer) error {
	//
	matrix := table.Expand(len(symvec))
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "%s table with %d entries<p>", tname, matrix.ValueCount())
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		fmt.Fprintf(&b, "<td>%s</td>", A)
	}
	b.WriteString("</tr>\n")
	for _, state := range lrgen.dfa.States() {
		fmt.Fprintf(&b, "<tr><td>state %d</td>\n", state.ID)
		for _, A := range symvec {
			col := A.Value
			if adjusted {
				col = A.Adjusted()
			}
			td := "&nbsp;"
			if v := matrix.Value(state.ID, col); v != matrix.NullValue() {
				td = valstring(v, adjusted)
			}
			fmt.Fprintf(&b, "<td>%s</td>\n", td)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// valstring is a short helper to stringify a table entry.
func valstring(v int32, isGoto bool) string {
	switch {
	case isGoto:
		return fmt.Sprintf("%d", v)
	case v == 0:
		return "acc"
	case v > 0:
		return fmt.Sprintf("s%d", v)
	}
	return fmt.Sprintf("r%d", -v)
}
