package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === CFSM states ===========================================================

// CFSMState is a state within the LALR(1) automaton for a grammar. A state is
// identified by the LR(0) cores of its kernel items. Items ready to reduce
// by an epsilon production are kept in a separate list, as they are never part
// of a kernel.
type CFSMState struct {
	ID      int // serial ID of this state, S0 = 0
	kernel  []*Item
	epsilon []*Item
	closed  bool
}

// Kernel returns the kernel items of a state, sorted by core.
func (s *CFSMState) Kernel() []*Item {
	return s.kernel
}

// EpsilonItems returns the items for epsilon productions reduced in this state.
func (s *CFSMState) EpsilonItems() []*Item {
	return s.epsilon
}

// Accept is true if the state contains the completed goal production.
func (s *CFSMState) Accept() bool {
	for _, i := range s.kernel {
		if i.prod.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d+%d])", s.ID, len(s.kernel), len(s.epsilon))
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.kernel {
		tracer().Debugf("   %v  %v", i, i.LA)
	}
	for _, i := range s.epsilon {
		tracer().Debugf("ε  %v  %v", i, i.LA)
	}
	tracer().Debugf("-------------------------")
}

// We need this for the worklist of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM edge between 2 states, directed and labelled with a symbol.
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// --- State table -----------------------------------------------------------

type lookupStatus int

const (
	stateNew lookupStatus = iota
	stateUnclosed
	stateClosed
)

// stateTable hash-conses states by the cores of their kernels. Hash buckets
// are verified by comparing cores exactly.
type stateTable struct {
	buckets map[string][]*CFSMState
	states  []*CFSMState
}

func newStateTable() *stateTable {
	return &stateTable{buckets: make(map[string][]*CFSMState)}
}

type kernelCore struct {
	Items []Core
}

func coreDigest(items []*Item) (string, error) {
	key := kernelCore{Items: make([]Core, len(items))}
	for k, i := range items {
		key.Items[k] = i.Core()
	}
	return structhash.Hash(key, 1)
}

func sameCore(kernel, items []*Item) bool {
	if len(kernel) != len(items) {
		return false
	}
	for k := range kernel {
		if kernel[k].Core() != items[k].Core() {
			return false
		}
	}
	return true
}

// lookupOrCreate finds the state with a given kernel core, or creates it.
// items are sorted by core in place. A new state takes a copy of items
// as its kernel.
func (t *stateTable) lookupOrCreate(items []*Item, lim Limits) (*CFSMState, lookupStatus, error) {
	sortCore(items)
	digest, err := coreDigest(items)
	if err != nil {
		return nil, stateNew, fatal(ErrInconsistent, "cannot hash kernel: %v", err)
	}
	for _, s := range t.buckets[digest] {
		if sameCore(s.kernel, items) {
			if s.closed {
				return s, stateClosed, nil
			}
			return s, stateUnclosed, nil
		}
	}
	if exceeds(len(t.states)+1, lim.MaxStates) {
		return nil, stateNew, fatal(ErrCapacity, "more than %d LALR(1) states", lim.MaxStates)
	}
	if exceeds(len(items), lim.MaxKernel) {
		return nil, stateNew, fatal(ErrCapacity, "more than %d kernel items in state %d",
			lim.MaxKernel, len(t.states))
	}
	s := &CFSMState{ID: len(t.states), kernel: append([]*Item(nil), items...)}
	t.states = append(t.states, s)
	t.buckets[digest] = append(t.buckets[digest], s)
	return s, stateNew, nil
}

// --- Worklist --------------------------------------------------------------

// worklist holds the unfinished states, taking them out in increasing order
// of state numbers.
type worklist struct {
	set *treeset.Set
	max int
}

func newWorklist() *worklist {
	return &worklist{set: treeset.NewWith(stateComparator)}
}

func (w *worklist) push(s *CFSMState) {
	w.set.Add(s)
	if w.set.Size() > w.max {
		w.max = w.set.Size()
	}
}

func (w *worklist) pop() *CFSMState {
	it := w.set.Iterator()
	if !it.Next() {
		return nil
	}
	s := it.Value().(*CFSMState)
	w.set.Remove(s)
	return s
}

// === CFSM ==================================================================

// CFSM is the characteristic finite state machine for an LALR(1) grammar.
// Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g      *Grammar        // this CFSM is for Grammar g
	table  *stateTable     // all the states
	edges  *arraylist.List // all the edges between states
	S0     *CFSMState      // start state
	merges int             // lookahead re-propagations into existing states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:     g,
		table: newStateTable(),
		edges: arraylist.New(),
	}
}

// States returns all states, indexed by state number.
func (c *CFSM) States() []*CFSMState {
	return c.table.states
}

// State returns the state with ID id, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.table.states) {
		return nil
	}
	return c.table.states[id]
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.table.states)
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
}

// Edge is a labelled transition between two states.
type Edge struct {
	From, To int
	Label    *Symbol
}

// Edges returns all transitions of the automaton, in order of creation.
func (c *CFSM) Edges() []Edge {
	edges := make([]Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		edges = append(edges, Edge{From: e.from.ID, To: e.to.ID, Label: e.label})
	}
	return edges
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.table.states {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			escapeDot(edge.label.Name))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept() {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(s *CFSMState) string {
	var b strings.Builder
	for _, i := range s.kernel {
		b.WriteString(escapeDot(i.String()))
		b.WriteString("\\l")
	}
	for _, i := range s.epsilon {
		b.WriteString(escapeDot(i.String()))
		b.WriteString("\\l")
	}
	return b.String()
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`,
	`<`, `\<`, `>`, `\>`)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}
