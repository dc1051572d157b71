package lr

import (
	"fmt"
	"sort"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/iteratable"
)

// Symbol values are partitioned into disjoint ranges. The variant of a symbol
// (terminal, non-terminal, action) follows from its value alone.
// Value 0 is reserved for the end-of-input terminal.
const (
	EOIValue   = 0
	MinTerm    = 1
	MinNonTerm = 1 << 14
	MaxTerm    = MinNonTerm - 1
	MinAct     = 1 << 15
	MaxNonTerm = MinAct - 1
)

// EOIName is the name of the end-of-input terminal.
const EOIName = "$"

// Symbol is a grammar symbol: a terminal, a non-terminal or an inline action.
type Symbol struct {
	Name        string
	Value       int
	Field       string          // attribute field name, may be empty
	Pattern     string          // lexical pattern for terminals, may be empty
	First       *iteratable.Set // FIRST set, for non-terminals only
	Productions []*Production   // right-hand sides, for non-terminals only
	Line        int             // line of first appearance
	Used        int             // line of first use on a right-hand side, 0 if unused
	Defined     int             // line of definition, 0 if undefined
	Code        string          // action name, for (former) action symbols
	token       lrgen.TokType
	hasToken    bool
}

// IsTerminal is true for terminals, including end-of-input.
func (sym *Symbol) IsTerminal() bool {
	return sym.Value < MinNonTerm
}

// IsNonTerminal is true for non-terminals, including lifted actions.
func (sym *Symbol) IsNonTerminal() bool {
	return sym.Value >= MinNonTerm && sym.Value < MinAct
}

// IsAction is true for inline actions which have not been lifted yet.
func (sym *Symbol) IsAction() bool {
	return sym.Value >= MinAct
}

// IsEOI is true for the end-of-input terminal.
func (sym *Symbol) IsEOI() bool {
	return sym.Value == EOIValue
}

// Token returns the token type a scanner delivers for a terminal.
func (sym *Symbol) Token() lrgen.TokType {
	return sym.token
}

// Adjusted returns a non-terminal's value relative to MinNonTerm,
// as used for GOTO table columns and the LHS table.
func (sym *Symbol) Adjusted() int {
	return sym.Value - MinNonTerm
}

func (sym *Symbol) String() string {
	return sym.Name
}

// --- Symbol table ----------------------------------------------------------

// SymbolTable stores grammar symbols by name (map-like semantics).
type SymbolTable struct {
	table map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*Symbol)}
}

// Resolve checks for a symbol in the table.
// Returns a symbol or nil.
func (st *SymbolTable) Resolve(name string) *Symbol {
	return st.table[name]
}

// ResolveOrDefine finds a symbol in the table, creating it with create if not
// found. Returns the symbol and a flag, signalling whether the symbol
// has already been present.
func (st *SymbolTable) ResolveOrDefine(name string, create func(string) *Symbol) (*Symbol, bool) {
	if sym := st.Resolve(name); sym != nil {
		return sym, true
	}
	sym := create(name)
	st.table[name] = sym
	return sym, false
}

// Size counts the symbols in a symbol table.
func (st *SymbolTable) Size() int {
	return len(st.table)
}

// Each iterates over the symbols in ascending order of their values.
func (st *SymbolTable) Each(mapper func(*Symbol)) {
	syms := make([]*Symbol, 0, len(st.table))
	for _, sym := range st.table {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Value < syms[j].Value })
	for _, sym := range syms {
		mapper(sym)
	}
}

// --- Precedence ------------------------------------------------------------

// Assoc is the associativity of a terminal.
type Assoc int

// Associativities, as declared with %left, %right and %nonassoc.
const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
	AssocNonAssoc
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	case AssocNonAssoc:
		return "nonassoc"
	}
	return "none"
}

// ParseAssoc maps "left", "right", "nonassoc" to an associativity.
func ParseAssoc(s string) (Assoc, error) {
	switch s {
	case "left":
		return AssocLeft, nil
	case "right":
		return AssocRight, nil
	case "nonassoc":
		return AssocNonAssoc, nil
	case "", "none":
		return AssocNone, nil
	}
	return AssocNone, fmt.Errorf("unknown associativity %q", s)
}

// Precedence is a terminal's precedence level and associativity.
// Level 0 means "no precedence". Higher levels bind tighter.
type Precedence struct {
	Level int
	Assoc Assoc
}
