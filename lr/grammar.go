package lr

import (
	"fmt"
	"strings"
	textscanner "text/scanner"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr/iteratable"
)

// Production is a grammar rule with a single right-hand side.
type Production struct {
	Serial int     // production number, 0 is the goal production
	LHS    *Symbol // a non-terminal
	Prec   int     // precedence level, 0 if none
	Action string  // name of the reduce action, if any
	Line   int     // provenance
	rhs    []*Symbol
	fixed  bool // precedence set explicitly
}

// RHS returns the right-hand side of a production. Clients should not modify it.
func (p *Production) RHS() []*Symbol {
	return p.rhs
}

// Len returns the number of symbols on the right-hand side.
func (p *Production) Len() int {
	return len(p.rhs)
}

// IsEpsilon is true for productions with an empty right-hand side.
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 0
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS.Name)
	b.WriteString(" ::=")
	if len(p.rhs) == 0 {
		b.WriteString(" ε")
	}
	for _, sym := range p.rhs {
		b.WriteByte(' ')
		b.WriteString(sym.Name)
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar, ready to be analysed. Grammars are
// created by a GrammarBuilder and are immutable afterwards, except for the
// FIRST sets computed by Analysis.
type Grammar struct {
	Name         string
	Goal         *Symbol // goal symbol, with exactly one production (number 0)
	EOI          *Symbol // end-of-input terminal
	terminals    []*Symbol
	nonterminals []*Symbol
	productions  []*Production
	prec         []Precedence // indexed by terminal value
	symtab       *SymbolTable
	tokens       map[lrgen.TokType]*Symbol
	diag         *Diagnostics
}

// Terminals returns all terminals, indexed by value. Terminals()[0] is EOI.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// NonTerminals returns all non-terminals in ascending order of their values.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// Productions returns all productions, indexed by production number.
func (g *Grammar) Productions() []*Production {
	return g.productions
}

// Production returns production number n.
func (g *Grammar) Production(n int) *Production {
	if n < 0 || n >= len(g.productions) {
		return nil
	}
	return g.productions[n]
}

// Symbol returns the terminal or non-terminal with value v, or nil.
func (g *Grammar) Symbol(v int) *Symbol {
	switch {
	case v >= 0 && v < len(g.terminals):
		return g.terminals[v]
	case v >= MinNonTerm && v-MinNonTerm < len(g.nonterminals):
		return g.nonterminals[v-MinNonTerm]
	}
	return nil
}

// SymbolByName returns a symbol by name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symtab.Resolve(name)
}

// TerminalForToken maps a token type, as delivered by a scanner, to a terminal.
func (g *Grammar) TerminalForToken(t lrgen.TokType) *Symbol {
	return g.tokens[t]
}

// Precedence returns the precedence of a terminal value.
func (g *Grammar) Precedence(term int) Precedence {
	if term < 0 || term >= len(g.prec) {
		return Precedence{}
	}
	return g.prec[term]
}

// Diagnostics returns the warnings and errors found during grammar validation.
func (g *Grammar) Diagnostics() *Diagnostics {
	return g.diag
}

// EachNonTerminal calls mapper for every non-terminal.
func (g *Grammar) EachNonTerminal(mapper func(*Symbol)) {
	for _, A := range g.nonterminals {
		mapper(A)
	}
}

// Dump is a debugging helper: dump the productions of a grammar to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.Serial, p)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Grammar builder -------------------------------------------------------

type rule struct {
	lhs     *Symbol
	rhs     []*Symbol
	prec    int
	precSet bool
	line    int
}

// GrammarBuilder is used to construct a Grammar.
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
//    b.LHS("A").Epsilon()               // A  ->
//    g, err := b.Grammar()
//
// The first LHS is the goal symbol, if not set otherwise.
type GrammarBuilder struct {
	name         string
	symtab       *SymbolTable
	terminals    []*Symbol
	nonterminals []*Symbol
	actions      []*Symbol
	rules        []*rule
	prec         map[*Symbol]Precedence
	level        int
	goal         string
	line         int
	diag         *Diagnostics
	fatal        *FatalError
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	b := &GrammarBuilder{
		name:   name,
		symtab: NewSymbolTable(),
		prec:   make(map[*Symbol]Precedence),
		diag:   &Diagnostics{},
	}
	eoi, _ := b.symtab.ResolveOrDefine(EOIName, func(n string) *Symbol {
		return &Symbol{Name: n, Value: EOIValue, token: lrgen.TokType(textscanner.EOF), hasToken: true}
	})
	b.terminals = append(b.terminals, eoi)
	return b
}

// AtLine sets the line number recorded for subsequent declarations.
func (b *GrammarBuilder) AtLine(line int) *GrammarBuilder {
	b.line = line
	return b
}

// Goal sets the goal symbol. Default is the first LHS.
func (b *GrammarBuilder) Goal(name string) *GrammarBuilder {
	b.goal = name
	return b
}

// Terminal declares a terminal with a token type, as delivered by a scanner.
// Token types are opaque to the grammar, but have to be unique.
func (b *GrammarBuilder) Terminal(name string, tokval int) *Symbol {
	t := b.terminal(name)
	if t != nil {
		b.setToken(t, lrgen.TokType(tokval))
	}
	return t
}

// SetPattern attaches a lexical pattern to a terminal.
func (b *GrammarBuilder) SetPattern(terminal, pattern string) {
	if t := b.terminal(terminal); t != nil {
		t.Pattern = pattern
	}
}

// SetField attaches an attribute field name to a symbol.
func (b *GrammarBuilder) SetField(name, field string) {
	if sym := b.symtab.Resolve(name); sym != nil {
		sym.Field = field
		return
	}
	b.diag.lineErrorf(b.line, "field %q for undeclared symbol %s", field, name)
}

// Left starts a new precedence level with left-associative terminals.
func (b *GrammarBuilder) Left(names ...string) {
	b.precedence(AssocLeft, names)
}

// Right starts a new precedence level with right-associative terminals.
func (b *GrammarBuilder) Right(names ...string) {
	b.precedence(AssocRight, names)
}

// NonAssoc starts a new precedence level with non-associative terminals.
func (b *GrammarBuilder) NonAssoc(names ...string) {
	b.precedence(AssocNonAssoc, names)
}

func (b *GrammarBuilder) precedence(assoc Assoc, names []string) {
	b.level++
	for _, name := range names {
		t := b.terminal(name)
		if t == nil {
			continue
		}
		if _, ok := b.prec[t]; ok {
			b.diag.lineWarnf(b.line, "precedence of %s redefined", name)
		}
		b.prec[t] = Precedence{Level: b.level, Assoc: assoc}
	}
}

// LHS starts a new rule for non-terminal name.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	A := b.nonterminal(name)
	if A != nil && A.Defined == 0 {
		A.Defined = b.lineOrRule()
	}
	r := &rule{lhs: A, line: b.lineOrRule()}
	return &RuleBuilder{b: b, r: r}
}

func (b *GrammarBuilder) lineOrRule() int {
	if b.line > 0 {
		return b.line
	}
	return len(b.rules) + 1
}

func (b *GrammarBuilder) terminal(name string) *Symbol {
	t, found := b.symtab.ResolveOrDefine(name, func(n string) *Symbol {
		return &Symbol{Name: n, Value: len(b.terminals), Line: b.lineOrRule(), Defined: b.lineOrRule()}
	})
	if !found {
		if t.Value > MaxTerm && b.fatal == nil {
			b.fatal = fatal(ErrCapacity, "too many terminals (max %d)", MaxTerm)
		}
		b.terminals = append(b.terminals, t)
	} else if !t.IsTerminal() {
		b.diag.lineErrorf(b.line, "%s is not a terminal", name)
		return nil
	}
	return t
}

func (b *GrammarBuilder) nonterminal(name string) *Symbol {
	A, found := b.symtab.ResolveOrDefine(name, func(n string) *Symbol {
		return &Symbol{Name: n, Value: MinNonTerm + len(b.nonterminals), Line: b.lineOrRule(),
			First: iteratable.NewSet()}
	})
	if !found {
		if A.Value > MaxNonTerm && b.fatal == nil {
			b.fatal = fatal(ErrCapacity, "too many non-terminals (max %d)", MaxNonTerm-MinNonTerm+1)
		}
		b.nonterminals = append(b.nonterminals, A)
	} else if !A.IsNonTerminal() {
		b.diag.lineErrorf(b.line, "%s is not a non-terminal", name)
		return nil
	}
	return A
}

func (b *GrammarBuilder) setToken(t *Symbol, tokval lrgen.TokType) {
	if t.hasToken && t.token != tokval {
		b.diag.lineErrorf(b.line, "terminal %s redeclared with token type %d (was %d)",
			t.Name, tokval, t.token)
		return
	}
	t.token, t.hasToken = tokval, true
}

// --- Rule builder ----------------------------------------------------------

// RuleBuilder adds symbols to the right-hand side of a rule.
type RuleBuilder struct {
	b *GrammarBuilder
	r *rule
}

func (rb *RuleBuilder) use(sym *Symbol) *RuleBuilder {
	if sym == nil {
		return rb
	}
	if sym.Used == 0 {
		sym.Used = rb.b.lineOrRule()
	}
	rb.r.rhs = append(rb.r.rhs, sym)
	return rb
}

// N appends a non-terminal to the right-hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	return rb.use(rb.b.nonterminal(name))
}

// T appends a terminal with a token type to the right-hand side.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	t := rb.b.terminal(name)
	if t != nil {
		rb.b.setToken(t, lrgen.TokType(tokval))
	}
	return rb.use(t)
}

// L appends a terminal declared elsewhere, e.g. with Terminal or Left.
func (rb *RuleBuilder) L(name string) *RuleBuilder {
	return rb.use(rb.b.terminal(name))
}

// Action appends an inline action. An action at the rightmost position
// becomes the reduce action of the production.
func (rb *RuleBuilder) Action(name string) *RuleBuilder {
	b := rb.b
	act := &Symbol{
		Name:    fmt.Sprintf("{%d}", len(b.actions)),
		Value:   MinAct + len(b.actions),
		Code:    name,
		Line:    b.lineOrRule(),
		Defined: b.lineOrRule(),
	}
	b.actions = append(b.actions, act)
	b.symtab.table[act.Name] = act
	return rb.use(act)
}

// Prec overrides the precedence of the rule with the one of a terminal.
func (rb *RuleBuilder) Prec(terminal string) *RuleBuilder {
	t := rb.b.terminal(terminal)
	if t != nil {
		rb.r.precSet = true
		rb.r.prec = -t.Value - 1 // resolved in Grammar(), after all levels are known
	}
	return rb
}

// PrecLevel overrides the precedence of the rule with an explicit level.
func (rb *RuleBuilder) PrecLevel(level int) *RuleBuilder {
	rb.r.prec, rb.r.precSet = level, true
	return rb
}

// End closes a rule.
func (rb *RuleBuilder) End() {
	if rb.r.lhs == nil {
		return
	}
	rb.b.rules = append(rb.b.rules, rb.r)
}

// Epsilon closes a rule with an empty right-hand side. Calling it on a rule
// which already has symbols is an error.
func (rb *RuleBuilder) Epsilon() {
	if len(rb.r.rhs) > 0 && rb.r.lhs != nil {
		rb.b.diag.lineErrorf(rb.r.line, "rule for %s has symbols and cannot be empty", rb.r.lhs.Name)
	}
	rb.r.rhs = rb.r.rhs[:0]
	rb.End()
}

// --- Grammar construction --------------------------------------------------

// Grammar returns the grammar under construction. Inline actions are lifted
// to non-terminals, production numbers are assigned and the grammar is checked
// for undefined and unused symbols. If the grammar contains errors, both
// the grammar and an error are returned. Fatal problems return a nil grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.fatal != nil {
		return nil, b.fatal
	}
	if len(b.rules) == 0 {
		return nil, fatal(ErrNoGoal, "grammar %s has no rules", b.name)
	}
	goal := b.rules[0].lhs
	if b.goal != "" {
		goal = b.symtab.Resolve(b.goal)
		if goal == nil || !goal.IsNonTerminal() {
			return nil, fatal(ErrNoGoal, "goal symbol %s is not a non-terminal", b.goal)
		}
	}
	g := &Grammar{
		Name:   b.name,
		EOI:    b.terminals[0],
		symtab: b.symtab,
		tokens: make(map[lrgen.TokType]*Symbol),
		diag:   b.diag,
	}
	var goalRules, otherRules []*rule
	for _, r := range b.rules {
		if r.lhs == goal {
			goalRules = append(goalRules, r)
		} else {
			otherRules = append(otherRules, r)
		}
	}
	if len(goalRules) == 0 {
		return nil, fatal(ErrNoGoal, "goal symbol %s has no productions", goal.Name)
	}
	if len(goalRules) > 1 || goal.Used > 0 {
		augmented := b.nonterminal(goal.Name + "'")
		if augmented == nil || len(augmented.Productions) > 0 {
			return nil, fatal(ErrGoalProductions, "cannot augment goal symbol %s", goal.Name)
		}
		augmented.Defined, augmented.Used = goalRules[0].line, goalRules[0].line
		if goal.Used == 0 {
			goal.Used = goalRules[0].line
		}
		start := &rule{lhs: augmented, rhs: []*Symbol{goal}, line: goalRules[0].line}
		goalRules = append([]*rule{start}, goalRules...)
		goal = augmented
	}
	g.Goal = goal
	if goal.Used == 0 {
		goal.Used = goal.Defined // goal symbol counts as used
	}
	for _, r := range append(goalRules, otherRules...) {
		g.addProduction(r)
	}
	if b.fatal != nil {
		return nil, b.fatal
	}
	g.liftActions(b)
	if b.fatal != nil {
		return nil, b.fatal
	}
	g.terminals = b.terminals
	g.nonterminals = b.nonterminals
	g.prec = make([]Precedence, len(g.terminals))
	for t, p := range b.prec {
		g.prec[t.Value] = p
	}
	for _, p := range g.productions {
		g.setPrecedence(p)
	}
	for _, t := range g.terminals {
		if !t.hasToken {
			if r := []rune(t.Name); len(r) == 1 {
				t.token, t.hasToken = lrgen.TokType(r[0]), true
			} else {
				b.diag.lineErrorf(t.Line, "terminal %s has no token type", t.Name)
				continue
			}
		}
		if other, ok := g.tokens[t.token]; ok {
			b.diag.lineErrorf(t.Line, "terminals %s and %s share token type %d", other.Name, t.Name, t.token)
			continue
		}
		g.tokens[t.token] = t
	}
	g.problems()
	g.Dump()
	return g, g.diag.Err()
}

func (g *Grammar) addProduction(r *rule) *Production {
	p := &Production{
		Serial: len(g.productions),
		LHS:    r.lhs,
		Line:   r.line,
		rhs:    append([]*Symbol(nil), r.rhs...),
	}
	p.Prec, p.fixed = r.prec, r.precSet
	g.productions = append(g.productions, p)
	r.lhs.Productions = append(r.lhs.Productions, p)
	return p
}

// liftActions detaches rightmost actions as reduce actions and turns every
// other action into a non-terminal with a single epsilon production.
func (g *Grammar) liftActions(b *GrammarBuilder) {
	n := len(g.productions)
	for _, p := range g.productions[:n] {
		if k := len(p.rhs); k > 0 && p.rhs[k-1].IsAction() {
			p.Action = p.rhs[k-1].Code
			p.rhs = p.rhs[:k-1]
		}
		for _, sym := range p.rhs {
			if !sym.IsAction() {
				continue
			}
			sym.Value = MinNonTerm + len(b.nonterminals)
			if sym.Value > MaxNonTerm {
				b.fatal = fatal(ErrCapacity, "too many non-terminals (max %d)", MaxNonTerm-MinNonTerm+1)
				return
			}
			sym.First = iteratable.NewSet()
			b.nonterminals = append(b.nonterminals, sym)
			eps := g.addProduction(&rule{lhs: sym, line: sym.Line})
			eps.Action = sym.Code
		}
	}
}

// setPrecedence determines the precedence level of a production: explicit
// settings win over the level of the last terminal on the right-hand side.
// A last terminal without declared precedence leaves the production at 0.
func (g *Grammar) setPrecedence(p *Production) {
	if p.fixed {
		if p.Prec < 0 { // set by Prec(terminal)
			p.Prec = g.prec[-p.Prec-1].Level
		}
		return
	}
	for i := len(p.rhs) - 1; i >= 0; i-- {
		if sym := p.rhs[i]; sym.IsTerminal() {
			p.Prec = g.prec[sym.Value].Level
			return
		}
	}
}

// problems reports symbols which are used but not defined (errors), and
// symbols which are defined but not used (warnings).
func (g *Grammar) problems() {
	check := func(sym *Symbol) {
		if sym == g.Goal || sym.IsEOI() {
			return
		}
		if sym.IsNonTerminal() && len(sym.Productions) == 0 {
			g.diag.lineErrorf(sym.Used, "<%s> not defined (used on line %d)", sym.Name, sym.Used)
		} else if sym.Used == 0 {
			g.diag.lineWarnf(sym.Defined, "<%s> not used (defined on line %d)", sym.Name, sym.Defined)
		}
	}
	for _, t := range g.terminals {
		check(t)
	}
	for _, A := range g.nonterminals {
		check(A)
	}
}
