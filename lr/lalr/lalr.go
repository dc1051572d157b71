/*
Package lalr provides a table-driven LALR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

The main focus for this package is trying out grammars on-the-fly.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	err = lrgen.CreateTables()

Finally parse some input:

	p := lalr.NewParser(g, lrgen.Tables())
	scanner := scanner.GoTokenizer("input", strings.NewReader("+a"))
	accepted, err := p.Parse(scanner)

Reductions may be observed by setting a Reducer callback. Accepting the input
counts as a reduction by the goal production, which is always the last one reported.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr

import (
	"fmt"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/scanner"
)

// tracer traces with key 'lrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.lr")
}

// Parser is an LALR(1)-parser type. Create and initialize one with lalr.NewParser(...)
type Parser struct {
	G       *lr.Grammar
	Reducer func(p *lr.Production, span lrgen.Span) // called for every reduction, may be nil
	stack   []stackitem                             // parser stack
	tables  *lr.Tables
}

// We store pairs of state-IDs and symbol-IDs on the parse stack.
type stackitem struct {
	stateID int        // ID of a CFSM state
	symID   int        // ID of a grammar symbol (terminal or non-terminal)
	span    lrgen.Span // input span over which this symbol reaches
}

// SyntaxError is returned for input not in the language of the grammar.
type SyntaxError struct {
	State  int
	Token  lrgen.Token
	Symbol *lr.Symbol // nil for unknown token types
}

func (e *SyntaxError) Error() string {
	if e.Symbol == nil {
		return fmt.Sprintf("syntax error: unknown token type %d (%q) at %v",
			e.Token.TokType(), e.Token.Lexeme(), e.Token.Span())
	}
	return fmt.Sprintf("syntax error in state %d: unexpected %s (%q) at %v",
		e.State, e.Symbol, e.Token.Lexeme(), e.Token.Span())
}

// NewParser creates an LALR(1) parser.
func NewParser(g *lr.Grammar, tables *lr.Tables) *Parser {
	return &Parser{
		G:      g,
		stack:  make([]stackitem, 0, 512),
		tables: tables,
	}
}

// Parse starts a new parse, given a scanner tokenizing the input.
// The parser must have been initialized.
//
// The parser returns true if the input string has been accepted. Input which is
// not accepted results in a *SyntaxError.
func (p *Parser) Parse(scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.tables == nil {
		tracer().Errorf("LALR(1)-parser not initialized")
		return false, fmt.Errorf("LALR(1)-parser not initialized")
	}
	p.stack = append(p.stack[:0], stackitem{0, 0, lrgen.Span{0, 0}}) // push S0
	token := scan.NextToken()
	for {
		term := p.G.TerminalForToken(token.TokType())
		state := p.stack[len(p.stack)-1] // TOS
		if term == nil {
			return false, &SyntaxError{State: state.stateID, Token: token}
		}
		tracer().Debugf("got token %q/%s from scanner", token.Lexeme(), term)
		action, ok := p.tables.ActionFor(state.stateID, term.Value)
		if !ok {
			return false, &SyntaxError{State: state.stateID, Token: token, Symbol: term}
		}
		switch {
		case action == 0:
			tracer().Debugf("accept")
			p.accept()
			return true, nil
		case action > 0:
			tracer().Debugf("shifting, next state = %d", action)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{int(action), term.Value, token.Span()})
			token = scan.NextToken()
		default:
			prod := p.G.Production(int(-action))
			nextstate, handlespan, err := p.reduce(prod)
			if err != nil {
				return false, err
			}
			if handlespan.IsNull() { // resulted from an epsilon production
				pos := token.Span().From()
				handlespan = lrgen.Span{pos, pos} // epsilon was just before lookahead
			}
			if p.Reducer != nil {
				p.Reducer(prod, handlespan)
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{nextstate, prod.LHS.Value, handlespan})
		}
	}
}

// reduce performs a reduce action for a production
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
func (p *Parser) reduce(prod *lr.Production) (int, lrgen.Span, error) {
	tracer().Infof("reduce %v", prod)
	var handlespan lrgen.Span
	n := p.tables.RHSLen[prod.Serial]
	if n >= len(p.stack) {
		return 0, handlespan, fmt.Errorf("parse stack underflow reducing %v", prod)
	}
	for i, sym := range reverse(prod.RHS()) {
		tos := p.stack[len(p.stack)-1-i]
		if tos.symID != sym.Value {
			tracer().Errorf("Expected %v on top of stack, got %d", sym, tos.symID)
		}
		handlespan = tos.span.Extend(handlespan)
	}
	p.stack = p.stack[:len(p.stack)-n]
	state := p.stack[len(p.stack)-1] // TOS
	nextstate, ok := p.tables.GotoFor(state.stateID, p.tables.LHS[prod.Serial])
	if !ok {
		return 0, handlespan, fmt.Errorf("no goto on %s in state %d", prod.LHS, state.stateID)
	}
	return nextstate, handlespan, nil
}

// accept reduces by the goal production, which leaves nothing on the stack
// but S0.
func (p *Parser) accept() {
	goal := p.G.Production(0)
	var span lrgen.Span
	for _, item := range p.stack[1:] {
		span = span.Extend(item.span)
	}
	p.stack = p.stack[:1]
	if p.Reducer != nil {
		p.Reducer(goal, span)
	}
}

// --- Helpers ----------------------------------------------------------

// reverse the symbols of a RHS of a production (i.e., a handle)
func reverse(syms []*lr.Symbol) []*lr.Symbol {
	r := append([]*lr.Symbol(nil), syms...) // make copy first
	for i := len(syms)/2 - 1; i >= 0; i-- {
		opp := len(syms) - 1 - i
		r[i], r[opp] = r[opp], r[i]
	}
	return r
}
