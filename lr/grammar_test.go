package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/lrgen/lr/iteratable"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestBuilderAugmentsGoal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a", 'a').N("S").T("b", 'b').End()
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Goal.Name != "S'" {
		t.Errorf("expected goal symbol to be S', is %s", g.Goal)
	}
	if len(g.Productions()) != 3 {
		t.Errorf("expected 3 productions, have %d", len(g.Productions()))
	}
	if p := g.Production(0); p.LHS != g.Goal || p.Len() != 1 || p.RHS()[0].Name != "S" {
		t.Errorf("expected production 0 to be S' ::= S, is %v", p)
	}
	if !g.Production(2).IsEpsilon() {
		t.Errorf("expected production 2 to be an epsilon production, is %v", g.Production(2))
	}
}

func TestBuilderKeepsUniqueGoal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").T("b", 2).End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Goal.Name != "S" || g.Production(0).LHS != g.Goal {
		t.Errorf("expected S to stay the goal symbol, is %s", g.Goal)
	}
	if g.TerminalForToken(2).Name != "b" {
		t.Errorf("expected token 2 to map to terminal b")
	}
	if g.TerminalForToken(-1) != g.EOI {
		t.Errorf("expected EOF token to map to end of input")
	}
}

func TestActionLifting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a", 'a').Action("one").T("b", 'b').Action("two").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p := g.Production(0)
	if p.Action != "two" {
		t.Errorf("expected rightmost action to become reduce action, is %q", p.Action)
	}
	if p.Len() != 3 {
		t.Fatalf("expected a {0} b, have %v", p)
	}
	act := p.RHS()[1]
	if !act.IsNonTerminal() || act.Name != "{0}" {
		t.Errorf("expected inline action to be lifted to a non-terminal, is %v (%d)", act, act.Value)
	}
	if len(act.Productions) != 1 || !act.Productions[0].IsEpsilon() || act.Productions[0].Action != "one" {
		t.Errorf("expected lifted action to have a single epsilon production")
	}
	if act.Productions[0].Serial != 1 {
		t.Errorf("expected lifted production to be numbered after user productions")
	}
	ga := Analysis(g)
	if !ga.First(act).Equals(iteratable.NewSet(iteratable.Epsilon)) {
		t.Errorf("expected FIRST(%s) = {ε}, is %v", act, act.First)
	}
	if w := g.Diagnostics().Warnings(); w != 0 {
		t.Errorf("expected no warnings, have %d", w)
	}
}

func TestProductionPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Left("+")
	b.Right("^")
	b.LHS("E").N("E").T("+", '+').N("E").End()
	b.LHS("E").N("E").T("^", '^').N("E").End()
	b.LHS("E").T("-", '-').N("E").Prec("^").End()
	b.LHS("E").T("n", 'n').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.Equal(1, g.Production(1).Prec)
	assert.Equal(2, g.Production(2).Prec)
	assert.Equal(2, g.Production(3).Prec, "explicit precedence")
	assert.Equal(0, g.Production(4).Prec)
	assert.Equal(AssocRight, g.Precedence(g.SymbolByName("^").Value).Assoc)
}

func TestPrecedenceFromLastTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Left("+")
	b.LHS("E").N("E").T("+", '+').N("E").End()
	b.LHS("E").N("E").T("+", '+').T("q", 'q').N("E").End()
	b.LHS("E").N("E").T("+", '+').T("q", 'q').N("E").PrecLevel(1).End()
	b.LHS("E").T("n", 'n').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if p := g.Production(1).Prec; p != 1 {
		t.Errorf("expected E ::= E + E to have precedence 1, has %d", p)
	}
	if p := g.Production(2).Prec; p != 0 {
		t.Errorf("expected q without precedence to leave production 2 at 0, has %d", p)
	}
	if p := g.Production(3).Prec; p != 1 {
		t.Errorf("expected explicit level to win for production 3, has %d", p)
	}
}

func TestEpsilonAfterSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("x", 'x').End()
	b.LHS("A").N("B").Epsilon()
	b.LHS("B").T("b", 'b').End()
	g, err := b.Grammar()
	if err == nil {
		t.Errorf("expected an empty rule with symbols to be an error")
	}
	if g == nil {
		t.Fatalf("expected grammar to be returned along with errors")
	}
	if e := g.Diagnostics().Errors(); e != 1 {
		t.Errorf("expected 1 error, have %d", e)
	}
}

func TestGrammarProblems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Left("-") // never used
	b.LHS("S").N("X").T("a", 'a').End()
	g, err := b.Grammar()
	if err == nil {
		t.Errorf("expected undefined non-terminal X to be an error")
	}
	if g == nil {
		t.Fatalf("expected grammar to be returned along with errors")
	}
	d := g.Diagnostics()
	if d.Errors() != 1 || d.Warnings() != 1 {
		t.Errorf("expected 1 error and 1 warning, have %d and %d", d.Errors(), d.Warnings())
	}
}

func TestGrammarWithoutRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	_, err := b.Grammar()
	if !errors.Is(err, ErrNoGoal) {
		t.Errorf("expected ErrNoGoal, got %v", err)
	}
}

func TestTokenClash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).T("b", 1).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected shared token types to be an error")
	}
}
