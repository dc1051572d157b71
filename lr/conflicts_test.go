package lr

import (
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestPrecedenceResolvesConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("E")
	b.Left("+")
	b.Left("*")
	b.LHS("E").N("E").T("+", '+').N("E").End() // 1
	b.LHS("E").N("E").T("*", '*').N("E").End() // 2
	b.LHS("E").T("NUM", scanner.Int).End()     // 3
	lrgen := buildTables(t, b)
	g := lrgen.CFSM().g
	plus, times := g.SymbolByName("+").Value, g.SymbolByName("*").Value
	//
	assert := assert.New(t)
	assert.Equal(0, lrgen.ShiftReduce, "unresolved shift/reduce conflicts")
	assert.Equal(0, lrgen.ReduceReduce, "reduce/reduce conflicts")
	assert.True(lrgen.HasConflicts)
	assert.Equal(4, len(lrgen.Conflicts()))
	for _, c := range lrgen.Conflicts() {
		assert.True(c.Resolved, c.String())
	}
	afterPlus := findState(lrgen, 1, 3) // E → E + E .
	if afterPlus == nil {
		t.Fatalf("no state for E → E + E .")
	}
	a, _ := lrgen.Tables().ActionFor(afterPlus.ID, plus)
	assert.Equal(int32(-1), a, "E + E . + must reduce (left associative)")
	a, _ = lrgen.Tables().ActionFor(afterPlus.ID, times)
	assert.True(a > 0, "E + E . * must shift (higher precedence)")
	afterTimes := findState(lrgen, 2, 3) // E → E * E .
	a, _ = lrgen.Tables().ActionFor(afterTimes.ID, plus)
	assert.Equal(int32(-2), a, "E * E . + must reduce (lower precedence)")
	a, _ = lrgen.Tables().ActionFor(afterTimes.ID, times)
	assert.Equal(int32(-2), a, "E * E . * must reduce (left associative)")
}

func TestRightAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("E")
	b.Right("^")
	b.LHS("E").N("E").T("^", '^').N("E").End()
	b.LHS("E").T("n", 'n').End()
	lrgen := buildTables(t, b)
	s := findState(lrgen, 1, 3)
	hat := lrgen.CFSM().g.SymbolByName("^").Value
	if a, _ := lrgen.Tables().ActionFor(s.ID, hat); a <= 0 {
		t.Errorf("expected E ^ E . ^ to shift, is %d", a)
	}
}

func TestNonAssocRemovesEntry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("E")
	b.NonAssoc("<")
	b.LHS("E").N("E").T("<", '<').N("E").End()
	b.LHS("E").T("n", 'n').End()
	lrgen := buildTables(t, b)
	s := findState(lrgen, 1, 3)
	less := lrgen.CFSM().g.SymbolByName("<").Value
	if a, ok := lrgen.Tables().ActionFor(s.ID, less); ok {
		t.Errorf("expected E < E . < to be a syntax error, is %d", a)
	}
	if len(lrgen.Conflicts()) != 1 || !lrgen.Conflicts()[0].Removed {
		t.Errorf("expected a single removed conflict entry, have %v", lrgen.Conflicts())
	}
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("x", 'x').End() // 1
	b.LHS("S").N("B").T("x", 'x').End() // 2
	b.LHS("A").T("a", 'a').End()        // 3
	b.LHS("B").T("a", 'a').End()        // 4
	lrgen := buildTables(t, b)
	if lrgen.ReduceReduce != 1 {
		t.Errorf("expected exactly 1 reduce/reduce conflict, have %d", lrgen.ReduceReduce)
	}
	if lrgen.ShiftReduce != 0 {
		t.Errorf("expected no shift/reduce conflicts, have %d", lrgen.ShiftReduce)
	}
	s := findState(lrgen, 3, 1)
	x := lrgen.CFSM().g.SymbolByName("x").Value
	if a, _ := lrgen.Tables().ActionFor(s.ID, x); a != -3 {
		t.Errorf("expected reduce by lower production 3, is %d", a)
	}
	if w := lrgen.Diagnostics().Warnings(); w != 1 {
		t.Errorf("expected 1 warning, have %d", w)
	}
}

func TestDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("i", 'i').N("S").End()                    // 1
	b.LHS("S").T("i", 'i').N("S").T("e", 'e').N("S").End() // 2
	b.LHS("S").T("x", 'x').End()                           // 3
	lrgen := buildTables(t, b, SuppressWarnings(true))
	if lrgen.ShiftReduce != 1 {
		t.Errorf("expected exactly 1 shift/reduce conflict, have %d", lrgen.ShiftReduce)
	}
	s := findState(lrgen, 1, 2)
	e := lrgen.CFSM().g.SymbolByName("e").Value
	if a, _ := lrgen.Tables().ActionFor(s.ID, e); a <= 0 {
		t.Errorf("expected shift on else, is %d", a)
	}
	d := lrgen.Diagnostics()
	if d.Warnings() != 1 || len(d.All()) != 0 {
		t.Errorf("expected 1 suppressed warning, have %d warnings and %d messages",
			d.Warnings(), len(d.All()))
	}
}

func TestUndeclaredLastTerminalLeavesConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("E")
	b.Left("+")
	b.LHS("E").N("E").T("+", '+').N("E").End()             // 1
	b.LHS("E").N("E").T("+", '+').T("q", 'q').N("E").End() // 2
	b.LHS("E").T("n", 'n').End()                           // 3
	lrgen := buildTables(t, b)
	plus := lrgen.CFSM().g.SymbolByName("+").Value
	//
	assert := assert.New(t)
	assert.Equal(1, lrgen.ShiftReduce, "unresolved shift/reduce conflicts")
	assert.Equal(1, lrgen.Diagnostics().Warnings())
	s := findState(lrgen, 2, 4) // E → E + q E .
	if s == nil {
		t.Fatalf("no state for E → E + q E .")
	}
	a, _ := lrgen.Tables().ActionFor(s.ID, plus)
	assert.True(a > 0, "E + q E . + must shift")
	s = findState(lrgen, 1, 3) // E → E + E .
	a, _ = lrgen.Tables().ActionFor(s.ID, plus)
	assert.Equal(int32(-1), a, "E + E . + must reduce (left associative)")
}

func TestPercentInDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("E")
	b.LHS("E").N("E").T("%", '%').N("E").End()
	b.LHS("E").T("n", 'n').End()
	lrgen := buildTables(t, b)
	all := lrgen.Diagnostics().All()
	if len(all) != 1 {
		t.Fatalf("expected 1 diagnostic, have %d", len(all))
	}
	if msg := all[0].String(); !strings.Contains(msg, "conflict on % between") {
		t.Errorf("expected operator %% in message, have %q", msg)
	}
}
