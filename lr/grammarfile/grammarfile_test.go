package grammarfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/lalr"
	"github.com/npillmayer/lrgen/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprGrammar = `
name = "expr"
goal = "E"

[[terminals]]
name = "NUM"
pattern = "[0-9]+"
field = "num"

[[precedence]]
assoc = "left"
tokens = ["+", "-"]

[[precedence]]
assoc = "left"
tokens = ["*"]

[[precedence]]
assoc = "right"
tokens = ["UMINUS"]

[[rules]]
lhs = "E"
field = "expr"
alts = ["E + E", "E - E", "E * E", "- E", "( E )", "NUM"]
prec = ["", "", "", "UMINUS"]
`

func TestExpressionFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	g, err := Parse([]byte(exprGrammar), "test")
	if err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.Equal("expr", g.Name)
	assert.Equal("E'", g.Goal.Name)
	assert.Len(g.Productions(), 7)
	num := g.SymbolByName("NUM")
	if assert.NotNil(num) {
		assert.True(num.IsTerminal())
		assert.Equal("[0-9]+", num.Pattern)
		assert.Equal("num", num.Field)
		assert.EqualValues(AutoTokenBase, num.Token())
	}
	assert.Equal("expr", g.SymbolByName("E").Field)
	assert.EqualValues('+', g.SymbolByName("+").Token())
	assert.Equal(3, g.Production(4).Prec) // E ::= - E
	assert.Equal(1, g.Diagnostics().Warnings(), "UMINUS is not used")
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err = lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	assert.Equal(0, lrgen.ShiftReduce)
	assert.Equal(0, lrgen.ReduceReduce)
	LM, err := lexmach.ForGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"1 - -2 * 3", "(1+2)*34", "-7"} {
		sc, _ := LM.Scanner(input)
		accepted, err := lalr.NewParser(g, lrgen.Tables()).Parse(sc)
		assert.NoError(err, input)
		assert.True(accepted, input)
	}
}

func TestActionsAndQuotes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	const src = `
[[rules]]
lhs = "Block"
alts = ["'{' {open} List '}' {close}"]

[[rules]]
lhs = "List"
alts = ["List item", ""]
`
	g, err := Parse([]byte(src), "blocks")
	if err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.Equal("blocks", g.Name)
	assert.Equal("Block", g.Goal.Name)
	p := g.Production(0)
	assert.Equal("close", p.Action)
	assert.Equal(4, p.Len())
	assert.True(g.SymbolByName("{").IsTerminal())
	assert.True(g.SymbolByName("}").IsTerminal())
	assert.True(g.SymbolByName("List").IsNonTerminal())
	assert.True(g.Production(2).IsEpsilon(), "List ::= ε")
	open := p.RHS()[1]
	assert.True(open.IsNonTerminal())
	if assert.Len(open.Productions, 1) {
		assert.Equal("open", open.Productions[0].Action)
	}
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "balanced.toml")
	src := "[[rules]]\nlhs = \"S\"\nalts = [\"a S b\", \"\"]\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "balanced" {
		t.Errorf("expected grammar to be named after file, is %q", g.Name)
	}
	if _, err = Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestBadFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "name = "},
		{"assoc", "[[precedence]]\nassoc = \"sideways\"\ntokens = [\"+\"]\n"},
		{"no-assoc", "[[precedence]]\ntokens = [\"+\"]\n"},
		{"lhs", "[[rules]]\nalts = [\"a\"]\n"},
		{"prec", "[[rules]]\nlhs = \"S\"\nalts = [\"a\"]\nprec = [\"a\", \"b\"]\n"},
		{"no-rules", "name = \"empty\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse([]byte(tt.src), tt.name)
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}
}

func TestUndefinedNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.lr")
	defer teardown()
	//
	const src = `
goal = "S"
[[rules]]
lhs = "S"
alts = ["a B"]
`
	// B is not a LHS, thus it is a terminal with an automatic token type
	g, err := Parse([]byte(src), "undefined")
	if err != nil {
		t.Fatal(err)
	}
	if !g.SymbolByName("B").IsTerminal() {
		t.Errorf("expected B to be a terminal")
	}
	const bad = `
goal = "T"
[[rules]]
lhs = "S"
alts = ["a"]
`
	_, err = Parse([]byte(bad), "bad-goal")
	if !errors.Is(err, lr.ErrNoGoal) {
		t.Errorf("expected ErrNoGoal, have %v", err)
	}
}
