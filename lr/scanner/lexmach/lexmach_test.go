package lexmach

import (
	"testing"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestForGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Keywords")
	b.Terminal("if", 1)
	b.Terminal("id", 2)
	b.SetPattern("id", `[a-z]+`)
	b.Terminal("num", 3)
	b.SetPattern("num", `[0-9]+`)
	b.LHS("S").L("if").L("id").L("+").L("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	LM, err := ForGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		input string
		types []lrgen.TokType
	}{
		{"if x + 42", []lrgen.TokType{1, 2, '+', 3}},
		{"ifx+1", []lrgen.TokType{2, '+', 3}},
		{"  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert := assert.New(t)
			sc, err := LM.Scanner(tt.input)
			assert.NoError(err)
			var types []lrgen.TokType
			for tok := sc.NextToken(); tok.TokType() != scanner.EOF; tok = sc.NextToken() {
				types = append(types, tok.TokType())
			}
			assert.Equal(tt.types, types)
		})
	}
}

func TestTokenSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Spans")
	b.LHS("S").L("a").L("b").End()
	g, _ := b.Grammar()
	LM, err := ForGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("a  b")
	assert := assert.New(t)
	assert.Equal(lrgen.Span{0, 1}, sc.NextToken().Span())
	assert.Equal(lrgen.Span{3, 4}, sc.NextToken().Span())
	eof := sc.NextToken()
	assert.Equal(lrgen.TokType(scanner.EOF), eof.TokType())
	assert.Equal(lrgen.Span{4, 4}, eof.Span())
}

func TestLiteral(t *testing.T) {
	if l := Literal("=="); l != `\=\=` {
		t.Errorf("expected literal pattern for == to be \\=\\=, is %s", l)
	}
	if l := Literal("if"); l != "if" {
		t.Errorf("expected keyword pattern to be unchanged, is %s", l)
	}
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = int(scanner.String)
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
