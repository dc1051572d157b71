package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestGoTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestUnifyStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	scanner := GoTokenizer("chars", strings.NewReader("'a' `raw`"), UnifyStrings(true))
	for token := scanner.NextToken(); token.TokType() != EOF; token = scanner.NextToken() {
		if token.TokType() != String {
			t.Errorf("expected %q to be of type String, is %s", token.Lexeme(), TokenName(token.TokType()))
		}
	}
}

func TestTokenSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.scanner")
	defer teardown()
	//
	scanner := GoTokenizer("spans", strings.NewReader("ab + 12"))
	token := scanner.NextToken()
	if token.TokType() != Ident || token.Span().From() != 0 || token.Span().To() != 2 {
		t.Errorf("expected identifier at (0…2), is %v at %v", token, token.Span())
	}
	token = scanner.NextToken()
	if token.TokType() != '+' || token.Span().From() != 3 {
		t.Errorf("expected '+' at position 3, is %v at %v", token, token.Span())
	}
}
