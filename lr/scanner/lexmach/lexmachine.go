package lexmach

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lrgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.scanner")
}

// Whitespace is the default pattern for input to skip between tokens.
const Whitespace = `( |\t|\n|\r)+`

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(Literal(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// ForGrammar creates a lexmachine adapter from the terminals of a grammar.
// Terminals without a pattern match their name literally, all others match
// their pattern. Literals take priority over patterns, so keywords are not
// scanned as identifiers. Input matching one of the skip patterns is ignored;
// if none is given, whitespace is skipped.
//
// Tokens carry the token type of their terminal, thus the resulting scanner
// fits a parser for the same grammar.
func ForGrammar(g *lr.Grammar, skip ...string) (*LMAdapter, error) {
	if g == nil {
		return nil, fmt.Errorf("no grammar to create a scanner for")
	}
	if len(skip) == 0 {
		skip = []string{Whitespace}
	}
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	var patterns []*lr.Symbol
	for _, t := range g.Terminals() {
		if t.IsEOI() {
			continue
		}
		if t.Pattern != "" {
			patterns = append(patterns, t)
			continue
		}
		tracer().Debugf("literal %q for terminal %s", t.Name, t)
		adapter.Lexer.Add([]byte(Literal(t.Name)), MakeToken(t.Name, int(t.Token())))
	}
	for _, t := range patterns {
		tracer().Debugf("pattern %q for terminal %s", t.Pattern, t)
		adapter.Lexer.Add([]byte(t.Pattern), MakeToken(t.Name, int(t.Token())))
	}
	for _, s := range skip {
		adapter.Lexer.Add([]byte(s), Skip)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA for grammar %s: %v", g.Name, err)
		return nil, err
	}
	return adapter, nil
}

// Literal returns a lexmachine pattern matching s literally.
func Literal(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError, end: uint64(len(input))}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	end     uint64 // length of input
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface. Unconsumed input is reported
// to the error handler and skipped.
func (lms *LMScanner) NextToken() lrgen.Token {
	if lms.scanner == nil {
		return scanner.MakeDefaultToken(scanner.EOF, "", lrgen.Span{})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", lrgen.Span{lms.end, lms.end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	from := uint64(token.TC)
	return scanner.MakeDefaultToken(
		lrgen.TokType(token.Type),
		string(token.Lexeme),
		lrgen.Span{from, from + uint64(len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
