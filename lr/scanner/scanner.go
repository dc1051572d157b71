/*
Package scanner defines an interface for scanners to be used with the parser
of package lalr.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`,
which may be created directly from the terminal patterns of a grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.scanner")
}

// EOF is identical to text/scanner.EOF, which is the token type a grammar
// expects for end-of-input.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. After the end of input, a Tokenizer
// delivers EOF tokens.
type Tokenizer interface {
	NextToken() lrgen.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
// Operators are delivered as single characters, with their rune as token type.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lrgen.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   lrgen.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   lrgen.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// TokenName returns a printable name for Go token types and single characters.
func TokenName(typ lrgen.TokType) string {
	return scanner.TokenString(rune(typ))
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   lrgen.TokType
	lexeme string
	Val    interface{}
	span   lrgen.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ lrgen.TokType, lexeme string, span lrgen.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface lrgen.Token.
func (t DefaultToken) TokType() lrgen.TokType {
	return t.kind
}

// Value is part of interface lrgen.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface lrgen.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface lrgen.Token.
func (t DefaultToken) Span() lrgen.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%s %q>", TokenName(t.kind), t.lexeme)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}
