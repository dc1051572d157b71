/*
Package grammarfile reads grammar descriptions in TOML format and hands them
to an lr.GrammarBuilder.

A grammar file looks like this:

	name = "expr"
	goal = "E"

	[[terminals]]
	name = "NUM"
	pattern = "[0-9]+"

	[[precedence]]
	assoc = "left"
	tokens = ["+", "-"]

	[[rules]]
	lhs = "E"
	alts = ["E + E", "E - E", "NUM", "( E )"]

Words of an alternative are separated by white space. Words naming the LHS
of a rule are non-terminals, all others are terminals. Terminals need not be
declared, but have to be declared for attaching a pattern, a token type or
an attribute field. A word in single quotes is always a terminal, thus
'{' is a terminal and {name} is an inline action. An empty alternative
is an epsilon production.

Precedence levels are listed from lowest to highest. Each rule may carry a
list 'prec', with an entry per alternative naming a terminal whose precedence
the alternative should get ("" for none).

Terminals with names of more than one character, and without an explicit
token type, get token types starting at AutoTokenBase, in order of appearance.

Line numbers reported in diagnostics are rule numbers, counted from 1.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.lr")
}

// AutoTokenBase is the first token type assigned to terminals without one.
// It is beyond the range of runes, thus never clashes with single character
// terminals.
const AutoTokenBase = utf8.MaxRune + 1

type grammarFile struct {
	Name       string      `toml:"name"`
	Goal       string      `toml:"goal"`
	Terminals  []terminal  `toml:"terminals"`
	Precedence []precLevel `toml:"precedence"`
	Rules      []rule      `toml:"rules"`
}

type terminal struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
	Token   *int   `toml:"token"`
	Field   string `toml:"field"`
}

type precLevel struct {
	Assoc  string   `toml:"assoc"`
	Tokens []string `toml:"tokens"`
}

type rule struct {
	LHS   string   `toml:"lhs"`
	Field string   `toml:"field"`
	Alts  []string `toml:"alts"`
	Prec  []string `toml:"prec"`
}

// Load reads a grammar file. If the file does not name the grammar, the
// grammar is named after the file.
func Load(path string) (*lr.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, name)
}

// Parse decodes a grammar description and builds the grammar. Like
// lr.GrammarBuilder.Grammar, it returns both the grammar and an error if the
// grammar has non-fatal errors.
func Parse(data []byte, name string) (*lr.Grammar, error) {
	var f grammarFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", name, err)
	}
	for _, key := range md.Undecoded() {
		tracer().Infof("grammar %s: ignoring unknown key %s", name, key)
	}
	if f.Name == "" {
		f.Name = name
	}
	b, err := f.builder()
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", f.Name, err)
	}
	return b.Grammar()
}

func (f *grammarFile) builder() (*lr.GrammarBuilder, error) {
	b := lr.NewGrammarBuilder(f.Name)
	if f.Goal != "" {
		b.Goal(f.Goal)
	}
	tokens := autoTokens{b: b, explicit: make(map[string]bool)}
	for _, t := range f.Terminals {
		if t.Name == "" {
			return nil, fmt.Errorf("terminal without a name")
		}
		if t.Token != nil {
			b.Terminal(t.Name, *t.Token)
			tokens.explicit[t.Name] = true
		} else {
			tokens.note(t.Name)
		}
		b.SetPattern(t.Name, t.Pattern) // declares the terminal
		if t.Field != "" {
			b.SetField(t.Name, t.Field)
		}
	}
	for i, level := range f.Precedence {
		assoc, err := lr.ParseAssoc(level.Assoc)
		if err != nil {
			return nil, fmt.Errorf("precedence level %d: %w", i+1, err)
		} else if assoc == lr.AssocNone {
			return nil, fmt.Errorf("precedence level %d: missing associativity", i+1)
		}
		for _, t := range level.Tokens {
			tokens.note(t)
		}
		switch assoc {
		case lr.AssocLeft:
			b.Left(level.Tokens...)
		case lr.AssocRight:
			b.Right(level.Tokens...)
		case lr.AssocNonAssoc:
			b.NonAssoc(level.Tokens...)
		}
	}
	lhs := make(map[string]bool, len(f.Rules))
	for _, r := range f.Rules {
		lhs[r.LHS] = true
	}
	for i, r := range f.Rules {
		if r.LHS == "" {
			return nil, fmt.Errorf("rule %d: missing lhs", i+1)
		}
		if len(r.Prec) > len(r.Alts) {
			return nil, fmt.Errorf("rule %d: %d prec entries for %d alternatives", i+1, len(r.Prec), len(r.Alts))
		}
		b.AtLine(i + 1)
		for k, alt := range r.Alts {
			rb := b.LHS(r.LHS)
			for _, word := range strings.Fields(alt) {
				switch {
				case isAction(word):
					rb.Action(word[1 : len(word)-1])
				case isQuoted(word):
					t := word[1 : len(word)-1]
					tokens.note(t)
					rb.L(t)
				case lhs[word]:
					rb.N(word)
				default:
					tokens.note(word)
					rb.L(word)
				}
			}
			if k < len(r.Prec) && r.Prec[k] != "" {
				tokens.note(r.Prec[k])
				rb.Prec(r.Prec[k])
			}
			rb.End()
		}
		if len(r.Alts) == 0 {
			b.LHS(r.LHS).Epsilon()
		}
		if r.Field != "" {
			b.SetField(r.LHS, r.Field)
		}
	}
	tokens.assign()
	return b, nil
}

func isAction(word string) bool {
	return len(word) > 2 && word[0] == '{' && word[len(word)-1] == '}'
}

func isQuoted(word string) bool {
	return len(word) > 2 && word[0] == '\'' && word[len(word)-1] == '\''
}

// autoTokens collects terminals which need a generated token type.
type autoTokens struct {
	b        *lr.GrammarBuilder
	explicit map[string]bool
	pending  []string
	seen     map[string]bool
}

func (at *autoTokens) note(name string) {
	if at.explicit[name] || utf8.RuneCountInString(name) == 1 {
		return
	}
	if at.seen == nil {
		at.seen = make(map[string]bool)
	}
	if !at.seen[name] {
		at.seen[name] = true
		at.pending = append(at.pending, name)
	}
}

func (at *autoTokens) assign() {
	for i, name := range at.pending {
		tracer().Debugf("terminal %s gets token type %d", name, AutoTokenBase+i)
		at.b.Terminal(name, AutoTokenBase+i)
	}
}
