/*
Package lr implements the construction of LALR(1) parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token type, as delivered by a scanner. Grammars may contain
epsilon-productions and inline actions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.Left("+")                                   // %left +
    b.Left("*")                                   // %left *
    b.LHS("E").N("E").T("+", '+').N("E").End()    // E  ->  E + E
    b.LHS("E").N("E").T("*", '*').N("E").End()    // E  ->  E * E
    b.LHS("E").T("NUM", scanner.Int).End()        // E  ->  NUM
    g, err := b.Grammar()

The goal symbol must have exactly one production, which gets number 0. If the
first non-terminal has more than one production or appears on a right-hand side,
the builder adds a production E' ::= E. The grammar above therefore results in

   0: E' ::= E
   1: E ::= E + E
   2: E ::= E * E
   3: E ::= NUM

An inline action in the middle of a right-hand side is replaced by a fresh
non-terminal with a single epsilon-production. An action at the end of a
right-hand side becomes the reduce action of its production.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST sets
for all non-terminals.

    ga := lr.Analysis(g)  // analyser for grammar above
    ga.Grammar().EachNonTerminal(func(A *lr.Symbol) {
        fmt.Printf("FIRST(%s) = %v", A, ga.First(A))
    })

Parser Construction

Using grammar analysis as input, an LALR(1) automaton is constructed
directly, merging lookaheads into states with equal LR(0) cores. Shift/reduce
and reduce/reduce conflicts are resolved, if possible with the help of
operator precedence, and reported otherwise. The resulting ACTION and GOTO
tables are compressed by sharing identical rows.

Example:

    lrgen := lr.NewTableGenerator(ga, lr.Verbosity(1), lr.DocumentTo(w))
    if err := lrgen.CreateTables(); err != nil {  // construct LALR(1) parser tables
        ...
    }
    tables := lrgen.Tables()

The CFSM will not be thrown away, but is made available to the client. This is
intended for debugging purposes. It can be exported to Graphviz's Dot-format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrgen.lr")
}
