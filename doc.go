/*
Package lrgen is a generator for LALR(1) parser tables.

It consumes a context-free grammar (terminals, non-terminals, productions,
precedence declarations) and produces the compressed ACTION and GOTO tables of a
deterministic, table-driven shift-reduce parser, together with diagnostics
describing the conflicts found on the way. Package structure is
as follows:

■ lr: Package lr holds the grammar model, FIRST-set analysis, the construction of
the LALR(1) automaton, conflict resolution and table emission.

■ lr/sparse: Package sparse implements the association-list rows of the parser
tables and their compressed, row-shared encoding.

■ lr/lalr: Package lalr is a table-driven parser operating on emitted tables.

■ lr/scanner: Package scanner defines the tokenizer interface for package lalr, with an
adapter for lexmachine in sub-package lexmach.

■ lr/grammarfile: Package grammarfile reads grammar descriptions in TOML format.

■ lr/iteratable: Package iteratable provides the symbol sets used for FIRST sets
and lookaheads.

Command lrgen (in cmd/lrgen) creates tables from a grammar file and lets users
try out a grammar interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrgen
