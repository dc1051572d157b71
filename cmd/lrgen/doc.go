/*
Command lrgen creates LALR(1) parser tables from a grammar file.

	lrgen [flags] grammar.toml

Grammar files are described in package grammarfile. Tables are written
in binary form (-o) and/or as text (-t). Option -v documents every state
of the automaton, together with conflicts and statistics. Option -i
starts an interactive session, where input lines are parsed with the
new tables, using a scanner built from the terminals of the grammar.

The exit status is the number of errors found, including warnings if
option -W is set. Output files are removed if table construction fails.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrgen.cli'
func tracer() tracing.Trace {
	return tracing.Select("lrgen.cli")
}
