/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type for FIRST sets and lookahead sets of grammar
symbols. Members are non-negative symbol values, plus a pseudo-member Epsilon,
which stands for the empty string.

Unusually, all set operations are destructive!

Sets are iterated with explicit iterator values. Every call to Iterator() creates
a fresh cursor, so iterations over the same set may be nested.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
