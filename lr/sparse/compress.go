package sparse

import (
	"fmt"
	"io"
	"strings"
)

// NoRow marks a state without any entries in a compressed table.
const NoRow = -1

// Compressed is a parser table with shared rows. Every state either has no
// entries (Index is NoRow) or refers to a row. States with identical chains
// share the row of the lowest-numbered of them.
type Compressed struct {
	Rows  [][]Pair // distinct rows, in order of their owner states
	Index []int    // row number for each state, or NoRow
	owner []int    // state which owns a row
}

// Compress turns a slice of chains, indexed by state, into a compressed table.
// Pairs keep their chain order.
func Compress(chains []*Chain) *Compressed {
	c := &Compressed{Index: make([]int, len(chains))}
	seen := make(map[string]int)
	for state, chain := range chains {
		if chain == nil || chain.Len() == 0 {
			c.Index[state] = NoRow
			continue
		}
		pairs := chain.Pairs()
		key := rowKey(pairs)
		if row, ok := seen[key]; ok {
			c.Index[state] = row
			continue
		}
		row := len(c.Rows)
		seen[key] = row
		c.Rows = append(c.Rows, pairs)
		c.owner = append(c.owner, state)
		c.Index[state] = row
	}
	tracer().Debugf("compressed %d rows into %d", len(chains), len(c.Rows))
	return c
}

func rowKey(pairs []Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%d,%d;", p.Symbol, p.Action)
	}
	return b.String()
}

// States returns the number of states covered by the table.
func (c *Compressed) States() int {
	return len(c.Index)
}

// Row returns the pairs for a state, or nil.
func (c *Compressed) Row(state int) []Pair {
	if state < 0 || state >= len(c.Index) || c.Index[state] == NoRow {
		return nil
	}
	return c.Rows[c.Index[state]]
}

// Shared returns the state whose row is used by state, which is state itself
// for row owners. Returns NoRow for states without entries.
func (c *Compressed) Shared(state int) int {
	if state < 0 || state >= len(c.Index) || c.Index[state] == NoRow {
		return NoRow
	}
	return c.owner[c.Index[state]]
}

// Lookup finds the cell for (state, sym).
func (c *Compressed) Lookup(state, sym int) (int32, bool) {
	for _, p := range c.Row(state) {
		if p.Symbol == sym {
			return p.Action, true
		}
	}
	return 0, false
}

// Pairs counts the pairs stored, shared rows counted once.
func (c *Compressed) Pairs() int {
	n := 0
	for _, row := range c.Rows {
		n += len(row)
	}
	return n
}

// Expand creates an uncompressed view of the table with cols columns.
func (c *Compressed) Expand(cols int) *IntMatrix {
	m := NewIntMatrix(len(c.Index), cols, DefaultNullValue)
	for state := range c.Index {
		for _, p := range c.Row(state) {
			m.Set(state, p.Symbol, p.Action)
		}
	}
	return m
}

// Format writes the table in human readable form: one array per row, prefixed
// by its pair count and named rowName with the owner's state number, then the
// index array named colName. Rows used by more than one state are marked.
func (c *Compressed) Format(w io.Writer, rowName, colName string) error {
	var b strings.Builder
	users := make([]int, len(c.Rows))
	for _, row := range c.Index {
		if row != NoRow {
			users[row]++
		}
	}
	for r, row := range c.Rows {
		fmt.Fprintf(&b, "%s%03d[] = { %2d, ", rowName, c.owner[r], len(row))
		for k, p := range row {
			if k > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%3d,%-4d", p.Symbol, p.Action)
		}
		b.WriteString(" }")
		if users[r] > 1 {
			fmt.Fprintf(&b, "  /* shared by %d states */", users[r])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n%s[%d] = {", colName, len(c.Index))
	for state := range c.Index {
		if state > 0 {
			b.WriteByte(',')
		}
		if state%8 == 0 {
			b.WriteString("\n\t")
		}
		if c.Index[state] == NoRow {
			b.WriteString("NULL  ")
		} else {
			fmt.Fprintf(&b, "%s%03d", rowName, c.owner[c.Index[state]])
		}
	}
	b.WriteString("\n}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
