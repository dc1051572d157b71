package sparse

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// MarshalBinary encodes a compressed table with REZI.
func (c *Compressed) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncInt(len(c.Rows))...)
	for r, row := range c.Rows {
		data = append(data, rezi.EncInt(c.owner[r])...)
		data = append(data, rezi.EncInt(len(row))...)
		for _, p := range row {
			data = append(data, rezi.EncInt(p.Symbol)...)
			data = append(data, rezi.EncInt(int(p.Action))...)
		}
	}
	data = append(data, rezi.EncInt(len(c.Index))...)
	for _, row := range c.Index {
		data = append(data, rezi.EncInt(row)...)
	}
	return data, nil
}

// UnmarshalBinary decodes a compressed table encoded by MarshalBinary.
func (c *Compressed) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	nrows := d.count("row count")
	c.Rows = make([][]Pair, 0, nrows)
	c.owner = make([]int, 0, nrows)
	for r := 0; r < nrows && d.err == nil; r++ {
		c.owner = append(c.owner, d.int("row owner"))
		n := d.count("row length")
		row := make([]Pair, 0, n)
		for k := 0; k < n && d.err == nil; k++ {
			sym := d.int("symbol")
			act := d.int("action")
			row = append(row, Pair{Symbol: sym, Action: int32(act)})
		}
		c.Rows = append(c.Rows, row)
	}
	nstates := d.count("state count")
	c.Index = make([]int, 0, nstates)
	for s := 0; s < nstates && d.err == nil; s++ {
		row := d.int("row index")
		if row != NoRow && (row < 0 || row >= len(c.Rows)) {
			return fmt.Errorf("state %d refers to non-existent row %d", s, row)
		}
		c.Index = append(c.Index, row)
	}
	return d.err
}

// decoder reads a sequence of REZI values, remembering the first error.
type decoder struct {
	data []byte
	err  error
}

func (d *decoder) int(what string) int {
	if d.err != nil {
		return 0
	}
	v, n, err := rezi.DecInt(d.data)
	if err != nil {
		d.err = fmt.Errorf("decoding %s: %w", what, err)
		return 0
	}
	d.data = d.data[n:]
	return v
}

// count reads a length prefix. Every counted element occupies at least one
// byte, so a count beyond the remaining input is corrupt.
func (d *decoder) count(what string) int {
	n := d.int(what)
	if d.err == nil && (n < 0 || n > len(d.data)) {
		d.err = fmt.Errorf("decoding %s: invalid count %d", what, n)
		return 0
	}
	return n
}
