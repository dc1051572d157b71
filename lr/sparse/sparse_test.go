package sparse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dekarrin/rezi"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.sparse")
	defer teardown()
	//
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	M.Set(1, 5, 1)
	M.Set(2, 3, 4712)
	if v := M.Value(2, 3); v != 4712 {
		t.Errorf("expected M(2,3) = 4712, is %d", v)
	}
	if M.ValueCount() != 2 {
		t.Errorf("expected 2 values, have %d", M.ValueCount())
	}
	if v := M.Value(9, 9); v != M.NullValue() {
		t.Errorf("expected null value, is %d", v)
	}
}

func TestChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.sparse")
	defer teardown()
	//
	assert := assert.New(t)
	c := NewChain()
	c.Prepend(1, 10)
	c.Prepend(2, 20)
	c.Set(3, 30)
	c.Set(1, -1)
	assert.Equal([]Pair{{3, 30}, {2, 20}, {1, -1}}, c.Pairs(), "chain lists pairs in reverse insertion order")
	assert.True(c.Remove(2))
	assert.False(c.Remove(2))
	assert.Nil(c.Find(2))
	assert.Equal(2, c.Len())
	c.Find(3).Action = 31
	assert.Equal(int32(31), c.Find(3).Action)
}

func chains(rows ...[]Pair) []*Chain {
	cs := make([]*Chain, len(rows))
	for i, row := range rows {
		cs[i] = NewChain()
		for k := len(row) - 1; k >= 0; k-- {
			cs[i].Prepend(row[k].Symbol, row[k].Action)
		}
	}
	return cs
}

func TestCompressSharesRows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.sparse")
	defer teardown()
	//
	assert := assert.New(t)
	c := Compress(chains(
		[]Pair{{1, 2}, {2, 3}},
		nil,
		[]Pair{{1, -1}},
		[]Pair{{1, 2}, {2, 3}},
		[]Pair{{2, 3}, {1, 2}}, // same cells, different order: not shared
	))
	assert.Equal(3, len(c.Rows))
	assert.Equal(NoRow, c.Index[1])
	assert.Equal(c.Index[0], c.Index[3], "equal rows are shared")
	assert.Equal(0, c.Shared(3), "state 3 uses the row of state 0")
	assert.Equal(4, c.Shared(4))
	assert.Equal(NoRow, c.Shared(1))
	v, ok := c.Lookup(3, 2)
	assert.True(ok)
	assert.Equal(int32(3), v)
	_, ok = c.Lookup(1, 2)
	assert.False(ok)
	assert.Equal(5, c.Pairs())
	m := c.Expand(3)
	assert.Equal(int32(-1), m.Value(2, 1))
	assert.Equal(7, m.ValueCount())
}

func TestCompressedRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.sparse")
	defer teardown()
	//
	c := Compress(chains(
		[]Pair{{0, 0}, {4, -2}},
		[]Pair{{3, 7}},
		nil,
		[]Pair{{3, 7}},
	))
	data, err := c.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	d := &Compressed{}
	if err = d.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.Equal(c.Rows, d.Rows)
	assert.Equal(c.Index, d.Index)
	assert.Equal(c.Shared(3), d.Shared(3))
	if err = d.UnmarshalBinary(data[:len(data)-1]); err == nil {
		t.Errorf("expected truncated data to fail")
	}
}

func TestCompressedCorruptCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.sparse")
	defer teardown()
	//
	concat := func(parts ...[]byte) []byte {
		var data []byte
		for _, p := range parts {
			data = append(data, p...)
		}
		return data
	}
	corrupt := map[string][]byte{
		"negative row count":   rezi.EncInt(-1),
		"huge row count":       rezi.EncInt(1 << 40),
		"negative row length":  concat(rezi.EncInt(1), rezi.EncInt(0), rezi.EncInt(-5)),
		"huge row length":      concat(rezi.EncInt(1), rezi.EncInt(0), rezi.EncInt(1<<30)),
		"negative state count": concat(rezi.EncInt(0), rezi.EncInt(-3)),
	}
	for name, data := range corrupt {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			var err error
			assert.NotPanics(func() {
				err = (&Compressed{}).UnmarshalBinary(data)
			})
			assert.Error(err)
		})
	}
}

func TestFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrgen.sparse")
	defer teardown()
	//
	c := Compress(chains(
		[]Pair{{1, 2}},
		nil,
		[]Pair{{1, 2}},
	))
	var out bytes.Buffer
	if err := c.Format(&out, "Yya", "Yy_action"); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, frag := range []string{"Yya000[] = {  1,", "shared by 2 states", "Yy_action[3] = {", "NULL"} {
		if !strings.Contains(s, frag) {
			t.Errorf("expected output to contain %q:\n%s", frag, s)
		}
	}
	if strings.Contains(s, "Yya002[]") {
		t.Errorf("shared row must not be emitted twice:\n%s", s)
	}
}
