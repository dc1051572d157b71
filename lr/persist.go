package lr

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/npillmayer/lrgen/lr/sparse"
)

// MarshalBinary encodes the tables with REZI.
func (t *Tables) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncBinary(t.Action)...)
	data = append(data, rezi.EncBinary(t.Goto)...)
	data = append(data, rezi.EncInt(len(t.LHS))...)
	for i := range t.LHS {
		data = append(data, rezi.EncInt(t.LHS[i])...)
		data = append(data, rezi.EncInt(t.RHSLen[i])...)
	}
	return data, nil
}

// UnmarshalBinary decodes tables encoded by MarshalBinary.
func (t *Tables) UnmarshalBinary(data []byte) error {
	t.Action, t.Goto = &sparse.Compressed{}, &sparse.Compressed{}
	n, err := rezi.DecBinary(data, t.Action)
	if err != nil {
		return fmt.Errorf("ACTION table: %w", err)
	}
	data = data[n:]
	if n, err = rezi.DecBinary(data, t.Goto); err != nil {
		return fmt.Errorf("GOTO table: %w", err)
	}
	data = data[n:]
	cnt, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("production count: %w", err)
	}
	data = data[n:]
	if cnt < 0 || cnt > len(data) {
		return fmt.Errorf("production count: invalid count %d", cnt)
	}
	t.LHS, t.RHSLen = make([]int, cnt), make([]int, cnt)
	for i := 0; i < cnt; i++ {
		if t.LHS[i], n, err = rezi.DecInt(data); err != nil {
			return fmt.Errorf("LHS of production %d: %w", i, err)
		}
		data = data[n:]
		if t.RHSLen[i], n, err = rezi.DecInt(data); err != nil {
			return fmt.Errorf("RHS length of production %d: %w", i, err)
		}
		data = data[n:]
	}
	return nil
}
