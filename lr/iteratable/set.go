package iteratable

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Epsilon is the pseudo-member denoting the empty string.
const Epsilon = -1

// Set is a set of symbol values. Bit 0 is reserved for Epsilon,
// value v lives at bit v+1.
type Set struct {
	bits *bitset.BitSet
}

func bit(v int) uint {
	if v < Epsilon {
		panic("iteratable: negative set member " + strconv.Itoa(v))
	}
	return uint(v + 1)
}

// NewSet creates a set with an optional list of initial members.
func NewSet(values ...int) *Set {
	s := &Set{bits: bitset.New(64)}
	for _, v := range values {
		s.bits.Set(bit(v))
	}
	return s
}

// Copy returns an independent copy of s.
func (s *Set) Copy() *Set {
	return &Set{bits: s.bits.Clone()}
}

// Clear removes all members from s.
func (s *Set) Clear() *Set {
	s.bits.ClearAll()
	return s
}

// Add inserts v into s.
func (s *Set) Add(v int) *Set {
	s.bits.Set(bit(v))
	return s
}

// Remove deletes v from s. Removing a non-member is a no-op.
func (s *Set) Remove(v int) *Set {
	s.bits.Clear(bit(v))
	return s
}

// Contains is a membership test.
func (s *Set) Contains(v int) bool {
	return s.bits.Test(bit(v))
}

// Union adds all members of other to s.
// It returns true if s has changed.
func (s *Set) Union(other *Set) bool {
	if other == nil || other.IsSubset(s) {
		return false
	}
	s.bits.InPlaceUnion(other.bits)
	return true
}

// IsSubset is true if every member of s is a member of of.
func (s *Set) IsSubset(of *Set) bool {
	return of.bits.IsSuperSet(s.bits)
}

// Equals compares the members of two sets. The sets' capacities do not matter.
func (s *Set) Equals(other *Set) bool {
	return s.bits.Count() == other.bits.Count() && other.bits.IsSuperSet(s.bits)
}

// Empty is true for a set without members, Epsilon included.
func (s *Set) Empty() bool {
	return s.bits.None()
}

// Size returns the number of members, counting Epsilon.
func (s *Set) Size() int {
	return int(s.bits.Count())
}

// Values returns the members of s in ascending order, Epsilon first.
func (s *Set) Values() []int {
	values := make([]int, 0, s.Size())
	it := s.Iterator()
	for it.Next() {
		values = append(values, it.Value())
	}
	return values
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	it := s.Iterator()
	first := true
	for it.Next() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		if it.Value() == Epsilon {
			b.WriteString("ε")
		} else {
			b.WriteString(strconv.Itoa(it.Value()))
		}
	}
	b.WriteByte('}')
	return b.String()
}

// --- Iterator --------------------------------------------------------------

// Iterator is a cursor over the members of a Set, in ascending order.
// Adding members at or below the cursor position during an iteration will not
// make them show up in this iteration.
type Iterator struct {
	set  *Set
	next uint
	cur  int
}

// Iterator creates a new cursor, positioned before the first member.
func (s *Set) Iterator() *Iterator {
	return &Iterator{set: s}
}

// Next advances the cursor and reports whether there is a current member.
func (it *Iterator) Next() bool {
	i, ok := it.set.bits.NextSet(it.next)
	if !ok {
		return false
	}
	it.cur = int(i) - 1
	it.next = i + 1
	return true
}

// Value returns the member at the cursor position.
func (it *Iterator) Value() int {
	return it.cur
}
