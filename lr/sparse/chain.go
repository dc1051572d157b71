package sparse

import (
	"fmt"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
)

// Pair is a single cell of a parser table row.
type Pair struct {
	Symbol int   // column
	Action int32 // cell content
}

func (p Pair) String() string {
	return fmt.Sprintf("%d:%d", p.Symbol, p.Action)
}

// Chain is the association list for a single table row. New pairs are
// prepended, thus a chain lists its pairs in reverse order of insertion.
type Chain struct {
	list *singlylinkedlist.List
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{list: singlylinkedlist.New()}
}

// Find returns the pair for a symbol, or nil. The pair may be modified in place.
func (c *Chain) Find(sym int) *Pair {
	it := c.list.Iterator()
	for it.Next() {
		if p := it.Value().(*Pair); p.Symbol == sym {
			return p
		}
	}
	return nil
}

// Prepend inserts a new pair at the front of the chain. It does not check for
// an existing pair for sym.
func (c *Chain) Prepend(sym int, action int32) *Pair {
	p := &Pair{Symbol: sym, Action: action}
	c.list.Prepend(p)
	return p
}

// Set overwrites the action for sym, or prepends a new pair.
func (c *Chain) Set(sym int, action int32) {
	if p := c.Find(sym); p != nil {
		p.Action = action
		return
	}
	c.Prepend(sym, action)
}

// Remove deletes the pair for sym. Returns false if there is none.
func (c *Chain) Remove(sym int) bool {
	it := c.list.Iterator()
	for it.Next() {
		if it.Value().(*Pair).Symbol == sym {
			c.list.Remove(it.Index())
			return true
		}
	}
	return false
}

// Len returns the number of pairs in a chain.
func (c *Chain) Len() int {
	return c.list.Size()
}

// Pairs returns a copy of the pairs of a chain, in chain order.
func (c *Chain) Pairs() []Pair {
	pairs := make([]Pair, 0, c.list.Size())
	it := c.list.Iterator()
	for it.Next() {
		pairs = append(pairs, *it.Value().(*Pair))
	}
	return pairs
}
