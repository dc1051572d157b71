package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/lrgen/lr/iteratable"
)

// Item is an LR(1) item: a production with a dot position and a set of
// lookahead terminals.
type Item struct {
	prod *Production
	dot  int
	LA   *iteratable.Set // lookaheads
}

// Production returns the item's production.
func (i *Item) Production() *Production {
	return i.prod
}

// Dot returns the dot position, 0 ≤ dot ≤ len(RHS).
func (i *Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol right of the dot, or nil if the item is
// ready to reduce.
func (i *Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.prod.rhs) {
		return nil
	}
	return i.prod.rhs[i.dot]
}

// rightOfDot returns the value of the symbol right of the dot, or -1.
func (i *Item) rightOfDot() int {
	if sym := i.PeekSymbol(); sym != nil {
		return sym.Value
	}
	return -1
}

// Core is the LR(0) part of an item.
type Core struct {
	Prod int
	Dot  int
}

// Core returns the LR(0) part of an item.
func (i *Item) Core() Core {
	return Core{Prod: i.prod.Serial, Dot: i.dot}
}

func (i *Item) String() string {
	var b strings.Builder
	b.WriteString(i.prod.LHS.Name)
	b.WriteString(" ➞")
	for k, sym := range i.prod.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(sym.Name)
	}
	if i.dot == len(i.prod.rhs) {
		b.WriteString(" •")
	}
	return b.String()
}

// itemString prints an item like a state dump does, with lookaheads.
func (i *Item) itemString(g *Grammar, withLA bool) string {
	var b strings.Builder
	b.WriteString(i.prod.LHS.Name)
	b.WriteString("->")
	for k, sym := range i.prod.rhs {
		if k == i.dot {
			b.WriteString(" .")
		}
		b.WriteByte(' ')
		b.WriteString(sym.Name)
	}
	if i.dot == len(i.prod.rhs) {
		b.WriteString(" .")
	}
	fmt.Fprintf(&b, " (production %d, precedence %d)", i.prod.Serial, i.prod.Prec)
	if withLA {
		b.WriteString("\n\t\t[ ")
		for _, v := range i.LA.Values() {
			if t := g.Symbol(v); t != nil {
				b.WriteString(t.Name)
				b.WriteByte(' ')
			}
		}
		b.WriteByte(']')
	}
	return b.String()
}

// sortItems orders items by the value of the symbol right of the dot (items
// ready to reduce first), then by production number and dot position.
func sortItems(items []*Item) {
	sort.SliceStable(items, func(a, b int) bool {
		x, y := items[a], items[b]
		if rx, ry := x.rightOfDot(), y.rightOfDot(); rx != ry {
			return rx < ry
		}
		if x.prod.Serial != y.prod.Serial {
			return x.prod.Serial < y.prod.Serial
		}
		return x.dot < y.dot
	})
}

// sortCore orders items by production number and dot position.
func sortCore(items []*Item) {
	sort.SliceStable(items, func(a, b int) bool {
		x, y := items[a], items[b]
		if x.prod.Serial != y.prod.Serial {
			return x.prod.Serial < y.prod.Serial
		}
		return x.dot < y.dot
	})
}

// --- Item pool -------------------------------------------------------------

// itemPool recycles items. Recycled items keep their lookahead set, which
// will be cleared on reuse.
type itemPool struct {
	free  []*Item
	live  int
	total int
}

func (pool *itemPool) get(prod *Production, dot int) *Item {
	pool.live++
	if n := len(pool.free); n > 0 {
		item := pool.free[n-1]
		pool.free = pool.free[:n-1]
		item.prod, item.dot = prod, dot
		item.LA.Clear()
		return item
	}
	pool.total++
	return &Item{prod: prod, dot: dot, LA: iteratable.NewSet()}
}

func (pool *itemPool) put(item *Item) {
	pool.live--
	item.prod = nil
	pool.free = append(pool.free, item)
}
