package lr

import "github.com/npillmayer/lrgen/lr/iteratable"

// LRAnalysis is an object for grammar analysis: it holds a grammar with
// computed FIRST sets.
type LRAnalysis struct {
	g *Grammar
}

// Analysis computes the FIRST sets of all non-terminals of a grammar and
// returns an analysis object for it.
func Analysis(g *Grammar) *LRAnalysis {
	ComputeFirstSets(g)
	return &LRAnalysis{g: g}
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(sym). For terminals this is {sym}.
func (ga *LRAnalysis) First(sym *Symbol) *iteratable.Set {
	if sym.IsTerminal() {
		return iteratable.NewSet(sym.Value)
	}
	return sym.First
}

// ComputeFirstSets iterates over all non-terminals until no FIRST set changes
// any more. FIRST(A) contains Epsilon iff A derives the empty string.
func ComputeFirstSets(g *Grammar) {
	for _, A := range g.nonterminals {
		A.First.Clear()
	}
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, A := range g.nonterminals {
			for _, p := range A.Productions {
				if firstClosure(A.First, p.rhs) {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("FIRST sets computed in %d passes", passes)
	for _, A := range g.nonterminals {
		tracer().Debugf("FIRST(%s) = %s", A.Name, firstString(g, A.First))
	}
}

// firstClosure adds FIRST(rhs) to dest and reports whether dest changed.
func firstClosure(dest *iteratable.Set, rhs []*Symbol) bool {
	tmp := iteratable.NewSet()
	if FirstOfRHS(tmp, rhs) {
		tmp.Add(iteratable.Epsilon)
	}
	return dest.Union(tmp)
}

// FirstOfRHS adds the terminals of FIRST(rhs) to dest, excluding Epsilon, and
// returns true if rhs is nullable. The empty string is nullable.
// Action symbols are skipped as if absent.
func FirstOfRHS(dest *iteratable.Set, rhs []*Symbol) bool {
	for _, sym := range rhs {
		switch {
		case sym.IsAction():
			continue
		case sym.IsTerminal():
			dest.Add(sym.Value)
			return false
		default:
			it := sym.First.Iterator()
			for it.Next() {
				if it.Value() != iteratable.Epsilon {
					dest.Add(it.Value())
				}
			}
			if !sym.First.Contains(iteratable.Epsilon) {
				return false
			}
		}
	}
	return true
}

// Nullable is true for non-terminals deriving the empty string.
func Nullable(sym *Symbol) bool {
	return sym.IsNonTerminal() && sym.First.Contains(iteratable.Epsilon)
}

func firstString(g *Grammar, s *iteratable.Set) string {
	out := "{"
	for i, v := range s.Values() {
		if i > 0 {
			out += " "
		}
		if v == iteratable.Epsilon {
			out += "ε"
		} else if t := g.Symbol(v); t != nil {
			out += t.Name
		}
	}
	return out + "}"
}
