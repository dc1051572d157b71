package lr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"
)

// Document writes a human readable description of all states: their items,
// then their actions and gotos. An overview table concludes the document.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) Document(w io.Writer) error {
	if lrgen.dfa == nil {
		return fmt.Errorf("no automaton for grammar %s; call CreateTables() first", lrgen.g.Name)
	}
	var b strings.Builder
	for _, state := range lrgen.dfa.States() {
		lrgen.documentState(&b, state)
	}
	b.WriteString(lrgen.Overview())
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return WriteStats(w, lrgen.Stats())
}

func (lrgen *TableGenerator) documentState(b *strings.Builder, state *CFSMState) {
	fmt.Fprintf(b, "State %d:\n", state.ID)
	for _, item := range state.kernel {
		fmt.Fprintf(b, "    %s\n", item.itemString(lrgen.g, item.PeekSymbol() == nil))
	}
	for _, item := range state.epsilon {
		fmt.Fprintf(b, "    %s\n", item.itemString(lrgen.g, true))
	}
	b.WriteByte('\n')
	for _, p := range lrgen.actions[state.ID].Pairs() {
		t := lrgen.g.Symbol(p.Symbol)
		switch {
		case p.Action == 0:
			if t.IsEOI() {
				b.WriteString("\t\taccept on end of input\n")
			} else {
				fmt.Fprintf(b, "\t\taccept on %s\n", t)
			}
		case p.Action > 0:
			fmt.Fprintf(b, "\t\tshift to %d on %s\n", p.Action, t)
		default:
			fmt.Fprintf(b, "\t\treduce by %d on %s\n", -p.Action, t)
		}
	}
	for _, p := range lrgen.gotos[state.ID].Pairs() {
		A := lrgen.g.Symbol(p.Symbol + MinNonTerm)
		fmt.Fprintf(b, "\t\tgoto %d on %s\n", p.Action, A)
	}
	for _, c := range lrgen.conflicts {
		if c.State == state.ID {
			fmt.Fprintf(b, "\t\t%s\n", c)
		}
	}
	b.WriteByte('\n')
}

// Overview returns a table with one line per state, listing the number of
// kernel and epsilon items, shifts, reductions and gotos.
func (lrgen *TableGenerator) Overview() string {
	data := [][]string{{"state", "kernel", "epsilon", "shifts", "reduces", "gotos", "row"}}
	for _, state := range lrgen.dfa.States() {
		shifts, reduces := 0, 0
		for _, p := range lrgen.actions[state.ID].Pairs() {
			if p.Action > 0 {
				shifts++
			} else {
				reduces++
			}
		}
		row := "-"
		if lrgen.tables != nil {
			if owner := lrgen.tables.Action.Shared(state.ID); owner >= 0 {
				row = strconv.Itoa(owner)
			}
		}
		data = append(data, []string{
			strconv.Itoa(state.ID),
			strconv.Itoa(len(state.kernel)),
			strconv.Itoa(len(state.epsilon)),
			strconv.Itoa(shifts),
			strconv.Itoa(reduces),
			strconv.Itoa(lrgen.gotos[state.ID].Len()),
			row,
		})
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// WriteSymbols writes the symbol table of a grammar: non-terminals with their
// productions (and FIRST sets, if requested), then a table of terminals.
func WriteSymbols(w io.Writer, g *Grammar, withFirst bool) error {
	var b strings.Builder
	b.WriteString("---------------- Symbol table ------------------\n\nNONTERMINAL SYMBOLS:\n\n")
	for _, A := range g.nonterminals {
		fmt.Fprintf(&b, "%s (%d)", A.Name, A.Value)
		if A == g.Goal {
			b.WriteString(" (goal symbol)")
		}
		if A.Field != "" {
			fmt.Fprintf(&b, " <%s>", A.Field)
		}
		b.WriteByte('\n')
		if withFirst {
			fmt.Fprintf(&b, "   FIRST : %s\n", firstString(g, A.First))
		}
		for _, p := range A.Productions {
			fmt.Fprintf(&b, "   %3d: %s", p.Serial, p)
			if p.Prec > 0 {
				fmt.Fprintf(&b, " ..... PREC %d", p.Prec)
			}
			if p.Action != "" {
				fmt.Fprintf(&b, " {%s}", p.Action)
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString("TERMINAL SYMBOLS:\n\n")
	data := [][]string{{"name", "value", "token", "prec", "assoc", "field"}}
	for _, t := range g.terminals {
		prec := g.Precedence(t.Value)
		data = append(data, []string{
			t.Name,
			strconv.Itoa(t.Value),
			strconv.Itoa(int(t.token)),
			strconv.Itoa(prec.Level),
			prec.Assoc.String(),
			t.Field,
		})
	}
	b.WriteString(rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String())
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
