package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrgen"
	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/lalr"
	"github.com/npillmayer/lrgen/lr/scanner/lexmach"
	"github.com/pterm/pterm"
)

// interactive reads input lines and parses them with the tables, printing
// a parse tree for accepted input.
func interactive(g *lr.Grammar, tables *lr.Tables) error {
	LM, err := lexmach.ForGrammar(g)
	if err != nil {
		return err
	}
	repl, err := readline.New("lrgen> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Parsing with grammar " + g.Name + ", quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		tryParse(LM, g, tables, strings.TrimSpace(line))
	}
	println("Good bye!")
	return nil
}

func tryParse(LM *lexmach.LMAdapter, g *lr.Grammar, tables *lr.Tables, input string) {
	sc, err := LM.Scanner(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	sc.SetErrorHandler(func(e error) {
		pterm.Error.Println(e.Error())
	})
	tree := &treeBuilder{}
	p := lalr.NewParser(g, tables)
	p.Reducer = tree.reduce
	accepted, err := p.Parse(sc)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if accepted {
		pterm.Success.Println("accepted")
		if root, ok := tree.root(); ok {
			pterm.DefaultTree.WithRoot(root).Render()
		}
	}
}

// treeBuilder creates a parse tree from reductions. Terminals are
// represented by their names.
type treeBuilder struct {
	stack []pterm.TreeNode
}

func (tb *treeBuilder) reduce(prod *lr.Production, span lrgen.Span) {
	rhs := prod.RHS()
	children := make([]pterm.TreeNode, len(rhs))
	for i := len(rhs) - 1; i >= 0; i-- {
		if rhs[i].IsTerminal() || len(tb.stack) == 0 {
			children[i] = pterm.TreeNode{Text: rhs[i].Name}
			continue
		}
		children[i] = tb.stack[len(tb.stack)-1]
		tb.stack = tb.stack[:len(tb.stack)-1]
	}
	tracer().Debugf("reduce %v at %v", prod, span)
	tb.stack = append(tb.stack, pterm.TreeNode{Text: prod.LHS.Name, Children: children})
}

func (tb *treeBuilder) root() (pterm.TreeNode, bool) {
	if len(tb.stack) != 1 {
		return pterm.TreeNode{}, false
	}
	return pterm.TreeNode{Children: tb.stack}, true
}
