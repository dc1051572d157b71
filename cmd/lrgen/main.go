package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/lrgen/lr"
	"github.com/npillmayer/lrgen/lr/grammarfile"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

var (
	flagVerbose     = pflag.CountP("verbose", "v", "Document the states of the automaton (see -d).")
	flagTrace       = pflag.BoolP("trace", "V", false, "Trace table construction at debug level.")
	flagNoWarnings  = pflag.BoolP("no-warnings", "w", false, "Suppress warnings.")
	flagWarnErrors  = pflag.BoolP("warnings-are-errors", "W", false, "Count warnings in the exit status.")
	flagOutput      = pflag.StringP("output", "o", "", "Write binary tables to the given file.")
	flagText        = pflag.StringP("text", "t", "", "Write tables in text form to the given file.")
	flagDoc         = pflag.StringP("doc", "d", "", "Documentation file for -v (default <grammar>.output).")
	flagSymbols     = pflag.CountP("symbols", "s", "Print the symbol table; -ss adds FIRST sets.")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Parse input lines interactively.")
	flagDot         = pflag.String("dot", "", "Write the automaton in GraphViz format to the given file.")
	flagHTML        = pflag.String("html", "", "Write ACTION and GOTO tables in HTML format to the given file.")
	flagMaxStates   = pflag.Int("max-states", 0, "Maximum number of states (0 = no limit).")
	flagAccept      = pflag.StringSlice("accept", nil, "Terminals accepting the goal symbol (default end of input).")
)

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	pflag.Parse()
	level := tracing.LevelError
	if *flagTrace {
		level = tracing.LevelDebug
	}
	for _, key := range []string{"lrgen.lr", "lrgen.sparse", "lrgen.scanner", "lrgen.cli"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: lrgen [flags] grammar-file\nDo -h for help.\n")
		os.Exit(1)
	}
	os.Exit(run(args[0]))
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// run builds the tables for a grammar file and returns the exit status.
func run(path string) int {
	g, err := grammarfile.Load(path)
	if g == nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	if err != nil {
		report(g.Diagnostics())
		return exitStatus(g.Diagnostics())
	}
	tracer().Infof("grammar %s loaded from %s", g.Name, path)
	if *flagSymbols > 0 {
		if err = lr.WriteSymbols(os.Stdout, g, *flagSymbols > 1); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	out := &outputs{}
	opts := []lr.Option{
		lr.Verbosity(*flagVerbose),
		lr.SuppressWarnings(*flagNoWarnings),
		lr.WithLimits(lr.Limits{MaxStates: *flagMaxStates}),
	}
	if len(*flagAccept) > 0 {
		opts = append(opts, lr.AcceptOn(*flagAccept...))
	}
	if *flagVerbose > 0 {
		docname := *flagDoc
		if docname == "" {
			docname = strings.TrimSuffix(path, filepath.Ext(path)) + ".output"
		}
		doc, err := out.create(docname)
		if err != nil {
			pterm.Error.Println(err.Error())
			return 1
		}
		opts = append(opts, lr.DocumentTo(doc))
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g), opts...)
	if err = lrgen.CreateTables(); err != nil {
		pterm.Error.Println(err.Error())
		report(lrgen.Diagnostics())
		out.removeAll()
		return exitStatus(lrgen.Diagnostics()) + 1
	}
	if err = writeOutputs(out, lrgen); err != nil {
		pterm.Error.Println(err.Error())
		out.removeAll()
		return exitStatus(lrgen.Diagnostics()) + 1
	}
	if err = out.closeAll(); err != nil {
		pterm.Error.Println(err.Error())
		return exitStatus(lrgen.Diagnostics()) + 1
	}
	report(lrgen.Diagnostics())
	if *flagVerbose > 0 {
		printStats(lrgen.Stats())
	}
	if *flagInteractive {
		if err = interactive(g, lrgen.Tables()); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	return exitStatus(lrgen.Diagnostics())
}

func writeOutputs(out *outputs, lrgen *lr.TableGenerator) error {
	tables := lrgen.Tables()
	if *flagOutput != "" {
		err := out.write(*flagOutput, func(w io.Writer) error {
			data, err := tables.MarshalBinary()
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		})
		if err != nil {
			return err
		}
	}
	if *flagText != "" {
		if err := out.write(*flagText, tables.Format); err != nil {
			return err
		}
	}
	if *flagDot != "" {
		if err := out.write(*flagDot, lrgen.CFSM().CFSM2GraphViz); err != nil {
			return err
		}
	}
	if *flagHTML != "" {
		err := out.write(*flagHTML, func(w io.Writer) error {
			if err := lr.ActionTableAsHTML(lrgen, w); err != nil {
				return err
			}
			return lr.GotoTableAsHTML(lrgen, w)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func report(diag *lr.Diagnostics) {
	for _, d := range diag.All() {
		if d.Severity == lr.Warning {
			pterm.Warning.Println(d.String())
		} else {
			pterm.Error.Println(d.String())
		}
	}
}

func exitStatus(diag *lr.Diagnostics) int {
	status := diag.Errors()
	if *flagWarnErrors {
		status += diag.Warnings()
	}
	return status
}

func printStats(s lr.Stats) {
	row := func(label string, n int) []string {
		return []string{label, strconv.Itoa(n)}
	}
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"statistics", ""},
		row("terminals", s.Terminals),
		row("nonterminals", s.NonTerminals),
		row("productions", s.Productions),
		row("LALR(1) states", s.States),
		row("LR states", s.LRStates),
		row("items", s.Items),
		row("nonerror transitions", s.Transitions),
		row("table entries", s.Pairs),
		row("bytes for compressed tables", s.Bytes),
		row("unfinished states (maximum)", s.MaxUnfinished),
		row("shift/reduce conflicts", s.ShiftReduce),
		row("reduce/reduce conflicts", s.ReduceReduce),
	}).Render()
}
