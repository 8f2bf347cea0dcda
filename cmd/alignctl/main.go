// Command alignctl is a minimal demonstration CLI for the bpalign library.
// It takes exactly one query/target pair, runs AlignBatch on it, and prints
// the distance and decoded path as a table. It is not the orchestrator
// (spec §1's out-of-scope collaborator); it exists only to exercise
// AlignBatch end-to-end for a human at the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/o8191/GenomeWorks"
	"github.com/o8191/GenomeWorks/internal/backtrace"
	"github.com/o8191/GenomeWorks/internal/config"
	"github.com/o8191/GenomeWorks/internal/logx"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "alignctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("alignctl", flag.ContinueOnError)
	query := fs.String("query", "", "query sequence over {A,C,G,T}")
	target := fs.String("target", "", "target sequence over {A,C,G,T}")
	configPath := fs.String("config", "", "optional kernel YAML config path")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *query == "" && *target == "" {
		return fmt.Errorf("at least one of -query/-target must be non-empty")
	}

	cfg := config.DefaultKernel()
	if *configPath != "" {
		loaded, err := config.LoadKernel(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logx.NewTextLogger(level)

	results, err := bpalign.AlignBatch(context.Background(), []bpalign.AlignmentRequest{
		{Query: []byte(*query), Target: []byte(*target)},
	}, bpalign.Options{Kernel: cfg, MaxPathLength: cfg.MaxPathLengthDefault, Logger: logger})
	if err != nil {
		return err
	}

	printResult(*query, *target, results[0].Distance, results[0].Path)
	return nil
}

func printResult(query, target string, distance int32, path []backtrace.Op) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"query", "target", "distance", "path"})
	tbl.AppendRow(table.Row{query, target, distance, renderPath(path)})
	tbl.Render()
}

func renderPath(path []backtrace.Op) string {
	names := make([]string, len(path))
	for i, op := range path {
		names[i] = opName(op)
	}
	return strings.Join(names, " ")
}

func opName(op backtrace.Op) string {
	switch op {
	case backtrace.OpMatch:
		return "match"
	case backtrace.OpMismatch:
		return "mismatch"
	case backtrace.OpInsertInQuery:
		return "ins-query"
	case backtrace.OpInsertInTarget:
		return "ins-target"
	default:
		return fmt.Sprintf("op(%d)", op)
	}
}

