// xlate-replay replays a previously captured block execution from
// tracestore against the interpreter, for comparing a recorded
// divergence between the interpreter and a JIT without re-running the
// guest.
package main

import (
	"flag"
	"fmt"
	"os"

	"xlate/pkg/interp"
	"xlate/pkg/ir"
	"xlate/pkg/tracestore"
	"xlate/pkg/xerr"
	"xlate/pkg/xlog"
)

func main() {
	dbPath := flag.String("trace-db", "./xlate-traces", "Path to the tracestore PebbleDB directory")
	blockFile := flag.String("block", "", "Path to the raw IR block bytes to replay")
	entryRIP := flag.Uint64("entry-rip", 0, "Guest entry RIP the block was captured at")
	logPath := flag.String("log", "", "Optional log file path; empty disables logging")
	sentryDSN := flag.String("sentry-dsn", "", "Optional Sentry DSN for fatal-error reporting; empty disables it")
	flag.Parse()

	if *blockFile == "" {
		fmt.Fprintln(os.Stderr, "xlate-replay: -block is required")
		os.Exit(1)
	}

	if err := xerr.InitSentry(*sentryDSN); err != nil {
		fmt.Fprintf(os.Stderr, "xlate-replay: %v\n", err)
		os.Exit(1)
	}

	log, err := openLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xlate-replay: %v\n", err)
		os.Exit(1)
	}

	store, err := tracestore.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xlate-replay: opening trace store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	blockBytes, err := os.ReadFile(*blockFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xlate-replay: reading block file: %v\n", err)
		os.Exit(1)
	}

	rec, ok, err := store.Get(blockBytes, *entryRIP)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xlate-replay: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "xlate-replay: no capture for this block/entry pair\n")
		os.Exit(1)
	}

	block, err := ir.DecodeBlock(rec.BlockBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xlate-replay: decoding captured block: %v\n", err)
		os.Exit(1)
	}

	in := interp.New(log)
	resultStore, err := in.Run(block, rec.EntryRIP)
	if xerr.IsIRConsistency(err) {
		xerr.Fatal(log, err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "xlate-replay: replay failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("replayed %d nodes at entry %#x\n", len(block.Headers), rec.EntryRIP)
	_ = resultStore
}

func openLog(path string) (*xlog.Logger, error) {
	if path == "" {
		return nil, nil
	}
	return xlog.NewFile(path)
}
