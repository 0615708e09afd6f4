// Command postctl builds and queries the on-disk postings format: it
// ingests a libsvm or text corpus into a forward/inverted index pair,
// looks up a single primary key's decoded record, and runs a ranked
// query over a built index.
package main

import (
	"flag"
	"fmt"
	"os"

	"fts/internal/metrics"
)

// globalMetrics is created once per process; build and rank both record
// into it rather than each registering their own collectors, since
// Prometheus panics on a second registration of the same metric name.
var globalMetrics = metrics.New()

// usageFor returns a flag.FlagSet.Usage that prints help text followed
// by the flag set's own -flag descriptions.
func usageFor(fset *flag.FlagSet, help string) func() {
	return func() {
		fmt.Fprintln(os.Stderr, help)
		fset.PrintDefaults()
	}
}

var commands = map[string]func([]string) error{
	"build": runBuild,
	"query": runFind,
	"rank":  runRank,
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "postctl: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	if err := cmd(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "postctl %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: postctl <command> [arguments]

commands:
  build   ingest a corpus into a forward/inverted postings file pair
  query   decode one primary key's record out of a postings file
  rank    run a ranked query over a built index`)
}
