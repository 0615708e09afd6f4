package main

import (
	"flag"
	"fmt"

	"fts/internal/postings"
)

const findHelp = `postctl query - decode one primary key's record out of a postings file

Example:
  postctl query -file /srv/idx/shard0_forward -key 42
`

func runFind(args []string) error {
	fset := flag.NewFlagSet("query", flag.ExitOnError)
	fset.Usage = usageFor(fset, findHelp)
	var (
		file   string
		key    uint64
		double bool
	)
	fset.StringVar(&file, "file", "", "stem of the postings file to open")
	fset.Uint64Var(&key, "key", 0, "primary key to decode")
	fset.BoolVar(&double, "double", true, "weights are raw doubles (false = varint counts)")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if file == "" {
		fset.Usage()
		return fmt.Errorf("-file is required")
	}

	kind := postings.WeightDouble
	if !double {
		kind = postings.WeightUint
	}

	f, err := postings.Open(file, kind)
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := f.Find(key)
	if err != nil {
		return err
	}
	fmt.Printf("primary_key=%d num_keys=%d pairs=%d\n", key, f.NumKeys(), len(rec.Counts()))
	for _, p := range rec.Counts() {
		fmt.Printf("  %d -> %g\n", p.SecKey, p.Weight)
	}
	return nil
}
