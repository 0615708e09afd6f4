package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fts/internal/build"
	"fts/internal/config"
	"fts/internal/postings"
	"fts/internal/ranker"
)

const rankHelp = `postctl rank - run a ranked query over a built index

The query is a space-separated list of 0-based term ids (the rank
command does not tokenize free text; pair it with the same vocabulary
a text build used to resolve terms to ids beforehand).

Example:
  postctl rank -prefix /srv/idx/shard0 -query "3 17 42" -k 10
  postctl rank -config rank.yaml -query "3 17" -k 10
`

func runRank(args []string) error {
	fset := flag.NewFlagSet("rank", flag.ExitOnError)
	fset.Usage = usageFor(fset, rankHelp)
	var (
		configPath string
		prefix     string
		query      string
		method     string
		k          int
		k1, b, k3  float64
		mu         float64
		lambda     float64
		delta      float64
		s          float64
		cacheSize  int64
	)
	fset.StringVar(&configPath, "config", "", "YAML config providing prefix/ranker.method/ranker params")
	fset.StringVar(&prefix, "prefix", "", "stem prefix; reads <prefix>_forward and <prefix>_inverted")
	fset.StringVar(&query, "query", "", "space-separated 0-based term ids")
	fset.StringVar(&method, "method", "okapi_bm25", "ranker.method: okapi_bm25, pivoted_length, dirichlet_prior, jelinek_mercer, absolute_discount")
	fset.IntVar(&k, "k", 10, "number of results to return")
	fset.Float64Var(&k1, "k1", 1.2, "OkapiBM25 k1")
	fset.Float64Var(&b, "b", 0.75, "OkapiBM25 b")
	fset.Float64Var(&k3, "k3", 0, "OkapiBM25 k3 (0 disables query-term saturation)")
	fset.Float64Var(&mu, "mu", 2000, "DirichletPrior mu")
	fset.Float64Var(&lambda, "lambda", 0.1, "JelinekMercer lambda")
	fset.Float64Var(&delta, "delta", 0.7, "AbsoluteDiscount delta")
	fset.Float64Var(&s, "s", 0.2, "PivotedLength s")
	fset.Int64Var(&cacheSize, "cache-size", 4096, "decoded-record cache capacity, per index")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		prefix = cfg.StringOr("prefix", prefix)
		method = cfg.StringOr("ranker.method", method)
		k1 = cfg.Float64Or("ranker.params.k1", k1)
		b = cfg.Float64Or("ranker.params.b", b)
		k3 = cfg.Float64Or("ranker.params.k3", k3)
		mu = cfg.Float64Or("ranker.params.mu", mu)
		lambda = cfg.Float64Or("ranker.params.lambda", lambda)
		delta = cfg.Float64Or("ranker.params.delta", delta)
		s = cfg.Float64Or("ranker.params.s", s)
	}
	if prefix == "" || query == "" {
		fset.Usage()
		return fmt.Errorf("-prefix and -query (or -config) are required")
	}

	terms, err := parseQueryTerms(query)
	if err != nil {
		return err
	}

	forwardFile, err := postings.Open(prefix+"_forward", postings.WeightDouble)
	if err != nil {
		return err
	}
	forward := postings.NewCachedFile(forwardFile, cacheSize).WithMetrics(globalMetrics)
	defer forward.Close()

	invertedFile, err := postings.Open(prefix+"_inverted", postings.WeightDouble)
	if err != nil {
		return err
	}
	inverted := postings.NewCachedFile(invertedFile, cacheSize).WithMetrics(globalMetrics)
	defer inverted.Close()

	stats, err := build.CorpusStatsFrom(forward)
	if err != nil {
		return err
	}

	queryTerms := make([]ranker.QueryTerm, 0, len(terms))
	for _, termID := range terms {
		docFreq, corpusFreq, err := build.TermStats(inverted, termID)
		if err != nil {
			return err
		}
		queryTerms = append(queryTerms, ranker.QueryTerm{
			Term:       termID,
			Weight:     1,
			DocFreq:    docFreq,
			CorpusFreq: corpusFreq,
		})
	}

	r, err := rankerFor(method, k1, b, k3, mu, lambda, delta, s)
	if err != nil {
		return err
	}

	queryStart := time.Now()
	hits, err := ranker.Score(context.Background(), inverted, stats, queryTerms, r, k)
	if err != nil {
		return err
	}
	globalMetrics.QueriesTotal.WithLabelValues(method).Inc()
	globalMetrics.QueryLatency.WithLabelValues(method).Observe(time.Since(queryStart).Seconds())
	globalMetrics.ResultsReturned.Observe(float64(len(hits)))

	for _, h := range hits {
		fmt.Printf("%d\t%g\n", h.Doc, h.Score)
	}
	return nil
}

func parseQueryTerms(query string) ([]uint64, error) {
	fields := strings.Fields(query)
	terms := make([]uint64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid term id %q: %w", f, err)
		}
		terms = append(terms, id)
	}
	return terms, nil
}

func rankerFor(method string, k1, b, k3, mu, lambda, delta, s float64) (ranker.Ranker, error) {
	switch method {
	case "okapi_bm25":
		return ranker.NewOkapiBM25(k1, b, k3), nil
	case "pivoted_length":
		return ranker.NewPivotedLength(s), nil
	case "dirichlet_prior":
		return ranker.NewDirichletPrior(mu), nil
	case "jelinek_mercer":
		return ranker.NewJelinekMercer(lambda), nil
	case "absolute_discount":
		return ranker.NewAbsoluteDiscount(delta), nil
	default:
		return ranker.Ranker{}, fmt.Errorf("unknown ranker.method %q", method)
	}
}
