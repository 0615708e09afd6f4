package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"fts/internal/build"
	"fts/internal/common"
	"fts/internal/config"
	"fts/internal/filter/cn"
	"fts/internal/filter/en"
	"fts/internal/postings"
	"fts/internal/tokenizer"
	"fts/internal/vocab"
)

const buildHelp = `postctl build - ingest a corpus into a postings file pair

Example:
  postctl build -dataset docs.libsvm -prefix /srv/idx/shard0 -method libsvm
  postctl build -config build.yaml
`

func runBuild(args []string) error {
	fset := flag.NewFlagSet("build", flag.ExitOnError)
	fset.Usage = usageFor(fset, buildHelp)
	var (
		configPath string
		dataset    string
		prefix     string
		method     string
		numWorkers int
	)
	fset.StringVar(&configPath, "config", "", "YAML config providing dataset/prefix/analyzers[0].method")
	fset.StringVar(&dataset, "dataset", "", "path to the input corpus")
	fset.StringVar(&prefix, "prefix", "", "output stem prefix; writes <prefix>_forward and <prefix>_inverted")
	fset.StringVar(&method, "method", "libsvm", "ingestion method: libsvm, text-en, text-cn")
	fset.IntVar(&numWorkers, "workers", 0, "uninversion producer concurrency (0 = runtime.NumCPU())")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		dataset = cfg.StringOr("dataset", dataset)
		prefix = cfg.StringOr("prefix", prefix)
		method = cfg.StringOr("analyzers[0].method", method)
	}
	if dataset == "" || prefix == "" {
		fset.Usage()
		return fmt.Errorf("-dataset and -prefix (or -config) are required")
	}

	f, err := os.Open(dataset)
	if err != nil {
		return err
	}
	defer f.Close()

	var corpus *build.Corpus
	switch method {
	case "libsvm":
		corpus, err = build.LoadLibsvm(f)
	case "text-en":
		tok := &tokenizer.Tokenizer{}
		tok.UseFilter(en.LowercaseFilter{})
		tok.UseFilter(en.StopWordFilter{})
		tok.UseFilter(en.StemmerFilter{})
		corpus, err = build.LoadText(f, tok, vocab.New())
	case "text-cn":
		seg := cn.NewJiebaSegmentor()
		defer seg.Close()
		tok := &tokenizer.ZhTokenizer{}
		tok.UseSegmentor(seg)
		tok.UseFilter(&cn.StopWordFilter{})
		corpus, err = build.LoadText(f, tok, vocab.New())
	default:
		return fmt.Errorf("unknown -method %q", method)
	}
	if err != nil {
		return err
	}

	if common.IsExist(prefix + "_forward") {
		common.WARN("postctl build: %s already exists and will be overwritten", prefix+"_forward")
	}

	chunkDir, err := os.MkdirTemp("", "postctl-build-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(chunkDir)

	opts := build.Options{
		ForwardStem:    prefix + "_forward",
		InvertedStem:   prefix + "_inverted",
		ChunkDir:       chunkDir,
		Kind:           postings.WeightDouble,
		NumProducers:   4,
		MaxConcurrency: numWorkers,
		Metrics:        globalMetrics,
	}
	start := time.Now()
	res, err := build.Run(context.Background(), opts, corpus)
	if err != nil {
		return err
	}
	globalMetrics.BuildDuration.Observe(time.Since(start).Seconds())
	common.INFO("postctl build: %d docs, %d terms", res.NumDocs, res.NumTerms)

	fwd, err := os.Open(opts.ForwardStem)
	if err == nil {
		fmt.Printf("built %s (%d docs, %d bytes) and %s (%d terms)\n",
			opts.ForwardStem, res.NumDocs, common.GetFileSize(fwd), opts.InvertedStem, res.NumTerms)
		fwd.Close()
	} else {
		fmt.Printf("built %s (%d docs) and %s (%d terms)\n", opts.ForwardStem, res.NumDocs, opts.InvertedStem, res.NumTerms)
	}
	return nil
}
