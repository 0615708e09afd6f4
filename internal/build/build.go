// Package build orchestrates one end-to-end index build: ingest a
// corpus (libsvm or tokenized text) into per-document (term, weight)
// pairs, write those straight out as the forward index, then drive
// internal/uninvert to transpose the same triples into the inverted
// index a query needs.
package build

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"fts/internal/common"
	"fts/internal/libsvm"
	"fts/internal/metrics"
	"fts/internal/postings"
	"fts/internal/types"
	"fts/internal/uninvert"
	"fts/internal/vocab"
)

// Document is one corpus entry: docID's postings, already resolved to
// dense term ids.
type Document struct {
	DocID uint64
	Pairs []postings.Pair
}

// Corpus is a fully materialized, dense-keyed set of documents plus the
// size of the term-id space they reference. Both ingestion paths
// (libsvm, text) build one of these before Run runs; this module
// doesn't stream documents it hasn't finished counting, since the size
// of the forward index's offset table and the inverted index's term-id
// space both have to be known up front.
type Corpus struct {
	Docs     []Document
	NumTerms uint64
}

// LoadLibsvm reads a libsvm-formatted corpus directly: each line is
// already a (doc, [(term, weight)]) record, so no vocabulary or
// tokenizer is involved.
func LoadLibsvm(r io.Reader) (*Corpus, error) {
	lines, numTerms, err := libsvm.ReadAll(r)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, len(lines))
	for i, ln := range lines {
		pairs := make([]postings.Pair, len(ln.Features))
		for j, f := range ln.Features {
			pairs[j] = postings.Pair{SecKey: f.ID, Weight: f.Weight}
		}
		docs[i] = Document{DocID: uint64(i), Pairs: pairs}
	}
	return &Corpus{Docs: docs, NumTerms: numTerms}, nil
}

// LoadText reads one document per line, tokenizes each with tok, and
// resolves tokens to dense term ids through vb, counting term
// frequency per document.
func LoadText(r io.Reader, tok types.Tokenizer, vb *vocab.Vocab) (*Corpus, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var docs []Document
	var docID uint64
	for sc.Scan() {
		line := sc.Text()
		tokens := tok.Analyze(line)
		if len(tokens) == 0 {
			docID++
			continue
		}
		counts := make(map[uint64]float64, len(tokens))
		for _, t := range tokens {
			id := vb.IDFor(t.Token())
			counts[id]++
		}
		pairs := make([]postings.Pair, 0, len(counts))
		for id, c := range counts {
			pairs = append(pairs, postings.Pair{SecKey: id, Weight: c})
		}
		docs = append(docs, Document{DocID: docID, Pairs: pairs})
		docID++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("build: reading text corpus: %w", err)
	}
	return &Corpus{Docs: docs, NumTerms: uint64(vb.Len())}, nil
}

// Options configures where a build's output files land and how its
// uninversion pass is parallelized.
type Options struct {
	ForwardStem    string
	InvertedStem   string
	ChunkDir       string
	Kind           postings.WeightKind
	NumProducers   int
	MaxConcurrency int
	SpillThreshold int
	Metrics        *metrics.Metrics
}

// Result summarizes a completed build.
type Result struct {
	NumDocs  int
	NumTerms uint64
}

// Run writes corpus's forward index directly (it is already a dense
// doc-keyed set of pairs) and derives the inverted index from the same
// (doc, term, weight) triples via internal/uninvert, relabeling each
// triple's Doc field as the term id so the transposition groups by term
// instead of by doc. The transposition is symmetric: inverted contains
// (term, doc, c) exactly when forward contains (doc, term, c).
func Run(ctx context.Context, opts Options, corpus *Corpus) (*Result, error) {
	if err := writeForward(opts, corpus); err != nil {
		return nil, err
	}

	numProducers := opts.NumProducers
	if numProducers <= 0 {
		numProducers = 4
	}
	if len(corpus.Docs) > 0 {
		numProducers = common.Min(numProducers, len(corpus.Docs))
	}
	shards := make([]chan uninvert.Triple, numProducers)
	readShards := make([]<-chan uninvert.Triple, numProducers)
	for i := range shards {
		shards[i] = make(chan uninvert.Triple, 256)
		readShards[i] = shards[i]
	}

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			for _, ch := range shards {
				close(ch)
			}
		}()
		for i, doc := range corpus.Docs {
			shard := shards[i%numProducers]
			for _, p := range doc.Pairs {
				select {
				case shard <- uninvert.Triple{Doc: p.SecKey, Term: doc.DocID, Count: p.Weight}:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
		}
		errCh <- nil
	}()

	uopts := uninvert.Options{
		Dir:            opts.ChunkDir,
		NumProducers:   numProducers,
		MaxConcurrency: opts.MaxConcurrency,
		SpillThreshold: opts.SpillThreshold,
		Kind:           opts.Kind,
		NumKeys:        corpus.NumTerms,
		Metrics:        opts.Metrics,
	}
	if err := uninvert.Run(ctx, uopts, readShards, opts.InvertedStem); err != nil {
		return nil, err
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	if opts.Metrics != nil {
		opts.Metrics.DocsIndexedTotal.Add(float64(len(corpus.Docs)))
	}
	common.INFO("build: %d docs, %d terms -> %s (forward), %s (inverted)",
		len(corpus.Docs), corpus.NumTerms, opts.ForwardStem, opts.InvertedStem)
	return &Result{NumDocs: len(corpus.Docs), NumTerms: corpus.NumTerms}, nil
}

func writeForward(opts Options, corpus *Corpus) error {
	w, err := postings.NewWriter(opts.ForwardStem, uint64(len(corpus.Docs)), opts.Kind, common.BlockSizeHint(opts.ForwardStem))
	if err != nil {
		return err
	}
	for _, doc := range corpus.Docs {
		rec := postings.New(doc.DocID)
		rec.SetCounts(doc.Pairs)
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	return w.Close()
}
