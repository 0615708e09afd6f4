package ranker

import (
	"context"
	"fts/internal/postings"
)

// CorpusStats carries the corpus-wide statistics every scoring variant
// needs alongside the per-term postings.
type CorpusStats struct {
	NumDocs   int
	AvgDocLen float64
	// DocLen returns the length of doc; it is the forward-index lookup
	// the kernel consults once per (term, doc) pair.
	DocLen func(doc uint64) float64
}

// QueryTerm is one term of a query, already resolved to its term id and
// corpus-wide statistics.
type QueryTerm struct {
	Term       uint64
	Weight     float64
	DocFreq    float64
	CorpusFreq float64
}

// Score runs the scoring kernel: for each query term, it streams the
// term's postings list out of index (keyed by term, yielding (doc,
// term_freq) pairs) and folds each pair's partial score into a sparse
// accumulator, then extracts the k best documents with TopK.
//
// index is the inverted index (postings keyed by term id); DocLen
// consults the forward index, which is built separately.
func Score(ctx context.Context, index postings.Finder, stats CorpusStats, terms []QueryTerm, r Ranker, k int) ([]Hit, error) {
	acc := NewAccumulator()
	for _, qt := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := accumulateTerm(index, stats, qt, r, acc); err != nil {
			return nil, err
		}
	}
	return TopK(acc, k), nil
}

func accumulateTerm(index postings.Finder, stats CorpusStats, qt QueryTerm, r Ranker, acc Accumulator) error {
	stream, ok, err := index.FindStream(qt.Term)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	defer stream.Close()

	for {
		pair, ok, err := stream.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		doc := pair.SecKey
		sd := ScoreData{
			Doc:             doc,
			Term:            qt.Term,
			TermFreqInDoc:   pair.Weight,
			DocLen:          stats.DocLen(doc),
			AvgDocLen:       stats.AvgDocLen,
			NumDocs:         float64(stats.NumDocs),
			DocFreq:         qt.DocFreq,
			QueryTermWeight: qt.Weight,
			CorpusTermFreq:  qt.CorpusFreq,
		}
		acc.Add(doc, r.ScoreOne(sd))
	}
	return nil
}

// ScoreSharded runs Score concurrently over disjoint term shards,
// accumulating each shard into its own thread-local Accumulator before
// a single reduce step merges them. This is the "thread-local
// accumulator, single-owner reduce" pattern for query-time scoring;
// shard assignment is the caller's responsibility.
func ScoreSharded(ctx context.Context, index postings.Finder, stats CorpusStats, shards [][]QueryTerm, r Ranker, k int) ([]Hit, error) {
	partials := make([]Accumulator, len(shards))
	errs := make(chan error, len(shards))
	for i, shard := range shards {
		i, shard := i, shard
		go func() {
			acc := NewAccumulator()
			for _, qt := range shard {
				if err := ctx.Err(); err != nil {
					errs <- err
					return
				}
				if err := accumulateTerm(index, stats, qt, r, acc); err != nil {
					errs <- err
					return
				}
			}
			partials[i] = acc
			errs <- nil
		}()
	}
	for range shards {
		if err := <-errs; err != nil {
			return nil, err
		}
	}

	final := NewAccumulator()
	MergeInto(final, partials...)
	return TopK(final, k), nil
}
