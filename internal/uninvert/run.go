package uninvert

import (
	"context"
	"fts/internal/common"
	"fts/internal/metrics"
	"fts/internal/postings"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options configures one end-to-end uninversion run.
type Options struct {
	// Dir holds intermediate chunk files; it is not cleaned up by Run on
	// success (the compress pass deletes the one surviving chunk) and
	// is left populated for debugging on failure.
	Dir string
	// NumProducers is how many logical producers divide the input
	// triples. Run does not read it: it starts one producer per channel
	// in shards. The producer count may exceed MaxConcurrency; producers
	// then queue for a worker slot rather than all running at once.
	NumProducers int
	// MaxConcurrency bounds how many producers actually run at a time.
	// Zero means runtime.NumCPU().
	MaxConcurrency int
	SpillThreshold int
	Kind           postings.WeightKind
	NumKeys        uint64
	// Metrics is optional; when set, chunk spills and merges are
	// counted into it.
	Metrics *metrics.Metrics
}

// Run drains each channel in shards into its own producer, running
// under a bounded worker pool, merges their chunk files down to one, and
// compresses the survivor into the final postings file at stem. It
// returns once the final postings file and its index have been written.
//
// How triples are partitioned across shards is up to the caller that
// feeds them; Run itself only owns the producer/merge/compress
// pipeline, not how the corpus is split.
func Run(ctx context.Context, opts Options, shards []<-chan Triple, stem string) error {
	maxConc := opts.MaxConcurrency
	if maxConc <= 0 {
		maxConc = runtime.NumCPU()
	}
	sem := semaphore.NewWeighted(int64(maxConc))

	g, gctx := errgroup.WithContext(ctx)
	chunksByProducer := make([][]string, len(shards))

	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			p := NewProducer(opts.Dir, i, opts.Kind, opts.SpillThreshold, opts.Metrics)
			for t := range shard {
				if err := p.Add(t.Doc, t.Term, t.Count); err != nil {
					return err
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
			}
			chunks, err := p.Finish()
			if err != nil {
				return err
			}
			chunksByProducer[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []string
	for _, cs := range chunksByProducer {
		all = append(all, cs...)
	}
	common.INFO("uninvert: %d producers wrote %d chunk files", len(shards), len(all))

	survivor, err := mergeAll(opts.Dir, all, opts.Kind, opts.Metrics)
	if err != nil {
		return err
	}
	if err := CompressPass(survivor, stem, opts.NumKeys, opts.Kind); err != nil {
		return err
	}
	common.INFO("uninvert: compressed into %s (%d keys)", stem, opts.NumKeys)
	return nil
}
