package uninvert

import (
	"fmt"
	"fts/internal/common"
	"fts/internal/metrics"
	"fts/internal/postings"
	"path/filepath"
)

// Producer buffers (doc, term, count) triples and spills them to
// numbered chunk files on disk once the buffer reaches threshold
// entries. Each producer owns its own chunk files; multiple producers
// may run against disjoint slices of the input without coordination.
type Producer struct {
	dir       string
	id        int
	kind      postings.WeightKind
	threshold int

	buf       []Triple
	chunkNext int
	chunks    []string
	metrics   *metrics.Metrics
}

func NewProducer(dir string, id int, kind postings.WeightKind, threshold int, m *metrics.Metrics) *Producer {
	if threshold <= 0 {
		threshold = 1 << 16
	}
	return &Producer{
		dir:       dir,
		id:        id,
		kind:      kind,
		threshold: threshold,
		buf:       make([]Triple, 0, threshold),
		metrics:   m,
	}
}

// Add records one occurrence of term in doc. It may trigger a spill.
func (p *Producer) Add(doc, term uint64, count float64) error {
	p.buf = append(p.buf, Triple{Doc: doc, Term: term, Count: count})
	if len(p.buf) >= p.threshold {
		return p.spill()
	}
	return nil
}

// Finish spills any remaining buffered triples and returns every chunk
// file this producer has written, in spill order.
func (p *Producer) Finish() ([]string, error) {
	if len(p.buf) > 0 {
		if err := p.spill(); err != nil {
			return nil, err
		}
	}
	return p.chunks, nil
}

func (p *Producer) chunkPath() string {
	path := filepath.Join(p.dir, fmt.Sprintf("chunk-%03d-%06d", p.id, p.chunkNext))
	p.chunkNext++
	return path
}

func (p *Producer) spill() error {
	sortTriples(p.buf)
	recs := groupByDoc(p.buf)

	path := p.chunkPath()
	cw, err := newBufferedChunkWriter(path)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.writeRecord(rec, p.kind); err != nil {
			cw.close()
			return err
		}
	}
	if err := cw.close(); err != nil {
		return err
	}

	p.chunks = append(p.chunks, path)
	p.buf = p.buf[:0]
	if p.metrics != nil {
		p.metrics.ChunksSpilledTotal.Inc()
	}
	common.DINFO("uninvert: producer %d spilled %s (%d docs)", p.id, path, len(recs))
	return nil
}
