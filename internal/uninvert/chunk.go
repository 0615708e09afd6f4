// Package uninvert transposes an inverted index (term -> docs) into a
// forward index (doc -> terms) by external-memory sort: producers spill
// sorted (doc, term, count) triples to chunk files, chunk files are
// merged pairwise until one remains, and the survivor is compressed into
// a dense postings file.
package uninvert

import (
	"bufio"
	"fts/internal/codec"
	"fts/internal/postings"
	"fts/internal/postingserr"
	"os"
	"sort"
)

// Triple is one inverted-index posting waiting to be transposed: term
// count appeared count times in doc.
type Triple struct {
	Doc   uint64
	Term  uint64
	Count float64
}

// writeChunkRecord serializes rec to a chunk file. Unlike the dense
// postings file format, a chunk record carries its own primary key
// since chunk files are sparse (not every doc id need appear).
func writeChunkRecord(w *codec.Writer, rec *postings.Record, kind postings.WeightKind) error {
	if err := w.WriteUint(rec.PrimaryKey()); err != nil {
		return err
	}
	return rec.WritePacked(w, kind)
}

// readChunkRecord is the inverse of writeChunkRecord. ok is false at a
// clean end of file.
func readChunkRecord(r *codec.Reader, kind postings.WeightKind) (*postings.Record, bool, error) {
	if r.AtEOF() {
		return nil, false, nil
	}
	pk, err := r.ReadUint()
	if err != nil {
		return nil, false, postingserr.AsCorrupt("chunk primary key", err)
	}
	rec, ok, err := postings.ReadPacked(r, pk, kind)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, postingserr.NewCorrupt("chunk record truncated after primary key")
	}
	return rec, true, nil
}

func openChunkReader(path string) (*os.File, *codec.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, postingserr.WrapIo("uninvert.openChunkReader", err)
	}
	return f, codec.NewReader(bufio.NewReaderSize(f, 64*1024)), nil
}

// bufferedChunkWriter tracks the bufio.Writer backing a chunk file so it
// can be flushed before the file is closed.
type bufferedChunkWriter struct {
	f  *os.File
	bw *bufio.Writer
	w  *codec.Writer
}

func newBufferedChunkWriter(path string) (*bufferedChunkWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, postingserr.WrapIo("uninvert.newBufferedChunkWriter", err)
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	return &bufferedChunkWriter{f: f, bw: bw, w: codec.NewWriter(bw)}, nil
}

func (c *bufferedChunkWriter) writeRecord(rec *postings.Record, kind postings.WeightKind) error {
	return writeChunkRecord(c.w, rec, kind)
}

func (c *bufferedChunkWriter) close() error {
	if err := c.bw.Flush(); err != nil {
		return postingserr.WrapIo("uninvert.bufferedChunkWriter.close flush", err)
	}
	return postingserr.WrapIo("uninvert.bufferedChunkWriter.close", c.f.Close())
}

// sortTriples orders buf by (doc, term) ascending, matching the chunk
// file's primary key / secondary key ordering.
func sortTriples(buf []Triple) {
	sort.Slice(buf, func(i, j int) bool {
		if buf[i].Doc != buf[j].Doc {
			return buf[i].Doc < buf[j].Doc
		}
		return buf[i].Term < buf[j].Term
	})
}

// groupByDoc folds a (doc, term)-sorted slice of triples into one
// Record per distinct doc, in ascending doc order.
func groupByDoc(buf []Triple) []*postings.Record {
	var out []*postings.Record
	var cur *postings.Record
	var pairs []postings.Pair
	flush := func() {
		if cur == nil {
			return
		}
		cur.SetCounts(pairs)
		out = append(out, cur)
	}
	for _, t := range buf {
		if cur == nil || cur.PrimaryKey() != t.Doc {
			flush()
			cur = postings.New(t.Doc)
			pairs = pairs[:0]
		}
		pairs = append(pairs, postings.Pair{SecKey: t.Term, Weight: t.Count})
	}
	flush()
	return out
}
