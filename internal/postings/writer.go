package postings

import (
	"bufio"
	"fts/internal/codec"
	"fts/internal/common"
	"fts/internal/postingserr"
	"os"
)

// Writer serializes a sequence of records keyed by a dense primary key
// space [0, N) to <stem>, and flushes a parallel offset table to
// <stem>_index on Close. Primary keys that are never written explicitly
// get an empty placeholder record so random access by primary key
// always resolves to something, and the offset table stays dense.
//
// A Writer is not safe for concurrent use. The uninversion pipeline
// uses one only for its final compress pass; its producers write their
// chunk files through their own chunk writers.
type Writer struct {
	stem    string
	kind    WeightKind
	numKeys uint64

	f       *os.File
	cw      *codec.CountWriter
	bw      *bufio.Writer
	enc     *codec.Writer
	offsets []uint64
	next    uint64 // next primary key expected to be written
	closed  bool
}

// NewWriter creates the main postings file at stem, pre-sizing its
// offset table for numKeys primary keys. bufSize, when nonzero,
// overrides the buffered-writer size (callers typically size it from
// the target filesystem's block size).
func NewWriter(stem string, numKeys uint64, kind WeightKind, bufSize int) (*Writer, error) {
	f, err := os.Create(stem)
	if err != nil {
		return nil, postingserr.WrapIo("postings.NewWriter create", err)
	}
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	cw := codec.NewCountWriter(f)
	bw := bufio.NewWriterSize(cw, bufSize)
	return &Writer{
		stem:    stem,
		kind:    kind,
		numKeys: numKeys,
		f:       f,
		cw:      cw,
		bw:      bw,
		enc:     codec.NewWriter(bw),
		offsets: make([]uint64, 0, numKeys),
	}, nil
}

// currentOffset is the byte position the next record will start at:
// everything already flushed through bw plus whatever is still
// buffered in bw itself.
func (w *Writer) currentOffset() uint64 {
	return uint64(w.cw.Count()) + uint64(w.bw.Buffered())
}

// WriteRecord appends rec, which must be for primary key w.Next() or a
// later one (keys are written in ascending order); gaps before rec's
// primary key are backfilled with empty placeholder records.
func (w *Writer) WriteRecord(rec *Record) error {
	for w.next < rec.PrimaryKey() {
		if err := w.writeOne(New(w.next)); err != nil {
			return err
		}
	}
	return w.writeOne(rec)
}

// Next returns the next primary key this writer expects.
func (w *Writer) Next() uint64 {
	return w.next
}

func (w *Writer) writeOne(rec *Record) error {
	w.offsets = append(w.offsets, w.currentOffset())
	if err := rec.WritePacked(w.enc, w.kind); err != nil {
		return postingserr.WrapIo("postings.Writer.WriteRecord", err)
	}
	w.next++
	return nil
}

// Close fills any trailing primary keys up to numKeys with empty
// records, flushes the main file, and writes the offset table to
// <stem>_index. A writer whose Close fails has produced a corrupt pair
// of files and must be retried from scratch.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	for w.next < w.numKeys {
		if err := w.writeOne(New(w.next)); err != nil {
			return err
		}
	}
	if err := w.bw.Flush(); err != nil {
		return postingserr.WrapIo("postings.Writer.Close flush", err)
	}
	if err := w.f.Close(); err != nil {
		return postingserr.WrapIo("postings.Writer.Close data file", err)
	}
	return w.writeIndex()
}

func (w *Writer) writeIndex() error {
	idx, err := os.Create(w.stem + "_index")
	if err != nil {
		return postingserr.WrapIo("postings.Writer.Close create index", err)
	}
	defer idx.Close()

	buf := make([]byte, 0, len(w.offsets)*8)
	for _, off := range w.offsets {
		buf = append(buf, common.Uint64ToBytes(off)...)
	}
	if _, err := idx.Write(buf); err != nil {
		return postingserr.WrapIo("postings.Writer.Close write index", err)
	}
	return nil
}
