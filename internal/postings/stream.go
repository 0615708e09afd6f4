package postings

import (
	"bytes"
	"fts/internal/codec"
	"fts/internal/postingserr"
)

// Stream decodes one record's pairs lazily, one at a time, straight out
// of the memory-mapped postings file. It never materializes the whole
// record; callers that want a *Record should call Decode.
//
// A Stream holds a reference on the file's mmap handle for its whole
// lifetime and must be Closed to release it.
type Stream struct {
	handle     *mmapHandle
	r          *codec.Reader
	kind       WeightKind
	primaryKey uint64
	size       uint64
	read       uint64
	cur        uint64
	closed     bool
	// recordStart is the record's bytes from its length prefix onward.
	// TotalCounts opens a fresh codec.Reader over it so it can run as
	// an independent pass without disturbing Next's position; codec.Reader
	// buffers through bufio, so there is no cheap way to recover this
	// offset from the Stream's own reader once it has read past it.
	recordStart []byte
}

func newStream(h *mmapHandle, data []byte, primaryKey uint64, kind WeightKind) (*Stream, error) {
	r := codec.NewReader(bytes.NewReader(data))
	n, err := r.ReadUint()
	if err != nil {
		return nil, postingserr.AsCorrupt("stream length prefix", err)
	}
	h.retain()
	return &Stream{
		handle:      h,
		r:           r,
		kind:        kind,
		primaryKey:  primaryKey,
		size:        n,
		recordStart: data,
	}, nil
}

func (s *Stream) PrimaryKey() uint64 {
	return s.primaryKey
}

// Size is the number of (secondary key, weight) pairs in this record,
// known up front from the record's length prefix.
func (s *Stream) Size() int {
	return int(s.size)
}

// Next yields the stream's pairs in ascending secondary-key order. ok is
// false once every pair has been returned.
func (s *Stream) Next() (pair Pair, ok bool, err error) {
	if s.read >= s.size {
		return Pair{}, false, nil
	}
	gap, err := s.r.ReadUint()
	if err != nil {
		return Pair{}, false, postingserr.AsCorrupt("stream secondary key gap", err)
	}
	if s.read == 0 {
		s.cur = gap
	} else {
		if gap == 0 {
			return Pair{}, false, postingserr.NewCorrupt("non-monotonic secondary key gap")
		}
		s.cur += gap
	}
	weight, err := readWeight(s.r, s.kind)
	if err != nil {
		return Pair{}, false, postingserr.AsCorrupt("stream pair weight", err)
	}
	s.read++
	return Pair{SecKey: s.cur, Weight: weight}, true, nil
}

// TotalCounts sums every pair's weight by running an independent decode
// pass over the record's bytes, starting fresh from the same
// recordStart bytes this Stream was opened with: it re-reads the length
// prefix itself rather than trusting any state left behind by Next. It
// does not consume or otherwise disturb Next's position, so a caller
// may call TotalCounts and still iterate the stream from the beginning
// afterward.
func (s *Stream) TotalCounts() (float64, error) {
	r := codec.NewReader(bytes.NewReader(s.recordStart))
	n, err := r.ReadUint()
	if err != nil {
		return 0, postingserr.AsCorrupt("stream total counts length prefix", err)
	}
	var total float64
	for i := uint64(0); i < n; i++ {
		if _, err := r.ReadUint(); err != nil {
			return 0, postingserr.AsCorrupt("stream total counts gap", err)
		}
		weight, err := readWeight(r, s.kind)
		if err != nil {
			return 0, postingserr.AsCorrupt("stream total counts weight", err)
		}
		total += weight
	}
	return total, nil
}

// Decode drains the stream into a Record. It is equivalent to calling
// Next in a loop, provided for callers that want the full record rather
// than incremental access.
func (s *Stream) Decode() (*Record, error) {
	rec := &Record{primaryKey: s.primaryKey, counts: make([]Pair, 0, s.size-s.read)}
	for {
		p, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		rec.counts = append(rec.counts, p)
	}
	return rec, nil
}

// Close releases the stream's hold on the file's mmap. A Stream must not
// be used after Close.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.handle.release()
}
