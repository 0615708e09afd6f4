// Package postings implements the in-memory postings record, the
// compressed on-disk postings file (writer and mmap-backed reader), and
// the lazy postings stream that decodes one record without
// materializing it.
package postings

import (
	"fts/internal/codec"
	"fts/internal/postingserr"
	"sort"
)

// Pair is one (secondary key, weight) entry inside a postings record.
type Pair struct {
	SecKey uint64
	Weight float64
}

// WeightKind selects how a pair's weight is serialized: as a raw
// little-endian double (forward-index feature values, query weights)
// or as a varint-encoded non-negative count (inverted-index term
// frequencies). The codec treats both as an opaque 64-bit payload; the
// choice only changes which write/read primitive is called.
type WeightKind int

const (
	WeightDouble WeightKind = iota
	WeightUint
)

// Record is the in-memory representation of one primary key's postings
// list: a sorted, deduplicated sequence of (secondary key, weight)
// pairs. counts is kept strictly ascending by SecKey at all times; every
// mutator below is responsible for restoring that invariant before it
// returns.
type Record struct {
	primaryKey uint64
	counts     []Pair
}

func New(primaryKey uint64) *Record {
	return &Record{primaryKey: primaryKey}
}

func (r *Record) PrimaryKey() uint64 {
	return r.primaryKey
}

// Count returns the weight stored for secKey, or 0 if secKey is absent.
func (r *Record) Count(secKey uint64) float64 {
	i, ok := r.search(secKey)
	if !ok {
		return 0
	}
	return r.counts[i].Weight
}

// Counts returns a borrowed view over the record's pairs; callers must
// not mutate the returned slice.
func (r *Record) Counts() []Pair {
	return r.counts
}

func (r *Record) search(secKey uint64) (int, bool) {
	i := sort.Search(len(r.counts), func(i int) bool { return r.counts[i].SecKey >= secKey })
	if i < len(r.counts) && r.counts[i].SecKey == secKey {
		return i, true
	}
	return i, false
}

// SetCounts replaces the record's contents wholesale. pairs need not be
// sorted or deduplicated: duplicate secondary keys are collapsed by
// summing their weights, and the result is sorted ascending by
// secondary key. Bulk construction should prefer SetCounts over
// repeated IncreaseCount calls.
func (r *Record) SetCounts(pairs []Pair) {
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	sort.Slice(cp, func(i, j int) bool { return cp[i].SecKey < cp[j].SecKey })

	out := cp[:0]
	for _, p := range cp {
		if n := len(out); n > 0 && out[n-1].SecKey == p.SecKey {
			out[n-1].Weight += p.Weight
			continue
		}
		out = append(out, p)
	}
	r.counts = out
}

// IncreaseCount adds delta to secKey's weight, inserting a new pair in
// sorted position if secKey was absent. This is an amortized
// O(log n + n) operation per call; bulk construction should prefer
// SetCounts.
func (r *Record) IncreaseCount(secKey uint64, delta float64) {
	i, ok := r.search(secKey)
	if ok {
		r.counts[i].Weight += delta
		return
	}
	r.counts = append(r.counts, Pair{})
	copy(r.counts[i+1:], r.counts[i:])
	r.counts[i] = Pair{SecKey: secKey, Weight: delta}
}

// MergeWith unions r's pairs with other's, summing the weight of any
// secondary key present on both sides. r's primary key is retained;
// other's primary key is ignored, since merge is used during chunk
// coalescing where both sides are already grouped under the same
// primary key. The merge is a single linear pass over the two sorted
// slices (O(n)), not a sort-the-concatenation pass.
func (r *Record) MergeWith(other *Record) {
	merged := make([]Pair, 0, len(r.counts)+len(other.counts))
	i, j := 0, 0
	for i < len(r.counts) && j < len(other.counts) {
		a, b := r.counts[i], other.counts[j]
		switch {
		case a.SecKey < b.SecKey:
			merged = append(merged, a)
			i++
		case a.SecKey > b.SecKey:
			merged = append(merged, b)
			j++
		default:
			merged = append(merged, Pair{SecKey: a.SecKey, Weight: a.Weight + b.Weight})
			i++
			j++
		}
	}
	merged = append(merged, r.counts[i:]...)
	merged = append(merged, other.counts[j:]...)
	r.counts = merged
}

// TotalWeight sums every pair's weight; rankers use it as a document
// length or a term's total corpus frequency.
func (r *Record) TotalWeight() float64 {
	var total float64
	for _, p := range r.counts {
		total += p.Weight
	}
	return total
}

// Shrink releases any extra capacity left over from decoding: a record
// read off disk should hold exactly len(counts) capacity, nothing more.
func (r *Record) Shrink() {
	if len(r.counts) == cap(r.counts) {
		return
	}
	cp := make([]Pair, len(r.counts))
	copy(cp, r.counts)
	r.counts = cp
}

// WritePacked serializes the record: a varint pair count, then for each
// pair a varint gap from the previous secondary key (absolute for the
// first pair) followed by the pair's weight in the given WeightKind.
func (r *Record) WritePacked(w *codec.Writer, kind WeightKind) error {
	if err := w.WriteUint(uint64(len(r.counts))); err != nil {
		return err
	}
	var prev uint64
	for i, p := range r.counts {
		gap := p.SecKey
		if i > 0 {
			gap = p.SecKey - prev
		}
		if err := w.WriteUint(gap); err != nil {
			return err
		}
		if err := writeWeight(w, kind, p.Weight); err != nil {
			return err
		}
		prev = p.SecKey
	}
	return nil
}

func writeWeight(w *codec.Writer, kind WeightKind, weight float64) error {
	if kind == WeightUint {
		return w.WriteUint(uint64(weight))
	}
	return w.WriteDouble(weight)
}

func readWeight(r *codec.Reader, kind WeightKind) (float64, error) {
	if kind == WeightUint {
		v, err := r.ReadUint()
		return float64(v), err
	}
	return r.ReadDouble()
}

// ReadPacked decodes one record for primaryKey from r. It returns
// ok == false on a clean end-of-stream (zero bytes consumed) so
// sequential readers (chunk files, spill files) know when to stop; any
// other decode failure is reported as a CorruptError, since a
// mid-record codec failure makes the rest of the stream untrustworthy.
func ReadPacked(r *codec.Reader, primaryKey uint64, kind WeightKind) (rec *Record, ok bool, err error) {
	if r.AtEOF() {
		return nil, false, nil
	}
	n, err := r.ReadUint()
	if err != nil {
		return nil, false, postingserr.AsCorrupt("record length prefix", err)
	}

	rec = &Record{primaryKey: primaryKey}
	if n == 0 {
		return rec, true, nil
	}

	rec.counts = make([]Pair, n)
	var cur uint64
	for i := uint64(0); i < n; i++ {
		gap, err := r.ReadUint()
		if err != nil {
			return nil, false, postingserr.AsCorrupt("secondary key gap", err)
		}
		if i == 0 {
			cur = gap
		} else {
			if gap == 0 {
				return nil, false, postingserr.NewCorrupt("non-monotonic secondary key gap")
			}
			cur += gap
		}
		weight, err := readWeight(r, kind)
		if err != nil {
			return nil, false, postingserr.AsCorrupt("pair weight", err)
		}
		rec.counts[i] = Pair{SecKey: cur, Weight: weight}
	}
	return rec, true, nil
}
