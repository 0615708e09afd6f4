package postings

import (
	"fts/internal/common"
	"fts/internal/postingserr"
	"os"
)

// Finder is the random-access surface a query-time caller needs out of
// an opened postings file: *File and *CachedFile both implement it, so
// callers that do not care whether lookups are cached (internal/build,
// internal/ranker) can take a Finder instead of a concrete type.
type Finder interface {
	Find(primaryKey uint64) (*Record, error)
	FindStream(primaryKey uint64) (*Stream, bool, error)
	NumKeys() int
	Close() error
}

// File is a read-only, memory-mapped postings file opened over the pair
// of files a Writer produces: <stem> holding the packed records, and
// <stem>_index holding a dense array of 8-byte little-endian byte
// offsets, one per primary key. Random access by primary key is O(1):
// look up its offset, then decode lazily from there.
type File struct {
	handle  *mmapHandle
	offsets []uint64
	kind    WeightKind
}

// Open maps stem and loads stem_index into memory. The index file is
// small and fixed-width, so it is read wholesale rather than mapped.
func Open(stem string, kind WeightKind) (*File, error) {
	h, err := openMmap(stem)
	if err != nil {
		return nil, err
	}
	offsets, err := loadIndex(stem + "_index")
	if err != nil {
		h.release()
		return nil, err
	}
	return &File{handle: h, offsets: offsets, kind: kind}, nil
}

func loadIndex(path string) ([]uint64, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, postingserr.WrapIo("postings.Open read index", err)
	}
	if len(buf)%8 != 0 {
		return nil, postingserr.NewCorrupt("postings index length is not a multiple of 8")
	}
	n := len(buf) / 8
	offsets := make([]uint64, n)
	for i := 0; i < n; i++ {
		offsets[i] = common.BytesToUint64(buf[i*8 : i*8+8])
	}
	common.DINFO("postings: loaded index %s (%d keys, crc32=%08x)", path, n, common.GetCrc32(buf))
	return offsets, nil
}

// NumKeys is the size of the dense primary key space this file covers.
func (f *File) NumKeys() int {
	return len(f.offsets)
}

// FindStream returns a lazy decoder positioned at primaryKey's record.
// ok is false if primaryKey is out of range; the caller owns the
// returned Stream and must Close it.
func (f *File) FindStream(primaryKey uint64) (*Stream, bool, error) {
	if primaryKey >= uint64(len(f.offsets)) {
		return nil, false, nil
	}
	start := f.offsets[primaryKey]
	data := f.handle.bytes()
	if start > uint64(len(data)) {
		return nil, false, postingserr.NewCorrupt("postings offset past end of file")
	}
	s, err := newStream(f.handle, data[start:], primaryKey, f.kind)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Find decodes primaryKey's record in full. A primaryKey at or past
// NumKeys is not an error: Find returns an empty record for it, the
// same way a primary key within range with no postings does.
func (f *File) Find(primaryKey uint64) (*Record, error) {
	s, ok, err := f.FindStream(primaryKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return New(primaryKey), nil
	}
	defer s.Close()
	return s.Decode()
}

// Close releases the File's hold on the mapping; the file is unmapped
// once no Stream derived from it still holds one. A File must not be used, and no
// Stream derived from it may be used, after Close, except a Stream
// that has already been Closed itself, since its reference was already
// released.
func (f *File) Close() error {
	return f.handle.release()
}
