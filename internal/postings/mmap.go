package postings

import (
	"fts/internal/postingserr"
	"os"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
)

// mmapHandle owns one memory-mapped file and is shared by every stream
// derived from it. Streams hold a reference via retain/release instead
// of a raw pointer into the mapping, so the file is unmapped only once
// the File and every derived stream have released their hold.
type mmapHandle struct {
	f    *os.File
	data mmap.MMap
	refs int32
}

func openMmap(path string) (*mmapHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, postingserr.WrapIo("postings.openMmap open", err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, postingserr.WrapIo("postings.openMmap map", err)
	}
	return &mmapHandle{f: f, data: m, refs: 1}, nil
}

func (h *mmapHandle) retain() {
	atomic.AddInt32(&h.refs, 1)
}

func (h *mmapHandle) release() error {
	if atomic.AddInt32(&h.refs, -1) != 0 {
		return nil
	}
	err := h.data.Unmap()
	if cerr := h.f.Close(); err == nil {
		err = cerr
	}
	return postingserr.WrapIo("postings.mmapHandle.release", err)
}

func (h *mmapHandle) bytes() []byte {
	return h.data
}
