// Package vocab assigns dense term ids to terms discovered during text
// ingestion, keyed by a murmur3 hash over a sharded map so concurrent
// tokenizer workers contend on a lock per shard instead of one global
// lock.
package vocab

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

const numShards = 32

type shard struct {
	mu  sync.Mutex
	ids map[string]uint64
}

// Vocab maps terms to dense ids in allocation order. IDFor is safe for
// concurrent use by multiple tokenizer workers.
type Vocab struct {
	shards [numShards]*shard

	mu    sync.Mutex
	next  uint64
	terms []string
}

func New() *Vocab {
	v := &Vocab{}
	for i := range v.shards {
		v.shards[i] = &shard{ids: make(map[string]uint64)}
	}
	return v
}

func (v *Vocab) shardFor(term string) *shard {
	h := murmur3.Sum64([]byte(term))
	return v.shards[h%uint64(numShards)]
}

// IDFor returns term's dense id, allocating a new one on first sight.
func (v *Vocab) IDFor(term string) uint64 {
	s := v.shardFor(term)
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.ids[term]; ok {
		return id
	}

	v.mu.Lock()
	id := v.next
	v.next++
	v.terms = append(v.terms, term)
	v.mu.Unlock()

	s.ids[term] = id
	return id
}

// Lookup returns term's id without allocating one.
func (v *Vocab) Lookup(term string) (uint64, bool) {
	s := v.shardFor(term)
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.ids[term]
	return id, ok
}

// Term returns the term registered under id, the inverse of IDFor.
func (v *Vocab) Term(id uint64) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if id >= uint64(len(v.terms)) {
		return "", false
	}
	return v.terms[id], true
}

// Len is the number of distinct terms allocated so far; this becomes
// total_unique_terms once ingestion finishes.
func (v *Vocab) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.terms)
}
