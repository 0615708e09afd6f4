package uninvert

import (
	"context"
	"fts/internal/postings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProducerSpillsAndChunkRoundTrips(t *testing.T) {
	dir := t.TempDir()
	p := NewProducer(dir, 0, postings.WeightUint, 2, nil) // spill after every 2 triples

	require.NoError(t, p.Add(5, 1, 1))
	require.NoError(t, p.Add(2, 1, 1)) // triggers a spill of [doc5,doc2]
	require.NoError(t, p.Add(2, 3, 2))

	chunks, err := p.Finish()
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	f, r, err := openChunkReader(chunks[0])
	require.NoError(t, err)
	defer f.Close()

	rec, ok, err := readChunkRecord(r, postings.WeightUint)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(2), rec.PrimaryKey())
	require.Equal(t, []postings.Pair{{SecKey: 1, Weight: 1}}, rec.Counts())

	rec, ok, err = readChunkRecord(r, postings.WeightUint)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(5), rec.PrimaryKey())

	_, ok, err = readChunkRecord(r, postings.WeightUint)
	require.NoError(t, err)
	require.False(t, ok)
}

func writeChunk(t *testing.T, dir, name string, recs []*postings.Record, kind postings.WeightKind) string {
	t.Helper()
	path := filepath.Join(dir, name)
	cw, err := newBufferedChunkWriter(path)
	require.NoError(t, err)
	for _, r := range recs {
		require.NoError(t, cw.writeRecord(r, kind))
	}
	require.NoError(t, cw.close())
	return path
}

func rec(pk uint64, pairs ...postings.Pair) *postings.Record {
	r := postings.New(pk)
	r.SetCounts(pairs)
	return r
}

func TestMergeTwoUnionsDisjointAndOverlappingKeys(t *testing.T) {
	dir := t.TempDir()
	a := writeChunk(t, dir, "a", []*postings.Record{
		rec(0, postings.Pair{SecKey: 1, Weight: 1}),
		rec(2, postings.Pair{SecKey: 9, Weight: 1}),
	}, postings.WeightUint)
	b := writeChunk(t, dir, "b", []*postings.Record{
		rec(1, postings.Pair{SecKey: 4, Weight: 1}),
		rec(2, postings.Pair{SecKey: 9, Weight: 2}, postings.Pair{SecKey: 10, Weight: 1}),
	}, postings.WeightUint)

	out := filepath.Join(dir, "merged")
	require.NoError(t, mergeTwo(a, b, out, postings.WeightUint))

	f, r, err := openChunkReader(out)
	require.NoError(t, err)
	defer f.Close()

	var got []*postings.Record
	for {
		rc, ok, err := readChunkRecord(r, postings.WeightUint)
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rc)
	}
	require.Len(t, got, 3)
	require.Equal(t, uint64(0), got[0].PrimaryKey())
	require.Equal(t, uint64(1), got[1].PrimaryKey())
	require.Equal(t, uint64(2), got[2].PrimaryKey())
	require.Equal(t, []postings.Pair{{SecKey: 9, Weight: 3}, {SecKey: 10, Weight: 1}}, got[2].Counts())
}

func TestMergeAllReducesToOneChunk(t *testing.T) {
	dir := t.TempDir()
	chunks := []string{
		writeChunk(t, dir, "c0", []*postings.Record{rec(0, postings.Pair{SecKey: 1, Weight: 1})}, postings.WeightUint),
		writeChunk(t, dir, "c1", []*postings.Record{rec(1, postings.Pair{SecKey: 2, Weight: 1})}, postings.WeightUint),
		writeChunk(t, dir, "c2", []*postings.Record{rec(2, postings.Pair{SecKey: 3, Weight: 1})}, postings.WeightUint),
	}

	survivor, err := mergeAll(dir, chunks, postings.WeightUint, nil)
	require.NoError(t, err)

	f, r, err := openChunkReader(survivor)
	require.NoError(t, err)
	defer f.Close()

	var seen []uint64
	for {
		rc, ok, err := readChunkRecord(r, postings.WeightUint)
		require.NoError(t, err)
		if !ok {
			break
		}
		seen = append(seen, rc.PrimaryKey())
	}
	require.Equal(t, []uint64{0, 1, 2}, seen)
}

func TestCompressPassFillsGapsDensely(t *testing.T) {
	dir := t.TempDir()
	chunk := writeChunk(t, dir, "survivor", []*postings.Record{
		rec(0, postings.Pair{SecKey: 1, Weight: 1}),
		rec(3, postings.Pair{SecKey: 2, Weight: 1}),
	}, postings.WeightUint)

	stem := filepath.Join(dir, "final")
	require.NoError(t, CompressPass(chunk, stem, 4, postings.WeightUint))

	pf, err := postings.Open(stem, postings.WeightUint)
	require.NoError(t, err)
	defer pf.Close()

	require.Equal(t, 4, pf.NumKeys())
	for pk, wantEmpty := range map[uint64]bool{0: false, 1: true, 2: true, 3: false} {
		got, err := pf.Find(pk)
		require.NoError(t, err)
		require.Equal(t, wantEmpty, len(got.Counts()) == 0)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	stem := filepath.Join(dir, "forward")

	shard0 := make(chan Triple)
	shard1 := make(chan Triple)
	go func() {
		shard0 <- Triple{Doc: 0, Term: 10, Count: 1}
		shard0 <- Triple{Doc: 0, Term: 12, Count: 1}
		close(shard0)
	}()
	go func() {
		shard1 <- Triple{Doc: 1, Term: 10, Count: 2}
		close(shard1)
	}()

	opts := Options{
		Dir:            dir,
		NumProducers:   2,
		SpillThreshold: 64,
		Kind:           postings.WeightUint,
		NumKeys:        2,
	}
	err := Run(context.Background(), opts,
		[]<-chan Triple{shard0, shard1}, stem)
	require.NoError(t, err)

	pf, err := postings.Open(stem, postings.WeightUint)
	require.NoError(t, err)
	defer pf.Close()

	d0, err := pf.Find(0)
	require.NoError(t, err)
	require.Equal(t, []postings.Pair{{SecKey: 10, Weight: 1}, {SecKey: 12, Weight: 1}}, d0.Counts())

	d1, err := pf.Find(1)
	require.NoError(t, err)
	require.Equal(t, []postings.Pair{{SecKey: 10, Weight: 2}}, d1.Counts())
}
