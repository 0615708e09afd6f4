package postings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, records map[uint64][]Pair, numKeys uint64, kind WeightKind) string {
	t.Helper()
	stem := filepath.Join(t.TempDir(), "postings")
	w, err := NewWriter(stem, numKeys, kind, 0)
	require.NoError(t, err)

	for pk := uint64(0); pk < numKeys; pk++ {
		pairs, present := records[pk]
		if !present {
			continue // Close backfills it as an empty placeholder
		}
		rec := New(pk)
		rec.SetCounts(pairs)
		require.NoError(t, w.WriteRecord(rec))
	}
	require.NoError(t, w.Close())
	return stem
}

func TestWriterFileRoundTrip(t *testing.T) {
	stem := writeFixture(t, map[uint64][]Pair{
		0: {{SecKey: 10, Weight: 1}, {SecKey: 12, Weight: 2}},
		2: {{SecKey: 100, Weight: 3}},
	}, 3, WeightUint)

	f, err := Open(stem, WeightUint)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, 3, f.NumKeys())

	rec0, err := f.Find(0)
	require.NoError(t, err)
	require.Equal(t, []Pair{{SecKey: 10, Weight: 1}, {SecKey: 12, Weight: 2}}, rec0.Counts())

	rec1, err := f.Find(1)
	require.NoError(t, err)
	require.Empty(t, rec1.Counts())

	rec2, err := f.Find(2)
	require.NoError(t, err)
	require.Equal(t, []Pair{{SecKey: 100, Weight: 3}}, rec2.Counts())
}

func TestFileFindOutOfRangeReturnsEmptyRecordNotError(t *testing.T) {
	stem := writeFixture(t, map[uint64][]Pair{0: {{SecKey: 1, Weight: 1}}}, 1, WeightUint)

	f, err := Open(stem, WeightUint)
	require.NoError(t, err)
	defer f.Close()

	rec, err := f.Find(5)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Empty(t, rec.Counts())

	s, ok, err := f.FindStream(5)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, s)
}

func TestFileFindStreamDecodesLazily(t *testing.T) {
	stem := writeFixture(t, map[uint64][]Pair{
		1: {{SecKey: 3, Weight: 9}, {SecKey: 7, Weight: 4}},
	}, 2, WeightUint)

	f, err := Open(stem, WeightUint)
	require.NoError(t, err)
	defer f.Close()

	s, ok, err := f.FindStream(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, s.Size())

	p1, ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Pair{SecKey: 3, Weight: 9}, p1)

	p2, ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Pair{SecKey: 7, Weight: 4}, p2)

	_, ok, err = s.Next()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Close())
}

func TestWriterGapEncodedRecordRoundTrips(t *testing.T) {
	// term at primary key 0 appears in docs 10, 12, 100 with counts
	// 1.0, 2.0, 3.0; the on-disk gaps are 10, 2, 88.
	stem := writeFixture(t, map[uint64][]Pair{
		0: {{SecKey: 10, Weight: 1}, {SecKey: 12, Weight: 2}, {SecKey: 100, Weight: 3}},
	}, 1, WeightDouble)

	f, err := Open(stem, WeightDouble)
	require.NoError(t, err)
	defer f.Close()

	rec, err := f.Find(0)
	require.NoError(t, err)
	require.Equal(t, []Pair{
		{SecKey: 10, Weight: 1},
		{SecKey: 12, Weight: 2},
		{SecKey: 100, Weight: 3},
	}, rec.Counts())
}
