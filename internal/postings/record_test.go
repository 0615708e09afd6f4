package postings

import (
	"bytes"
	"fts/internal/codec"
	"fts/internal/postingserr"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordSetCountsSortsAndDedupes(t *testing.T) {
	r := New(7)
	r.SetCounts([]Pair{
		{SecKey: 5, Weight: 1},
		{SecKey: 1, Weight: 2},
		{SecKey: 5, Weight: 3},
	})
	require.Equal(t, []Pair{{SecKey: 1, Weight: 2}, {SecKey: 5, Weight: 4}}, r.Counts())
	require.Equal(t, float64(2), r.Count(1))
	require.Equal(t, float64(4), r.Count(5))
	require.Equal(t, float64(0), r.Count(99))
}

func TestRecordIncreaseCountInsertsInOrder(t *testing.T) {
	r := New(0)
	r.IncreaseCount(10, 1)
	r.IncreaseCount(2, 1)
	r.IncreaseCount(10, 2)
	r.IncreaseCount(6, 5)
	require.Equal(t, []Pair{
		{SecKey: 2, Weight: 1},
		{SecKey: 6, Weight: 5},
		{SecKey: 10, Weight: 3},
	}, r.Counts())
}

func TestRecordMergeWithUnionsAndSumsOverlap(t *testing.T) {
	a := New(3)
	a.SetCounts([]Pair{{SecKey: 1, Weight: 1}, {SecKey: 3, Weight: 2}})
	b := New(99) // primary key on other side is ignored by MergeWith
	b.SetCounts([]Pair{{SecKey: 2, Weight: 5}, {SecKey: 3, Weight: 4}})

	a.MergeWith(b)

	require.Equal(t, uint64(3), a.PrimaryKey())
	require.Equal(t, []Pair{
		{SecKey: 1, Weight: 1},
		{SecKey: 2, Weight: 5},
		{SecKey: 3, Weight: 6},
	}, a.Counts())
}

func TestRecordTotalWeight(t *testing.T) {
	r := New(0)
	r.SetCounts([]Pair{{SecKey: 1, Weight: 1.5}, {SecKey: 2, Weight: 2.5}})
	require.Equal(t, float64(4), r.TotalWeight())
}

func TestRecordWritePackedReadPackedRoundTrip(t *testing.T) {
	r := New(42)
	r.SetCounts([]Pair{{SecKey: 10, Weight: 1}, {SecKey: 12, Weight: 2}, {SecKey: 100, Weight: 3}})

	var buf bytes.Buffer
	require.NoError(t, r.WritePacked(codec.NewWriter(&buf), WeightUint))

	// The gap between secondary keys 10 and 12 encodes as a single byte
	// once the absolute first key is subtracted.
	got, ok, err := ReadPacked(codec.NewReader(&buf), r.PrimaryKey(), WeightUint)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, r.PrimaryKey(), got.PrimaryKey())
	require.Equal(t, r.Counts(), got.Counts())
}

func TestRecordWritePackedReadPackedDoubleWeights(t *testing.T) {
	r := New(1)
	r.SetCounts([]Pair{{SecKey: 0, Weight: 0.5}, {SecKey: 4, Weight: -1.25}})

	var buf bytes.Buffer
	require.NoError(t, r.WritePacked(codec.NewWriter(&buf), WeightDouble))

	got, ok, err := ReadPacked(codec.NewReader(&buf), r.PrimaryKey(), WeightDouble)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, r.Counts(), got.Counts())
}

func TestReadPackedCleanEOF(t *testing.T) {
	rec, ok, err := ReadPacked(codec.NewReader(&bytes.Buffer{}), 0, WeightUint)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, rec)
}

func TestReadPackedEmptyRecord(t *testing.T) {
	r := New(5)
	var buf bytes.Buffer
	require.NoError(t, r.WritePacked(codec.NewWriter(&buf), WeightUint))

	got, ok, err := ReadPacked(codec.NewReader(&buf), 5, WeightUint)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, got.Counts())
}

func TestReadPackedMidRecordTruncationIsCorrupt(t *testing.T) {
	r := New(0)
	r.SetCounts([]Pair{{SecKey: 1, Weight: 1}, {SecKey: 2, Weight: 1}})
	var buf bytes.Buffer
	require.NoError(t, r.WritePacked(codec.NewWriter(&buf), WeightUint))

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-1])
	_, _, err := ReadPacked(codec.NewReader(truncated), 0, WeightUint)
	require.Error(t, err)
	var corrupt *postingserr.CorruptError
	require.ErrorAs(t, err, &corrupt)
}

func TestRecordShrinkReleasesCapacity(t *testing.T) {
	r := New(0)
	r.IncreaseCount(1, 1)
	r.IncreaseCount(2, 1)
	r.IncreaseCount(3, 1)
	require.Greater(t, cap(r.Counts()), 0)
	r.Shrink()
	require.Equal(t, len(r.Counts()), cap(r.Counts()))
}
