package ranker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPivotedLengthMatchesReferenceFormula(t *testing.T) {
	r := NewPivotedLength(0.2)
	d := ScoreData{
		TermFreqInDoc:   3,
		DocLen:          120,
		AvgDocLen:       100,
		NumDocs:         1000,
		DocFreq:         10,
		QueryTermWeight: 1,
	}
	tf := 1 + math.Log(1+math.Log(d.TermFreqInDoc))
	norm := (1 - r.S) + r.S*(d.DocLen/d.AvgDocLen)
	idf := math.Log((d.NumDocs + 1) / (0.5 + d.DocFreq))
	want := (tf / norm) * d.QueryTermWeight * idf

	require.InDelta(t, want, r.ScoreOne(d), 1e-12)
}

func TestPivotedLengthZeroTermFreqScoresZero(t *testing.T) {
	r := NewPivotedLength(0.2)
	require.Equal(t, float64(0), r.ScoreOne(ScoreData{TermFreqInDoc: 0, DocLen: 10, AvgDocLen: 10, NumDocs: 5, DocFreq: 1}))
}

func TestOkapiBM25RewardsHigherTermFrequency(t *testing.T) {
	r := NewOkapiBM25(1.2, 0.75, 0)
	base := ScoreData{DocLen: 100, AvgDocLen: 100, NumDocs: 1000, DocFreq: 50, QueryTermWeight: 1}

	low := base
	low.TermFreqInDoc = 1
	high := base
	high.TermFreqInDoc = 10

	require.Greater(t, r.ScoreOne(high), r.ScoreOne(low))
}

func TestOkapiBM25PenalizesLongerDocuments(t *testing.T) {
	r := NewOkapiBM25(1.2, 0.75, 0)
	base := ScoreData{TermFreqInDoc: 3, AvgDocLen: 100, NumDocs: 1000, DocFreq: 50, QueryTermWeight: 1}

	short := base
	short.DocLen = 50
	long := base
	long.DocLen = 500

	require.Greater(t, r.ScoreOne(short), r.ScoreOne(long))
}

func TestJelinekMercerInterpolatesTowardCollectionModel(t *testing.T) {
	zero := NewJelinekMercer(0)   // pure maximum likelihood
	full := NewJelinekMercer(1.0) // pure collection model

	d := ScoreData{
		TermFreqInDoc:   5,
		DocLen:          50,
		AvgDocLen:       100,
		NumDocs:         10,
		CorpusTermFreq:  20,
		QueryTermWeight: 1,
	}

	pml := d.TermFreqInDoc / d.DocLen
	pColl := collectionProb(d)
	require.InDelta(t, math.Log(pml), zero.ScoreOne(d), 1e-12)
	require.InDelta(t, math.Log(pColl), full.ScoreOne(d), 1e-12)
}

func TestDirichletPriorApproachesMLAsMuShrinks(t *testing.T) {
	d := ScoreData{TermFreqInDoc: 4, DocLen: 40, AvgDocLen: 40, NumDocs: 10, CorpusTermFreq: 4, QueryTermWeight: 1}
	tiny := NewDirichletPrior(1e-9)
	pml := math.Log(d.TermFreqInDoc / d.DocLen)
	require.InDelta(t, pml, tiny.ScoreOne(d), 1e-6)
}

func TestAbsoluteDiscountDefaultsDelta(t *testing.T) {
	r := NewAbsoluteDiscount(0)
	require.Equal(t, 0.7, r.Delta)
}

func TestTopKReturnsDescendingBoundedSet(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(1, 5)
	acc.Add(2, 9)
	acc.Add(3, 1)
	acc.Add(4, 7)

	hits := TopK(acc, 2)
	require.Equal(t, []Hit{{Doc: 2, Score: 9}, {Doc: 4, Score: 7}}, hits)
}

func TestTopKHandlesFewerCandidatesThanK(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(1, 1)
	require.Equal(t, []Hit{{Doc: 1, Score: 1}}, TopK(acc, 5))
}

func TestMergeIntoCombinesThreadLocalAccumulators(t *testing.T) {
	a := NewAccumulator()
	a.Add(1, 1)
	b := NewAccumulator()
	b.Add(1, 2)
	b.Add(2, 5)

	dst := NewAccumulator()
	MergeInto(dst, a, b)

	require.Equal(t, float64(3), dst[1])
	require.Equal(t, float64(5), dst[2])
}
