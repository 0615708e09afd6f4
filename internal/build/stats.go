package build

import (
	"fts/internal/postings"
	"fts/internal/ranker"
)

// CorpusStatsFrom scans forward's records once to build the corpus-wide
// statistics the scoring kernel needs: every document's length (total
// term weight) and the collection average. Lengths are cached in a map
// keyed by doc id rather than recomputed per query term. forward may be
// a plain *postings.File or a *postings.CachedFile; either satisfies
// Finder.
func CorpusStatsFrom(forward postings.Finder) (ranker.CorpusStats, error) {
	lens := make(map[uint64]float64, forward.NumKeys())
	var total float64
	for pk := uint64(0); pk < uint64(forward.NumKeys()); pk++ {
		rec, err := forward.Find(pk)
		if err != nil {
			return ranker.CorpusStats{}, err
		}
		l := rec.TotalWeight()
		lens[pk] = l
		total += l
	}
	numDocs := forward.NumKeys()
	avg := 0.0
	if numDocs > 0 {
		avg = total / float64(numDocs)
	}
	return ranker.CorpusStats{
		NumDocs:   numDocs,
		AvgDocLen: avg,
		DocLen:    func(doc uint64) float64 { return lens[doc] },
	}, nil
}

// TermStats reads termID's posting list out of inverted to report its
// document frequency (number of postings) and corpus frequency (total
// weight across all postings), the two aggregates QueryTerm needs
// alongside the query's own per-term weight. Both are read off the
// stream directly (Size for document frequency, TotalCounts for corpus
// frequency) rather than decoding the full record.
func TermStats(inverted postings.Finder, termID uint64) (docFreq, corpusFreq float64, err error) {
	stream, ok, err := inverted.FindStream(termID)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, nil
	}
	defer stream.Close()
	total, err := stream.TotalCounts()
	if err != nil {
		return 0, 0, err
	}
	return float64(stream.Size()), total, nil
}
