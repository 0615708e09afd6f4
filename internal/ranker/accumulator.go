package ranker

// Accumulator is a sparse map from doc id to running score. Query
// scoring allocates one per worker (thread-local) while iterating a
// query term's postings stream, then a single owner reduces every
// worker's accumulator into one before extracting the top-k.
type Accumulator map[uint64]float64

func NewAccumulator() Accumulator {
	return make(Accumulator)
}

// Add folds delta into doc's running score.
func (a Accumulator) Add(doc uint64, delta float64) {
	a[doc] += delta
}

// MergeInto adds every entry of a into dst, leaving a untouched. It is
// the reduce step that combines thread-local accumulators under a
// single owner once every worker has finished its share of query terms.
func MergeInto(dst Accumulator, parts ...Accumulator) {
	for _, part := range parts {
		for doc, score := range part {
			dst[doc] += score
		}
	}
}
