package ranker

import "container/heap"

// Hit is one scored document, as extracted from an Accumulator.
type Hit struct {
	Doc   uint64
	Score float64
}

// hitHeap is a min-heap by score: the root is the weakest hit currently
// kept, so a bounded top-k collector can evict it in O(log k) when a
// stronger candidate arrives.
type hitHeap []Hit

func (h hitHeap) Len() int            { return len(h) }
func (h hitHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h hitHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *hitHeap) Push(x interface{}) { *h = append(*h, x.(Hit)) }
func (h *hitHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopK extracts the k highest-scoring documents from acc using a
// bounded min-heap: memory is O(k) regardless of how many documents
// were scored. Results are returned in descending score order.
func TopK(acc Accumulator, k int) []Hit {
	if k <= 0 {
		return nil
	}
	h := make(hitHeap, 0, k)
	heap.Init(&h)
	for doc, score := range acc {
		if h.Len() < k {
			heap.Push(&h, Hit{Doc: doc, Score: score})
			continue
		}
		if score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, Hit{Doc: doc, Score: score})
		}
	}

	out := make([]Hit, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Hit)
	}
	return out
}
