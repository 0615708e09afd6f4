// Package ranker scores candidate documents against a query. A Ranker
// is a tagged union over the known scoring variants rather than an
// interface per variant: the variants share the same ScoreData shape
// and differ only in a handful of parameters, so a closed switch keeps
// the dispatch in one place instead of scattering five tiny types.
package ranker

import "math"

// ScoreData carries everything a scoring kernel needs for one
// (query term, candidate document) pair during accumulation.
type ScoreData struct {
	Doc             uint64
	Term            uint64
	TermFreqInDoc   float64
	DocLen          float64
	AvgDocLen       float64
	NumDocs         float64
	DocFreq         float64
	QueryTermWeight float64
	CorpusTermFreq  float64
}

// Kind names a known scoring variant.
type Kind int

const (
	AbsoluteDiscount Kind = iota
	DirichletPrior
	JelinekMercer
	PivotedLength
	OkapiBM25
)

func (k Kind) String() string {
	switch k {
	case AbsoluteDiscount:
		return "absolute_discount"
	case DirichletPrior:
		return "dirichlet_prior"
	case JelinekMercer:
		return "jelinek_mercer"
	case PivotedLength:
		return "pivoted_length"
	case OkapiBM25:
		return "okapi_bm25"
	default:
		return "unknown"
	}
}

// Ranker holds one variant's parameters. Only the fields relevant to
// Kind are read; the rest are ignored.
type Ranker struct {
	Kind Kind

	Delta float64 // AbsoluteDiscount, delta in (0,1], default 0.7
	Mu    float64 // DirichletPrior
	Lambda float64 // JelinekMercer

	S float64 // PivotedLength, default 0.2

	K1 float64 // OkapiBM25
	B  float64 // OkapiBM25
	K3 float64 // OkapiBM25
}

func NewAbsoluteDiscount(delta float64) Ranker {
	if delta <= 0 || delta > 1 {
		delta = 0.7
	}
	return Ranker{Kind: AbsoluteDiscount, Delta: delta}
}

func NewDirichletPrior(mu float64) Ranker {
	return Ranker{Kind: DirichletPrior, Mu: mu}
}

func NewJelinekMercer(lambda float64) Ranker {
	return Ranker{Kind: JelinekMercer, Lambda: lambda}
}

func NewPivotedLength(s float64) Ranker {
	if s == 0 {
		s = 0.2
	}
	return Ranker{Kind: PivotedLength, S: s}
}

func NewOkapiBM25(k1, b, k3 float64) Ranker {
	return Ranker{Kind: OkapiBM25, K1: k1, B: b, K3: k3}
}

// isLanguageModel reports whether Kind scores by a smoothed probability
// of the term under a document language model, as opposed to a direct
// vector-space/probabilistic formula.
func (r Ranker) isLanguageModel() bool {
	switch r.Kind {
	case AbsoluteDiscount, DirichletPrior, JelinekMercer:
		return true
	default:
		return false
	}
}

// collectionProb estimates the term's probability under the whole
// collection's language model, using avg doc length * doc count as the
// collection length estimate (ScoreData does not carry the true
// collection length).
func collectionProb(d ScoreData) float64 {
	collLen := d.AvgDocLen * d.NumDocs
	if collLen <= 0 {
		return 0
	}
	return d.CorpusTermFreq / collLen
}

// smoothedProb is the language-model smoothing hook: the probability of
// the term under document d's smoothed model.
func (r Ranker) smoothedProb(d ScoreData) float64 {
	pColl := collectionProb(d)
	switch r.Kind {
	case AbsoluteDiscount:
		if d.DocLen <= 0 {
			return 0
		}
		discounted := math.Max(d.TermFreqInDoc-r.Delta, 0) / d.DocLen
		return discounted + r.docConstant(d)*pColl
	case DirichletPrior:
		return (d.TermFreqInDoc + r.Mu*pColl) / (d.DocLen + r.Mu)
	case JelinekMercer:
		pml := 0.0
		if d.DocLen > 0 {
			pml = d.TermFreqInDoc / d.DocLen
		}
		return (1-r.Lambda)*pml + r.Lambda*pColl
	default:
		return 0
	}
}

// docConstant is the language-model smoothing hook: the probability
// mass this document's model assigns to the collection model.
func (r Ranker) docConstant(d ScoreData) float64 {
	switch r.Kind {
	case AbsoluteDiscount:
		if d.DocLen <= 0 {
			return 0
		}
		return r.Delta / d.DocLen
	case DirichletPrior:
		return r.Mu / (d.DocLen + r.Mu)
	case JelinekMercer:
		return r.Lambda
	default:
		return 0
	}
}

// ScoreOne is the kernel's one capability every variant implements: the
// partial score one query term contributes for one candidate document.
func (r Ranker) ScoreOne(d ScoreData) float64 {
	switch {
	case r.isLanguageModel():
		p := r.smoothedProb(d)
		if p <= 0 {
			return 0
		}
		return d.QueryTermWeight * math.Log(p)
	case r.Kind == PivotedLength:
		return r.scorePivotedLength(d)
	case r.Kind == OkapiBM25:
		return r.scoreOkapiBM25(d)
	default:
		return 0
	}
}

func (r Ranker) scorePivotedLength(d ScoreData) float64 {
	if d.TermFreqInDoc <= 0 {
		return 0
	}
	tf := 1 + math.Log(1+math.Log(d.TermFreqInDoc))
	norm := (1 - r.S) + r.S*(d.DocLen/d.AvgDocLen)
	if norm <= 0 {
		return 0
	}
	idf := math.Log((d.NumDocs + 1) / (0.5 + d.DocFreq))
	return (tf / norm) * d.QueryTermWeight * idf
}

func (r Ranker) scoreOkapiBM25(d ScoreData) float64 {
	if d.TermFreqInDoc <= 0 {
		return 0
	}
	idf := math.Log((d.NumDocs-d.DocFreq+0.5)/(d.DocFreq+0.5) + 1)

	qw := d.QueryTermWeight
	if r.K3 > 0 {
		qw = ((r.K3 + 1) * qw) / (r.K3 + qw)
	}

	norm := r.K1 * (1 - r.B + r.B*(d.DocLen/d.AvgDocLen))
	tfComponent := ((r.K1 + 1) * d.TermFreqInDoc) / (norm + d.TermFreqInDoc)

	return qw * idf * tfComponent
}
