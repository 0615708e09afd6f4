package types

// TokenMeta is one token produced by a Segmentor or Tokenizer, carrying
// whatever per-token metadata a Filter wants to stash and read back.
type TokenMeta interface {
	Token() string
	SetToken(string)
	GetMeta(interface{}) interface{}
	SetMeta(interface{}, interface{})
	Copy() TokenMeta
}

// Tokenizer turns raw text into a filtered token stream: a Segmentor does
// the initial cut, then each registered Filter runs in order.
type Tokenizer interface {
	Analyze(string) []TokenMeta
	UseSegmentor(Segmentor)
	UseFilter(Filter)
}

// Segmentor performs the initial text -> token cut, before filters run.
type Segmentor interface {
	Cut(text string) []TokenMeta
}

// Filter transforms a token sequence (drop, stem, lowercase, ...).
type Filter interface {
	Gen([]TokenMeta) []TokenMeta
}
