package cn

import (
	"fts/internal/types"

	"github.com/yanyiwu/gojieba"
)

// token is the plain TokenMeta implementation segments coming out of
// gojieba are wrapped in; it carries no extra metadata.
type token struct {
	text string
}

func (t *token) Token() string                   { return t.text }
func (t *token) SetToken(s string)                { t.text = s }
func (t *token) SetMeta(interface{}, interface{}) {}
func (t *token) GetMeta(interface{}) interface{}  { return nil }
func (t *token) Copy() types.TokenMeta            { return &token{text: t.text} }

// JiebaSegmentor is a types.Segmentor backed by gojieba's search-mode
// cut, for mixed-language corpora where CJK text needs segmentation
// before the usual filter chain (stopwords, pause-word splitting) runs.
type JiebaSegmentor struct {
	jieba *gojieba.Jieba
}

func NewJiebaSegmentor() *JiebaSegmentor {
	return &JiebaSegmentor{jieba: gojieba.NewJieba()}
}

// Close releases the underlying CGO dictionary. Callers that build a
// JiebaSegmentor for the lifetime of a build or query process may skip
// calling it; it exists for short-lived uses (tests, one-shot CLI runs).
func (s *JiebaSegmentor) Close() {
	s.jieba.Free()
}

func (s *JiebaSegmentor) Cut(text string) []types.TokenMeta {
	words := s.jieba.CutForSearch(text, true)
	tokens := make([]types.TokenMeta, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, &token{text: w})
	}
	return tokens
}
