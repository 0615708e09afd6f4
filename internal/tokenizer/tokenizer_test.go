package tokenizer

import (
	"fts/internal/filter/cn"
	"fts/internal/filter/en"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZhTokenizerSegmentsWithJieba(t *testing.T) {
	seg := cn.NewJiebaSegmentor()
	defer seg.Close()

	zh := ZhTokenizer{}
	zh.UseSegmentor(seg)
	zh.UseFilter(&cn.StopWordFilter{})

	tokens := zh.Analyze("据每日人物报道，一份检举税收违法行为受理回执显示")
	require.NotEmpty(t, tokens)
	for _, tok := range tokens {
		require.NotEmpty(t, tok.Token())
	}
}

func TestZhTokenizerFallsBackToParagraphSplitWithoutSegmentor(t *testing.T) {
	zh := ZhTokenizer{}
	tokens := zh.Analyze("第一段\r\n第二段")
	require.Len(t, tokens, 2)
	require.Equal(t, "第一段", tokens[0].Token())
	require.Equal(t, "第二段", tokens[1].Token())
}

func TestEnTokenizerRunsFilterChain(t *testing.T) {
	enz := Tokenizer{}
	enz.UseFilter(en.LowercaseFilter{})
	enz.UseFilter(en.StopWordFilter{})

	tokens := enz.Analyze("The Quick Brown Fox")
	require.NotEmpty(t, tokens)
	for _, tok := range tokens {
		require.Equal(t, tok.Token(), tokenToLower(tok.Token()))
		require.NotEqual(t, "the", tok.Token())
	}
}

func tokenToLower(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func TestPosTagTokenizerSplitsOnNonLetters(t *testing.T) {
	ntz := NewPosTagTokenizer()
	tokens := ntz.Analyze("hello, world")
	require.NotEmpty(t, tokens)
}
