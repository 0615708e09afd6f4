// Package dic holds the stopword dictionaries the filter/en and
// filter/cn packages test tokens against: small in-memory sets built
// from a fixed word list, checked by exact membership.
package dic

import "sync"

// Dic is a membership set over a stopword list.
type Dic struct {
	words map[string]struct{}
}

// TestWords reports whether s is a stopword in this dictionary.
func (d *Dic) TestWords(s string) bool {
	_, ok := d.words[s]
	return ok
}

func newDic(words []string) *Dic {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return &Dic{words: m}
}

var (
	once sync.Once
	dics map[string]*Dic
)

// LoadDic returns the dictionary for lang ("en" or "cn"). An unknown
// lang gets an empty dictionary rather than an error, matching a
// stopword filter's fail-open behavior: an unrecognized language simply
// filters nothing.
func LoadDic(lang string) *Dic {
	once.Do(func() {
		dics = map[string]*Dic{
			"en": newDic(enStopwords),
			"cn": newDic(cnStopwords),
		}
	})
	if d, ok := dics[lang]; ok {
		return d
	}
	return newDic(nil)
}

var enStopwords = []string{
	"a", "and", "be", "have", "i", "has",
	"not", "for", "on", "with", "he", "as", "she",
	"you", "at", "this", "but", "by", "form",
	"in", "of", "that", "the", "to",
}

var cnStopwords = []string{
	"的", "了", "在", "是", "我", "和", "就", "都",
	"而", "及", "与", "也", "又", "这", "那", "之",
	"吗", "呢", "吧", "啊", "哦",
}
