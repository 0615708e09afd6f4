package cn

import (
	"fts/internal/common"
	"fts/internal/types"
	"strings"
)

var pause = []string{"但是", "而且", "所以", "因此", "然而", "不过", "于是"}

type PauseFilter struct {
}

func (pf *PauseFilter) Gen(token []types.TokenMeta) (res []types.TokenMeta) {

	for _, v := range token {
		for _, p := range pause {
			if idx := strings.Index(v.Token(), p); idx != -1 {
				//匹配暂停词一次
				t := v.Copy()
				t.SetToken(v.Token()[:idx])
				res = append(res, t)
				t = v.Copy()
				t.SetToken(v.Token()[idx+len(p):])
				res = append(res, t)
				goto n
			}
		}
		res = append(res, v)
	n:
	}

	return
}

func loadPauseWord() {
	common.DINFO("cn: loaded %d pause words", len(pause))
}
