package analyzer

import (
	"sort"
	"strings"
	"unicode"
)

// Keyword 是一条词频统计结果
type Keyword struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "that": {},
	"this": {}, "are": {}, "was": {}, "has": {}, "have": {}, "its": {},
	"into": {}, "over": {}, "after": {}, "will": {}, "how": {}, "why": {},
	"what": {}, "you": {}, "your": {}, "not": {}, "but": {}, "can": {},
	"all": {}, "more": {}, "says": {}, "said": {}, "than": {}, "their": {},
	"they": {}, "about": {}, "amid": {},
}

// tokenize 把文本切成小写的字母数字 token
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// keywordTokens 过滤掉过短的 token 与停用词
func keywordTokens(s string) []string {
	toks := tokenize(s)
	out := toks[:0]
	for _, t := range toks {
		if len(t) <= 2 {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TopKeywords 对一批标题做全量词频统计，返回前 n 个。
// 按出现次数倒序，次数相同时按首次出现顺序。无状态：每次调用都从头重算。
func TopKeywords(titles []string, n int) []Keyword {
	counts := make(map[string]int)
	order := make([]string, 0, 64)

	for _, title := range titles {
		for _, tok := range keywordTokens(title) {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	out := make([]Keyword, 0, len(order))
	for _, term := range order {
		out = append(out, Keyword{Term: term, Count: counts[term]})
	}
	// 稳定排序保证同频词维持首次出现顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
