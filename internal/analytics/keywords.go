package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultKeywordLimit 关键词默认取前 5 个
const DefaultKeywordLimit = 5

// 关键词提取的停用词表
// 粗粒度的词袋统计：报告里只当"风味"信号用，不做检索，所以表不求全。
var keywordStopwords = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "for": {}, "with": {}, "was": {}, "were": {},
	"are": {}, "is": {}, "am": {}, "be": {}, "been": {}, "had": {}, "has": {},
	"have": {}, "this": {}, "that": {}, "these": {}, "those": {}, "today": {},
	"very": {}, "really": {}, "just": {}, "then": {}, "than": {}, "them": {},
	"they": {}, "you": {}, "your": {}, "our": {}, "out": {}, "about": {},
	"not": {}, "all": {}, "she": {}, "he": {}, "her": {}, "his": {}, "him": {},
	"we": {}, "me": {}, "my": {}, "it": {}, "its": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "as": {}, "so": {}, "did": {}, "do": {},
	"does": {}, "went": {}, "got": {}, "get": {}, "felt": {}, "feel": {},
	"feeling": {}, "day": {}, "when": {}, "what": {}, "because": {}, "from": {},
	"some": {}, "much": {}, "more": {}, "also": {}, "there": {}, "here": {},
	"after": {}, "before": {}, "would": {}, "could": {}, "like": {},
}

// ExtractKeywords 从自由文本中提取高频词
// 换行/空白切分，转小写，逐字符剔除非字母数字，丢弃短于 2 字符或停用词的 token，
// 按出现次数降序取前 topN，次数相同按首次出现顺序。完全确定性。
func ExtractKeywords(texts []string, topN int) []string {
	if topN <= 0 {
		topN = DefaultKeywordLimit
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, text := range texts {
		for _, token := range strings.Fields(text) {
			word := cleanToken(token)
			if len([]rune(word)) < 2 {
				continue
			}
			if _, stop := keywordStopwords[word]; stop {
				continue
			}
			if _, seen := counts[word]; !seen {
				firstSeen[word] = order
				order++
			}
			counts[word]++
		}
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > topN {
		words = words[:topN]
	}
	return words
}

// cleanToken 小写化并剔除所有非字母/数字字符
func cleanToken(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
