package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/luoran06/PairLog/internal/schema"
)

// EmotionSummary 单个用户一段日期内的情绪统计
// 三个百分比在有有效情绪时相加约等于 100（四舍五入容差 ±1），无数据时全为 0。
type EmotionSummary struct {
	PositivePct int      `json:"positive_pct"`
	NegativePct int      `json:"negative_pct"`
	NeutralPct  int      `json:"neutral_pct"`
	TopEmotions []string `json:"top_emotions"` // 按出现次数降序，最多 5 个
}

// DiaryStats 日记量化统计
type DiaryStats struct {
	TotalEntries     int      `json:"total_entries"`
	DaysActive       int      `json:"days_active"` // 去重后的日期数，恒 ≤ TotalEntries
	AvgWordsPerEntry int      `json:"avg_words_per_entry"`
	Keywords         []string `json:"keywords"` // 最多 5 个
}

// maxTopEmotions 报告里只展示前 5 个情绪标签
const maxTopEmotions = 5

// SummarizeEmotions 聚合一段日期内所有条目的情绪
// 每条日记的情绪字段可能是数组：一条带 3 个标签的日记贡献 3 次计数。
// 无法归一化的标签直接跳过。
func SummarizeEmotions(entries []schema.DiaryEntry) EmotionSummary {
	polarityCounts := map[string]int{}
	emotionCounts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0
	total := 0

	for i := range entries {
		for _, raw := range DecodeRawEmotions(&entries[i]) {
			canonical, ok := NormalizeEmotion(raw)
			if !ok {
				continue
			}
			polarity, ok := PolarityOf(canonical)
			if !ok {
				continue
			}
			if _, seen := emotionCounts[canonical]; !seen {
				firstSeen[canonical] = order
				order++
			}
			emotionCounts[canonical]++
			polarityCounts[polarity]++
			total++
		}
	}

	if total == 0 {
		return EmotionSummary{TopEmotions: []string{}}
	}

	labels := make([]string, 0, len(emotionCounts))
	for label := range emotionCounts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if emotionCounts[labels[i]] != emotionCounts[labels[j]] {
			return emotionCounts[labels[i]] > emotionCounts[labels[j]]
		}
		return firstSeen[labels[i]] < firstSeen[labels[j]]
	})
	if len(labels) > maxTopEmotions {
		labels = labels[:maxTopEmotions]
	}

	return EmotionSummary{
		PositivePct: roundPct(polarityCounts[PolarityPositive], total),
		NegativePct: roundPct(polarityCounts[PolarityNegative], total),
		NeutralPct:  roundPct(polarityCounts[PolarityNeutral], total),
		TopEmotions: labels,
	}
}

// BuildDiaryStats 统计条目数、活跃天数、平均字数与关键词
func BuildDiaryStats(entries []schema.DiaryEntry) DiaryStats {
	stats := DiaryStats{
		TotalEntries: len(entries),
		Keywords:     []string{},
	}
	if len(entries) == 0 {
		return stats
	}

	days := map[string]struct{}{}
	texts := make([]string, 0, len(entries))
	totalWords := 0
	for i := range entries {
		days[entries[i].Date] = struct{}{}
		texts = append(texts, entries[i].Text)
		totalWords += len(strings.Fields(entries[i].Text))
	}

	stats.DaysActive = len(days)
	stats.AvgWordsPerEntry = int(math.Round(float64(totalWords) / float64(len(entries))))
	stats.Keywords = ExtractKeywords(texts, DefaultKeywordLimit)
	return stats
}

// PerDateEmotion 把条目列表折成 日期→单个规范情绪 的映射（伴侣分析的输入）
// 一天多个标签时取按字段优先级解出的第一个可归一化标签。
func PerDateEmotion(entries []schema.DiaryEntry) map[string]string {
	out := make(map[string]string, len(entries))
	for i := range entries {
		if _, exists := out[entries[i].Date]; exists {
			continue
		}
		for _, raw := range DecodeRawEmotions(&entries[i]) {
			if canonical, ok := NormalizeEmotion(raw); ok {
				out[entries[i].Date] = canonical
				break
			}
		}
	}
	return out
}

// roundPct 四舍五入的百分比；total 为 0 时恒为 0
func roundPct(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
