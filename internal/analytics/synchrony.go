package analytics

// SynchronyThresholds 同步率/支持率的定性判读阈值（策略常量，可由配置覆盖）
// 高于 strong 记为优势，低于 weak 记为关注点，区间内不产出标签。
type SynchronyThresholds struct {
	SyncStrong    int `json:"sync_strong"`
	SyncWeak      int `json:"sync_weak"`
	SupportStrong int `json:"support_strong"`
	SupportWeak   int `json:"support_weak"`
}

// DefaultSynchronyThresholds 默认阈值
func DefaultSynchronyThresholds() SynchronyThresholds {
	return SynchronyThresholds{
		SyncStrong:    70,
		SyncWeak:      30,
		SupportStrong: 40,
		SupportWeak:   20,
	}
}

// CoupleInteraction 双方重叠日期上的互动统计
// 只统计双方都有记录的日期；没有重叠时两个百分比都是 0，OverlapDays 为 0。
type CoupleInteraction struct {
	SynchronyPct int      `json:"synchrony_pct"`
	SupportPct   int      `json:"support_pct"`
	OverlapDays  int      `json:"overlap_days"`
	Strengths    []string `json:"strengths"`
	Concerns     []string `json:"concerns"`
}

// AnalyzeSynchrony 计算伴侣情绪同步率与支持机会率
// 对 dates 中双方都有情绪的日期：两侧序数分差 ≤1 记同步；
// 一侧 ≤2 且另一侧 ≥4 记一次支持机会（注意是"机会"，不代表支持实际发生）。
// 对两个参数对称：AnalyzeSynchrony(a,b) == AnalyzeSynchrony(b,a)。
func AnalyzeSynchrony(a, b map[string]string, dates []string, th SynchronyThresholds) CoupleInteraction {
	syncCount := 0
	supportCount := 0
	totalDays := 0

	for _, date := range dates {
		emoA, okA := a[date]
		emoB, okB := b[date]
		if !okA || !okB {
			continue
		}
		scoreA, okA := OrdinalScore(emoA)
		scoreB, okB := OrdinalScore(emoB)
		if !okA || !okB {
			continue
		}
		totalDays++

		diff := scoreA - scoreB
		if diff < 0 {
			diff = -diff
		}
		if diff <= 1 {
			syncCount++
		}

		low, high := scoreA, scoreB
		if low > high {
			low, high = high, low
		}
		if low <= 2 && high >= 4 {
			supportCount++
		}
	}

	out := CoupleInteraction{
		SynchronyPct: roundPct(syncCount, totalDays),
		SupportPct:   roundPct(supportCount, totalDays),
		OverlapDays:  totalDays,
		Strengths:    []string{},
		Concerns:     []string{},
	}
	if totalDays == 0 {
		return out
	}

	switch {
	case out.SynchronyPct > th.SyncStrong:
		out.Strengths = append(out.Strengths, "两人的情绪节奏高度同步，容易彼此共情")
	case out.SynchronyPct < th.SyncWeak:
		out.Concerns = append(out.Concerns, "两人的情绪节奏差异较大，留意对方的状态变化")
	}
	switch {
	case out.SupportPct > th.SupportStrong:
		out.Strengths = append(out.Strengths, "一方低落时另一方状态较好，有充足的相互支撑空间")
	case out.SupportPct < th.SupportWeak:
		out.Concerns = append(out.Concerns, "低谷期往往同时出现，需要留意共同的情绪消耗")
	}
	return out
}
