package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/luoran06/PairLog/internal/analytics"
)

// 洞察文本的来源分支
const (
	InsightGenerated = "generated"
	InsightFallback  = "fallback"
)

// InsightResult 洞察生成结果
// 显式区分两个分支：LLM 生成 / 本地降级，便于测试断言哪个分支命中。
type InsightResult struct {
	Text   string
	Source string // generated | fallback
	Reason string // 降级原因，generated 时为空
}

// CoupleFacts 伴侣分析的结构化事实
type CoupleFacts struct {
	SynchronyPct   int
	SupportPct     int
	OverlapDays    int
	DynamicsLabel  string
	Strengths      []string
	Concerns       []string
	RiskLevel      string
	ConflictScript []string
}

// InsightFacts 传给 LLM 的结构化事实
// 只带算好的统计与摘要，不带日记原文，控制请求体大小。
type InsightFacts struct {
	StartDate string
	EndDate   string
	Emotion   analytics.EmotionSummary
	Stats     analytics.DiaryStats
	Risk      analytics.RiskAssessment
	Couple    *CoupleFacts // individual 报告为 nil
	Memories  []string     // 历史报告记忆（可选，最多几条）
}

// InsightGenerator 叙述性洞察生成器
// LLM 超时/出错/内容为空时落到确定性的降级模板，从不向调用方抛错。
type InsightGenerator struct {
	client  *DeepSeekClient
	timeout time.Duration
}

// NewInsightGenerator 创建生成器
func NewInsightGenerator(client *DeepSeekClient, timeout time.Duration) *InsightGenerator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &InsightGenerator{client: client, timeout: timeout}
}

// Generate 生成叙述性洞察
func (g *InsightGenerator) Generate(ctx context.Context, facts *InsightFacts) InsightResult {
	if g.client == nil || !g.client.IsConfigured() {
		return fallbackInsight(facts, "API 未配置")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []Message{
		{Role: "system", Content: "你是一位温和务实的关系陪伴助手，帮助用户回顾一段时间的情绪记录。" +
			"只基于提供的统计事实展开，不要编造具体事件。输出纯文本，禁用 markdown。总长度不超过 500 字。"},
		{Role: "user", Content: buildInsightPrompt(facts)},
	}

	text, err := g.client.ChatWithOptions(ctx, messages, 0.6, 900)
	if err != nil {
		slog.Warn("洞察生成失败，使用降级文案", "error", err)
		return fallbackInsight(facts, err.Error())
	}

	text = StripMarkup(text)
	if text == "" {
		slog.Warn("洞察响应为空，使用降级文案")
		return fallbackInsight(facts, "响应内容为空")
	}

	return InsightResult{Text: text, Source: InsightGenerated}
}

// buildInsightPrompt 把结构化事实拼成提示词
func buildInsightPrompt(facts *InsightFacts) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("时间范围: %s 至 %s\n\n", facts.StartDate, facts.EndDate))
	b.WriteString("情绪统计:\n")
	b.WriteString(fmt.Sprintf("- 积极 %d%% / 中性 %d%% / 消极 %d%%\n",
		facts.Emotion.PositivePct, facts.Emotion.NeutralPct, facts.Emotion.NegativePct))
	if len(facts.Emotion.TopEmotions) > 0 {
		b.WriteString(fmt.Sprintf("- 高频情绪: %s\n", strings.Join(facts.Emotion.TopEmotions, "、")))
	}
	b.WriteString(fmt.Sprintf("\n日记统计:\n- 共 %d 篇，覆盖 %d 天，平均每篇约 %d 个词\n",
		facts.Stats.TotalEntries, facts.Stats.DaysActive, facts.Stats.AvgWordsPerEntry))
	if len(facts.Stats.Keywords) > 0 {
		b.WriteString(fmt.Sprintf("- 常见关键词: %s\n", strings.Join(facts.Stats.Keywords, "、")))
	}
	b.WriteString(fmt.Sprintf("\n心理状态评估等级: %s\n", facts.Risk.Level))

	if c := facts.Couple; c != nil {
		b.WriteString("\n伴侣互动:\n")
		b.WriteString(fmt.Sprintf("- 重叠记录 %d 天，情绪同步率 %d%%，支持机会率 %d%%\n",
			c.OverlapDays, c.SynchronyPct, c.SupportPct))
		b.WriteString(fmt.Sprintf("- 关系动力类型: %s\n", c.DynamicsLabel))
		for _, s := range c.Strengths {
			b.WriteString("- 优势: " + s + "\n")
		}
		for _, s := range c.Concerns {
			b.WriteString("- 关注点: " + s + "\n")
		}
	}

	if len(facts.Memories) > 0 {
		b.WriteString("\n过往报告回顾（可参考，不要编造其中没有的内容）:\n")
		for _, m := range facts.Memories {
			b.WriteString("- " + m + "\n")
		}
	}

	b.WriteString("\n请基于以上事实写一段自然的回顾与建议，纯文本，不使用 markdown。")
	return b.String()
}

// fallbackInsight 确定性的降级模板
// 只引用已经算好的统计值，不出现任何未提供的具体内容。
func fallbackInsight(facts *InsightFacts, reason string) InsightResult {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("这段时间（%s 至 %s）共写下 %d 篇日记，覆盖 %d 天。\n",
		facts.StartDate, facts.EndDate, facts.Stats.TotalEntries, facts.Stats.DaysActive))
	b.WriteString(fmt.Sprintf("• 积极情绪占 %d%%，中性占 %d%%，消极占 %d%%\n",
		facts.Emotion.PositivePct, facts.Emotion.NeutralPct, facts.Emotion.NegativePct))
	if len(facts.Emotion.TopEmotions) > 0 {
		b.WriteString(fmt.Sprintf("• 出现最多的情绪：%s\n", strings.Join(facts.Emotion.TopEmotions, "、")))
	}
	if len(facts.Stats.Keywords) > 0 {
		b.WriteString(fmt.Sprintf("• 日记里的高频词：%s\n", strings.Join(facts.Stats.Keywords, "、")))
	}
	if c := facts.Couple; c != nil && c.OverlapDays > 0 {
		b.WriteString(fmt.Sprintf("• 与伴侣共同记录了 %d 天，情绪同步率 %d%%，支持机会率 %d%%\n",
			c.OverlapDays, c.SynchronyPct, c.SupportPct))
	}
	b.WriteString("坚持记录本身就是对关系的投入，下个周期继续保持。")

	return InsightResult{Text: b.String(), Source: InsightFallback, Reason: reason}
}
