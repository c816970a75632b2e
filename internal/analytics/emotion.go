package analytics

import (
	"strings"

	"github.com/luoran06/PairLog/internal/schema"
)

// 日记级情绪枚举（五档）
const (
	EmotionGreat    = "great"
	EmotionGood     = "good"
	EmotionNeutral  = "neutral"
	EmotionBad      = "bad"
	EmotionTerrible = "terrible"
)

// 日历标签用的六种基础情感
const (
	AffectJoy      = "joy"
	AffectSurprise = "surprise"
	AffectSadness  = "sadness"
	AffectAnger    = "anger"
	AffectFear     = "fear"
	AffectDisgust  = "disgust"
)

// 极性分类
const (
	PolarityPositive = "positive"
	PolarityNeutral  = "neutral"
	PolarityNegative = "negative"
)

// EmotionFieldPriority 历史情绪字段的解码优先级
// 三代客户端留下了三种字段形态：单值 emotion、数组 emotions、数组 emotionStickers。
// 单值字段优先，其次按数组字段顺序取全部元素。
var EmotionFieldPriority = [3]string{"emotion", "emotions", "emotionStickers"}

// DecodeRawEmotions 按 EmotionFieldPriority 从日记条目解出原始情绪标签列表
func DecodeRawEmotions(e *schema.DiaryEntry) []string {
	if e == nil {
		return nil
	}
	if strings.TrimSpace(e.Emotion) != "" {
		return []string{e.Emotion}
	}
	if len(e.Emotions) > 0 {
		return append([]string(nil), e.Emotions...)
	}
	if len(e.Stickers) > 0 {
		return append([]string(nil), e.Stickers...)
	}
	return nil
}

// emotionAliases 原始标签到规范标签的映射（小写比对）
// 历史数据里混有自由文本和多语言标签，这里只收录已知写法，未命中的静默丢弃。
var emotionAliases = map[string]string{
	"great":     EmotionGreat,
	"awesome":   EmotionGreat,
	"amazing":   EmotionGreat,
	"excellent": EmotionGreat,
	"good":      EmotionGood,
	"nice":      EmotionGood,
	"fine":      EmotionGood,
	"neutral":   EmotionNeutral,
	"okay":      EmotionNeutral,
	"ok":        EmotionNeutral,
	"meh":       EmotionNeutral,
	"bad":       EmotionBad,
	"down":      EmotionBad,
	"terrible":  EmotionTerrible,
	"awful":     EmotionTerrible,
	"horrible":  EmotionTerrible,

	"joy":       AffectJoy,
	"happy":     AffectJoy,
	"happiness": AffectJoy,
	"surprise":  AffectSurprise,
	"surprised": AffectSurprise,
	"sadness":   AffectSadness,
	"sad":       AffectSadness,
	"anger":     AffectAnger,
	"angry":     AffectAnger,
	"mad":       AffectAnger,
	"fear":      AffectFear,
	"afraid":    AffectFear,
	"scared":    AffectFear,
	"disgust":   AffectDisgust,
	"disgusted": AffectDisgust,
}

// emotionPolarity 规范标签到极性的固定映射
var emotionPolarity = map[string]string{
	EmotionGreat:    PolarityPositive,
	EmotionGood:     PolarityPositive,
	EmotionNeutral:  PolarityNeutral,
	EmotionBad:      PolarityNegative,
	EmotionTerrible: PolarityNegative,
	AffectJoy:       PolarityPositive,
	AffectSurprise:  PolarityNeutral,
	AffectSadness:   PolarityNegative,
	AffectAnger:     PolarityNegative,
	AffectFear:      PolarityNegative,
	AffectDisgust:   PolarityNegative,
}

// emotionOrdinal 规范标签到 1-5 序数分值的映射（同步率计算用）
var emotionOrdinal = map[string]int{
	EmotionGreat:    5,
	EmotionGood:     4,
	EmotionNeutral:  3,
	EmotionBad:      2,
	EmotionTerrible: 1,
	AffectJoy:       4,
	AffectSurprise:  3,
	AffectSadness:   2,
	AffectAnger:     2,
	AffectFear:      2,
	AffectDisgust:   2,
}

// NormalizeEmotion 把原始标签归一化为规范标签
// 未知标签返回 ok=false，调用方直接跳过，不作为错误处理。
func NormalizeEmotion(raw string) (string, bool) {
	canonical, ok := emotionAliases[strings.ToLower(strings.TrimSpace(raw))]
	return canonical, ok
}

// PolarityOf 返回规范标签的极性
func PolarityOf(canonical string) (string, bool) {
	p, ok := emotionPolarity[canonical]
	return p, ok
}

// OrdinalScore 返回规范标签的 1-5 序数分值
func OrdinalScore(canonical string) (int, bool) {
	s, ok := emotionOrdinal[canonical]
	return s, ok
}
