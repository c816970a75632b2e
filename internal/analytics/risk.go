package analytics

import (
	"github.com/luoran06/PairLog/internal/schema"
)

// 风险等级
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskCritical = "critical" // 仅伴侣层面的升级结果，个人打分不会产出
)

// RiskInputs 风险打分输入
// 缺失的输入按零值/secure 处理：打分器从不失败，只会在数据稀疏时低估。
// 调用方应把稀疏输入得到的 low 理解为"数据不足"而非"确认低风险"。
type RiskInputs struct {
	PHQ9           int     // 0-27
	GAD7           int     // 0-21
	AttachmentType string  // secure | anxious | avoidant | disorganized
	Neuroticism    float64 // 0-10
}

// RiskAssessment 离散风险分类
type RiskAssessment struct {
	Score int    `json:"risk_score"`
	Level string `json:"risk_level"`
}

// RiskInputsFromProfile 从用户档案提取打分输入
func RiskInputsFromProfile(p *schema.UserProfile) RiskInputs {
	if p == nil {
		return RiskInputs{AttachmentType: schema.AttachmentSecure}
	}
	in := RiskInputs{
		PHQ9:           p.PHQ9Score,
		GAD7:           p.GAD7Score,
		AttachmentType: p.AttachmentType,
		Neuroticism:    p.NeuroticismScore,
	}
	if in.AttachmentType == "" {
		in.AttachmentType = schema.AttachmentSecure
	}
	return in
}

// ScoreRisk 把 PHQ-9、GAD-7、依恋类型、神经质得分叠加成离散风险等级
// 各条件独立累加，PHQ-9/GAD-7 每项只命中最高一档。
func ScoreRisk(in RiskInputs) RiskAssessment {
	score := 0

	switch {
	case in.PHQ9 >= 20:
		score += 3
	case in.PHQ9 >= 15:
		score += 2
	case in.PHQ9 >= 10:
		score++
	}

	switch {
	case in.GAD7 >= 15:
		score += 3
	case in.GAD7 >= 10:
		score += 2
	case in.GAD7 >= 5:
		score++
	}

	switch in.AttachmentType {
	case schema.AttachmentDisorganized:
		score += 2
	case schema.AttachmentAnxious:
		score++
	}

	if in.Neuroticism >= 7 {
		score++
	}

	level := RiskLow
	switch {
	case score >= 6:
		level = RiskHigh
	case score >= 3:
		level = RiskModerate
	}
	return RiskAssessment{Score: score, Level: level}
}

// inHighClinicalBand 是否命中临床量表的最高档（PHQ-9 ≥20 或 GAD-7 ≥15）
func inHighClinicalBand(in RiskInputs) bool {
	return in.PHQ9 >= 20 || in.GAD7 >= 15
}

// ScoreCoupleRisk 伴侣层面的合并风险
// 双方各自都命中临床最高档时升级为 critical；否则取两人个人等级的较高者。
// 这是叠加在个人打分之上的独立规则，不是个人打分的第五档。
func ScoreCoupleRisk(a, b RiskInputs) RiskAssessment {
	ra := ScoreRisk(a)
	rb := ScoreRisk(b)

	combined := ra
	if rb.Score > ra.Score {
		combined = rb
	}

	if inHighClinicalBand(a) && inHighClinicalBand(b) {
		combined.Level = RiskCritical
	}
	return combined
}
