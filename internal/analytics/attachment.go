package analytics

import (
	"github.com/luoran06/PairLog/internal/schema"
)

// AttachmentDynamics 依恋类型组合对应的关系动力描述
type AttachmentDynamics struct {
	Label           string   `json:"label"`
	Strengths       []string `json:"strengths"`
	Challenges      []string `json:"challenges"`
	Recommendations []string `json:"recommendations"`
}

// 依恋组合表只按无序对收录一次，查询时先试 a-b 再试 b-a。
// 含 disorganized 的组合不单独收录，落到通用缺省项。
var attachmentDynamicsTable = map[string]AttachmentDynamics{
	"secure-secure": {
		Label: "稳定互信型",
		Strengths: []string{
			"彼此信任，冲突后能较快修复",
			"情绪表达直接，不需要猜测对方",
		},
		Challenges: []string{
			"关系过于平稳时容易忽略经营，新鲜感下降",
		},
		Recommendations: []string{
			"定期安排只属于两个人的活动，保持联结感",
			"把'理所当然'的感谢说出口",
		},
	},
	"secure-anxious": {
		Label: "安抚依赖型",
		Strengths: []string{
			"安全型一方能稳定地回应对方的不安",
			"焦虑型一方的投入让关系保持热度",
		},
		Challenges: []string{
			"焦虑型一方反复求证时，安全型一方可能感到消耗",
		},
		Recommendations: []string{
			"约定固定的'确认时刻'，减少临时性的反复求证",
			"焦虑升起时先描述感受，而不是质问对方",
		},
	},
	"secure-avoidant": {
		Label: "缓冲适应型",
		Strengths: []string{
			"安全型一方能接纳对方对空间的需要",
			"冲突不容易升级",
		},
		Challenges: []string{
			"回避型一方的沉默可能被误读为冷漠",
		},
		Recommendations: []string{
			"回避型一方需要独处时给出明确的时间预期",
			"重要话题用约定时间谈，而不是突袭式开启",
		},
	},
	"anxious-anxious": {
		Label: "高热耗损型",
		Strengths: []string{
			"双方都高度投入，亲密浓度高",
			"对彼此的情绪变化非常敏感",
		},
		Challenges: []string{
			"容易互相放大不安，小摩擦滚成大冲突",
			"都需要安抚时没有人扮演稳定的一方",
		},
		Recommendations: []string{
			"冲突中约定'暂停信号'，先各自平复再继续",
			"把安全感建立在可预期的日常仪式上，而非反复确认",
		},
	},
	"anxious-avoidant": {
		Label: "追逃循环型",
		Strengths: []string{
			"彼此恰好映照出对方最需要成长的部分",
			"一旦建立安全感，互补性很强",
		},
		Challenges: []string{
			"典型的追-逃循环：一方越追，另一方越躲",
			"双方对'亲密距离'的默认值差异大",
		},
		Recommendations: []string{
			"焦虑一方练习把需求说具体，回避一方练习不消失",
			"冲突后 24 小时内主动复盘一次，防止循环固化",
		},
	},
	"avoidant-avoidant": {
		Label: "平行独立型",
		Strengths: []string{
			"互不施压，各自有充足的个人空间",
			"很少发生激烈冲突",
		},
		Challenges: []string{
			"问题容易被双方共同搁置，亲密感缓慢流失",
		},
		Recommendations: []string{
			"设置固定的交流时间，别等'自然而然'",
			"练习主动分享脆弱感受，从小事开始",
		},
	},
}

// defaultAttachmentDynamics 未收录组合（含 disorganized）的通用缺省项
var defaultAttachmentDynamics = AttachmentDynamics{
	Label: "探索磨合型",
	Strengths: []string{
		"双方仍在了解彼此的相处模式，有很大的塑造空间",
	},
	Challenges: []string{
		"互动模式尚不稳定，情绪反应可能难以预测",
	},
	Recommendations: []string{
		"把注意力放在具体行为上：哪些互动让彼此安心，哪些带来压力",
		"必要时考虑寻求伴侣咨询等专业支持",
	},
}

// 冲突化解脚本：与动力表同键，给出有序的具体行为建议
var conflictScriptTable = map[string][]string{
	"secure-secure": {
		"直接说出分歧点，不绕弯子",
		"各自陈述立场后，先复述对方的观点再回应",
		"达成一致后明确下一步由谁做什么",
	},
	"secure-anxious": {
		"焦虑一方先具体描述感受：'我感到不安，因为…'，而不是追问",
		"安全一方给出明确回应和时间承诺，不敷衍",
		"冲突收尾时互相确认：这件事现在解决了吗",
	},
	"secure-avoidant": {
		"回避一方需要暂停时说明：'我需要一小时，之后我们继续'",
		"安全一方在对方回来前不追加新的议题",
		"恢复对话时从感受说起，而不是对错",
	},
	"anxious-anxious": {
		"任一方觉察到升级时喊出约定的暂停词",
		"暂停期间各自写下最想被理解的一句话",
		"重启对话时先交换这句话，再谈事情本身",
	},
	"anxious-avoidant": {
		"焦虑一方把感受说具体，而不是追着对方要回应",
		"回避一方给出明确信号，而不是沉默消失",
		"约定固定的冲突复盘时间，双方都到场",
	},
	"avoidant-avoidant": {
		"由当天情绪分更高的一方先开口，打破共同沉默",
		"用书面方式交换各自的真实想法也可以",
		"达成的共识写下来，防止默契式遗忘",
	},
}

var defaultConflictScript = []string{
	"冲突时先处理情绪，再处理事情",
	"描述行为和感受，避免给对方贴标签",
	"任何一方提出暂停时无条件尊重，并约定恢复时间",
}

// LookupAttachmentDynamics 按无序依恋类型对查询关系动力描述
func LookupAttachmentDynamics(a, b string) AttachmentDynamics {
	if d, ok := attachmentDynamicsTable[pairKey(a, b)]; ok {
		return d
	}
	if d, ok := attachmentDynamicsTable[pairKey(b, a)]; ok {
		return d
	}
	return defaultAttachmentDynamics
}

// LookupConflictScript 按无序依恋类型对查询冲突化解脚本
func LookupConflictScript(a, b string) []string {
	if s, ok := conflictScriptTable[pairKey(a, b)]; ok {
		return append([]string(nil), s...)
	}
	if s, ok := conflictScriptTable[pairKey(b, a)]; ok {
		return append([]string(nil), s...)
	}
	return append([]string(nil), defaultConflictScript...)
}

func pairKey(a, b string) string {
	if a == "" {
		a = schema.AttachmentSecure
	}
	if b == "" {
		b = schema.AttachmentSecure
	}
	return a + "-" + b
}
