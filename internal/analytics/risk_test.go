package analytics

import (
	"testing"

	"github.com/luoran06/PairLog/internal/schema"
)

func TestScoreRiskBands(t *testing.T) {
	cases := []struct {
		name  string
		in    RiskInputs
		score int
		level string
	}{
		{"全零默认低风险", RiskInputs{AttachmentType: schema.AttachmentSecure}, 0, RiskLow},
		{"缺失输入同样低风险", RiskInputs{}, 0, RiskLow},
		{"PHQ9 轻档", RiskInputs{PHQ9: 10, AttachmentType: schema.AttachmentSecure}, 1, RiskLow},
		{"PHQ9 中档 + GAD7 轻档", RiskInputs{PHQ9: 15, GAD7: 5}, 3, RiskModerate},
		{"最高档叠加", RiskInputs{PHQ9: 20, GAD7: 15, AttachmentType: schema.AttachmentDisorganized, Neuroticism: 8}, 9, RiskHigh},
		{"焦虑型 +1", RiskInputs{PHQ9: 10, GAD7: 10, AttachmentType: schema.AttachmentAnxious}, 4, RiskModerate},
		{"回避型不加分", RiskInputs{PHQ9: 10, GAD7: 10, AttachmentType: schema.AttachmentAvoidant}, 3, RiskModerate},
		{"神经质阈值", RiskInputs{Neuroticism: 7}, 1, RiskLow},
	}
	for _, c := range cases {
		got := ScoreRisk(c.in)
		if got.Score != c.score || got.Level != c.level {
			t.Fatalf("%s: ScoreRisk = %+v, want score=%d level=%s", c.name, got, c.score, c.level)
		}
	}
}

func TestScoreRiskMonotonicInPHQ9(t *testing.T) {
	rank := map[string]int{RiskLow: 0, RiskModerate: 1, RiskHigh: 2, RiskCritical: 3}
	base := RiskInputs{GAD7: 10, AttachmentType: schema.AttachmentAnxious, Neuroticism: 7}

	prev := -1
	for _, phq := range []int{0, 9, 10, 14, 15, 19, 20, 27} {
		in := base
		in.PHQ9 = phq
		got := ScoreRisk(in)
		if rank[got.Level] < prev {
			t.Fatalf("risk level decreased at phq9=%d: %s", phq, got.Level)
		}
		prev = rank[got.Level]
	}
}

func TestScoreCoupleRiskCriticalEscalation(t *testing.T) {
	high := RiskInputs{PHQ9: 21, AttachmentType: schema.AttachmentSecure}
	alsoHigh := RiskInputs{GAD7: 16, AttachmentType: schema.AttachmentSecure}
	mild := RiskInputs{PHQ9: 12, AttachmentType: schema.AttachmentSecure}

	if got := ScoreCoupleRisk(high, alsoHigh); got.Level != RiskCritical {
		t.Fatalf("both clinical-high should escalate to critical, got %+v", got)
	}
	// 只有一方高危不升级，取两人较高等级
	if got := ScoreCoupleRisk(high, mild); got.Level == RiskCritical {
		t.Fatalf("single clinical-high must not be critical, got %+v", got)
	}
	if got := ScoreCoupleRisk(mild, mild); got.Level != RiskLow {
		t.Fatalf("mild pair = %+v, want low", got)
	}
}

func TestRiskInputsFromProfile(t *testing.T) {
	if in := RiskInputsFromProfile(nil); in.AttachmentType != schema.AttachmentSecure {
		t.Fatalf("nil profile should default secure, got %+v", in)
	}
	p := &schema.UserProfile{PHQ9Score: 12, GAD7Score: 6, NeuroticismScore: 8}
	in := RiskInputsFromProfile(p)
	if in.PHQ9 != 12 || in.GAD7 != 6 || in.Neuroticism != 8 {
		t.Fatalf("inputs = %+v", in)
	}
	if in.AttachmentType != schema.AttachmentSecure {
		t.Fatalf("empty attachment should default secure, got %q", in.AttachmentType)
	}
}
