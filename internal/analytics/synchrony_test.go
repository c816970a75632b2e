package analytics

import (
	"reflect"
	"testing"
)

var weekDates = []string{
	"2025-08-18", "2025-08-19", "2025-08-20", "2025-08-21",
	"2025-08-22", "2025-08-23", "2025-08-24",
}

func TestAnalyzeSynchronyCoupleScenario(t *testing.T) {
	a := map[string]string{"2025-08-18": "great", "2025-08-19": "bad"}
	b := map[string]string{"2025-08-18": "good", "2025-08-19": "great"}

	got := AnalyzeSynchrony(a, b, weekDates, DefaultSynchronyThresholds())
	if got.OverlapDays != 2 {
		t.Fatalf("overlapDays = %d, want 2", got.OverlapDays)
	}
	// 周一 (5,4) 差 1 → 同步；周二 (2,5) 差 3 不同步，但 2≤2 且 5≥4 → 支持机会
	if got.SynchronyPct != 50 {
		t.Fatalf("synchronyPct = %d, want 50", got.SynchronyPct)
	}
	if got.SupportPct != 50 {
		t.Fatalf("supportPct = %d, want 50", got.SupportPct)
	}
}

func TestAnalyzeSynchronySymmetric(t *testing.T) {
	a := map[string]string{
		"2025-08-18": "great", "2025-08-19": "terrible", "2025-08-20": "neutral",
		"2025-08-21": "joy",
	}
	b := map[string]string{
		"2025-08-18": "bad", "2025-08-19": "great", "2025-08-20": "neutral",
		"2025-08-22": "good",
	}
	th := DefaultSynchronyThresholds()
	ab := AnalyzeSynchrony(a, b, weekDates, th)
	ba := AnalyzeSynchrony(b, a, weekDates, th)
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("synchrony not symmetric: %+v vs %+v", ab, ba)
	}
}

func TestAnalyzeSynchronyNoOverlap(t *testing.T) {
	a := map[string]string{"2025-08-18": "great"}
	b := map[string]string{"2025-08-19": "bad"}
	got := AnalyzeSynchrony(a, b, weekDates, DefaultSynchronyThresholds())
	if got.OverlapDays != 0 || got.SynchronyPct != 0 || got.SupportPct != 0 {
		t.Fatalf("no-overlap result = %+v, want zeroes", got)
	}
	if len(got.Strengths) != 0 || len(got.Concerns) != 0 {
		t.Fatalf("no-overlap should emit no labels, got %+v", got)
	}
}

func TestAnalyzeSynchronyThresholdLabels(t *testing.T) {
	th := DefaultSynchronyThresholds()

	// 全同步、无支持机会：sync 100 > 70 → 优势；support 0 < 20 → 关注
	a := map[string]string{"2025-08-18": "good", "2025-08-19": "great"}
	b := map[string]string{"2025-08-18": "good", "2025-08-19": "good"}
	got := AnalyzeSynchrony(a, b, weekDates, th)
	if len(got.Strengths) != 1 || len(got.Concerns) != 1 {
		t.Fatalf("labels = %+v, want 1 strength + 1 concern", got)
	}

	// 中间地带不产出标签：sync 50 ∈ [30,70]，support 50 > 40 → 仅 1 个优势
	a = map[string]string{"2025-08-18": "great", "2025-08-19": "bad"}
	b = map[string]string{"2025-08-18": "good", "2025-08-19": "great"}
	got = AnalyzeSynchrony(a, b, weekDates, th)
	if len(got.Concerns) != 0 {
		t.Fatalf("mid-band sync should not emit concern, got %+v", got.Concerns)
	}
	if len(got.Strengths) != 1 {
		t.Fatalf("support 50%% should emit exactly one strength, got %+v", got.Strengths)
	}
}

func TestAnalyzeSynchronySkipsUnknownLabels(t *testing.T) {
	a := map[string]string{"2025-08-18": "great", "2025-08-19": "mystery"}
	b := map[string]string{"2025-08-18": "good", "2025-08-19": "good"}
	got := AnalyzeSynchrony(a, b, weekDates, DefaultSynchronyThresholds())
	if got.OverlapDays != 1 {
		t.Fatalf("unknown label day should be excluded, overlapDays = %d", got.OverlapDays)
	}
}
