package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/luoran06/PairLog/internal/analytics"
)

func testFacts() *InsightFacts {
	return &InsightFacts{
		StartDate: "2025-08-18",
		EndDate:   "2025-08-24",
		Emotion: analytics.EmotionSummary{
			PositivePct: 40, NeutralPct: 20, NegativePct: 40,
			TopEmotions: []string{"great", "good"},
		},
		Stats: analytics.DiaryStats{
			TotalEntries: 5, DaysActive: 5, AvgWordsPerEntry: 12,
			Keywords: []string{"dinner", "walk"},
		},
		Risk: analytics.RiskAssessment{Score: 1, Level: analytics.RiskLow},
	}
}

func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		resp := ChatResponse{Choices: []Choice{{Message: Message{Role: "assistant", Content: reply}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateHappyPathStripsMarkup(t *testing.T) {
	srv := chatServer(t, "# 回顾\n\n你们这周 **同步率** 不错。")
	defer srv.Close()

	client := NewDeepSeekClient(&DeepSeekConfig{APIKey: "test-key", BaseURL: srv.URL})
	g := NewInsightGenerator(client, 5*time.Second)

	got := g.Generate(context.Background(), testFacts())
	if got.Source != InsightGenerated {
		t.Fatalf("source = %s (%s), want generated", got.Source, got.Reason)
	}
	if strings.ContainsAny(got.Text, "#*") {
		t.Fatalf("markup not stripped: %q", got.Text)
	}
}

func TestGenerateFallbackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewDeepSeekClient(&DeepSeekConfig{APIKey: "test-key", BaseURL: srv.URL})
	g := NewInsightGenerator(client, 50*time.Millisecond)

	facts := testFacts()
	got := g.Generate(context.Background(), facts)
	if got.Source != InsightFallback {
		t.Fatalf("source = %s, want fallback", got.Source)
	}
	if got.Reason == "" {
		t.Fatalf("fallback reason missing")
	}
	assertFallbackText(t, got.Text, facts)
}

func TestGenerateFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewDeepSeekClient(&DeepSeekConfig{APIKey: "test-key", BaseURL: srv.URL})
	g := NewInsightGenerator(client, time.Second)

	if got := g.Generate(context.Background(), testFacts()); got.Source != InsightFallback {
		t.Fatalf("source = %s, want fallback", got.Source)
	}
}

func TestGenerateFallbackWithoutCredential(t *testing.T) {
	client := NewDeepSeekClient(&DeepSeekConfig{})
	g := NewInsightGenerator(client, time.Second)

	facts := testFacts()
	got := g.Generate(context.Background(), facts)
	if got.Source != InsightFallback {
		t.Fatalf("source = %s, want fallback", got.Source)
	}
	assertFallbackText(t, got.Text, facts)
}

// assertFallbackText 降级文案必须且只能引用算好的统计值
func assertFallbackText(t *testing.T, text string, facts *InsightFacts) {
	t.Helper()
	if text == "" {
		t.Fatalf("fallback text empty")
	}
	for _, want := range []string{
		fmt.Sprintf("%d 篇日记", facts.Stats.TotalEntries),
		fmt.Sprintf("覆盖 %d 天", facts.Stats.DaysActive),
		fmt.Sprintf("积极情绪占 %d%%", facts.Emotion.PositivePct),
		fmt.Sprintf("消极占 %d%%", facts.Emotion.NegativePct),
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("fallback text missing %q: %q", want, text)
		}
	}
	for _, forbidden := range []string{"**", "##", "```"} {
		if strings.Contains(text, forbidden) {
			t.Fatalf("fallback text contains markup %q", forbidden)
		}
	}
}

func TestBuildInsightPromptOmitsRawDiaryText(t *testing.T) {
	facts := testFacts()
	facts.Couple = &CoupleFacts{SynchronyPct: 50, SupportPct: 50, OverlapDays: 2, DynamicsLabel: "稳定互信型"}
	facts.Memories = []string{"上周积极情绪占 60%"}
	prompt := buildInsightPrompt(facts)
	for _, want := range []string{"40%", "稳定互信型", "上周积极情绪占 60%"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
