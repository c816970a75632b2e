package ai

import (
	"strings"
	"testing"
)

func TestStripMarkupEmphasisAndHeaders(t *testing.T) {
	in := "# 本周回顾\n\n你们的 **同步率** 很高，*继续保持*。代码 `x` 照常。"
	got := StripMarkup(in)
	for _, forbidden := range []string{"#", "*", "`"} {
		if strings.Contains(got, forbidden) {
			t.Fatalf("output still contains %q: %q", forbidden, got)
		}
	}
	if !strings.Contains(got, "同步率") || !strings.Contains(got, "继续保持") {
		t.Fatalf("content lost: %q", got)
	}
}

func TestStripMarkupListsToBullets(t *testing.T) {
	in := "- 第一条\n* 第二条\n1. 第三条"
	got := StripMarkup(in)
	if strings.Count(got, "•") != 3 {
		t.Fatalf("want 3 bullets, got %q", got)
	}
}

func TestStripMarkupLinks(t *testing.T) {
	got := StripMarkup("参考 [这篇文章](https://example.com/post) 的建议")
	if strings.Contains(got, "https://") || strings.Contains(got, "](") {
		t.Fatalf("link markup leaked: %q", got)
	}
	if !strings.Contains(got, "这篇文章") {
		t.Fatalf("link text lost: %q", got)
	}
}

func TestStripMarkupPlainTextUnchanged(t *testing.T) {
	in := "这段时间记录了 5 天，积极情绪占 40%。"
	if got := StripMarkup(in); got != in {
		t.Fatalf("plain text changed: %q -> %q", in, got)
	}
}

func TestStripMarkupCollapsesBlankRuns(t *testing.T) {
	got := StripMarkup("a\n\n\n\n\nb")
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank runs not collapsed: %q", got)
	}
}
