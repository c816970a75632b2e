package ai

import (
	"regexp"
	"strings"
)

// LLM 的返回按不可信内容处理：落库前统一剥掉 markdown 标记。
var (
	mdHeaderRe   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdBoldRe     = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	mdEmphasisRe = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	mdCodeRe     = regexp.MustCompile("`{1,3}([^`]*)`{1,3}")
	mdLinkRe     = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	mdListRe     = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	mdRuleRe     = regexp.MustCompile(`(?m)^\s*(?:-{3,}|\*{3,})\s*$`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// StripMarkup 把 markdown 文本压成纯文本
// 标题/强调/代码标记剥除，列表项替换为 • 项目符号，链接只保留文字。
func StripMarkup(s string) string {
	// 列表标记要先于强调处理，否则行首的 * 会被当成强调符配对
	s = mdRuleRe.ReplaceAllString(s, "")
	s = mdHeaderRe.ReplaceAllString(s, "")
	s = mdListRe.ReplaceAllString(s, "• ")
	s = mdBoldRe.ReplaceAllString(s, "$1$2")
	s = mdEmphasisRe.ReplaceAllString(s, "$1$2")
	s = mdCodeRe.ReplaceAllString(s, "$1")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
