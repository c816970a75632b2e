package schema

import (
	"time"
)

// 报告类型
const (
	ReportTypeWeekly  = "weekly"
	ReportTypeMonthly = "monthly"
	ReportTypeCustom  = "custom"
)

// 报告范围
const (
	ReportScopeIndividual = "individual"
	ReportScopeCouple     = "couple"
)

// Report 周期报告（持久化产物）
// 幂等键 (user_id, type, start_date, end_date)：同键重复生成走 upsert 合并。
// 除 is_read 翻转外不再被修改。
type Report struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"` // UUID
	UserID      string    `gorm:"size:64;index;uniqueIndex:uniq_report_key" json:"user_id"`
	Type        string    `gorm:"size:10;uniqueIndex:uniq_report_key" json:"type"`        // weekly | monthly | custom
	StartDate   string    `gorm:"size:10;uniqueIndex:uniq_report_key" json:"start_date"`  // YYYY-MM-DD
	EndDate     string    `gorm:"size:10;uniqueIndex:uniq_report_key" json:"end_date"`    // YYYY-MM-DD
	ReportScope string    `gorm:"size:12" json:"report_scope"`                            // individual | couple
	Emotion     JSONMap   `gorm:"type:text" json:"emotion_summary"`                       // 情绪统计
	Stats       JSONMap   `gorm:"type:text" json:"diary_stats"`                           // 日记统计
	Profile     JSONMap   `gorm:"type:text" json:"profile_brief"`                         // 档案摘要
	Couple      JSONMap   `gorm:"type:text" json:"couple_analysis"`                       // 伴侣分析（individual 时为空）
	AIInsights  string    `gorm:"type:text" json:"ai_insights"`                           // 叙述性洞察（纯文本）
	InsightFrom string    `gorm:"size:12" json:"insight_from"`                            // generated | fallback
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Report) TableName() string {
	return "reports"
}
