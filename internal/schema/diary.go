package schema

import (
	"time"
)

// DiaryEntry 日记条目
// 由宿主 App 的记录界面写入；每个 (owner_id, date) 唯一，编辑即整条替换。
// 数据量级：每用户每天一条
type DiaryEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   string    `gorm:"size:64;index;uniqueIndex:uniq_owner_date" json:"owner_id"`
	Date      string    `gorm:"size:10;uniqueIndex:uniq_owner_date" json:"date"` // YYYY-MM-DD
	Emotion   string    `gorm:"size:32" json:"emotion"`                          // 历史字段：单个情绪标签
	Emotions  JSONArray `gorm:"type:text" json:"emotions"`                       // 历史字段：情绪标签数组
	Stickers  JSONArray `gorm:"type:text" json:"emotion_stickers"`              // 历史字段：贴纸数组
	Text      string    `gorm:"type:text" json:"text"`                          // 正文（约 100-800 字符）
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (DiaryEntry) TableName() string {
	return "diary_entries"
}
