package schema

import "time"

// SchemaMeta 数据库结构版本标记，单行表（恒 ID=1）
// 迁移只在版本落后时执行，AutoMigrate 不再每次启动都跑。
type SchemaMeta struct {
	ID            int       `gorm:"primaryKey"`
	SchemaVersion int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (SchemaMeta) TableName() string {
	return "schema_meta"
}
