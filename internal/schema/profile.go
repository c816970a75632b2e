package schema

import (
	"time"
)

// 依恋类型（来自外部的自评问卷）
const (
	AttachmentSecure       = "secure"
	AttachmentAnxious      = "anxious"
	AttachmentAvoidant     = "avoidant"
	AttachmentDisorganized = "disorganized"
)

// 配偶关联状态
const (
	SpouseStatusNone     = ""
	SpouseStatusPending  = "pending"
	SpouseStatusAccepted = "accepted"
)

// UserProfile 用户档案
// 由外部的测评界面（PHQ-9 / GAD-7 / 依恋问卷）写入；本引擎只读。
type UserProfile struct {
	UserID           string    `gorm:"primaryKey;size:64" json:"user_id"`
	AttachmentType   string    `gorm:"size:16" json:"attachment_type"` // secure | anxious | avoidant | disorganized
	PersonalityType  string    `gorm:"size:32" json:"personality_type"`
	NeuroticismScore float64   `gorm:"default:0" json:"neuroticism_score"` // 0-10
	PHQ9Score        int       `gorm:"default:0" json:"phq9_score"`        // 0-27
	GAD7Score        int       `gorm:"default:0" json:"gad7_score"`        // 0-21
	SpouseID         string    `gorm:"size:64;index" json:"spouse_id"`
	SpouseStatus     string    `gorm:"size:16" json:"spouse_status"` // pending | accepted
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}

// HasAcceptedSpouse 是否存在已互相确认的配偶关联
func (p *UserProfile) HasAcceptedSpouse() bool {
	return p != nil && p.SpouseID != "" && p.SpouseStatus == SpouseStatusAccepted
}
