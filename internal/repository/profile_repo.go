package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/luoran06/PairLog/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 用户档案仓储
// 档案由外部测评流程维护，引擎只读；Upsert 留给宿主与测试。
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建仓储
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert 写入或更新档案
func (r *ProfileRepository) Upsert(ctx context.Context, profile *schema.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

// GetByUserID 按用户 ID 查询档案；不存在时返回 nil
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*schema.UserProfile, error) {
	var profile schema.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询用户档案失败: %w", err)
	}
	return &profile, nil
}

// ListUserIDs 列出所有有档案的用户 ID（定时报告扫描用）
func (r *ProfileRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&schema.UserProfile{}).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("列出用户失败: %w", err)
	}
	return ids, nil
}
