package repository

import (
	"context"
	"fmt"

	"github.com/luoran06/PairLog/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DiaryRepository 日记仓储
// 日记由宿主 App 写入，这里主要提供分析引擎的读路径。
type DiaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository 创建仓储
func NewDiaryRepository(db *gorm.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// Upsert 写入或整条替换某天的日记（编辑即替换）
func (r *DiaryRepository) Upsert(ctx context.Context, entry *schema.DiaryEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(entry).Error
}

// ListByOwnerAndRange 查询 [from, to] 闭区间内的日记，按日期升序
func (r *DiaryRepository) ListByOwnerAndRange(ctx context.Context, ownerID, from, to string) ([]schema.DiaryEntry, error) {
	var entries []schema.DiaryEntry
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, from, to).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}
	return entries, nil
}

// CountByOwnerAndRange 统计区间内的日记条数（调度器数据量门控用）
func (r *DiaryRepository) CountByOwnerAndRange(ctx context.Context, ownerID, from, to string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&schema.DiaryEntry{}).
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计日记条数失败: %w", err)
	}
	return count, nil
}
