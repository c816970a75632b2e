package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/luoran06/PairLog/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportRepository 报告仓储
// 幂等键 (user_id, type, start_date, end_date)：并发生成同键报告时由
// upsert 保证只落一份文档，后写覆盖（内容本就派生自相同输入）。
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建仓储
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Upsert 插入或按幂等键合并
func (r *ReportRepository) Upsert(ctx context.Context, report *schema.Report) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "type"}, {Name: "start_date"}, {Name: "end_date"},
		},
		UpdateAll: true,
	}).Create(report).Error
}

// GetByKey 按幂等键查询；不存在时返回 nil
func (r *ReportRepository) GetByKey(ctx context.Context, userID, reportType, startDate, endDate string) (*schema.Report, error) {
	var report schema.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND start_date = ? AND end_date = ?",
			userID, reportType, startDate, endDate).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询报告失败: %w", err)
	}
	return &report, nil
}

// LatestByUserAndType 某用户某类型最近生成的报告（冷却判断用）；没有时返回 nil
func (r *ReportRepository) LatestByUserAndType(ctx context.Context, userID, reportType string) (*schema.Report, error) {
	var report schema.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, reportType).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询最近报告失败: %w", err)
	}
	return &report, nil
}

// ListByUser 某用户的报告列表，按开始日期倒序
func (r *ReportRepository) ListByUser(ctx context.Context, userID string, limit int) ([]schema.Report, error) {
	var reports []schema.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("查询报告列表失败: %w", err)
	}
	return reports, nil
}

// MarkRead 标记已读（报告首次被查看时由宿主调用；除此之外报告不再被修改）
func (r *ReportRepository) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&schema.Report{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("标记已读失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("报告不存在: %s", id)
	}
	return nil
}
