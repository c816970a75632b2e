package service

import (
	"context"
	"fmt"
	"time"

	"github.com/luoran06/PairLog/internal/schema"
)

// 调度状态：冷却窗口内为 cooling_down，其余情况为 ready
const (
	StateReady       = "ready"
	StateCoolingDown = "cooling_down"
)

// ReportPolicy 某类报告的节奏策略
type ReportPolicy struct {
	CooldownDays int // 距上次生成的最小间隔
	LookbackDays int // 数据量门控的回看窗口
	MinEntries   int // 窗口内的最少日记条数
}

// DefaultReportPolicies 各报告类型的默认策略
func DefaultReportPolicies() map[string]ReportPolicy {
	return map[string]ReportPolicy{
		schema.ReportTypeWeekly:  {CooldownDays: 7, LookbackDays: 7, MinEntries: 4},
		schema.ReportTypeMonthly: {CooldownDays: 30, LookbackDays: 30, MinEntries: 15},
		schema.ReportTypeCustom:  {CooldownDays: 0, LookbackDays: 7, MinEntries: 3},
	}
}

// Availability 生成资格检查结果
type Availability struct {
	Available     bool   `json:"available"`
	State         string `json:"state"`  // ready | cooling_down
	Reason        string `json:"reason"` // 不可用时的人类可读原因
	DaysRemaining int    `json:"days_remaining,omitempty"`
	EntriesFound  int    `json:"entries_found"`
	EntriesNeeded int    `json:"entries_needed,omitempty"`
}

// SchedulerReportStore 调度器需要的报告读路径
type SchedulerReportStore interface {
	LatestByUserAndType(ctx context.Context, userID, reportType string) (*schema.Report, error)
}

// SchedulerDiaryStore 调度器需要的日记读路径
type SchedulerDiaryStore interface {
	CountByOwnerAndRange(ctx context.Context, ownerID, from, to string) (int64, error)
}

// ReportScheduler 按 (userId, reportType) 决定是否允许生成新报告
// 两道互斥的门依次检查：冷却在前，数据量在后。
type ReportScheduler struct {
	reports  SchedulerReportStore
	diaries  SchedulerDiaryStore
	policies map[string]ReportPolicy
	now      func() time.Time
}

// NewReportScheduler 创建调度器
func NewReportScheduler(reports SchedulerReportStore, diaries SchedulerDiaryStore) *ReportScheduler {
	return &ReportScheduler{
		reports:  reports,
		diaries:  diaries,
		policies: DefaultReportPolicies(),
		now:      time.Now,
	}
}

// CheckAvailability 检查某用户此刻能否生成指定类型的报告
func (s *ReportScheduler) CheckAvailability(ctx context.Context, userID, reportType string) (Availability, error) {
	policy, ok := s.policies[reportType]
	if !ok {
		return Availability{}, fmt.Errorf("未知的报告类型: %s", reportType)
	}

	now := s.now()

	// 门一：冷却窗口
	if policy.CooldownDays > 0 {
		latest, err := s.reports.LatestByUserAndType(ctx, userID, reportType)
		if err != nil {
			return Availability{}, err
		}
		if latest != nil {
			elapsed := int(now.Sub(latest.CreatedAt).Hours() / 24)
			if remaining := policy.CooldownDays - elapsed; remaining > 0 {
				return Availability{
					State:         StateCoolingDown,
					Reason:        fmt.Sprintf("冷却中，距下次生成还需 %d 天", remaining),
					DaysRemaining: remaining,
				}, nil
			}
		}
	}

	// 门二：回看窗口内的数据量
	from := now.AddDate(0, 0, -(policy.LookbackDays - 1)).Format("2006-01-02")
	to := now.Format("2006-01-02")
	count, err := s.diaries.CountByOwnerAndRange(ctx, userID, from, to)
	if err != nil {
		return Availability{}, err
	}
	if int(count) < policy.MinEntries {
		needed := policy.MinEntries - int(count)
		return Availability{
			State:         StateReady,
			Reason:        fmt.Sprintf("数据积累中，还需 %d 天日记才能生成", needed),
			EntriesFound:  int(count),
			EntriesNeeded: needed,
		}, nil
	}

	return Availability{Available: true, State: StateReady, EntriesFound: int(count)}, nil
}

// Policy 返回某报告类型的策略（默认回看窗口等）
func (s *ReportScheduler) Policy(reportType string) (ReportPolicy, bool) {
	p, ok := s.policies[reportType]
	return p, ok
}
