package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/luoran06/PairLog/internal/ai"
	"github.com/luoran06/PairLog/internal/analytics"
	"github.com/luoran06/PairLog/internal/eventbus"
	"github.com/luoran06/PairLog/internal/schema"
)

// DiaryStore 报告装配需要的日记读路径
type DiaryStore interface {
	SchedulerDiaryStore
	ListByOwnerAndRange(ctx context.Context, ownerID, from, to string) ([]schema.DiaryEntry, error)
}

// ProfileStore 用户档案读路径
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*schema.UserProfile, error)
}

// ReportStore 报告持久化路径
type ReportStore interface {
	SchedulerReportStore
	Upsert(ctx context.Context, report *schema.Report) error
	GetByKey(ctx context.Context, userID, reportType, startDate, endDate string) (*schema.Report, error)
}

// InsightClient 叙述性洞察生成（外部 LLM，带本地降级）
type InsightClient interface {
	Generate(ctx context.Context, facts *ai.InsightFacts) ai.InsightResult
}

// ReportMemory 历史报告记忆（可选）
// Recall 只返回 userID 本人的历史洞察。
type ReportMemory interface {
	Index(ctx context.Context, report *schema.Report) error
	Recall(ctx context.Context, userID, query string, limit int) ([]string, error)
}

// GenerateOptions 报告生成选项
type GenerateOptions struct {
	Type      string // weekly | monthly | custom
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Force     bool   // 跳过调度门控（不跳过幂等合并）
}

// GateClosedError 调度门控未通过
type GateClosedError struct {
	Availability Availability
}

func (e *GateClosedError) Error() string {
	return "报告生成条件未满足: " + e.Availability.Reason
}

// ReportService 报告装配器
// 把归一化、聚合、伴侣分析、风险打分、洞察生成串成一份持久化报告文档。
type ReportService struct {
	diaries   DiaryStore
	profiles  ProfileStore
	reports   ReportStore
	scheduler *ReportScheduler
	insight   InsightClient
	memory    ReportMemory  // 可选
	events    *eventbus.Hub // 可选
	th        analytics.SynchronyThresholds

	mu       sync.Mutex
	inFlight map[string]*sync.Mutex // 同一报告键的生成互斥
}

// NewReportService 创建报告服务
func NewReportService(
	diaries DiaryStore,
	profiles ProfileStore,
	reports ReportStore,
	scheduler *ReportScheduler,
	insight InsightClient,
	th analytics.SynchronyThresholds,
) *ReportService {
	return &ReportService{
		diaries:   diaries,
		profiles:  profiles,
		reports:   reports,
		scheduler: scheduler,
		insight:   insight,
		th:        th,
		inFlight:  make(map[string]*sync.Mutex),
	}
}

// SetMemory 设置报告记忆服务（可选）
func (s *ReportService) SetMemory(memory ReportMemory) {
	s.memory = memory
}

// SetEventHub 设置事件中心（可选），报告生成完成后发布通知事件
func (s *ReportService) SetEventHub(hub *eventbus.Hub) {
	s.events = hub
}

// sideResult 单个用户侧的分析结果
type sideResult struct {
	profile *schema.UserProfile
	entries []schema.DiaryEntry
	emotion analytics.EmotionSummary
	stats   analytics.DiaryStats
	perDate map[string]string
	err     error
}

// Generate 生成（或合并更新）一份报告
func (s *ReportService) Generate(ctx context.Context, userID string, opts GenerateOptions) (*schema.Report, error) {
	if err := validateRange(opts.StartDate, opts.EndDate); err != nil {
		return nil, err
	}
	if opts.Type == "" {
		opts.Type = schema.ReportTypeWeekly
	}
	if _, ok := s.scheduler.Policy(opts.Type); !ok {
		return nil, fmt.Errorf("未知的报告类型: %s", opts.Type)
	}

	// 同键并发生成走同一把锁，配合存储层 upsert 保证只落一份文档
	key := fmt.Sprintf("%s|%s|%s|%s", userID, opts.Type, opts.StartDate, opts.EndDate)
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if !opts.Force {
		avail, err := s.scheduler.CheckAvailability(ctx, userID, opts.Type)
		if err != nil {
			return nil, err
		}
		if !avail.Available {
			return nil, &GateClosedError{Availability: avail}
		}
	}

	// 配偶分支取决于主用户档案，档案先行
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("读取档案失败: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("用户档案不存在: %s", userID)
	}

	// 两侧取数与聚合互不共享可变状态，先全部发出再统一汇合
	primaryCh := make(chan sideResult, 1)
	go func() {
		primaryCh <- s.aggregateSide(ctx, profile, opts.StartDate, opts.EndDate)
	}()

	var spouseCh chan sideResult
	if profile.HasAcceptedSpouse() {
		spouseCh = make(chan sideResult, 1)
		go func() {
			spouseCh <- s.analyzeSide(ctx, profile.SpouseID, opts.StartDate, opts.EndDate)
		}()
	}

	primary := <-primaryCh
	if primary.err != nil {
		return nil, primary.err
	}

	var spouse *sideResult
	if spouseCh != nil {
		if r := <-spouseCh; r.err != nil || r.profile == nil {
			// 配偶数据取不到时静默降级为个人报告
			slog.Warn("配偶数据不可用，降级为个人报告",
				"user", userID, "spouse", profile.SpouseID, "error", r.err)
		} else {
			spouse = &r
		}
	}

	risk := analytics.ScoreRisk(analytics.RiskInputsFromProfile(primary.profile))

	facts := &ai.InsightFacts{
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
		Emotion:   primary.emotion,
		Stats:     primary.stats,
		Risk:      risk,
	}

	report := &schema.Report{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        opts.Type,
		StartDate:   opts.StartDate,
		EndDate:     opts.EndDate,
		ReportScope: schema.ReportScopeIndividual,
		Emotion:     toJSONMap(primary.emotion),
		Stats:       toJSONMap(primary.stats),
		Profile: schema.JSONMap{
			"attachment_type":  primary.profile.AttachmentType,
			"personality_type": primary.profile.PersonalityType,
			"risk_level":       risk.Level,
			"risk_score":       risk.Score,
		},
	}

	if spouse != nil {
		couple := s.analyzeCouple(&primary, spouse, opts.StartDate, opts.EndDate)
		report.ReportScope = schema.ReportScopeCouple
		report.Couple = toJSONMap(couple)
		facts.Couple = &ai.CoupleFacts{
			SynchronyPct:   couple.Interaction.SynchronyPct,
			SupportPct:     couple.Interaction.SupportPct,
			OverlapDays:    couple.Interaction.OverlapDays,
			DynamicsLabel:  couple.Dynamics.Label,
			Strengths:      couple.Interaction.Strengths,
			Concerns:       couple.Interaction.Concerns,
			RiskLevel:      couple.Risk.Level,
			ConflictScript: couple.ConflictScript,
		}
	}

	if s.memory != nil {
		query := fmt.Sprintf("%s 报告 %s 至 %s", opts.Type, opts.StartDate, opts.EndDate)
		if memories, err := s.memory.Recall(ctx, userID, query, 3); err == nil {
			facts.Memories = memories
		} else {
			slog.Debug("历史报告记忆查询失败", "error", err)
		}
	}

	result := s.insight.Generate(ctx, facts)
	report.AIInsights = result.Text
	report.InsightFrom = result.Source
	if result.Source == ai.InsightFallback {
		slog.Info("洞察走降级分支", "user", userID, "reason", result.Reason)
	}

	if err := s.reports.Upsert(ctx, report); err != nil {
		return nil, fmt.Errorf("持久化报告失败: %w", err)
	}

	if s.memory != nil {
		if err := s.memory.Index(ctx, report); err != nil {
			slog.Debug("索引报告记忆失败", "error", err)
		}
	}

	s.events.Publish(eventbus.ReportGenerated(report.ID, userID, report.ReportScope, report.InsightFrom))

	slog.Info("报告已生成",
		"user", userID, "type", opts.Type,
		"range", opts.StartDate+"~"+opts.EndDate,
		"scope", report.ReportScope, "insight", report.InsightFrom,
	)
	return report, nil
}

// CoupleAnalysis 伴侣分析子结构
type CoupleAnalysis struct {
	Interaction    analytics.CoupleInteraction  `json:"interaction"`
	Dynamics       analytics.AttachmentDynamics `json:"dynamics"`
	ConflictScript []string                     `json:"conflict_script"`
	Risk           analytics.RiskAssessment     `json:"risk"`
	SpouseEmotion  analytics.EmotionSummary     `json:"spouse_emotion"`
}

// analyzeSide 拉取档案并聚合一侧用户的数据
func (s *ReportService) analyzeSide(ctx context.Context, userID, from, to string) sideResult {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return sideResult{err: fmt.Errorf("读取档案失败: %w", err)}
	}
	if profile == nil {
		return sideResult{}
	}
	return s.aggregateSide(ctx, profile, from, to)
}

// aggregateSide 档案已就绪时，拉取日记并聚合
func (s *ReportService) aggregateSide(ctx context.Context, profile *schema.UserProfile, from, to string) sideResult {
	entries, err := s.diaries.ListByOwnerAndRange(ctx, profile.UserID, from, to)
	if err != nil {
		return sideResult{err: fmt.Errorf("读取日记失败: %w", err)}
	}

	return sideResult{
		profile: profile,
		entries: entries,
		emotion: analytics.SummarizeEmotions(entries),
		stats:   analytics.BuildDiaryStats(entries),
		perDate: analytics.PerDateEmotion(entries),
	}
}

// analyzeCouple 双方都有数据时的伴侣层分析
func (s *ReportService) analyzeCouple(primary, spouse *sideResult, from, to string) CoupleAnalysis {
	dates := datesBetween(from, to)
	interaction := analytics.AnalyzeSynchrony(primary.perDate, spouse.perDate, dates, s.th)
	dynamics := analytics.LookupAttachmentDynamics(primary.profile.AttachmentType, spouse.profile.AttachmentType)
	script := analytics.LookupConflictScript(primary.profile.AttachmentType, spouse.profile.AttachmentType)
	risk := analytics.ScoreCoupleRisk(
		analytics.RiskInputsFromProfile(primary.profile),
		analytics.RiskInputsFromProfile(spouse.profile),
	)

	return CoupleAnalysis{
		Interaction:    interaction,
		Dynamics:       dynamics,
		ConflictScript: script,
		Risk:           risk,
		SpouseEmotion:  spouse.emotion,
	}
}

// keyLock 取同一报告键的互斥锁
func (s *ReportService) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.inFlight[key]
	if !ok {
		lock = &sync.Mutex{}
		s.inFlight[key] = lock
	}
	return lock
}

// validateRange 校验日期区间（调用方契约，任何 I/O 之前快速失败）
func validateRange(start, end string) error {
	st, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("开始日期无效: %q", start)
	}
	et, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("结束日期无效: %q", end)
	}
	if st.After(et) {
		return fmt.Errorf("开始日期晚于结束日期: %s > %s", start, end)
	}
	return nil
}

// datesBetween [from, to] 闭区间内的所有日期
func datesBetween(from, to string) []string {
	st, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil
	}
	et, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil
	}

	var dates []string
	for d := st; !d.After(et); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

// toJSONMap 结构体转 JSONMap（报告文档里的嵌套子结构）
func toJSONMap(v any) schema.JSONMap {
	b, err := json.Marshal(v)
	if err != nil {
		return schema.JSONMap{}
	}
	var m schema.JSONMap
	if err := json.Unmarshal(b, &m); err != nil {
		return schema.JSONMap{}
	}
	return m
}
