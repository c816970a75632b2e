package bootstrap

import (
	"fmt"
	"time"

	"github.com/luoran06/PairLog/internal/ai"
	"github.com/luoran06/PairLog/internal/analytics"
	"github.com/luoran06/PairLog/internal/eventbus"
	"github.com/luoran06/PairLog/internal/pkg/config"
	"github.com/luoran06/PairLog/internal/repository"
	"github.com/luoran06/PairLog/internal/service"
)

// Core 持有进程共享的核心依赖
type Core struct {
	Cfg    *config.Config
	DB     *repository.Database
	Events *eventbus.Hub

	Repos struct {
		Diary   *repository.DiaryRepository
		Profile *repository.ProfileRepository
		Report  *repository.ReportRepository
	}

	Clients struct {
		DeepSeek  *ai.DeepSeekClient
		Embedding *ai.EmbeddingClient
	}

	Services struct {
		Scheduler *service.ReportScheduler
		Reports   *service.ReportService
		Memory    *service.MemoryService
	}
}

// NewCore 构建核心依赖
func NewCore(cfgPath string) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	config.SetupLogger(cfg.App.LogLevel)

	db, err := repository.NewDatabase(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	c := &Core{Cfg: cfg, DB: db, Events: eventbus.NewHub()}

	// Repos
	c.Repos.Diary = repository.NewDiaryRepository(db.DB)
	c.Repos.Profile = repository.NewProfileRepository(db.DB)
	c.Repos.Report = repository.NewReportRepository(db.DB)

	// Clients
	c.Clients.DeepSeek = ai.NewDeepSeekClient(&ai.DeepSeekConfig{
		APIKey:  cfg.AI.DeepSeek.APIKey,
		BaseURL: cfg.AI.DeepSeek.BaseURL,
		Model:   cfg.AI.DeepSeek.Model,
		Timeout: time.Duration(cfg.AI.DeepSeek.TimeoutSec) * time.Second,
	})
	c.Clients.Embedding = ai.NewEmbeddingClient(&ai.EmbeddingConfig{
		APIKey:  cfg.AI.Embedding.APIKey,
		BaseURL: cfg.AI.Embedding.BaseURL,
		Model:   cfg.AI.Embedding.Model,
	})

	// Services
	insight := ai.NewInsightGenerator(c.Clients.DeepSeek,
		time.Duration(cfg.AI.DeepSeek.TimeoutSec)*time.Second)
	thresholds := analytics.SynchronyThresholds{
		SyncStrong:    cfg.Report.SyncStrongThreshold,
		SyncWeak:      cfg.Report.SyncWeakThreshold,
		SupportStrong: cfg.Report.SupportStrongThreshold,
		SupportWeak:   cfg.Report.SupportWeakThreshold,
	}
	c.Services.Scheduler = service.NewReportScheduler(c.Repos.Report, c.Repos.Diary)
	c.Services.Reports = service.NewReportService(
		c.Repos.Diary, c.Repos.Profile, c.Repos.Report,
		c.Services.Scheduler, insight, thresholds,
	)

	// 可选的报告记忆，嵌入服务没配时内部自动关闭
	c.Services.Memory, err = service.NewMemoryService(cfg.Storage.MemoryPath, c.Clients.Embedding)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.Services.Reports.SetMemory(c.Services.Memory)
	c.Services.Reports.SetEventHub(c.Events)

	return c, nil
}

// Close 关闭核心依赖资源
func (c *Core) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// RequireAIConfigured 检查洞察生成所需的 LLM 是否已配置
func (c *Core) RequireAIConfigured() error {
	if c.Clients.DeepSeek == nil || !c.Clients.DeepSeek.IsConfigured() {
		return fmt.Errorf("DeepSeek API 未配置")
	}
	return nil
}
