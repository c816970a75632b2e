package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luoran06/PairLog/internal/bootstrap"
	"github.com/luoran06/PairLog/internal/pkg/buildinfo"
	"github.com/luoran06/PairLog/internal/pkg/config"
	"github.com/luoran06/PairLog/internal/schema"
	"github.com/luoran06/PairLog/internal/service"
)

func main() {
	var (
		cfgPath    string
		userID     string
		reportType string
		startDate  string
		endDate    string
		force      bool
		daemon     bool
		sweepEvery time.Duration
	)
	flag.StringVar(&cfgPath, "config", "", "配置文件路径，留空用默认位置")
	flag.StringVar(&userID, "user", "", "为指定用户生成一次报告")
	flag.StringVar(&reportType, "type", schema.ReportTypeWeekly, "报告类型: weekly | monthly | custom")
	flag.StringVar(&startDate, "start", "", "起始日期 YYYY-MM-DD，留空按类型回看")
	flag.StringVar(&endDate, "end", "", "结束日期 YYYY-MM-DD，留空取昨天")
	flag.BoolVar(&force, "force", false, "跳过冷却与数据量门控")
	flag.BoolVar(&daemon, "daemon", false, "常驻模式，周期性为所有用户生成到期报告")
	flag.DurationVar(&sweepEvery, "interval", 6*time.Hour, "常驻模式的扫描间隔")
	flag.Parse()

	if cfgPath == "" {
		if p, err := config.DefaultConfigPath(); err == nil {
			cfgPath = p
			if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
				// 首次运行写出默认配置，方便用户填 API Key
				if cfg, err := config.Load(""); err == nil {
					_ = config.WriteFile(p, cfg)
				}
			}
		}
	}

	core, err := bootstrap.NewCore(cfgPath)
	if err != nil {
		slog.Error("启动失败", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	slog.Info("报告引擎启动",
		"name", core.Cfg.App.Name,
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if daemon {
		runDaemon(ctx, core, cfgPath, sweepEvery)
		return
	}

	if userID == "" {
		slog.Error("单次模式需要 -user 参数")
		os.Exit(1)
	}

	start, end := resolveRange(core, reportType, startDate, endDate)
	report, err := core.Services.Reports.Generate(ctx, userID, service.GenerateOptions{
		Type: reportType, StartDate: start, EndDate: end, Force: force,
	})
	if err != nil {
		var gateErr *service.GateClosedError
		if errors.As(err, &gateErr) {
			slog.Info("本次不生成", "user", userID, "reason", gateErr.Availability.Reason)
			return
		}
		slog.Error("生成报告失败", "user", userID, "error", err)
		os.Exit(1)
	}
	slog.Info("完成", "report", report.ID, "scope", report.ReportScope, "insight", report.InsightFrom)
}

// runDaemon 周期性扫描所有用户，为冷却结束且数据足够的用户生成周报
func runDaemon(ctx context.Context, core *bootstrap.Core, cfgPath string, interval time.Duration) {
	// 配置热更新只影响日志级别，报告阈值在下次进程重启时生效
	if _, err := config.LoadAndWatch(cfgPath, func(next *config.Config) {
		config.SetupLogger(next.App.LogLevel)
	}); err != nil {
		slog.Warn("配置监听未启用", "error", err)
	}

	// 报告生成事件在日志里留一条通知轨迹，宿主集成时替换为推送
	go func() {
		for evt := range core.Events.Subscribe(ctx, 16) {
			slog.Info("报告事件", "type", evt.Type, "data", evt.Data)
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sweep(ctx, core)
	for {
		select {
		case <-ctx.Done():
			slog.Info("收到退出信号，停止扫描")
			return
		case <-ticker.C:
			sweep(ctx, core)
		}
	}
}

func sweep(ctx context.Context, core *bootstrap.Core) {
	users, err := core.Repos.Profile.ListUserIDs(ctx)
	if err != nil {
		slog.Error("扫描用户失败", "error", err)
		return
	}

	start, end := resolveRange(core, schema.ReportTypeWeekly, "", "")
	generated := 0
	for _, userID := range users {
		_, err := core.Services.Reports.Generate(ctx, userID, service.GenerateOptions{
			Type: schema.ReportTypeWeekly, StartDate: start, EndDate: end,
		})
		switch {
		case err == nil:
			generated++
		case errors.As(err, new(*service.GateClosedError)):
			// 未到期，静默跳过
		default:
			slog.Warn("用户报告生成失败", "user", userID, "error", err)
		}
	}
	slog.Info("扫描完成", "users", len(users), "generated", generated)
}

// resolveRange 缺省区间：截止昨天，按报告类型的回看窗口取起点
func resolveRange(core *bootstrap.Core, reportType, start, end string) (string, string) {
	if start != "" && end != "" {
		return start, end
	}

	lookback := 7
	if p, ok := core.Services.Scheduler.Policy(reportType); ok {
		lookback = p.LookbackDays
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	if end == "" {
		end = yesterday.Format("2006-01-02")
	}
	if start == "" {
		et, err := time.Parse("2006-01-02", end)
		if err != nil {
			et = yesterday
		}
		start = et.AddDate(0, 0, -(lookback - 1)).Format("2006-01-02")
	}
	return start, end
}
