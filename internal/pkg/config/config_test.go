package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// 无配置文件时全部走默认值
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.AI.DeepSeek.Model != "deepseek-chat" {
		t.Fatalf("model = %q, want deepseek-chat", cfg.AI.DeepSeek.Model)
	}
	if cfg.AI.DeepSeek.TimeoutSec != 20 {
		t.Fatalf("timeout_sec = %d, want 20", cfg.AI.DeepSeek.TimeoutSec)
	}
	if cfg.Report.SyncStrongThreshold != 70 || cfg.Report.SupportWeakThreshold != 20 {
		t.Fatalf("report thresholds = %+v, want defaults", cfg.Report)
	}
}

func TestWriteFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cfg.App.LogLevel = "debug"
	cfg.Report.SyncStrongThreshold = 80

	if err := WriteFile(path, cfg); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got.App.LogLevel != "debug" {
		t.Fatalf("log_level = %q, want debug", got.App.LogLevel)
	}
	if got.Report.SyncStrongThreshold != 80 {
		t.Fatalf("sync_strong_threshold = %d, want 80", got.Report.SyncStrongThreshold)
	}
}

func TestExpandEnvPlaceholder(t *testing.T) {
	t.Setenv("PAIRLOG_TEST_KEY", "sk-test")

	if got := expandEnv("${PAIRLOG_TEST_KEY}"); got != "sk-test" {
		t.Fatalf("expandEnv = %q, want sk-test", got)
	}
	if got := expandEnv("sk-plain"); got != "sk-plain" {
		t.Fatalf("plain value changed: %q", got)
	}
	if got := expandEnv("${PAIRLOG_UNSET_KEY}"); got != "" {
		t.Fatalf("unset placeholder = %q, want empty", got)
	}
}

func TestResolvePathKeepsAbsolute(t *testing.T) {
	abs := string(os.PathSeparator) + filepath.Join("data", "pairlog.db")
	if got := resolvePath(abs); got != abs {
		t.Fatalf("absolute path changed: %q", got)
	}
	if got := resolvePath(""); got != "" {
		t.Fatalf("empty path changed: %q", got)
	}
}
