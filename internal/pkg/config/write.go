package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// DefaultConfigPath 默认配置文件位置（可执行文件旁的 config/config.yaml）
func DefaultConfigPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("获取可执行文件路径失败: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "config", "config.yaml"), nil
}

// WriteFile 把配置写回 yaml 文件
func WriteFile(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("cfg 不能为空")
	}
	if path == "" {
		return fmt.Errorf("path 不能为空")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	payload := map[string]any{
		"app": map[string]any{
			"name":      cfg.App.Name,
			"version":   cfg.App.Version,
			"log_level": cfg.App.LogLevel,
		},
		"storage": map[string]any{
			"db_path":     cfg.Storage.DBPath,
			"memory_path": cfg.Storage.MemoryPath,
		},
		"ai": map[string]any{
			"deepseek": map[string]any{
				"api_key":     cfg.AI.DeepSeek.APIKey,
				"base_url":    cfg.AI.DeepSeek.BaseURL,
				"model":       cfg.AI.DeepSeek.Model,
				"timeout_sec": cfg.AI.DeepSeek.TimeoutSec,
			},
			"embedding": map[string]any{
				"api_key":  cfg.AI.Embedding.APIKey,
				"base_url": cfg.AI.Embedding.BaseURL,
				"model":    cfg.AI.Embedding.Model,
			},
		},
		"report": map[string]any{
			"sync_strong_threshold":    cfg.Report.SyncStrongThreshold,
			"sync_weak_threshold":      cfg.Report.SyncWeakThreshold,
			"support_strong_threshold": cfg.Report.SupportStrongThreshold,
			"support_weak_threshold":   cfg.Report.SupportWeakThreshold,
		},
	}

	b, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
