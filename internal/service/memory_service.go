package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/luoran06/PairLog/internal/ai"
	"github.com/luoran06/PairLog/internal/schema"
	"github.com/philippgille/chromem-go"
)

const memoryCollection = "report_insights"

// MemoryService 历史报告洞察的向量记忆
// 每份报告的洞察文本被嵌入后入库，下次生成时召回相近的历史片段，
// 让新报告能延续此前的观察线索。嵌入服务未配置时所有操作静默跳过。
type MemoryService struct {
	db       *chromem.DB
	embedder *ai.EmbeddingClient
}

// NewMemoryService 创建记忆服务，path 为空时只用内存库
func NewMemoryService(path string, embedder *ai.EmbeddingClient) (*MemoryService, error) {
	if embedder == nil || !embedder.IsConfigured() {
		slog.Info("嵌入服务未配置，报告记忆功能关闭")
		return &MemoryService{}, nil
	}

	var db *chromem.DB
	var err error
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("打开记忆库失败: %w", err)
		}
	}
	return &MemoryService{db: db, embedder: embedder}, nil
}

func (m *MemoryService) enabled() bool {
	return m != nil && m.db != nil && m.embedder != nil
}

func (m *MemoryService) collection(ctx context.Context) (*chromem.Collection, error) {
	return m.db.GetOrCreateCollection(memoryCollection, nil, m.embeddingFunc(ctx))
}

// chromem 的 EmbeddingFunc 每次只嵌入一段文本
func (m *MemoryService) embeddingFunc(ctx context.Context) chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		vecs, err := m.embedder.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vecs) == 0 {
			return nil, fmt.Errorf("嵌入结果为空")
		}
		return vecs[0], nil
	}
}

// Index 把报告洞察写入记忆库
func (m *MemoryService) Index(ctx context.Context, report *schema.Report) error {
	if !m.enabled() || report.AIInsights == "" {
		return nil
	}

	col, err := m.collection(ctx)
	if err != nil {
		return fmt.Errorf("打开记忆集合失败: %w", err)
	}

	doc := chromem.Document{
		ID:      report.ID,
		Content: report.AIInsights,
		Metadata: map[string]string{
			"user_id":    report.UserID,
			"type":       report.Type,
			"start_date": report.StartDate,
			"end_date":   report.EndDate,
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("写入报告记忆失败: %w", err)
	}
	return nil
}

// Recall 召回该用户与查询最相近的历史洞察片段
// 检索按 user_id 元数据过滤，洞察文本不跨用户可见。
func (m *MemoryService) Recall(ctx context.Context, userID, query string, limit int) ([]string, error) {
	if !m.enabled() || userID == "" || query == "" {
		return nil, nil
	}

	col, err := m.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("打开记忆集合失败: %w", err)
	}
	if col.Count() == 0 {
		return nil, nil
	}
	if limit > col.Count() {
		limit = col.Count()
	}

	results, err := col.Query(ctx, query, limit, map[string]string{"user_id": userID}, nil)
	if err != nil {
		return nil, fmt.Errorf("查询报告记忆失败: %w", err)
	}

	memories := make([]string, 0, len(results))
	for _, r := range results {
		memories = append(memories, r.Content)
	}
	return memories, nil
}
