package stats

import (
	"context"
	"sync"

	"github.com/intentbot/intentbot-go/internal/model"
)

// 分类结果
const (
	OutcomeResolved = "resolved"
	OutcomeFallback = "fallback"
)

// Counts category -> outcome -> 次数
type Counts map[string]map[string]int64

// Recorder 分类统计
type Recorder interface {
	Record(ctx context.Context, p model.Prediction) error
	Snapshot(ctx context.Context) (Counts, error)
}

// Outcome 将分类结果映射为统计项
func Outcome(p model.Prediction) string {
	if p.Known {
		return OutcomeResolved
	}
	return OutcomeFallback
}

// MemoryRecorder 进程内统计，未启用 Redis 时使用
type MemoryRecorder struct {
	mu     sync.Mutex
	counts Counts
}

// NewMemoryRecorder 创建内存统计
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{counts: make(Counts)}
}

// Record 记录一次分类
func (r *MemoryRecorder) Record(_ context.Context, p model.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := string(p.Category)
	if r.counts[c] == nil {
		r.counts[c] = make(map[string]int64)
	}
	r.counts[c][Outcome(p)]++
	return nil
}

// Snapshot 返回统计副本
func (r *MemoryRecorder) Snapshot(_ context.Context) (Counts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(Counts, len(r.counts))
	for c, outcomes := range r.counts {
		out[c] = make(map[string]int64, len(outcomes))
		for o, n := range outcomes {
			out[c][o] = n
		}
	}
	return out, nil
}

var (
	_ Recorder = (*MemoryRecorder)(nil)
	_ Recorder = (*RedisRecorder)(nil)
)
