package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/intentbot/intentbot-go/internal/classifier"
	"github.com/intentbot/intentbot-go/internal/corpus"
	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/intentbot/intentbot-go/internal/responder"
	"github.com/intentbot/intentbot-go/internal/stats"
	"go.uber.org/zap"
)

var ErrNotTrained = errors.New("模型未训练")

// CorpusInfo 当前模型所用语料的概况
type CorpusInfo struct {
	Examples  int
	IsDefault bool
	PerClass  map[string]int
}

// AssistantService 意图识别 + 回复生成流水线。
// 生命周期：构造 → Init 训练一次 → 并发只读服务；Retrain 整体替换模型。
type AssistantService struct {
	classifier *classifier.Classifier
	dispatcher *responder.Dispatcher
	loader     *corpus.Loader
	recorder   stats.Recorder
	corpusPath string
	logger     *zap.Logger

	retrainMu sync.Mutex
	info      atomic.Pointer[CorpusInfo]
}

// NewAssistantService 创建流水线；recorder 为 nil 时使用内存统计
func NewAssistantService(
	cls *classifier.Classifier,
	dispatcher *responder.Dispatcher,
	loader *corpus.Loader,
	recorder stats.Recorder,
	corpusPath string,
	logger *zap.Logger,
) *AssistantService {
	if recorder == nil {
		recorder = stats.NewMemoryRecorder()
	}
	return &AssistantService{
		classifier: cls,
		dispatcher: dispatcher,
		loader:     loader,
		recorder:   recorder,
		corpusPath: corpusPath,
		logger:     logger,
	}
}

// Init 加载语料并训练模型。训练失败时服务仍可用，所有消息按 unknown 回复。
func (s *AssistantService) Init() error {
	_, err := s.Retrain()
	return err
}

// Retrain 重新加载语料并训练，成功后原子替换模型；失败时保留旧模型
func (s *AssistantService) Retrain() (CorpusInfo, error) {
	s.retrainMu.Lock()
	defer s.retrainMu.Unlock()

	examples, isDefault := s.loader.Load(s.corpusPath)
	info := CorpusInfo{
		Examples:  len(examples),
		IsDefault: isDefault,
		PerClass:  make(map[string]int),
	}
	for _, c := range corpus.Stats(examples) {
		info.PerClass[string(c.Category)] = c.Count
	}

	if err := s.classifier.Train(examples); err != nil {
		return info, fmt.Errorf("训练失败: %w", err)
	}
	s.info.Store(&info)

	s.logger.Info("意图模型就绪",
		zap.String("corpus", s.corpusPath),
		zap.Bool("isDefault", isDefault),
		zap.Int("examples", info.Examples),
		zap.Any("perClass", info.PerClass))
	return info, nil
}

// Corpus 当前模型的语料概况
func (s *AssistantService) Corpus() (CorpusInfo, error) {
	info := s.info.Load()
	if info == nil {
		return CorpusInfo{}, ErrNotTrained
	}
	return *info, nil
}

// Ready 模型是否可用
func (s *AssistantService) Ready() bool {
	return s.classifier.Trained()
}

// Classify 仅分类
func (s *AssistantService) Classify(text string) model.Prediction {
	return s.classifier.Predict(text)
}

// Respond 对外的唯一核心接口：输入用户文本，总是返回一条回复
func (s *AssistantService) Respond(text string) string {
	p := s.classifier.Predict(text)
	return s.dispatcher.Generate(text, p.Category)
}

// Process 分类并生成回复，同时记录统计；统计失败只记日志
func (s *AssistantService) Process(ctx context.Context, text string) model.RespondResponse {
	p := s.classifier.Predict(text)
	reply := s.dispatcher.Generate(text, p.Category)

	if err := s.recorder.Record(ctx, p); err != nil {
		s.logger.Warn("记录分类统计失败", zap.Error(err))
	}

	s.logger.Info("消息处理完成",
		zap.String("text", text),
		zap.String("category", string(p.Category)),
		zap.Float64("confidence", p.Confidence))

	return model.RespondResponse{
		Reply:      reply,
		Category:   p.Category,
		Confidence: p.Confidence,
		Known:      p.Known,
	}
}

// Stats 分类统计
func (s *AssistantService) Stats(ctx context.Context) (stats.Counts, error) {
	return s.recorder.Snapshot(ctx)
}
