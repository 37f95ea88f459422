package classifier

import (
	"fmt"
	"sync/atomic"

	"github.com/intentbot/intentbot-go/internal/model"
	"go.uber.org/zap"
)

// DefaultConfidenceFloor 最大后验概率低于该值时返回 unknown
const DefaultConfidenceFloor = 0.30

// Classifier 意图分类器，独占训练好的模型。
// 模型通过原子指针发布，重新训练时先完整构建新模型再替换，读者不会看到半成品。
type Classifier struct {
	current atomic.Pointer[Model]
	floor   float64
	alpha   float64
	logger  *zap.Logger
}

// NewClassifier 创建分类器；floor 不在 (0,1] 内时使用默认值
func NewClassifier(floor float64, logger *zap.Logger) *Classifier {
	if floor <= 0 || floor > 1 {
		floor = DefaultConfidenceFloor
	}
	return &Classifier{
		floor:  floor,
		alpha:  DefaultAlpha,
		logger: logger,
	}
}

// Train 训练并发布新模型。失败时不替换已有模型。
func (c *Classifier) Train(examples []model.Example) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier: fit panicked: %v", r)
		}
		if err != nil {
			c.logger.Error("训练模型失败", zap.Int("examples", len(examples)), zap.Error(err))
		}
	}()

	m, err := Fit(examples, c.alpha)
	if err != nil {
		return err
	}
	c.current.Store(m)

	c.logger.Info("模型训练完成",
		zap.Int("examples", len(examples)),
		zap.Int("categories", len(m.categories)),
		zap.Int("vocabulary", m.VocabularySize()))
	return nil
}

// Trained 是否已有可用模型
func (c *Classifier) Trained() bool {
	return c.current.Load() != nil
}

// Floor 当前置信度下限
func (c *Classifier) Floor() float64 {
	return c.floor
}

// Predict 预测意图；没有模型、置信度不足或内部异常时返回 unknown
func (c *Classifier) Predict(text string) (p model.Prediction) {
	m := c.current.Load()
	if m == nil {
		return model.Unknown(0)
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("预测失败", zap.Any("panic", r))
			p = model.Unknown(0)
		}
	}()

	category, prob := m.Best(text)
	if prob < c.floor {
		c.logger.Debug("置信度不足",
			zap.String("text", text),
			zap.String("best", string(category)),
			zap.Float64("confidence", prob))
		return model.Unknown(prob)
	}
	return model.Prediction{Category: category, Confidence: prob, Known: true}
}
