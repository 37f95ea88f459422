package responder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/intentbot/intentbot-go/internal/model"
	"go.uber.org/zap"
)

// Chooser 随机数来源，IntN 返回 [0, n)
type Chooser interface {
	IntN(n int) int
}

// globalChooser 使用 math/rand 的全局源，并发安全
type globalChooser struct{}

func (globalChooser) IntN(n int) int { return rand.Intn(n) }

// Dispatcher 根据类别和原始文本生成回复
type Dispatcher struct {
	chooser Chooser
	now     func() time.Time
	logger  *zap.Logger
}

// Option Dispatcher 可选项
type Option func(*Dispatcher)

// WithChooser 替换随机数来源（测试中可注入确定性实现）
func WithChooser(c Chooser) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.chooser = c
		}
	}
}

// WithClock 替换时钟
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher 创建回复生成器
func NewDispatcher(logger *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		chooser: globalChooser{},
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generate 生成回复，从不返回错误；内部异常时返回 Apology
func (d *Dispatcher) Generate(text string, category model.Category) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("生成回复失败",
				zap.String("category", string(category)),
				zap.Any("panic", r))
			reply = Apology
		}
	}()

	lower := strings.ToLower(text)
	switch category {
	case model.CategoryHome:
		return d.home(lower)
	case model.CategoryInformation:
		return d.information(lower)
	default:
		return d.pick(Replies(category))
	}
}

func (d *Dispatcher) home(text string) string {
	action, ok := matchFirst(homeActionRules, text)
	if !ok {
		return HomeNotRecognized
	}
	device, _ := matchFirst(homeDeviceRules, text)
	return homeReplies[action][device]
}

func (d *Dispatcher) information(text string) string {
	topic, _ := matchFirst(infoTopicRules, text)
	switch topic {
	case topicTime:
		now := d.now()
		return fmt.Sprintf("🕐 It is %s on %s", now.Format(TimeFormat), now.Format(DateFormat))
	case topicHelp:
		return HelpText
	default:
		return InfoUnavailable
	}
}

func (d *Dispatcher) pick(set []string) string {
	return set[d.chooser.IntN(len(set))]
}
