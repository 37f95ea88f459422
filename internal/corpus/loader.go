package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/intentbot/intentbot-go/internal/model"
	"go.uber.org/zap"
)

const maxLineSize = 64 * 1024

var errInvalidUTF8 = errors.New("invalid utf-8")

// Loader 训练语料加载器
type Loader struct {
	logger *zap.Logger
}

// NewLoader 创建语料加载器
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load 加载语料文件，返回样例以及是否使用了内置语料。
// 文件缺失、读取失败或没有可用样例时都回退到内置语料，从不返回错误。
func (l *Loader) Load(path string) ([]model.Example, bool) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Info("语料文件不存在，使用内置语料", zap.String("path", path))
		} else {
			l.logger.Warn("打开语料文件失败，使用内置语料", zap.String("path", path), zap.Error(err))
		}
		return Default(), true
	}
	defer f.Close()

	examples, err := Parse(f)
	if err != nil {
		l.logger.Warn("读取语料文件失败，使用内置语料", zap.String("path", path), zap.Error(err))
		return Default(), true
	}
	if len(examples) == 0 {
		l.logger.Warn("语料文件没有可用样例，使用内置语料", zap.String("path", path))
		return Default(), true
	}

	l.logger.Info("语料加载完成",
		zap.String("path", path),
		zap.Int("examples", len(examples)))
	return examples, false
}

// Parse 逐行解析 "command,category[,...]" 格式的语料。
// 空行与 # 开头的注释行跳过，少于两个字段或字段为空的行静默丢弃。
func Parse(r io.Reader) ([]model.Example, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var examples []model.Example
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		if lineNum == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		if !utf8.ValidString(raw) {
			return nil, fmt.Errorf("第 %d 行: %w", lineNum, errInvalidUTF8)
		}

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		utterance := strings.ToLower(strings.TrimSpace(parts[0]))
		category := strings.ToLower(strings.TrimSpace(parts[1]))
		if utterance == "" || category == "" {
			continue
		}
		examples = append(examples, model.Example{
			Utterance: utterance,
			Category:  model.Category(category),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("扫描语料失败: %w", err)
	}
	return examples, nil
}

// CategoryCount 单个类别的样例数
type CategoryCount struct {
	Category model.Category
	Count    int
}

// Stats 按类别统计样例数，按类别名排序
func Stats(examples []model.Example) []CategoryCount {
	counts := make(map[model.Category]int)
	for _, ex := range examples {
		counts[ex.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
