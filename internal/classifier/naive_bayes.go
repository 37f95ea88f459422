package classifier

import (
	"errors"
	"math"
	"sort"

	"github.com/intentbot/intentbot-go/internal/model"
)

// DefaultAlpha 加性平滑系数（Laplace）
const DefaultAlpha = 1.0

var (
	ErrEmptyCorpus      = errors.New("classifier: empty corpus")
	ErrSingleCategory   = errors.New("classifier: need at least two distinct categories")
	ErrEmptyVocabulary  = errors.New("classifier: corpus produced no features")
	ErrInvalidSmoothing = errors.New("classifier: smoothing alpha must be positive")
)

// Model 多项式朴素贝叶斯模型，训练完成后只读
type Model struct {
	vocab      map[string]int
	categories []model.Category
	logPrior   []float64
	logProb    [][]float64 // [category][feature]
}

// Fit 在语料上训练模型。类别先验取样例频率，特征概率做加性平滑。
func Fit(examples []model.Example, alpha float64) (*Model, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyCorpus
	}
	if alpha <= 0 {
		return nil, ErrInvalidSmoothing
	}

	classCount := make(map[model.Category]int)
	for _, ex := range examples {
		classCount[ex.Category]++
	}
	if len(classCount) < 2 {
		return nil, ErrSingleCategory
	}

	categories := make([]model.Category, 0, len(classCount))
	for c := range classCount {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	classIndex := make(map[model.Category]int, len(categories))
	for i, c := range categories {
		classIndex[c] = i
	}

	vocab := make(map[string]int)
	docs := make([][]string, len(examples))
	for i, ex := range examples {
		docs[i] = Features(ex.Utterance)
		for _, f := range docs[i] {
			if _, ok := vocab[f]; !ok {
				vocab[f] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	counts := make([][]float64, len(categories))
	totals := make([]float64, len(categories))
	for i := range counts {
		counts[i] = make([]float64, len(vocab))
	}
	for i, ex := range examples {
		ci := classIndex[ex.Category]
		for _, f := range docs[i] {
			counts[ci][vocab[f]]++
			totals[ci]++
		}
	}

	m := &Model{
		vocab:      vocab,
		categories: categories,
		logPrior:   make([]float64, len(categories)),
		logProb:    make([][]float64, len(categories)),
	}
	n := float64(len(examples))
	v := float64(len(vocab))
	for ci, c := range categories {
		m.logPrior[ci] = math.Log(float64(classCount[c]) / n)
		denom := math.Log(totals[ci] + alpha*v)
		m.logProb[ci] = make([]float64, len(vocab))
		for fi, cnt := range counts[ci] {
			m.logProb[ci][fi] = math.Log(cnt+alpha) - denom
		}
	}
	return m, nil
}

// Categories 模型已知类别（按名称排序）
func (m *Model) Categories() []model.Category {
	out := make([]model.Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// VocabularySize 特征数
func (m *Model) VocabularySize() int {
	return len(m.vocab)
}

// Posterior 计算各类别的后验概率，顺序与 Categories 一致。
// 词表外的特征被忽略；没有任何已知特征时结果等于类别先验。
func (m *Model) Posterior(text string) []float64 {
	joint := make([]float64, len(m.categories))
	copy(joint, m.logPrior)
	for _, f := range Features(text) {
		fi, ok := m.vocab[f]
		if !ok {
			continue
		}
		for ci := range joint {
			joint[ci] += m.logProb[ci][fi]
		}
	}

	maxLog := math.Inf(-1)
	for _, l := range joint {
		if l > maxLog {
			maxLog = l
		}
	}
	var sum float64
	probs := make([]float64, len(joint))
	for i, l := range joint {
		probs[i] = math.Exp(l - maxLog)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Best 返回后验概率最大的类别及其概率；并列时取排序靠前的类别
func (m *Model) Best(text string) (model.Category, float64) {
	probs := m.Posterior(text)
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return m.categories[best], probs[best]
}
