package model

// Category 意图类别
type Category string

const (
	CategoryGreet       Category = "greet"
	CategoryFarewell    Category = "farewell"
	CategoryHome        Category = "home"
	CategoryStatusQuery Category = "status_query"
	CategoryGratitude   Category = "gratitude"
	CategoryInformation Category = "information"
	CategoryWeather     Category = "weather"

	// CategoryUnknown 置信度不足或没有模型时的兜底类别，不参与训练
	CategoryUnknown Category = "unknown"
)

// KnownCategories 所有可训练的真实类别
var KnownCategories = []Category{
	CategoryGreet,
	CategoryFarewell,
	CategoryHome,
	CategoryStatusQuery,
	CategoryGratitude,
	CategoryInformation,
	CategoryWeather,
}

// Example 训练样例
type Example struct {
	Utterance string   `json:"utterance"`
	Category  Category `json:"category"`
}

// Prediction 分类结果；Known 为 false 时 Category 恒为 unknown
type Prediction struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Known      bool     `json:"known"`
}

// Unknown 构造 unknown 结果，confidence 为实际最大后验概率（没有模型时为 0）
func Unknown(confidence float64) Prediction {
	return Prediction{Category: CategoryUnknown, Confidence: confidence}
}
