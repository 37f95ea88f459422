package responder

import "strings"

// keywordRule 带标签的关键词匹配规则，任一关键词出现在文本中即命中
type keywordRule[T comparable] struct {
	tag      T
	keywords []string
}

// matchFirst 按表顺序匹配，返回第一条命中规则的标签
func matchFirst[T comparable](rules []keywordRule[T], text string) (T, bool) {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.tag, true
			}
		}
	}
	var zero T
	return zero, false
}

type homeAction int

const (
	actionActivate homeAction = iota + 1
	actionDeactivate
)

type homeDevice int

const (
	deviceGeneric homeDevice = iota
	deviceLight
	deviceTV
)

// homeActionRules 开启优先于关闭：同时包含两类关键词的文本按开启处理
var homeActionRules = []keywordRule[homeAction]{
	{actionActivate, []string{"turn on", "switch on", "power on", "lights on", "light on", "enable"}},
	{actionDeactivate, []string{"turn off", "switch off", "power off", "shut off", "lights off", "light off", "disable", "deactivate"}},
}

var homeDeviceRules = []keywordRule[homeDevice]{
	{deviceLight, []string{"light", "lamp"}},
	{deviceTV, []string{"tv", "television", "telly"}},
}

type infoTopic int

const (
	topicTime infoTopic = iota + 1
	topicHelp
)

// infoTopicRules 时间查询优先于帮助
var infoTopicRules = []keywordRule[infoTopic]{
	{topicTime, []string{"time", "hour", "clock", "date", "what day"}},
	{topicHelp, []string{"help", "command", "what can you do"}},
}
