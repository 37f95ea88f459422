package classifier

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern 两个及以上字母/数字/下划线组成的词，单字符词被丢弃
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Normalize 统一为 NFC 并转小写
func Normalize(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// Tokenize 切分为词
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(Normalize(text), -1)
}

// Features 提取 unigram + bigram 特征（bigram 由相邻词以空格连接）
func Features(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	features := make([]string, 0, 2*len(tokens)-1)
	features = append(features, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		features = append(features, tokens[i]+" "+tokens[i+1])
	}
	return features
}
