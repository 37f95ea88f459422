package model

import "time"

// 消息类型
const (
	MessageTypeChat       = "CHAT"
	MessageTypeHeartbeat  = "HEARTBEAT"
	MessageTypeAIResponse = "AI_RESPONSE"
	MessageTypeError      = "ERROR"
)

// ChatMessage WebSocket 聊天消息
type ChatMessage struct {
	MessageID  string    `json:"messageId"`
	Type       string    `json:"type"` // CHAT, HEARTBEAT, AI_RESPONSE, ERROR
	Content    string    `json:"content"`
	Sender     int64     `json:"sender"`
	SenderName string    `json:"senderName,omitempty"`
	SessionID  string    `json:"sessionId,omitempty"`
	ReplyTo    string    `json:"replyTo,omitempty"`
	Category   Category  `json:"category,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// RespondRequest HTTP 对话请求
type RespondRequest struct {
	Text string `json:"text"`
}

// RespondResponse HTTP 对话响应
type RespondResponse struct {
	Reply      string   `json:"reply"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Known      bool     `json:"known"`
}

// ClassifyResponse 问题分类响应
type ClassifyResponse struct {
	Question   string   `json:"question"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Known      bool     `json:"known"`
}

// RetrainResponse 重新训练结果
type RetrainResponse struct {
	Success   bool           `json:"success"`
	IsDefault bool           `json:"isDefault"`
	Examples  int            `json:"examples"`
	PerClass  map[string]int `json:"perClass"`
	Message   string         `json:"message,omitempty"`
}
