package telegram

import "encoding/json"

// apiResponse Bot API 统一响应
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// Update getUpdates 返回的单条更新
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message 聊天消息
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// User 发送者
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// Chat 会话
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// BotCommand setMyCommands 中的一项
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}
