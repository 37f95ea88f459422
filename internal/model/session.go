package model

import (
	"sync"
	"time"
)

// Conn WebSocket 连接的最小接口，便于测试替换
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// UserSession 用户连接会话（只记录连接信息，不保存对话内容）
type UserSession struct {
	UserID        int64
	Conn          Conn
	SessionID     string
	ClientIP      string
	ConnectedAt   time.Time
	lastHeartbeat time.Time
	missedBeats   int
	mu            sync.Mutex // 保护心跳字段与连接写入
}

// NewUserSession 创建会话
func NewUserSession(userID int64, conn Conn, sessionID, clientIP string, now time.Time) *UserSession {
	return &UserSession{
		UserID:        userID,
		Conn:          conn,
		SessionID:     sessionID,
		ClientIP:      clientIP,
		ConnectedAt:   now,
		lastHeartbeat: now,
	}
}

// UpdateHeartbeat 更新心跳时间
func (s *UserSession) UpdateHeartbeat(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHeartbeat = now
	s.missedBeats = 0
}

// CheckHeartbeat 超时则累计一次丢失心跳，返回当前丢失次数
func (s *UserSession) CheckHeartbeat(now time.Time, timeout time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.lastHeartbeat) > timeout {
		s.missedBeats++
	}
	return s.missedBeats
}

// WriteMessage 向 WebSocket 写入消息（线程安全）
func (s *UserSession) WriteMessage(message interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Conn.WriteJSON(message)
}
