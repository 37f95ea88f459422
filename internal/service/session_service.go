package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/intentbot/intentbot-go/internal/model"
	"go.uber.org/zap"
)

var ErrUserOffline = errors.New("用户不在线")

const (
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultHeartbeatTimeout  = 60 * time.Second
	maxMissedBeats           = 3
)

// SessionService WebSocket 连接管理
type SessionService struct {
	userSessions  map[int64]*model.UserSession // userId -> session
	sessionToUser map[string]int64             // sessionId -> userId
	mu            sync.RWMutex
	now           func() time.Time
	logger        *zap.Logger
}

// NewSessionService 创建连接管理服务
func NewSessionService(logger *zap.Logger) *SessionService {
	return &SessionService{
		userSessions:  make(map[int64]*model.UserSession),
		sessionToUser: make(map[string]int64),
		now:           time.Now,
		logger:        logger,
	}
}

// RegisterUser 注册用户连接；同一用户重复连接时关闭旧连接
func (s *SessionService) RegisterUser(userID int64, conn model.Conn, sessionID, clientIP string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.userSessions[userID]; ok {
		s.logger.Info("用户重新连接，关闭旧连接",
			zap.Int64("userId", userID),
			zap.String("oldSessionId", existing.SessionID))
		_ = existing.Conn.Close()
		delete(s.sessionToUser, existing.SessionID)
	}

	s.userSessions[userID] = model.NewUserSession(userID, conn, sessionID, clientIP, s.now())
	s.sessionToUser[sessionID] = userID

	s.logger.Info("用户会话注册成功",
		zap.Int64("userId", userID),
		zap.String("sessionId", sessionID))
}

// SendMessageToUser 向指定用户发送消息
func (s *SessionService) SendMessageToUser(userID int64, message interface{}) error {
	s.mu.RLock()
	session, ok := s.userSessions[userID]
	s.mu.RUnlock()

	if !ok {
		s.logger.Warn("用户不在线，消息发送失败", zap.Int64("userId", userID))
		return ErrUserOffline
	}

	if err := session.WriteMessage(message); err != nil {
		s.logger.Error("消息发送失败", zap.Int64("userId", userID), zap.Error(err))
		s.RemoveUserBySessionID(session.SessionID)
		return err
	}
	return nil
}

// UpdateHeartbeat 更新心跳时间
func (s *SessionService) UpdateHeartbeat(userID int64) bool {
	s.mu.RLock()
	session, ok := s.userSessions[userID]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	session.UpdateHeartbeat(s.now())
	return true
}

// RemoveUserBySessionID 根据 sessionId 移除会话。
// 只移除与 sessionId 对应的会话，避免旧连接断开时误删重连后的新会话。
func (s *SessionService) RemoveUserBySessionID(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.sessionToUser[sessionID]
	if !ok {
		return
	}
	delete(s.sessionToUser, sessionID)
	if session, ok := s.userSessions[userID]; ok && session.SessionID == sessionID {
		delete(s.userSessions, userID)
	}
	s.logger.Info("用户会话已移除",
		zap.Int64("userId", userID),
		zap.String("sessionId", sessionID))
}

// GetOnlineCount 获取在线用户数
func (s *SessionService) GetOnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.userSessions)
}

// RunHeartbeatChecker 定期清理心跳超时的会话，ctx 取消后退出
func (s *SessionService) RunHeartbeatChecker(ctx context.Context, interval, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(timeout)
		}
	}
}

// sweep 丢失心跳达到上限的会话被关闭并移除
func (s *SessionService) sweep(timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for userID, session := range s.userSessions {
		missed := session.CheckHeartbeat(now, timeout)
		if missed == 0 {
			continue
		}
		if missed >= maxMissedBeats {
			s.logger.Info("清理无效会话",
				zap.Int64("userId", userID),
				zap.Int("missedBeats", missed))
			_ = session.Conn.Close()
			delete(s.userSessions, userID)
			delete(s.sessionToUser, session.SessionID)
			continue
		}
		s.logger.Warn("用户心跳丢失",
			zap.Int64("userId", userID),
			zap.Int("missedBeats", missed))
	}
}
