package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/model"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionAccessDenied = errors.New("unauthorized: session does not belong to user")
	ErrInvalidMessage      = errors.New("message must not be empty")
)

// GreetingMessage opens every session created through NewSession
const GreetingMessage = "Xin chào! Tôi có thể giúp gì cho bạn về tuyển sinh?"

const (
	titleMaxRunes       = 50
	titleTruncatedRunes = 47
)

// Responder produces the assistant reply for a user message
type Responder interface {
	Reply(ctx context.Context, message string, history []model.ChatMessage) string
}

// ChatService manages chat sessions and their messages
type ChatService struct {
	db        *gorm.DB
	responder Responder
	locker    SessionLocker
	logger    zerolog.Logger
	now       func() time.Time
}

// NewChatService creates a new chat service. A nil locker disables
// per-session serialization.
func NewChatService(db *gorm.DB, responder Responder, locker SessionLocker, logger zerolog.Logger) *ChatService {
	if locker == nil {
		locker = noopSessionLocker{}
	}
	return &ChatService{
		db:        db,
		responder: responder,
		locker:    locker,
		logger:    logger.With().Str("component", "chat").Logger(),
		now:       time.Now,
	}
}

// SendMessageRequest represents a user message; a nil SessionID starts a new session
type SendMessageRequest struct {
	UserID    uint
	SessionID *uint
	Message   string
}

// SendMessageResponse is returned after the assistant reply was stored
type SendMessageResponse struct {
	SessionID   uint      `json:"sessionId"`
	BotResponse string    `json:"botResponse"`
	Timestamp   time.Time `json:"timestamp"`
}

// MessageView is a chat message as shown to clients
type MessageView struct {
	ID      uint      `json:"id"`
	Sender  string    `json:"sender"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}

// SessionView is a chat session with its messages in send order
type SessionView struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	StartedAt time.Time     `json:"startedAt"`
	Messages  []MessageView `json:"messages"`
}

// SendMessage stores the user message, asks the responder for a reply and
// stores it. The session is created when req.SessionID is nil.
func (s *ChatService) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrInvalidMessage
	}

	var session *model.ChatSession
	var err error
	if req.SessionID == nil {
		session, err = s.createSession(ctx, req.UserID)
	} else {
		session, err = s.ownedSession(ctx, *req.SessionID, req.UserID)
	}
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	defer unlock()

	if _, err := s.addMessage(ctx, session.ID, model.SenderUser, message); err != nil {
		return nil, err
	}

	history, err := s.sessionMessages(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	reply := s.responder.Reply(ctx, message, history)

	botMessage, err := s.addMessage(ctx, session.ID, model.SenderAssistant, reply)
	if err != nil {
		return nil, err
	}

	// Re-read the title: another send may have set it while this one was generating.
	var current model.ChatSession
	if err := s.db.WithContext(ctx).Select("id", "title").First(&current, session.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if !current.HasTitle() {
		title := DeriveTitle(message)
		if err := s.db.WithContext(ctx).Model(&model.ChatSession{}).
			Where("id = ?", session.ID).
			Update("title", title).Error; err != nil {
			return nil, fmt.Errorf("failed to update session title: %w", err)
		}
	}

	s.logger.Info().
		Uint("session_id", session.ID).
		Uint("user_id", req.UserID).
		Int("reply_length", len(reply)).
		Msg("Chat message answered")

	return &SendMessageResponse{
		SessionID:   session.ID,
		BotResponse: reply,
		Timestamp:   botMessage.SentAt,
	}, nil
}

// ListSessions returns every session of the user, newest first
func (s *ChatService) ListSessions(ctx context.Context, userID uint) ([]SessionView, error) {
	var sessions []model.ChatSession
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at ASC, id ASC")
		}).
		Order("started_at DESC, id DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	views := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, toSessionView(&sessions[i]))
	}
	return views, nil
}

// GetSession returns the session if it exists and belongs to userID.
// Sessions of other users are reported as ErrSessionNotFound.
func (s *ChatService) GetSession(ctx context.Context, sessionID, userID uint) (*SessionView, error) {
	var session model.ChatSession
	err := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at ASC, id ASC")
		}).
		First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	view := toSessionView(&session)
	return &view, nil
}

// DeleteSession removes the session and its messages. It returns false when
// the session does not exist or belongs to someone else.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID, userID uint) (bool, error) {
	var session model.ChatSession
	if err := s.db.WithContext(ctx).First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch session: %w", err)
	}
	if session.UserID != userID {
		return false, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ChatSession{}, sessionID).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return true, nil
}

// NewSession starts a session by sending the scripted greeting and returns it
func (s *ChatService) NewSession(ctx context.Context, userID uint) (*SessionView, error) {
	resp, err := s.SendMessage(ctx, SendMessageRequest{UserID: userID, Message: GreetingMessage})
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, resp.SessionID, userID)
}

// DeriveTitle shortens the first message of a session to a title
func DeriveTitle(message string) string {
	if utf8.RuneCountInString(message) <= titleMaxRunes {
		return message
	}
	runes := []rune(message)
	return string(runes[:titleTruncatedRunes]) + "..."
}

func (s *ChatService) createSession(ctx context.Context, userID uint) (*model.ChatSession, error) {
	session := model.ChatSession{
		UserID:    userID,
		Title:     model.DefaultSessionTitle,
		StartedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

func (s *ChatService) ownedSession(ctx context.Context, sessionID, userID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	if err := s.db.WithContext(ctx).First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrSessionAccessDenied
	}
	return &session, nil
}

func (s *ChatService) addMessage(ctx context.Context, sessionID uint, sender model.Sender, text string) (*model.ChatMessage, error) {
	msg := model.ChatMessage{
		SessionID: sessionID,
		Sender:    sender,
		Message:   text,
		SentAt:    s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save %s message: %w", strings.ToLower(string(sender)), err)
	}
	return &msg, nil
}

func (s *ChatService) sessionMessages(ctx context.Context, sessionID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

func toSessionView(session *model.ChatSession) SessionView {
	view := SessionView{
		ID:        session.ID,
		Title:     session.Title,
		StartedAt: session.StartedAt,
		Messages:  make([]MessageView, 0, len(session.Messages)),
	}
	for _, m := range session.Messages {
		view.Messages = append(view.Messages, MessageView{
			ID:      m.ID,
			Sender:  m.Sender.Display(),
			Message: m.Message,
			SentAt:  m.SentAt,
		})
	}
	return view
}
