package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuyensinh/admission-advisor/model"
	"github.com/tuyensinh/admission-advisor/services"
	"github.com/tuyensinh/admission-advisor/utils/auth"
	"github.com/tuyensinh/admission-advisor/utils/middleware"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type cannedResponder struct{}

func (cannedResponder) Reply(_ context.Context, message string, _ []model.ChatMessage) string {
	return "Đã nhận: " + message
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

type testServer struct {
	app    *fiber.App
	tokens map[uint]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.ChatSession{}, &model.ChatMessage{}))

	jwtManager, err := auth.NewJWTManager(auth.JWTConfig{Secret: "handler-secret", Expiry: time.Hour})
	require.NoError(t, err)

	chatService := services.NewChatService(db, cannedResponder{}, nil, zerolog.Nop())
	handler := NewChatHandler(chatService, zerolog.Nop())
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, nil, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/chat", authMiddleware.Required())
	group.Post("/send", handler.SendMessage)
	group.Get("/history", handler.GetHistory)
	group.Get("/session/:id", handler.GetSession)
	group.Delete("/session/:id", handler.DeleteSession)
	group.Post("/new-session", handler.NewSession)

	tokens := make(map[uint]string)
	for _, userID := range []uint{1, 2} {
		token, _, err := jwtManager.GenerateAccessToken(userID)
		require.NoError(t, err)
		tokens[userID] = token
	}

	return &testServer{app: app, tokens: tokens}
}

func (s *testServer) do(t *testing.T, userID uint, method, path, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if userID != 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s.tokens[userID])
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestSendMessageCreatesSession(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, 1, http.MethodPost, "/api/v1/chat/send", `{"message":"Học phí FPT?"}`)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var result services.SendMessageResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotZero(t, result.SessionID)
	assert.Equal(t, "Đã nhận: Học phí FPT?", result.BotResponse)
	assert.False(t, result.Timestamp.IsZero())

	status, env = s.do(t, 1, http.MethodPost, "/api/v1/chat/send",
		fmt.Sprintf(`{"message":"Còn HUST?","sessionId":%d}`, result.SessionID))
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(t, 1, http.MethodGet, fmt.Sprintf("/api/v1/chat/session/%d", result.SessionID), "")
	require.Equal(t, http.StatusOK, status)

	var session services.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "Học phí FPT?", session.Title)
	require.Len(t, session.Messages, 4)
	assert.Equal(t, []string{"User", "Assistant", "User", "Assistant"}, []string{
		session.Messages[0].Sender, session.Messages[1].Sender, session.Messages[2].Sender, session.Messages[3].Sender,
	})
}

func TestSendMessageValidation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, 1, http.MethodPost, "/api/v1/chat/send", `{"message":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "message")

	status, _ = s.do(t, 1, http.MethodPost, "/api/v1/chat/send", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(t, 1, http.MethodPost, "/api/v1/chat/send", `{"message":"hi","sessionId":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Error.Fields, "sessionId")
}

func TestSendMessageToForeignSession(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, 1, http.MethodPost, "/api/v1/chat/send", `{"message":"Xin chào"}`)
	var result services.SendMessageResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))

	status, env := s.do(t, 2, http.MethodPost, "/api/v1/chat/send",
		fmt.Sprintf(`{"message":"hack","sessionId":%d}`, result.SessionID))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = s.do(t, 2, http.MethodPost, "/api/v1/chat/send", `{"message":"hi","sessionId":999}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetAndDeleteSessionScopedToUser(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, 1, http.MethodPost, "/api/v1/chat/new-session", "")
	require.Equal(t, http.StatusCreated, status)

	var session services.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.Len(t, session.Messages, 2)
	assert.Equal(t, services.GreetingMessage, session.Messages[0].Message)

	path := fmt.Sprintf("/api/v1/chat/session/%d", session.ID)

	status, _ = s.do(t, 2, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, 2, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, 1, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, 1, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, 1, http.MethodGet, "/api/v1/chat/session/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetHistory(t *testing.T) {
	s := newTestServer(t)

	s.do(t, 1, http.MethodPost, "/api/v1/chat/send", `{"message":"một"}`)
	s.do(t, 1, http.MethodPost, "/api/v1/chat/send", `{"message":"hai"}`)
	s.do(t, 2, http.MethodPost, "/api/v1/chat/send", `{"message":"khác"}`)

	status, env := s.do(t, 1, http.MethodGet, "/api/v1/chat/history", "")
	require.Equal(t, http.StatusOK, status)

	var sessions []services.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &sessions))
	require.Len(t, sessions, 2)
	for _, session := range sessions {
		assert.NotEqual(t, "khác", session.Title)
		assert.Len(t, session.Messages, 2)
	}
}

func TestRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, 0, http.MethodGet, "/api/v1/chat/history", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}
