package chat

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/services"
	"github.com/tuyensinh/admission-advisor/utils/middleware"
	"github.com/tuyensinh/admission-advisor/utils/response"
	"github.com/tuyensinh/admission-advisor/utils/validation"
)

// ChatHandler handles chat-related requests
type ChatHandler struct {
	validator   *validation.Validator
	chatService *services.ChatService
	logger      zerolog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		validator:   validation.NewValidator(),
		chatService: chatService,
		logger:      logger.With().Str("component", "chat_handler").Logger(),
	}
}

// SendMessageRequest represents the request to send a chat message
type SendMessageRequest struct {
	Message   string `json:"message" validate:"required,notblank,max=4000"`
	SessionID *uint  `json:"sessionId" validate:"omitempty,gte=1"`
}

// SendMessage handles POST /api/v1/chat/send
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	result, err := h.chatService.SendMessage(c.UserContext(), services.SendMessageRequest{
		UserID:    userID,
		SessionID: req.SessionID,
		Message:   validation.SanitizeString(req.Message),
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to send message")
	}

	return response.Success(c, result)
}

// GetHistory handles GET /api/v1/chat/history
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	sessions, err := h.chatService.ListSessions(c.UserContext(), userID)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to fetch chat history")
	}

	return response.Success(c, sessions)
}

// GetSession handles GET /api/v1/chat/session/:id
func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	sessionID, err := parseSessionID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	session, err := h.chatService.GetSession(c.UserContext(), sessionID, userID)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to fetch session")
	}

	return response.Success(c, session)
}

// DeleteSession handles DELETE /api/v1/chat/session/:id
func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	sessionID, err := parseSessionID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	deleted, err := h.chatService.DeleteSession(c.UserContext(), sessionID, userID)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to delete session")
	}
	if !deleted {
		return response.NotFound(c, "Session not found")
	}

	return response.SuccessWithMessage(c, "Session deleted successfully", nil)
}

// NewSession handles POST /api/v1/chat/new-session
func (h *ChatHandler) NewSession(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	session, err := h.chatService.NewSession(c.UserContext(), userID)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create session")
	}

	return response.Created(c, session)
}

func (h *ChatHandler) handleServiceError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return response.NotFound(c, "Session not found")
	case errors.Is(err, services.ErrSessionAccessDenied):
		return response.Forbidden(c, "Session does not belong to user")
	case errors.Is(err, services.ErrInvalidMessage):
		return response.ValidationError(c, map[string]string{"message": "message is required"})
	case errors.Is(err, services.ErrSessionBusy):
		return response.Conflict(c, "Session is busy, please retry")
	}

	h.logger.Error().Err(err).Str("path", c.Path()).Msg(message)
	return response.InternalServerError(c, message)
}

func parseSessionID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid session id")
	}
	return uint(id), nil
}
