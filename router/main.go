package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/database"
	"github.com/tuyensinh/admission-advisor/handlers"
	chat_handlers "github.com/tuyensinh/admission-advisor/handlers/chat"
	"github.com/tuyensinh/admission-advisor/services"
	"github.com/tuyensinh/admission-advisor/utils"
	"github.com/tuyensinh/admission-advisor/utils/auth"
	"github.com/tuyensinh/admission-advisor/utils/middleware"
	"github.com/tuyensinh/admission-advisor/utils/response"
)

// Dependencies are the components the HTTP surface is built from
type Dependencies struct {
	Store       database.Storage
	JWTManager  *auth.JWTManager
	Revocations auth.RevocationList
	ChatService *services.ChatService
	Security    middleware.SecurityConfig
	Logger      zerolog.Logger
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	deps.Security.Logger = deps.Logger
	middleware.SetupSecurity(app, deps.Security)

	authMiddleware := middleware.NewAuthMiddleware(deps.JWTManager, deps.Revocations, deps.Logger)
	chatHandler := chat_handlers.NewChatHandler(deps.ChatService, deps.Logger)

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, deps.Store))

	api := app.Group("/api/v1")

	chat := api.Group("/chat", authMiddleware.Required())
	chat.Post("/send", chatHandler.SendMessage)
	chat.Get("/history", chatHandler.GetHistory)
	chat.Get("/session/:id", chatHandler.GetSession)
	chat.Delete("/session/:id", chatHandler.DeleteSession)
	chat.Post("/new-session", chatHandler.NewSession)

	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}
