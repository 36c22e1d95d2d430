package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/utils/response"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	logger        zerolog.Logger
}

func NewAPIServer(listenAddress string, logger zerolog.Logger) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "admission-advisor",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
			BodyLimit:    1 << 20,
			ErrorHandler: errorHandler,
		}),
		listenAddress: listenAddress,
		logger:        logger,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *APIServer) Run(ctx context.Context) error {
	s.logger.Info().Str("address", s.listenAddress).Msg("Starting API Server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.listenAddress)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down API Server")
		return s.app.ShutdownWithTimeout(10 * time.Second)
	}
}

// errorHandler renders errors that escape handlers in the response envelope
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Error(c, fe.Code, fe.Message, "HTTP_ERROR")
	}
	return response.InternalServerError(c, "")
}
