package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/utils/auth"
	"github.com/tuyensinh/admission-advisor/utils/response"
)

const (
	localUserID   = "user_id"
	localClaims   = "claims"
	localTokenJTI = "token_jti"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager  *auth.JWTManager
	revocations auth.RevocationList
	logger      zerolog.Logger
}

// NewAuthMiddleware creates a new auth middleware. revocations may be nil when Redis is not available.
func NewAuthMiddleware(jwtManager *auth.JWTManager, revocations auth.RevocationList, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		revocations: revocations,
		logger:      logger.With().Str("component", "auth_middleware").Logger(),
	}
}

// Required is middleware that requires a valid access token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		if claims.TokenType != auth.TokenTypeAccess {
			return response.Unauthorized(c, "Invalid token type")
		}

		if m.revocations != nil && claims.ID != "" {
			revoked, err := m.revocations.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				m.logger.Error().Err(err).Str("jti", claims.ID).Msg("revocation lookup failed")
				return response.ServiceUnavailable(c, "Failed to check token status")
			}
			if revoked {
				return response.Unauthorized(c, "Token has been revoked")
			}
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localClaims, claims)
		c.Locals(localTokenJTI, claims.ID)

		return c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(localUserID).(uint)
	return userID, ok && userID != 0
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(localClaims).(*auth.Claims)
	return claims, ok
}
