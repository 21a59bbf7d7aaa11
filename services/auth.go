package services

import (
	"net/http"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/Talynk/talynk-backend-sub002/shared"
)

// AuthService gates admin routes on verified bearer tokens.
type AuthService struct {
	context.DefaultService

	jwtSvc *JWTService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		claims, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		c.Locals(shared.UserID, claims.UserID)
		c.Locals(shared.UserRole, claims.Role)

		return c.Next()
	}
}

func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, _ := c.Locals(shared.UserRole).(string)
		if userRole != role {
			return shared.ResponseForbidden(c)
		}
		return c.Next()
	}
}
