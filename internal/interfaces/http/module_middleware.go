package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/perfumeria-api/internal/application/dto"
)

// activeChecker lo implementa *usecase.UserUseCase.
type activeChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// RequireActiveUser rechaza a usuarios desactivados aunque su token siga vigente.
// Va después de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 401 si no hay user_id en el contexto.
//   - 403 si el usuario no existe o está desactivado.
//   - 503 si falla la consulta.
func RequireActiveUser(checker activeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "UNAUTHORIZED",
				Error: "sesión sin usuario",
			})
		}

		active, err := checker.IsActive(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:  "USER_CHECK_FAILED",
				Error: "no se pudo verificar el usuario, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:  "USER_INACTIVE",
				Error: "el usuario está desactivado",
			})
		}
		return c.Next()
	}
}
