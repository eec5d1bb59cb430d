// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware memverifikasi JWT HS256 dan menyimpan klaim dasar ke Locals.
// Secret kosong = semua request ditolak.
func AuthMiddleware(secret string, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			log.Error("[AUTH] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing JWT Secret")
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		}); err != nil {
			log.WithError(err).Warn("[AUTH] gagal parse token")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.WithError(err).Warn("[AUTH] exp validation")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
