// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub_backend/internals/configs"
	userModel "talenthub_backend/internals/features/users/user/model"
)

// AuthMiddleware verifies the bearer JWT, checks the user is still active,
// and stores user_id + user_role in locals for downstream handlers.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing user id")
		}
		c.Locals("user_id", userID.String())

		var user userModel.UserModel
		if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "user not found")
			}
			log.Println("[ERROR] user lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
		if !user.UserIsActive {
			return fiber.NewError(fiber.StatusForbidden, "account deactivated")
		}

		// Role comes from the claim; fall back to the stored role so old
		// tokens keep working after a role change.
		role, _ := claims["role"].(string)
		if role == "" {
			role = user.UserRole
		}
		c.Locals("user_role", role)

		// Touch activity for the scoring recency bonus; best effort.
		db.Model(&userModel.UserModel{}).
			Where("user_id = ?", userID).
			Update("user_last_active_at", time.Now())

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get("Authorization")
	if h == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("malformed Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("missing exp claim")
	}
	if time.Now().Add(-leeway).Unix() > int64(exp) {
		return errors.New("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, errors.New("missing user_id claim")
	}
	return uuid.Parse(raw)
}
