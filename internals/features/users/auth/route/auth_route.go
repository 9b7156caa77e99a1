package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "talenthub_backend/internals/features/users/auth/controller"
	middlewares "talenthub_backend/internals/middlewares"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /auth. Register/login stay public behind their own
// limiters; /me requires a token.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	grp := r.Group("/auth")
	grp.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	grp.Get("/me", authMiddleware.AuthMiddleware(db), ctrl.Me)
}
