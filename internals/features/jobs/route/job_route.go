package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	jobController "talenthub_backend/internals/features/jobs/controller"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// JobRoutes mounts /jobs. Reads are open to any authenticated role;
// writes are limited to admins and the owning client.
func JobRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := jobController.NewJobController(db)

	grp := r.Group("/jobs")
	grp.Get("/", ctrl.List)
	grp.Get("/:id", ctrl.Get)

	writeGate := authMiddleware.OnlyRoles(
		"only admins or clients may manage jobs",
		constants.RoleAdmin, constants.RoleClient,
	)
	grp.Post("/", writeGate, ctrl.Create)
	grp.Patch("/:id", writeGate, ctrl.Update)
	grp.Delete("/:id", writeGate, ctrl.Delete)
}
