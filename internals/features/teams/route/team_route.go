package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	teamController "talenthub_backend/internals/features/teams/controller"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// TeamRoutes mounts /teams. Reads are open to any authenticated role;
// writes are limited to admins and clients.
func TeamRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := teamController.NewTeamController(db)

	grp := r.Group("/teams")
	grp.Get("/", ctrl.List)
	grp.Get("/:id", ctrl.Get)

	writeGate := authMiddleware.OnlyRoles(
		"only admins or clients may manage teams",
		constants.RoleAdmin, constants.RoleClient,
	)
	grp.Post("/", writeGate, ctrl.Create)
	grp.Patch("/:id", writeGate, ctrl.Update)
	grp.Delete("/:id", writeGate, ctrl.Delete)
	grp.Post("/:id/members", writeGate, ctrl.AddMember)
	grp.Delete("/:id/members/:userId", writeGate, ctrl.RemoveMember)
}
