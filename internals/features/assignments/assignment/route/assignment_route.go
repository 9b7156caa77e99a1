package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	assignmentController "talenthub_backend/internals/features/assignments/assignment/controller"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// AssignmentRoutes mounts /assignments. Creating and deleting assignments is
// an admin/client action; status changes are open to every role because the
// service enforces the ownership gate (a developer may only move their own
// assignment, an admin may move any).
func AssignmentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := assignmentController.NewAssignmentController(db)

	assignGate := authMiddleware.OnlyRoles(
		"only admins or clients may manage assignments",
		constants.RoleAdmin, constants.RoleClient,
	)

	grp := r.Group("/assignments")

	grp.Post("/", assignGate, ctrl.Create)
	grp.Post("/assign", assignGate, ctrl.AssignTopRanked)
	grp.Get("/", ctrl.List)
	grp.Get("/suggestions/:jobId", assignGate, ctrl.Suggestions)

	grp.Post("/team", assignGate, ctrl.CreateTeam)
	grp.Post("/team/create-and-assign", assignGate, ctrl.CreateAndAssign)
	grp.Patch("/team/:id/status", ctrl.UpdateTeamStatus)

	grp.Get("/:id", ctrl.Get)
	grp.Patch("/:id", assignGate, ctrl.Update)
	grp.Patch("/:id/status", ctrl.UpdateStatus)
	grp.Delete("/:id", assignGate, ctrl.Delete)
}
