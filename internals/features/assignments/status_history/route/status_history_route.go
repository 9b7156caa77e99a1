package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	historyController "talenthub_backend/internals/features/assignments/status_history/controller"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// StatusHistoryRoutes mounts /status-history. Audit data is for admins and
// clients; developers read their own trail through the assignment detail.
func StatusHistoryRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := historyController.NewStatusHistoryController(db)

	gate := authMiddleware.OnlyRoles(
		"only admins or clients may read the audit trail",
		constants.RoleAdmin, constants.RoleClient,
	)

	grp := r.Group("/status-history", gate)
	grp.Get("/all", ctrl.List)
	grp.Get("/stats", ctrl.Stats)
}
