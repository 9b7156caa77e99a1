package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	scoringController "talenthub_backend/internals/features/scoring/controller"
	middlewares "talenthub_backend/internals/middlewares"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// ScoringRoutes mounts /scoring. Running the scorer is expensive, so the
// score-job endpoint carries its own rate limiter on top of the role gate.
// Config management is admin only.
func ScoringRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := scoringController.NewScoringController(db)

	assignGate := authMiddleware.OnlyRoles(
		"only admins or clients may run the scorer",
		constants.RoleAdmin, constants.RoleClient,
	)
	adminGate := authMiddleware.OnlyRoles(
		"only admins may manage scoring configs",
		constants.RoleAdmin,
	)

	grp := r.Group("/scoring")

	grp.Post("/score-job", assignGate, middlewares.ScoringRateLimiter(), ctrl.ScoreJob)

	grp.Get("/runs", assignGate, ctrl.ListRuns)
	grp.Get("/runs/:id", assignGate, ctrl.GetRun)

	grp.Get("/configs", adminGate, ctrl.ListConfigs)
	grp.Post("/configs", adminGate, ctrl.CreateConfig)
	grp.Get("/configs/:id", adminGate, ctrl.GetConfig)
	grp.Patch("/configs/:id", adminGate, ctrl.UpdateConfig)
	grp.Delete("/configs/:id", adminGate, ctrl.DeleteConfig)
	grp.Post("/configs/:id/activate", adminGate, ctrl.ActivateConfig)

	grp.Get("/performance/:developerId", ctrl.GetPerformance)
	grp.Post("/performance/:developerId/recompute", assignGate, ctrl.RecomputePerformance)
}
