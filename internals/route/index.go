package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentRoute "talenthub_backend/internals/features/assignments/assignment/route"
	historyRoute "talenthub_backend/internals/features/assignments/status_history/route"
	jobRoute "talenthub_backend/internals/features/jobs/route"
	scoringRoute "talenthub_backend/internals/features/scoring/route"
	teamRoute "talenthub_backend/internals/features/teams/route"
	authRoute "talenthub_backend/internals/features/users/auth/route"
	userRoute "talenthub_backend/internals/features/users/user/route"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature under /v1. Auth endpoints manage their own
// guards; everything else sits behind the JWT middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v1 := app.Group("/v1")

	authRoute.AuthRoutes(v1, db)
	log.Println("[INFO] mounted /v1/auth")

	protected := v1.Group("", authMiddleware.AuthMiddleware(db))

	userRoute.UserRoutes(protected, db)
	log.Println("[INFO] mounted /v1/users")

	jobRoute.JobRoutes(protected, db)
	log.Println("[INFO] mounted /v1/jobs")

	teamRoute.TeamRoutes(protected, db)
	log.Println("[INFO] mounted /v1/teams")

	assignmentRoute.AssignmentRoutes(protected, db)
	log.Println("[INFO] mounted /v1/assignments")

	historyRoute.StatusHistoryRoutes(protected, db)
	log.Println("[INFO] mounted /v1/status-history")

	scoringRoute.ScoringRoutes(protected, db)
	log.Println("[INFO] mounted /v1/scoring")
}
