package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	userController "talenthub_backend/internals/features/users/user/controller"
	authMiddleware "talenthub_backend/internals/middlewares/auth"
)

// UserRoutes mounts /users. Everything here sits behind AuthMiddleware
// (applied by the route index); write endpoints on /me belong to the
// token owner, the list endpoint is admin only.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	profile := userController.NewProfileController(db)
	developer := userController.NewDeveloperProfileController(db)

	grp := r.Group("/users")

	grp.Get("/me", profile.Me)
	grp.Patch("/me", profile.UpdateMe)

	me := grp.Group("/me")
	me.Get("/skills", developer.ListSkills)
	me.Post("/skills", developer.CreateSkill)
	me.Patch("/skills/:skillId", developer.UpdateSkill)
	me.Delete("/skills/:skillId", developer.DeleteSkill)

	me.Get("/availability", developer.GetAvailability)
	me.Put("/availability", developer.UpsertAvailability)

	me.Post("/education", developer.CreateEducation)
	me.Patch("/education/:entryId", developer.UpdateEducation)
	me.Delete("/education/:entryId", developer.DeleteEducation)

	me.Post("/portfolio", developer.CreatePortfolio)
	me.Patch("/portfolio/:itemId", developer.UpdatePortfolio)
	me.Delete("/portfolio/:itemId", developer.DeletePortfolio)

	grp.Get("/",
		authMiddleware.OnlyRoles("only admins may list users", constants.RoleAdmin),
		profile.List)
	grp.Get("/:id",
		authMiddleware.OnlyRoles("only admins or clients may view other profiles",
			constants.RoleAdmin, constants.RoleClient),
		profile.GetByID)
}
