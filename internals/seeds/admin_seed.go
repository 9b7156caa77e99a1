package seeds

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	userModel "talenthub_backend/internals/features/users/user/model"
)

// SeedAdminUser creates the bootstrap admin when no admin account exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; without them the seed
// is skipped so production can manage its own admins.
func SeedAdminUser(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("[INFO] admin seed skipped: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return
	}

	var existing userModel.UserModel
	err := db.Where("user_role = ?", constants.RoleAdmin).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] admin seed lookup: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] admin seed hash: %v", err)
		return
	}

	admin := userModel.UserModel{
		UserName:         "Administrator",
		UserEmail:        email,
		UserPasswordHash: string(hash),
		UserRole:         constants.RoleAdmin,
		UserIsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[ERROR] admin seed create: %v", err)
		return
	}
	log.Printf("[INFO] seeded admin account %s", email)
}
