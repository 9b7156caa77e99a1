package seeds

import (
	"gorm.io/gorm"
)

// RunAllSeeds applies the idempotent baseline data: the bootstrap admin
// account and the default scoring config. Safe to run on every boot.
func RunAllSeeds(db *gorm.DB) {
	SeedAdminUser(db)
	SeedDefaultScoringConfig(db)
}
