package seeds

import (
	"errors"
	"log"

	"gorm.io/gorm"

	scoringModel "talenthub_backend/internals/features/scoring/model"
)

// SeedDefaultScoringConfig guarantees an active weight profile exists so the
// first score-job call never races the lazy default creation.
func SeedDefaultScoringConfig(db *gorm.DB) {
	var existing scoringModel.ScoringConfigModel
	err := db.Where("scoring_config_is_active = ?", true).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] scoring config seed lookup: %v", err)
		return
	}

	cfg := scoringModel.ScoringConfigModel{
		ScoringConfigName:      "default",
		ScoringConfigAlgorithm: scoringModel.DefaultAlgorithm,
		ScoringConfigIsActive:  true,
	}
	if err := cfg.SetWeights(scoringModel.DefaultWeights()); err != nil {
		log.Printf("[ERROR] scoring config seed weights: %v", err)
		return
	}
	if err := db.Create(&cfg).Error; err != nil {
		log.Printf("[ERROR] scoring config seed create: %v", err)
		return
	}
	log.Println("[INFO] seeded default scoring config")
}
