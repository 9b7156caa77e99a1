package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"talenthub_backend/internals/configs"
	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	historyModel "talenthub_backend/internals/features/assignments/status_history/model"
	jobModel "talenthub_backend/internals/features/jobs/model"
	scoringModel "talenthub_backend/internals/features/scoring/model"
	teamModel "talenthub_backend/internals/features/teams/model"
	userModel "talenthub_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=talenthub&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: dsn,
		// Keeps PgBouncer transaction pooling happy.
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] DB connect failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync. Table shapes are owned by the feature
// model packages; ordering matters for the FK-carrying tables.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.DeveloperSkillModel{},
		&userModel.DeveloperAvailabilityModel{},
		&userModel.EducationEntryModel{},
		&userModel.PortfolioItemModel{},
		&teamModel.TeamModel{},
		&teamModel.TeamMemberModel{},
		&jobModel.JobModel{},
		&assignmentModel.AssignmentModel{},
		&assignmentModel.TeamAssignmentModel{},
		&historyModel.StatusHistoryModel{},
		&scoringModel.ScoringConfigModel{},
		&scoringModel.ScoringRunModel{},
		&scoringModel.AssignmentScoreModel{},
		&scoringModel.DeveloperPerformanceMetricModel{},
	); err != nil {
		log.Fatalf("[ERROR] migrate failed: %v", err)
	}
	log.Println("[INFO] schema migrated")
}
