package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talenthub_backend/internals/constants"
	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	jobModel "talenthub_backend/internals/features/jobs/model"
	scoringModel "talenthub_backend/internals/features/scoring/model"
	userModel "talenthub_backend/internals/features/users/user/model"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrConfigNotFound = errors.New("scoring config not found")
	ErrRunNotFound    = errors.New("scoring run not found")
)

const (
	DefaultLimit = 10
	MaxLimit     = 50

	activityWindow = 30 * 24 * time.Hour
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// ScoreOptions tunes one scorer invocation.
type ScoreOptions struct {
	TriggeredBy          uuid.UUID
	Limit                int
	MinScore             *float64
	IncludeInactiveUsers bool
}

// ScoredDeveloper is one ranked result with its factor breakdown.
type ScoredDeveloper struct {
	DeveloperID   uuid.UUID                    `json:"developer_id"`
	DeveloperName string                       `json:"developer_name"`
	TotalScore    float64                      `json:"total_score"`
	Breakdown     scoringModel.FactorBreakdown `json:"breakdown"`
	Rank          int                          `json:"rank"`
}

// ScoreResult is the outcome of one run.
type ScoreResult struct {
	RunID    uuid.UUID                  `json:"run_id"`
	JobID    uuid.UUID                  `json:"job_id"`
	ConfigID uuid.UUID                  `json:"config_id"`
	Weights  scoringModel.FactorWeights `json:"weights"`
	Results  []ScoredDeveloper          `json:"results"`
}

// ScoreJob ranks every eligible developer against the job under the active
// weight config, persists the run + per-developer scores atomically, and
// returns the ranked list with per-factor breakdowns.
func (s *Service) ScoreJob(jobID uuid.UUID, opts ScoreOptions) (*ScoreResult, error) {
	var job jobModel.JobModel
	if err := s.DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	cfg, err := s.ActiveOrDefaultConfig()
	if err != nil {
		return nil, err
	}
	weights := cfg.Weights()

	pool, err := s.eligibleDevelopers(opts.IncludeInactiveUsers)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	now := time.Now()
	scored := make([]ScoredDeveloper, 0, len(pool))
	for _, dev := range pool {
		breakdown := s.scoreDeveloper(&job, &dev, now)

		// Below the qualification floor: not a candidate at all.
		if breakdown.SkillMatch < unqualifiedCutoff {
			continue
		}

		total := clamp01(breakdown.SkillMatch*weights.SkillMatch +
			breakdown.Performance*weights.Performance +
			breakdown.Availability*weights.Availability +
			breakdown.Workload*weights.Workload +
			breakdown.PriorityBonus*weights.PriorityBonus)

		if opts.MinScore != nil && total < *opts.MinScore {
			continue
		}

		scored = append(scored, ScoredDeveloper{
			DeveloperID:   dev.UserID,
			DeveloperName: dev.UserName,
			TotalScore:    total,
			Breakdown:     breakdown,
		})
	}

	// Descending by total; equal totals ordered by developer id so the
	// ranking is reproducible.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].TotalScore != scored[j].TotalScore {
			return scored[i].TotalScore > scored[j].TotalScore
		}
		return scored[i].DeveloperID.String() < scored[j].DeveloperID.String()
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	run := scoringModel.ScoringRunModel{
		ScoringRunJobID:       job.JobID,
		ScoringRunTriggeredBy: opts.TriggeredBy,
		ScoringRunAlgorithm:   cfg.ScoringConfigAlgorithm,
		ScoringRunConfigID:    cfg.ScoringConfigID,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("create run: %w", err)
		}
		for _, sd := range scored {
			row := scoringModel.AssignmentScoreModel{
				AssignmentScoreRunID:       run.ScoringRunID,
				AssignmentScoreJobID:       job.JobID,
				AssignmentScoreDeveloperID: sd.DeveloperID,
				AssignmentScoreTotal:       sd.TotalScore,
				AssignmentScoreRank:        sd.Rank,
			}
			if err := row.SetBreakdown(sd.Breakdown); err != nil {
				return fmt.Errorf("encode breakdown: %w", err)
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create score: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ScoreResult{
		RunID:    run.ScoringRunID,
		JobID:    job.JobID,
		ConfigID: cfg.ScoringConfigID,
		Weights:  weights,
		Results:  scored,
	}, nil
}

// scoreDeveloper computes the five factors. A failing factor degrades to
// the neutral 0.5 instead of failing the whole run.
func (s *Service) scoreDeveloper(job *jobModel.JobModel, dev *userModel.UserModel, now time.Time) scoringModel.FactorBreakdown {
	b := scoringModel.FactorBreakdown{
		SkillMatch:    neutralScore,
		Performance:   neutralScore,
		Availability:  neutralScore,
		Workload:      neutralScore,
		PriorityBonus: neutralScore,
	}

	var skills []userModel.DeveloperSkillModel
	if err := s.DB.Where("developer_skill_user_id = ?", dev.UserID).Find(&skills).Error; err != nil {
		log.Printf("[WARN] skills for %s: %v", dev.UserID, err)
	} else {
		b.SkillMatch = skillMatchScore(job, skills)
	}

	var history []assignmentModel.AssignmentModel
	if err := s.DB.
		Where("assignment_developer_id = ? AND assignment_status IN ?", dev.UserID,
			[]string{assignmentModel.StatusCompleted, assignmentModel.StatusFailed}).
		Find(&history).Error; err != nil {
		log.Printf("[WARN] history for %s: %v", dev.UserID, err)
	} else {
		b.Performance = performanceScore(history, now)
	}

	var avail userModel.DeveloperAvailabilityModel
	if err := s.DB.Where("developer_availability_user_id = ?", dev.UserID).
		First(&avail).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] availability for %s: %v", dev.UserID, err)
		}
		b.Availability = availabilityScore(job, nil, dev.UserLastActiveAt, now)
	} else {
		b.Availability = availabilityScore(job, &avail, dev.UserLastActiveAt, now)
	}

	var loads []activeLoad
	if err := s.DB.Table("assignments").
		Select("jobs.job_priority AS priority, COALESCE(jobs.job_estimated_hours, 0) AS estimated_hours").
		Joins("JOIN jobs ON jobs.job_id = assignments.assignment_job_id").
		Where("assignments.assignment_developer_id = ? AND assignments.assignment_status IN ? AND assignments.assignment_deleted_at IS NULL",
			dev.UserID, []string{assignmentModel.StatusPending, assignmentModel.StatusInProgress}).
		Scan(&loads).Error; err != nil {
		log.Printf("[WARN] workload for %s: %v", dev.UserID, err)
	} else {
		b.Workload = workloadScore(loads)
	}

	var tierCompleted, tierFailed int64
	tierQuery := func(status string, out *int64) error {
		return s.DB.Table("assignments").
			Joins("JOIN jobs ON jobs.job_id = assignments.assignment_job_id").
			Where("assignments.assignment_developer_id = ? AND assignments.assignment_status = ? AND jobs.job_priority = ? AND assignments.assignment_deleted_at IS NULL",
				dev.UserID, status, job.JobPriority).
			Count(out).Error
	}
	if err := tierQuery(assignmentModel.StatusCompleted, &tierCompleted); err != nil {
		log.Printf("[WARN] priority history for %s: %v", dev.UserID, err)
	} else if err := tierQuery(assignmentModel.StatusFailed, &tierFailed); err != nil {
		log.Printf("[WARN] priority history for %s: %v", dev.UserID, err)
	} else {
		b.PriorityBonus = priorityBonusScore(job.JobPriority, tierCompleted, tierFailed)
	}

	return b
}

// eligibleDevelopers loads the scoring pool: DEVELOPER role, active account,
// and (unless includeInactive) activity within the last 30 days.
func (s *Service) eligibleDevelopers(includeInactive bool) ([]userModel.UserModel, error) {
	q := s.DB.Where("user_role = ? AND user_is_active = ?", constants.RoleDeveloper, true)
	if !includeInactive {
		q = q.Where("user_last_active_at IS NOT NULL AND user_last_active_at >= ?", time.Now().Add(-activityWindow))
	}
	var devs []userModel.UserModel
	if err := q.Find(&devs).Error; err != nil {
		return nil, fmt.Errorf("load developers: %w", err)
	}
	return devs, nil
}

// ======================= RUNS =======================

func (s *Service) GetRun(runID uuid.UUID) (*scoringModel.ScoringRunModel, error) {
	var run scoringModel.ScoringRunModel
	err := s.DB.Preload("Scores", func(db *gorm.DB) *gorm.DB {
		return db.Order("assignment_score_rank ASC")
	}).Where("scoring_run_id = ?", runID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (s *Service) ListRuns(jobID *uuid.UUID, offset, limit int) ([]scoringModel.ScoringRunModel, int64, error) {
	q := s.DB.Model(&scoringModel.ScoringRunModel{})
	if jobID != nil {
		q = q.Where("scoring_run_job_id = ?", *jobID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var runs []scoringModel.ScoringRunModel
	err := q.Order("scoring_run_created_at DESC").Offset(offset).Limit(limit).Find(&runs).Error
	return runs, total, err
}
