package service

import (
	"math"
	"strings"
	"time"

	assignmentModel "talenthub_backend/internals/features/assignments/assignment/model"
	jobModel "talenthub_backend/internals/features/jobs/model"
	userModel "talenthub_backend/internals/features/users/user/model"
)

// Factor tuning. The scorer sums factor × weight; every factor stays in [0,1].
const (
	requiredShare  = 0.7
	preferredShare = 0.3

	unqualifiedCutoff = 0.2
	neutralScore      = 0.5

	performanceWindow   = 365 * 24 * time.Hour // look-back
	performanceHalfLife = 365 * 24 * time.Hour
	failurePenalty      = 0.5

	defaultAssignmentHours = 10.0
	weeklyHoursBaseline    = 40.0
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// levelValue maps proficiency to its match value.
func levelValue(level string) float64 {
	switch level {
	case userModel.SkillLevelBeginner:
		return 0.6
	case userModel.SkillLevelIntermediate:
		return 0.8
	case userModel.SkillLevelExpert:
		return 1.0
	default:
		return 0.8
	}
}

// skillMatchScore computes weighted coverage of the job's skill list.
// Required skills carry 70% of the factor, preferred 30%. When the job has
// no structured list, free-text tags stand in as INTERMEDIATE-weight
// required skills.
func skillMatchScore(job *jobModel.JobModel, skills []userModel.DeveloperSkillModel) float64 {
	wanted := job.RequiredSkills()
	if len(wanted) == 0 {
		for _, tag := range job.Tags() {
			wanted = append(wanted, jobModel.RequiredSkill{
				Skill:    tag,
				Level:    userModel.SkillLevelIntermediate,
				Weight:   1.0,
				Required: true,
			})
		}
	}
	if len(wanted) == 0 {
		return neutralScore
	}

	byName := make(map[string]userModel.DeveloperSkillModel, len(skills))
	for _, sk := range skills {
		byName[strings.ToLower(sk.DeveloperSkillName)] = sk
	}

	var reqSum, reqWeight, prefSum, prefWeight float64
	for _, want := range wanted {
		w := want.Weight
		if w <= 0 {
			w = 1.0
		}
		var match float64
		if have, ok := byName[strings.ToLower(want.Skill)]; ok {
			match = levelValue(have.DeveloperSkillLevel)
		}
		if want.Required {
			reqSum += match * w
			reqWeight += w
		} else {
			prefSum += match * w
			prefWeight += w
		}
	}

	var reqScore, prefScore float64
	if reqWeight > 0 {
		reqScore = reqSum / reqWeight
	}
	if prefWeight > 0 {
		prefScore = prefSum / prefWeight
	}

	return clamp01(requiredShare*reqScore + preferredShare*prefScore)
}

// performanceScore is the exponentially time-decayed completion rate over
// the last 12 months (half-life one year), penalized 50% per decayed
// failure share. 0.5 for developers with no history.
func performanceScore(history []assignmentModel.AssignmentModel, now time.Time) float64 {
	var completed, failed float64
	for _, a := range history {
		age := now.Sub(a.AssignmentUpdatedAt)
		if age < 0 {
			age = 0
		}
		if age > performanceWindow {
			continue
		}
		w := math.Exp2(-float64(age) / float64(performanceHalfLife))
		switch a.AssignmentStatus {
		case assignmentModel.StatusCompleted:
			completed += w
		case assignmentModel.StatusFailed:
			failed += w
		}
	}

	total := completed + failed
	if total == 0 {
		return neutralScore // cold start
	}
	rate := completed / total
	return clamp01(rate - failurePenalty*(failed/total))
}

// availabilityScore normalizes remaining weekly capacity against the job's
// estimated hours and adds a small recency-of-activity bonus.
func availabilityScore(job *jobModel.JobModel, avail *userModel.DeveloperAvailabilityModel, lastActive *time.Time, now time.Time) float64 {
	if avail == nil {
		return neutralScore
	}

	remaining := avail.DeveloperAvailabilityMaxHours - avail.DeveloperAvailabilityCommittedHours
	if remaining < 0 {
		remaining = 0
	}

	denom := weeklyHoursBaseline
	if job.JobEstimatedHours != nil && *job.JobEstimatedHours > 0 {
		denom = *job.JobEstimatedHours
	}
	score := clamp01(remaining / denom)

	if lastActive != nil {
		switch since := now.Sub(*lastActive); {
		case since <= 7*24*time.Hour:
			score += 0.1
		case since <= 30*24*time.Hour:
			score += 0.05
		case since <= 90*24*time.Hour:
			score += 0.02
		}
	}
	return clamp01(score)
}

// activeLoad is one current assignment with its job's priority and size.
type activeLoad struct {
	Priority       string
	EstimatedHours float64
}

// workloadScore is the inverse of the average priority-weighted hours over
// the developer's active assignments. 1.0 when idle.
func workloadScore(loads []activeLoad) float64 {
	if len(loads) == 0 {
		return 1.0
	}
	var sum float64
	for _, l := range loads {
		hours := l.EstimatedHours
		if hours <= 0 {
			hours = defaultAssignmentHours
		}
		sum += jobModel.PriorityWeight(l.Priority) * hours
	}
	avg := sum / float64(len(loads))
	return clamp01(1.0 / (1.0 + avg/weeklyHoursBaseline))
}

// priorityBonusScore reflects the developer's track record at the job's
// priority tier, scaled by the tier weight (LOW=1 ... CRITICAL=5).
func priorityBonusScore(priority string, tierCompleted, tierFailed int64) float64 {
	base := neutralScore
	if total := tierCompleted + tierFailed; total > 0 {
		base = float64(tierCompleted) / float64(total)
	}
	return clamp01(base * jobModel.PriorityWeight(priority) / jobModel.PriorityWeight(jobModel.JobPriorityCritical))
}
