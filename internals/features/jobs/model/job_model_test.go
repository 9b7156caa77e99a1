package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 1.0, PriorityWeight(JobPriorityLow))
	assert.Equal(t, 2.0, PriorityWeight(JobPriorityMedium))
	assert.Equal(t, 3.0, PriorityWeight(JobPriorityHigh))
	assert.Equal(t, 5.0, PriorityWeight(JobPriorityCritical))
	assert.Equal(t, 2.0, PriorityWeight("UNKNOWN"))
}

func TestRequiredSkillsDecode(t *testing.T) {
	job := JobModel{JobRequiredSkills: datatypes.JSON([]byte(
		`[{"skill":"Go","level":"EXPERT","weight":0.8,"required":true}]`))}

	skills := job.RequiredSkills()
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Skill)
	assert.Equal(t, "EXPERT", skills[0].Level)
	assert.Equal(t, 0.8, skills[0].Weight)
	assert.True(t, skills[0].Required)

	empty := JobModel{}
	assert.Nil(t, empty.RequiredSkills())
	garbage := JobModel{JobRequiredSkills: datatypes.JSON([]byte(`not json`))}
	assert.Nil(t, garbage.RequiredSkills())
}

func TestTagsDecode(t *testing.T) {
	job := JobModel{JobTags: datatypes.JSON([]byte(`["react","frontend"]`))}
	assert.Equal(t, []string{"react", "frontend"}, job.Tags())
	empty := JobModel{}
	assert.Nil(t, empty.Tags())
}
