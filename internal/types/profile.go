package types

import "github.com/google/uuid"

// Goal intents a profile may declare.
const (
	GoalJob          = "job"
	GoalInternship   = "internship"
	GoalCareerSwitch = "career_switch"
	GoalSkillUpgrade = "skill_upgrade"
)

// Profile is the generation request's parameters, sourced from the profile
// store. It is read-only input: the pipeline never mutates it.
type Profile struct {
	UserID             uuid.UUID `json:"user_id"`
	TargetRole         string    `json:"target_role" validate:"required"`
	WeeklyHours        int       `json:"weekly_hours" validate:"min=1,max=60"`
	SkillLevel         string    `json:"skill_level" validate:"required"`
	HorizonWeeks       int       `json:"horizon_weeks" validate:"min=1,max=104"`
	Goal               string    `json:"goal" validate:"oneof=job internship career_switch skill_upgrade"`
	TargetTimeline     string    `json:"target_timeline,omitempty"`
	PriorExposure      []string  `json:"prior_exposure,omitempty"`
	LearningPreference string    `json:"learning_preference,omitempty"`
}
