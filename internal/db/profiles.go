package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerlockin/careerlockin/internal/types"
)

// GetProfile retrieves the generation parameters a user set during
// onboarding. Returns ErrNotFound when onboarding was never completed.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	var p types.Profile
	var targetTimeline, learningPreference *string
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, target_role, weekly_hours, skill_level, horizon_weeks, goal,
		        target_timeline, prior_exposure, learning_preference
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.TargetRole, &p.WeeklyHours, &p.SkillLevel, &p.HorizonWeeks, &p.Goal,
		&targetTimeline, &p.PriorExposure, &learningPreference)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if targetTimeline != nil {
		p.TargetTimeline = *targetTimeline
	}
	if learningPreference != nil {
		p.LearningPreference = *learningPreference
	}
	return &p, nil
}
