package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HasUnlimitedGeneration reports whether the user's billing tier allows
// generating more than one roadmap. A user with no entitlement row is on the
// free tier.
func (db *DB) HasUnlimitedGeneration(ctx context.Context, userID uuid.UUID) (bool, error) {
	var unlimited bool
	err := db.pool.QueryRow(ctx,
		`SELECT unlimited_roadmaps FROM entitlements WHERE user_id = $1`,
		userID,
	).Scan(&unlimited)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return unlimited, nil
}
