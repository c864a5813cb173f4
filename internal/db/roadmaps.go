package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerlockin/careerlockin/internal/types"
)

// RoadmapSummary is the listing view of a roadmap row.
type RoadmapSummary struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TargetRole string    `json:"target_role"`
	ModelName  string    `json:"model_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// StoredRoadmap is a persisted roadmap rehydrated into its display form.
type StoredRoadmap struct {
	RoadmapSummary
	Phases []types.Phase `json:"phases"`
}

// stepRow and resourceRow are the flat storage shapes: steps carry their
// phase label and both orders as plain integers rather than nesting.
type stepRow struct {
	ID          uuid.UUID
	PhaseLabel  string
	PhaseOrder  int
	Title       string
	Description string
	EstHours    *float64
	StepOrder   int
}

type resourceRow struct {
	StepID       uuid.UUID
	Title        string
	URL          string
	Type         string
	IsFree       bool
	SourceID     *string
	Verification *string
}

// flattenRoadmap converts the nested in-memory roadmap into flat step and
// resource rows with freshly assigned ids.
func flattenRoadmap(rm *types.Roadmap) ([]stepRow, []resourceRow) {
	var steps []stepRow
	var resources []resourceRow
	for _, phase := range rm.Phases {
		for _, step := range phase.Steps {
			row := stepRow{
				ID:          uuid.New(),
				PhaseLabel:  phase.Title,
				PhaseOrder:  phase.Order,
				Title:       step.Title,
				Description: step.Description,
				StepOrder:   step.Order,
			}
			if step.EstimatedHours > 0 {
				hours := step.EstimatedHours
				row.EstHours = &hours
			}
			steps = append(steps, row)

			for _, res := range step.Resources {
				r := resourceRow{
					StepID: row.ID,
					Title:  res.Title,
					URL:    res.URL,
					Type:   res.Type,
					IsFree: res.IsFree,
				}
				if res.SourceID != "" {
					sid := res.SourceID
					r.SourceID = &sid
				}
				if res.Verification != "" {
					status := string(res.Verification)
					r.Verification = &status
				}
				resources = append(resources, r)
			}
		}
	}
	return steps, resources
}

// groupSteps rebuilds the phase hierarchy from flat rows for display:
// grouped by phase order, phases and steps sorted by their order columns.
func groupSteps(steps []stepRow, resourcesByStep map[uuid.UUID][]types.Resource) []types.Phase {
	byPhase := make(map[int]*types.Phase)
	for _, row := range steps {
		phase, ok := byPhase[row.PhaseOrder]
		if !ok {
			phase = &types.Phase{Title: row.PhaseLabel, Order: row.PhaseOrder}
			byPhase[row.PhaseOrder] = phase
		}
		step := types.Step{
			Title:       row.Title,
			Description: row.Description,
			Order:       row.StepOrder,
			Resources:   resourcesByStep[row.ID],
		}
		if row.EstHours != nil {
			step.EstimatedHours = *row.EstHours
		}
		phase.Steps = append(phase.Steps, step)
	}

	phases := make([]types.Phase, 0, len(byPhase))
	for _, phase := range byPhase {
		sort.Slice(phase.Steps, func(i, j int) bool {
			return phase.Steps[i].Order < phase.Steps[j].Order
		})
		phases = append(phases, *phase)
	}
	sort.Slice(phases, func(i, j int) bool {
		return phases[i].Order < phases[j].Order
	})
	return phases
}

// SaveRoadmap writes a roadmap, its flattened steps and their resource
// batches inside a single transaction: either the whole roadmap lands or
// nothing does. A per-user advisory lock serializes concurrent generations
// for the same user, and when enforceSingle is set the ownership check is
// repeated under that lock so a race cannot mint a second roadmap.
func (db *DB) SaveRoadmap(ctx context.Context, userID uuid.UUID, modelName string, rm *types.Roadmap, enforceSingle bool) (uuid.UUID, error) {
	roadmapID := uuid.New()

	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
			userID,
		); err != nil {
			return fmt.Errorf("failed to take user lock: %w", err)
		}

		if enforceSingle {
			var owned int
			if err := tx.QueryRow(ctx,
				`SELECT COUNT(*) FROM roadmaps WHERE user_id = $1`,
				userID,
			).Scan(&owned); err != nil {
				return fmt.Errorf("failed to re-check ownership: %w", err)
			}
			if owned >= 1 {
				return ErrRoadmapExists
			}
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO roadmaps (id, user_id, target_role, model_name, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, NOW(), NOW())`,
			roadmapID, userID, rm.TargetRole, modelName,
		); err != nil {
			return fmt.Errorf("failed to insert roadmap: %w", err)
		}

		steps, resources := flattenRoadmap(rm)
		for _, s := range steps {
			if _, err := tx.Exec(ctx,
				`INSERT INTO roadmap_steps (id, roadmap_id, phase_label, phase_order, title, description, est_hours, step_order)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				s.ID, roadmapID, s.PhaseLabel, s.PhaseOrder, s.Title, s.Description, s.EstHours, s.StepOrder,
			); err != nil {
				return fmt.Errorf("failed to insert step %q: %w", s.Title, err)
			}
		}

		if len(resources) > 0 {
			batch := &pgx.Batch{}
			for _, r := range resources {
				batch.Queue(
					`INSERT INTO roadmap_resources (id, step_id, title, url, resource_type, is_free, source_id, verification_status)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
					uuid.New(), r.StepID, r.Title, r.URL, r.Type, r.IsFree, r.SourceID, r.Verification,
				)
			}
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("failed to insert resources: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return roadmapID, nil
}

// CountByUser returns how many roadmaps a user owns.
func (db *DB) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM roadmaps WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roadmaps: %w", err)
	}
	return count, nil
}

// GetRoadmap retrieves a roadmap with its phases regrouped for display.
func (db *DB) GetRoadmap(ctx context.Context, roadmapID uuid.UUID) (*StoredRoadmap, error) {
	var rm StoredRoadmap
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, target_role, model_name, created_at
		 FROM roadmaps WHERE id = $1`,
		roadmapID,
	).Scan(&rm.ID, &rm.UserID, &rm.TargetRole, &rm.ModelName, &rm.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get roadmap: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, phase_label, phase_order, title, description, est_hours, step_order
		 FROM roadmap_steps WHERE roadmap_id = $1
		 ORDER BY phase_order, step_order`,
		roadmapID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer rows.Close()

	var steps []stepRow
	for rows.Next() {
		var s stepRow
		if err := rows.Scan(&s.ID, &s.PhaseLabel, &s.PhaseOrder, &s.Title, &s.Description, &s.EstHours, &s.StepOrder); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read steps: %w", err)
	}

	resourcesByStep, err := db.resourcesForRoadmap(ctx, roadmapID)
	if err != nil {
		return nil, err
	}

	rm.Phases = groupSteps(steps, resourcesByStep)
	return &rm, nil
}

func (db *DB) resourcesForRoadmap(ctx context.Context, roadmapID uuid.UUID) (map[uuid.UUID][]types.Resource, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.step_id, r.title, r.url, r.resource_type, r.is_free, r.source_id, r.verification_status
		 FROM roadmap_resources r
		 JOIN roadmap_steps s ON s.id = r.step_id
		 WHERE s.roadmap_id = $1
		 ORDER BY r.created_at`,
		roadmapID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	byStep := make(map[uuid.UUID][]types.Resource)
	for rows.Next() {
		var stepID uuid.UUID
		var r resourceRow
		if err := rows.Scan(&stepID, &r.Title, &r.URL, &r.Type, &r.IsFree, &r.SourceID, &r.Verification); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		res := types.Resource{
			Title:  r.Title,
			URL:    r.URL,
			Type:   r.Type,
			IsFree: r.IsFree,
		}
		if r.SourceID != nil {
			res.SourceID = *r.SourceID
		}
		if r.Verification != nil {
			res.Verification = types.VerificationStatus(*r.Verification)
		}
		byStep[stepID] = append(byStep[stepID], res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}
	return byStep, nil
}

// ListRoadmaps retrieves a user's roadmaps, newest first.
func (db *DB) ListRoadmaps(ctx context.Context, userID uuid.UUID) ([]RoadmapSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, target_role, model_name, created_at
		 FROM roadmaps WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	defer rows.Close()

	var summaries []RoadmapSummary
	for rows.Next() {
		var s RoadmapSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.TargetRole, &s.ModelName, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roadmap: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
