// Package repository persists run history in Supabase.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-edit-automation/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

const runsTable = "pdf_runs"

// SupabaseRunRepository implements domain.RunRepository on a PostgREST table
type SupabaseRunRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseRunRepository creates a run repository
func NewSupabaseRunRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseRunRepository {
	return &SupabaseRunRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Save inserts a run record
func (r *SupabaseRunRepository) Save(ctx context.Context, run *domain.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("%w: supabase client not initialized", domain.ErrStorageDisabled)
	}

	_, _, err := client.From(runsTable).Insert(run, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert run record", err, "run_id", run.ID)
		return fmt.Errorf("failed to save run: %w", err)
	}

	r.logger.Debug("Run recorded", "run_id", run.ID, "kind", run.Kind)
	return nil
}

// List returns the most recent runs first
func (r *SupabaseRunRepository) List(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("%w: supabase client not initialized", domain.ErrStorageDisabled)
	}

	data, _, err := client.From(runsTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*domain.RunRecord, 0)
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return runs, nil
}
