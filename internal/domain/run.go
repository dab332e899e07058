package domain

import (
	"context"
	"time"
)

// RunKind distinguishes direct modify runs from crew runs
type RunKind string

const (
	RunKindModify RunKind = "modify"
	RunKindCrew   RunKind = "crew"
)

// RunRecord summarizes one processed request for the run history
type RunRecord struct {
	ID           string    `json:"id"`
	Kind         RunKind   `json:"kind"`
	Instruction  string    `json:"instruction"`
	Replacements int       `json:"replacements"`
	PagesIn      int       `json:"pages_in"`
	PagesOut     int       `json:"pages_out"`
	Diagnostics  int       `json:"diagnostics"`
	PublicURL    string    `json:"public_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRunRecord builds the history entry for a finished modification
func NewRunRecord(id string, kind RunKind, instruction string, result *ModifyResult) *RunRecord {
	return &RunRecord{
		ID:           id,
		Kind:         kind,
		Instruction:  instruction,
		Replacements: result.Replacements.Len(),
		PagesIn:      result.PagesIn,
		PagesOut:     result.PagesOut,
		Diagnostics:  result.Report.Len(),
		PublicURL:    result.PublicURL,
		CreatedAt:    time.Now().UTC(),
	}
}

// RunRepository persists the run history
type RunRepository interface {
	Save(ctx context.Context, run *RunRecord) error
	List(ctx context.Context, limit int) ([]*RunRecord, error)
}
