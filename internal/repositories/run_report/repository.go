// Package runreport stores the outcome of each seed run
package runreport

import (
	"context"
	"time"

	"github.com/KirkDiggler/creature-seeder/internal/entities"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=runreportmock github.com/KirkDiggler/creature-seeder/internal/repositories/run_report Repository

// CleanupStatus records what happened to the placeholder row
type CleanupStatus string

const (
	CleanupDeleted       CleanupStatus = "deleted"
	CleanupAlreadyAbsent CleanupStatus = "already-absent"
	CleanupFailed        CleanupStatus = "failed"
	CleanupSkipped       CleanupStatus = "skipped"
)

// ItemResult is the outcome of seeding one sampled creature id. Exactly one
// of Payload (ok) or Error (failed) is meaningful.
type ItemResult struct {
	CreatureID int                   `json:"creature_id"`
	OK         bool                  `json:"ok"`
	Payload    *entities.SeedPayload `json:"payload,omitempty"`
	RecordID   int                   `json:"record_id,omitempty"`
	Error      string                `json:"error,omitempty"`
	ErrorCode  string                `json:"error_code,omitempty"`
}

// RunReport is the full account of one seed run. Counts are derived from
// Results rather than stored.
type RunReport struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	DryRun       bool          `json:"dry_run,omitempty"`
	Population   int           `json:"population"`
	Requested    int           `json:"requested"`
	Results      []ItemResult  `json:"results"`
	Cleanup      CleanupStatus `json:"cleanup"`
	CleanupError string        `json:"cleanup_error,omitempty"`
}

// Inserted counts the successful items
func (r *RunReport) Inserted() int {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	return n
}

// Failed counts the failed items
func (r *RunReport) Failed() int {
	return len(r.Results) - r.Inserted()
}

// FailedIDs lists the creature ids that did not make it into the store
func (r *RunReport) FailedIDs() []int {
	var ids []int
	for _, res := range r.Results {
		if !res.OK {
			ids = append(ids, res.CreatureID)
		}
	}
	return ids
}

// SaveInput contains parameters for saving a report
type SaveInput struct {
	Report *RunReport
}

// SaveOutput contains the result of saving a report
type SaveOutput struct {
	Report *RunReport
}

// GetInput contains parameters for retrieving a report
type GetInput struct {
	RunID string
}

// GetOutput contains the retrieved report
type GetOutput struct {
	Report *RunReport
}

// ListRecentInput contains parameters for listing reports
type ListRecentInput struct {
	// Limit caps the number of reports (optional, defaults to 10)
	Limit int
}

// ListRecentOutput holds reports ordered newest first
type ListRecentOutput struct {
	Reports []*RunReport
}

// Repository defines the interface for run report storage
type Repository interface {
	// Save stores a report, replacing any report with the same run id
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a report by run id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListRecent returns the most recently started reports
	ListRecent(ctx context.Context, input ListRecentInput) (*ListRecentOutput, error)
}

const (
	defaultListLimit = 10

	errReportNil  = "report cannot be nil"
	errRunIDEmpty = "run ID cannot be empty"
)

func validateReport(report *RunReport) error {
	if report == nil {
		return errors.InvalidArgument(errReportNil)
	}
	if report.RunID == "" {
		return errors.InvalidArgument(errRunIDEmpty)
	}
	return nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
