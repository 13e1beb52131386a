package scheduler

import (
	"context"
	"time"

	"github.com/Kofidell4545/pluseposter/domains/post"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSent      JobStatus = "sent"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// ScheduledJob wraps a PostRequest with a due time. Created by Schedule,
// dispatched once at/after ScheduledAt, then kept for inspection.
type ScheduledJob struct {
	ID          string           `json:"id"`
	Request     post.PostRequest `json:"request"`
	ScheduledAt time.Time        `json:"scheduled_at"`
	Status      JobStatus        `json:"status"`
	Attempts    int              `json:"attempts"`
	PostID      string           `json:"post_id,omitempty"`
	LastError   string           `json:"last_error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type ISchedulerUsecase interface {
	// Schedule validates and persists a job. Past due times are accepted
	// and picked up by the next tick rather than dropped.
	Schedule(ctx context.Context, request post.PostRequest) (ScheduledJob, error)
	Get(ctx context.Context, id string) (ScheduledJob, error)
	List(ctx context.Context) ([]ScheduledJob, error)
	// Cancel removes a pending job before it fires.
	Cancel(ctx context.Context, id string) error
	// ProcessDueJobs claims and dispatches every job due at call time.
	ProcessDueJobs(ctx context.Context) error
	// Run blocks, polling for due jobs until ctx is done.
	Run(ctx context.Context)
}
