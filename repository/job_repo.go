package repository

import (
	"context"
	"time"

	domainScheduler "github.com/Kofidell4545/pluseposter/domains/scheduler"
)

type IJobRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, job domainScheduler.ScheduledJob) error
	GetByID(ctx context.Context, id string) (domainScheduler.ScheduledJob, error)
	List(ctx context.Context) ([]domainScheduler.ScheduledJob, error)
	ListDue(ctx context.Context, now time.Time) ([]domainScheduler.ScheduledJob, error)
	// Claim flips a pending job to running. Returns false when another
	// caller already claimed it or the job left the pending state.
	Claim(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, job domainScheduler.ScheduledJob) error
	// CancelPending flips a pending job to cancelled. Returns false when
	// the job is no longer pending.
	CancelPending(ctx context.Context, id string) (bool, error)
}
