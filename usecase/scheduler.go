package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Kofidell4545/pluseposter/config"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	domainScheduler "github.com/Kofidell4545/pluseposter/domains/scheduler"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/Kofidell4545/pluseposter/repository"
	"github.com/Kofidell4545/pluseposter/validations"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type serviceScheduler struct {
	repo        repository.IJobRepository
	postService domainPost.IPostUsecase

	// Serializes poll passes; job-level exclusion is the sqlite claim.
	mu sync.Mutex
}

func NewSchedulerService(repo repository.IJobRepository, postService domainPost.IPostUsecase) domainScheduler.ISchedulerUsecase {
	return &serviceScheduler{
		repo:        repo,
		postService: postService,
	}
}

func (service *serviceScheduler) Schedule(ctx context.Context, request domainPost.PostRequest) (domainScheduler.ScheduledJob, error) {
	if err := validations.ValidateScheduleRequest(ctx, request); err != nil {
		return domainScheduler.ScheduledJob{}, err
	}

	now := time.Now().UTC()
	job := domainScheduler.ScheduledJob{
		ID:          uuid.NewString(),
		Request:     request,
		ScheduledAt: request.ScheduledAt.UTC(),
		Status:      domainScheduler.JobStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(ctx, job); err != nil {
		return domainScheduler.ScheduledJob{}, err
	}

	entry := logrus.WithFields(logrus.Fields{
		"job_id":       job.ID,
		"platform":     request.Platform,
		"scheduled_at": job.ScheduledAt,
	})
	if job.ScheduledAt.Before(now) {
		entry.Info("[SCHEDULER] Job due in the past, will dispatch on next tick")
	} else {
		entry.Info("[SCHEDULER] Job scheduled")
	}

	return job, nil
}

func (service *serviceScheduler) Get(ctx context.Context, id string) (domainScheduler.ScheduledJob, error) {
	job, err := service.repo.GetByID(ctx, id)
	if err != nil {
		return domainScheduler.ScheduledJob{}, pkgError.NotFoundError("scheduled job not found: " + id)
	}
	return job, nil
}

func (service *serviceScheduler) List(ctx context.Context) ([]domainScheduler.ScheduledJob, error) {
	return service.repo.List(ctx)
}

func (service *serviceScheduler) Cancel(ctx context.Context, id string) error {
	cancelled, err := service.repo.CancelPending(ctx, id)
	if err != nil {
		return err
	}
	if cancelled {
		logrus.WithField("job_id", id).Info("[SCHEDULER] Job cancelled")
		return nil
	}

	job, err := service.repo.GetByID(ctx, id)
	if err != nil {
		return pkgError.NotFoundError("scheduled job not found: " + id)
	}
	return pkgError.ValidationError("only pending jobs can be cancelled, job is " + string(job.Status))
}

func (service *serviceScheduler) ProcessDueJobs(ctx context.Context) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	jobs, err := service.repo.ListDue(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, job := range jobs {
		claimed, err := service.repo.Claim(ctx, job.ID)
		if err != nil {
			logrus.WithError(err).WithField("job_id", job.ID).Error("[SCHEDULER] Failed to claim job")
			continue
		}
		if !claimed {
			continue
		}
		service.execute(ctx, job)
	}

	return nil
}

// execute dispatches one claimed job, retrying transient failures with
// exponential backoff up to the configured attempt bound.
func (service *serviceScheduler) execute(ctx context.Context, job domainScheduler.ScheduledJob) {
	request := job.Request
	request.ScheduledAt = nil

	var lastErr error
	for attempt := 1; attempt <= config.SchedulerMaxAttempts; attempt++ {
		job.Attempts = attempt

		result, err := service.postService.Dispatch(ctx, request)
		if err == nil {
			job.Status = domainScheduler.JobStatusSent
			job.PostID = result.PostID
			job.LastError = ""
			if updateErr := service.repo.Update(ctx, job); updateErr != nil {
				logrus.WithError(updateErr).WithField("job_id", job.ID).Error("[SCHEDULER] Failed to persist job result")
			}
			logrus.WithFields(logrus.Fields{
				"job_id":   job.ID,
				"post_id":  result.PostID,
				"attempts": attempt,
			}).Info("[SCHEDULER] Job dispatched")
			return
		}

		lastErr = err
		if !pkgError.IsRetryable(err) || attempt == config.SchedulerMaxAttempts {
			break
		}

		backoff := config.SchedulerBackoffBase << (attempt - 1)
		var rateLimited pkgError.RetryAfterError
		if errors.As(err, &rateLimited) && rateLimited.Wait > 0 {
			backoff = rateLimited.Wait
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"job_id":  job.ID,
			"attempt": attempt,
			"backoff": backoff,
		}).Warn("[SCHEDULER] Transient failure, retrying")

		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
		case <-time.After(backoff):
		}
		if ctx.Err() != nil {
			break
		}
	}

	job.Status = domainScheduler.JobStatusFailed
	job.LastError = lastErr.Error()
	if err := service.repo.Update(ctx, job); err != nil {
		logrus.WithError(err).WithField("job_id", job.ID).Error("[SCHEDULER] Failed to persist job failure")
	}
	logrus.WithField("job_id", job.ID).WithError(lastErr).Error("[SCHEDULER] Job failed")
}

func (service *serviceScheduler) Run(ctx context.Context) {
	logrus.WithField("interval", config.SchedulerPollInterval).Info("[SCHEDULER] Poll loop started")

	ticker := time.NewTicker(config.SchedulerPollInterval)
	defer ticker.Stop()

	// First pass immediately so past-due jobs do not wait a full interval.
	if err := service.ProcessDueJobs(ctx); err != nil {
		logrus.WithError(err).Error("[SCHEDULER] Failed to process jobs")
	}

	for {
		select {
		case <-ctx.Done():
			logrus.Info("[SCHEDULER] Poll loop stopped")
			return
		case <-ticker.C:
			if err := service.ProcessDueJobs(ctx); err != nil {
				logrus.WithError(err).Error("[SCHEDULER] Failed to process jobs")
			}
		}
	}
}
