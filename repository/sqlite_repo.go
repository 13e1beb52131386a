package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	domainScheduler "github.com/Kofidell4545/pluseposter/domains/scheduler"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS scheduled_jobs (
			id TEXT PRIMARY KEY,
			platform TEXT NOT NULL,
			content_type TEXT NOT NULL,
			message TEXT,
			file_path TEXT,
			caption TEXT,
			scheduled_at DATETIME NOT NULL,
			status TEXT DEFAULT 'pending',
			attempts INTEGER DEFAULT 0,
			post_id TEXT,
			last_error TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_jobs_status ON scheduled_jobs(status);`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_jobs_due ON scheduled_jobs(status, scheduled_at);`,
	}

	for _, query := range queries {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, job domainScheduler.ScheduledJob) error {
	query := `INSERT INTO scheduled_jobs (id, platform, content_type, message, file_path, caption, scheduled_at, status, attempts, post_id, last_error, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		job.ID, string(job.Request.Platform), string(job.Request.ContentType),
		job.Request.Message, job.Request.FilePath, job.Request.Caption,
		job.ScheduledAt.UTC(), string(job.Status), job.Attempts, job.PostID, job.LastError,
		job.CreatedAt.UTC(), job.UpdatedAt.UTC(),
	)
	return err
}

const jobColumns = `id, platform, content_type, message, file_path, caption, scheduled_at, status, attempts, post_id, last_error, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (domainScheduler.ScheduledJob, error) {
	var job domainScheduler.ScheduledJob
	var platform, contentType, status string
	var postID, lastError sql.NullString
	err := row.Scan(
		&job.ID, &platform, &contentType,
		&job.Request.Message, &job.Request.FilePath, &job.Request.Caption,
		&job.ScheduledAt, &status, &job.Attempts, &postID, &lastError,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return domainScheduler.ScheduledJob{}, err
	}
	job.Request.Platform = domainPost.Platform(platform)
	job.Request.ContentType = domainPost.ContentType(contentType)
	scheduledAt := job.ScheduledAt
	job.Request.ScheduledAt = &scheduledAt
	job.Status = domainScheduler.JobStatus(status)
	job.PostID = postID.String
	job.LastError = lastError.String
	return job, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (domainScheduler.ScheduledJob, error) {
	query := `SELECT ` + jobColumns + ` FROM scheduled_jobs WHERE id = ?`
	return scanJob(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) List(ctx context.Context) ([]domainScheduler.ScheduledJob, error) {
	query := `SELECT ` + jobColumns + ` FROM scheduled_jobs ORDER BY scheduled_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domainScheduler.ScheduledJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *SQLiteRepository) ListDue(ctx context.Context, now time.Time) ([]domainScheduler.ScheduledJob, error) {
	query := `SELECT ` + jobColumns + ` FROM scheduled_jobs WHERE status = ? AND scheduled_at <= ? ORDER BY scheduled_at ASC`
	rows, err := r.db.QueryContext(ctx, query, string(domainScheduler.JobStatusPending), now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domainScheduler.ScheduledJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *SQLiteRepository) Claim(ctx context.Context, id string) (bool, error) {
	query := `UPDATE scheduled_jobs SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(domainScheduler.JobStatusRunning), time.Now().UTC(), id, string(domainScheduler.JobStatusPending))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected == 1, err
}

func (r *SQLiteRepository) Update(ctx context.Context, job domainScheduler.ScheduledJob) error {
	query := `UPDATE scheduled_jobs SET status = ?, attempts = ?, post_id = ?, last_error = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(job.Status), job.Attempts, job.PostID, job.LastError, time.Now().UTC(), job.ID)
	return err
}

func (r *SQLiteRepository) CancelPending(ctx context.Context, id string) (bool, error) {
	query := `UPDATE scheduled_jobs SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(domainScheduler.JobStatusCancelled), time.Now().UTC(), id, string(domainScheduler.JobStatusPending))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected == 1, err
}
