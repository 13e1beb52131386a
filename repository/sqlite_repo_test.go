package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	domainScheduler "github.com/Kofidell4545/pluseposter/domains/scheduler"
	_ "github.com/mattn/go-sqlite3"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "jobs.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return repo
}

func testJob(id string, scheduledAt time.Time) domainScheduler.ScheduledJob {
	now := time.Now().UTC()
	return domainScheduler.ScheduledJob{
		ID: id,
		Request: domainPost.PostRequest{
			Platform:    domainPost.PlatformTwitter,
			ContentType: domainPost.ContentTypeText,
			Message:     "scheduled text",
		},
		ScheduledAt: scheduledAt.UTC(),
		Status:      domainScheduler.JobStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	scheduledAt := time.Now().Add(time.Hour)
	if err := repo.Create(ctx, testJob("job-1", scheduledAt)); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	job, err := repo.GetByID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if job.Request.Platform != domainPost.PlatformTwitter {
		t.Fatalf("platform = %q, want %q", job.Request.Platform, domainPost.PlatformTwitter)
	}
	if job.Request.Message != "scheduled text" {
		t.Fatalf("message = %q, want %q", job.Request.Message, "scheduled text")
	}
	if job.Status != domainScheduler.JobStatusPending {
		t.Fatalf("status = %q, want %q", job.Status, domainScheduler.JobStatusPending)
	}
	if job.Request.ScheduledAt == nil {
		t.Fatalf("scheduled_at not restored on the request")
	}
}

func TestSQLiteRepository_ListDueExcludesFuture(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	if err := repo.Create(ctx, testJob("due", now.Add(-time.Minute))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if err := repo.Create(ctx, testJob("future", now.Add(time.Hour))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	due, err := repo.ListDue(ctx, now)
	if err != nil {
		t.Fatalf("ListDue() unexpected error: %v", err)
	}
	if len(due) != 1 || due[0].ID != "due" {
		t.Fatalf("ListDue() = %v, want exactly the past-due job", due)
	}
}

func TestSQLiteRepository_ClaimIsExclusive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testJob("job-1", time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	claimed, err := repo.Claim(ctx, "job-1")
	if err != nil {
		t.Fatalf("Claim() unexpected error: %v", err)
	}
	if !claimed {
		t.Fatalf("first Claim() = false, want true")
	}

	claimed, err = repo.Claim(ctx, "job-1")
	if err != nil {
		t.Fatalf("Claim() unexpected error: %v", err)
	}
	if claimed {
		t.Fatalf("second Claim() = true, job was claimed twice")
	}
}

func TestSQLiteRepository_CancelPendingOnly(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testJob("job-1", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	cancelled, err := repo.CancelPending(ctx, "job-1")
	if err != nil {
		t.Fatalf("CancelPending() unexpected error: %v", err)
	}
	if !cancelled {
		t.Fatalf("CancelPending() = false for a pending job")
	}

	// Already cancelled, so a second cancel must not match.
	cancelled, err = repo.CancelPending(ctx, "job-1")
	if err != nil {
		t.Fatalf("CancelPending() unexpected error: %v", err)
	}
	if cancelled {
		t.Fatalf("CancelPending() = true for a non-pending job")
	}
}

func TestSQLiteRepository_UpdatePersistsOutcome(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, testJob("job-1", time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	job, err := repo.GetByID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	job.Status = domainScheduler.JobStatusSent
	job.Attempts = 2
	job.PostID = "post-9"
	if err := repo.Update(ctx, job); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	stored, err := repo.GetByID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if stored.Status != domainScheduler.JobStatusSent || stored.Attempts != 2 || stored.PostID != "post-9" {
		t.Fatalf("Update() not persisted, got %+v", stored)
	}
}
