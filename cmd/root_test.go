package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	globalConfig "github.com/Kofidell4545/pluseposter/config"
	"github.com/Kofidell4545/pluseposter/pkg/utils"
)

func snapshotConfig(t *testing.T) {
	t.Helper()

	origPoll := globalConfig.SchedulerPollInterval
	origAttempts := globalConfig.SchedulerMaxAttempts
	origImage := globalConfig.MaxImageSize
	origVideo := globalConfig.MaxVideoSize
	origRPM := globalConfig.RequestsPerMinute
	t.Cleanup(func() {
		globalConfig.SchedulerPollInterval = origPoll
		globalConfig.SchedulerMaxAttempts = origAttempts
		globalConfig.MaxImageSize = origImage
		globalConfig.MaxVideoSize = origVideo
		globalConfig.RequestsPerMinute = origRPM
	})
}

func TestInitEnvConfig_SchedulerOverrides(t *testing.T) {
	snapshotConfig(t)

	t.Setenv("SCHEDULER_POLL_INTERVAL_MS", "500")
	t.Setenv("SCHEDULER_MAX_ATTEMPTS", "9")
	t.Setenv("MAX_IMAGE_SIZE", "1000")
	t.Setenv("MAX_VIDEO_SIZE", "2000")
	t.Setenv("REQUESTS_PER_MINUTE", "5")

	initEnvConfig()

	if globalConfig.SchedulerPollInterval != 500*time.Millisecond {
		t.Fatalf("SchedulerPollInterval = %v, want 500ms", globalConfig.SchedulerPollInterval)
	}
	if globalConfig.SchedulerMaxAttempts != 9 {
		t.Fatalf("SchedulerMaxAttempts = %d, want 9", globalConfig.SchedulerMaxAttempts)
	}
	if globalConfig.MaxImageSize != 1000 {
		t.Fatalf("MaxImageSize = %d, want 1000", globalConfig.MaxImageSize)
	}
	if globalConfig.MaxVideoSize != 2000 {
		t.Fatalf("MaxVideoSize = %d, want 2000", globalConfig.MaxVideoSize)
	}
	if globalConfig.RequestsPerMinute != 5 {
		t.Fatalf("RequestsPerMinute = %d, want 5", globalConfig.RequestsPerMinute)
	}
}

func TestInitEnvConfig_DotEnvOverrides(t *testing.T) {
	snapshotConfig(t)

	// Values from a .env file must land in the config, not just the process
	// environment.
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SCHEDULER_MAX_ATTEMPTS=7\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("SCHEDULER_MAX_ATTEMPTS", "")
	_ = os.Unsetenv("SCHEDULER_MAX_ATTEMPTS")

	utils.LoadConfig(dir)
	initEnvConfig()

	if globalConfig.SchedulerMaxAttempts != 7 {
		t.Fatalf("SchedulerMaxAttempts = %d, want 7 from .env", globalConfig.SchedulerMaxAttempts)
	}
}

func TestInitEnvConfig_IgnoresInvalidValues(t *testing.T) {
	snapshotConfig(t)

	t.Setenv("SCHEDULER_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("REQUESTS_PER_MINUTE", "-3")

	before := globalConfig.SchedulerMaxAttempts
	beforeRPM := globalConfig.RequestsPerMinute
	initEnvConfig()

	if globalConfig.SchedulerMaxAttempts != before {
		t.Fatalf("SchedulerMaxAttempts changed on invalid input: %d", globalConfig.SchedulerMaxAttempts)
	}
	if globalConfig.RequestsPerMinute != beforeRPM {
		t.Fatalf("RequestsPerMinute changed on negative input: %d", globalConfig.RequestsPerMinute)
	}
}
