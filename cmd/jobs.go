package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and cancel scheduled jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled jobs",
	Run:   runJobsList,
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <job_id>",
	Short: "Cancel a pending scheduled job",
	Args:  cobra.ExactArgs(1),
	Run:   runJobsCancel,
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsCancelCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) {
	jobs, err := schedulerUsecase.List(cmd.Context())
	if err != nil {
		logrus.WithError(err).Error("[CLI] Failed to list jobs")
		return
	}

	if len(jobs) == 0 {
		fmt.Println("No scheduled jobs.")
		return
	}

	for _, job := range jobs {
		line := fmt.Sprintf("%s  %-9s  %-9s  %s",
			job.ID, job.Request.Platform, job.Status, job.ScheduledAt.Format(time.RFC3339))
		if job.LastError != "" {
			line += "  (" + job.LastError + ")"
		}
		fmt.Println(line)
	}
}

func runJobsCancel(cmd *cobra.Command, args []string) {
	if err := schedulerUsecase.Cancel(cmd.Context(), args[0]); err != nil {
		logrus.WithError(err).Error("[CLI] Failed to cancel job")
		return
	}
	fmt.Printf("Cancelled job %s\n", args[0])
}
