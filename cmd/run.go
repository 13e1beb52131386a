package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduler daemon",
	Long:  `Run the poll loop that dispatches scheduled posts when they come due.`,
	Run:   runScheduler,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScheduler(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[RUN] Reception of termination signal, shutting down gracefully...")
		cancel()
	}()

	schedulerUsecase.Run(ctx)
	StopApp()
}
