package cmd

import (
	"fmt"
	"os"
	"time"

	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	postPlatform string
	postType     string
	postMessage  string
	postCaption  string
	postFile     string
	postSchedule string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post content to a social media platform",
	Long: `Post text, an image or a video to twitter, instagram or facebook.
With --schedule the post is stored and dispatched by the scheduler daemon
(see "pluseposter run").`,
	Run: runPost,
}

func init() {
	postCmd.Flags().StringVar(&postPlatform, "platform", "", "target platform: twitter, instagram or facebook")
	postCmd.Flags().StringVar(&postType, "type", "", "content type: text, image or video")
	postCmd.Flags().StringVar(&postMessage, "message", "", "text content for text posts")
	postCmd.Flags().StringVar(&postCaption, "caption", "", "caption for media posts")
	postCmd.Flags().StringVar(&postFile, "file", "", "path to the media file for image/video posts")
	postCmd.Flags().StringVar(&postSchedule, "schedule", "", `schedule time, RFC 3339 | example: --schedule="2025-07-01T09:00:00Z"`)
	_ = postCmd.MarkFlagRequired("platform")
	_ = postCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, _ []string) {
	request := domainPost.PostRequest{
		Platform:    domainPost.Platform(postPlatform),
		ContentType: domainPost.ContentType(postType),
		Message:     postMessage,
		FilePath:    postFile,
		Caption:     postCaption,
	}

	// Text posts fall back to --caption, matching the media-post flag set.
	if request.ContentType == domainPost.ContentTypeText && request.Message == "" {
		request.Message = postCaption
	}

	ctx := cmd.Context()

	if postSchedule != "" {
		scheduledAt, err := time.Parse(time.RFC3339, postSchedule)
		if err != nil {
			logrus.Errorf("invalid --schedule value, expected RFC 3339: %v", err)
			os.Exit(1)
		}
		request.ScheduledAt = &scheduledAt

		job, err := schedulerUsecase.Schedule(ctx, request)
		if err != nil {
			logrus.WithError(err).Error("[CLI] Failed to schedule post")
			os.Exit(1)
		}
		fmt.Printf("Scheduled job %s for %s (run 'pluseposter run' to dispatch)\n", job.ID, job.ScheduledAt.Format(time.RFC3339))
		return
	}

	result, err := postUsecase.Dispatch(ctx, request)
	if err != nil {
		logrus.WithError(err).Error("[CLI] Failed to post content")
		os.Exit(1)
	}
	fmt.Printf("Success! Platform %s post id %s\n", result.Platform, result.PostID)
}
