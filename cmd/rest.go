package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	globalConfig "github.com/Kofidell4545/pluseposter/config"
	"github.com/Kofidell4545/pluseposter/ui/rest"
	"github.com/Kofidell4545/pluseposter/ui/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Post and schedule over an HTTP API",
	Long:  `Serve the posting and scheduling API and run the scheduler loop alongside it.`,
	Run:   restServer,
}

func init() {
	restCmd.Flags().StringVarP(
		&globalConfig.AppPort,
		"port", "p",
		globalConfig.AppPort,
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	app := fiber.New(fiber.Config{
		BodyLimit:    int(globalConfig.MaxVideoSize),
		Network:      "tcp",
		AppName:      "PlusePoster " + globalConfig.AppVersion,
		ServerHeader: "Hidden",
	})

	app.Use(requestid.New())
	app.Use(middleware.Recovery())

	if globalConfig.AppDebug {
		app.Use(logger.New())
	}

	apiGroup := app.Group("/api")

	if len(globalConfig.AppBasicAuthCredential) > 0 {
		account := make(map[string]string)
		for _, basicAuth := range globalConfig.AppBasicAuthCredential {
			ba := strings.Split(basicAuth, ":")
			if len(ba) != 2 {
				logrus.Fatalln("Basic auth is not valid, please use the following format <user>:<secret>")
			}
			account[ba[0]] = ba[1]
		}
		apiGroup.Use(basicauth.New(basicauth.Config{Users: account}))
	}

	rest.InitRestSend(apiGroup, postUsecase)
	rest.InitRestSchedule(apiGroup, schedulerUsecase)
	rest.InitRestHealth(apiGroup, credentialUsecase)

	// 404 handler for the API group
	apiGroup.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "API Endpoint not found",
			"path":  c.Path(),
		})
	})

	// Scheduler loop runs alongside the API server.
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go schedulerUsecase.Run(schedulerCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		stopScheduler()
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
		StopApp()
	}()

	if err := app.Listen(":" + globalConfig.AppPort); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}
}
