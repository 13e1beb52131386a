package cmd

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"strings"
	"time"

	globalConfig "github.com/Kofidell4545/pluseposter/config"
	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	domainScheduler "github.com/Kofidell4545/pluseposter/domains/scheduler"
	"github.com/Kofidell4545/pluseposter/infrastructure/platform"
	"github.com/Kofidell4545/pluseposter/infrastructure/platform/facebook"
	"github.com/Kofidell4545/pluseposter/infrastructure/platform/instagram"
	"github.com/Kofidell4545/pluseposter/infrastructure/platform/twitter"
	"github.com/Kofidell4545/pluseposter/pkg/utils"
	"github.com/Kofidell4545/pluseposter/repository"
	"github.com/Kofidell4545/pluseposter/usecase"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	jobDB *sql.DB

	// Usecase
	credentialUsecase domainCredential.ICredentialUsecase
	postUsecase       domainPost.IPostUsecase
	schedulerUsecase  domainScheduler.ISchedulerUsecase
)

var rootCmd = &cobra.Command{
	Use:   "pluseposter",
	Short: "Post and schedule content to social media platforms",
	Long: `PlusePoster posts text, image and video content to Twitter, Instagram
and Facebook, immediately or at a scheduled time.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig applies environment overrides that flags did not set. It runs
// after LoadConfig, so values from a .env file are picked up too.
func initEnvConfig() {
	if envPort := viper.GetString("app_port"); envPort != "" {
		globalConfig.AppPort = envPort
	}
	if envDebug := viper.GetBool("app_debug"); envDebug {
		globalConfig.AppDebug = envDebug
	}
	if envDBURI := viper.GetString("db_uri"); envDBURI != "" {
		globalConfig.DBURI = envDBURI
	}
	envBasicAuth := viper.GetString("app_basic_auth")
	if envBasicAuth == "" {
		envBasicAuth = os.Getenv("APP_BASIC_AUTH")
	}
	if envBasicAuth != "" {
		globalConfig.AppBasicAuthCredential = strings.Split(envBasicAuth, ",")
	}

	if n, ok := envInt("scheduler_poll_interval_ms"); ok {
		globalConfig.SchedulerPollInterval = time.Duration(n) * time.Millisecond
	}
	if n, ok := envInt("scheduler_max_attempts"); ok {
		globalConfig.SchedulerMaxAttempts = int(n)
	}
	if n, ok := envInt("max_image_size"); ok {
		globalConfig.MaxImageSize = n
	}
	if n, ok := envInt("max_video_size"); ok {
		globalConfig.MaxVideoSize = n
	}
	if n, ok := envInt("requests_per_minute"); ok {
		globalConfig.RequestsPerMinute = int(n)
	}
}

func envInt(key string) (int64, bool) {
	v := strings.TrimSpace(viper.GetString(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		logrus.Warnf("[CONFIG] ignoring invalid %s value %q", strings.ToUpper(key), v)
		return 0, false
	}
	return n, true
}

func initFlags() {
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.AppDebug,
		"debug", "d",
		globalConfig.AppDebug,
		"display debug logging --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.DBURI,
		"db-uri", "",
		globalConfig.DBURI,
		`the database uri for scheduled jobs (by default, sqlite3 under storages/pluseposter.db) --db-uri <string> | example: --db-uri="file:storages/pluseposter.db?_foreign_keys=on"`,
	)
}

func initApp() {
	if globalConfig.AppDebug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(globalConfig.PathStorages); err != nil {
		logrus.Errorln(err)
	}

	ctx := context.Background()

	var err error
	jobDB, err = sql.Open("sqlite3", globalConfig.DBURI)
	if err != nil {
		logrus.Fatalf("failed to open job db: %v", err)
	}

	jobRepo := repository.NewSQLiteRepository(jobDB)
	if err := jobRepo.Init(ctx); err != nil {
		logrus.Fatalf("failed to init job repo: %v", err)
	}

	credentialUsecase = usecase.NewCredentialService()

	registry := platform.NewRegistry()
	registry.RegisterFactory(domainPost.PlatformTwitter, func(cred domainCredential.PlatformCredential) platform.Adapter {
		return twitter.NewAdapter(cred)
	})
	registry.RegisterFactory(domainPost.PlatformInstagram, func(cred domainCredential.PlatformCredential) platform.Adapter {
		return instagram.NewAdapter(cred)
	})
	registry.RegisterFactory(domainPost.PlatformFacebook, func(cred domainCredential.PlatformCredential) platform.Adapter {
		return facebook.NewAdapter(cred)
	})

	postUsecase = usecase.NewPostService(credentialUsecase, registry)
	schedulerUsecase = usecase.NewSchedulerService(jobRepo, postUsecase)

	// Late-bind so post requests carrying a due time land in the job store.
	if aware, ok := postUsecase.(interface {
		SetScheduler(domainScheduler.ISchedulerUsecase)
	}); ok {
		aware.SetScheduler(schedulerUsecase)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of the job store connection.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if jobDB != nil {
		_ = jobDB.Close()
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
