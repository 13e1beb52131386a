package config

import (
	"time"
)

var (
	AppVersion             = "v1.0.0"
	AppPort                = "3000"
	AppDebug               = false
	AppBasicAuthCredential []string

	PathStorages = "storages"

	DBURI = "file:storages/pluseposter.db?_foreign_keys=on"

	// Media limits applied before any network call
	MaxImageSize int64 = 8000000   // 8MB
	MaxVideoSize int64 = 100000000 // 100MB

	// Instagram image requirements
	InstagramMinImageDimension = 320
	InstagramMaxImageDimension = 1080

	// Twitter text limit (runes, not bytes)
	TwitterMaxTextLength = 280

	// Scheduler settings
	SchedulerPollInterval = 15 * time.Second
	SchedulerMaxAttempts  = 3
	SchedulerBackoffBase  = 2 * time.Second

	// Outbound request settings
	HTTPTimeout       = 30 * time.Second
	RequestsPerMinute = 30
	GraphAPIVersion   = "v19.0"
	TwitterAPIBaseURL = "https://api.twitter.com/2"
	TwitterUploadURL  = "https://upload.twitter.com/1.1/media/upload.json"
	FacebookGraphURL  = "https://graph.facebook.com"
	InstagramGraphURL = "https://graph.facebook.com"
)
