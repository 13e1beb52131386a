package usecase

import (
	"fmt"
	"os"
	"strings"

	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var requiredKeys = map[domainPost.Platform][]string{
	domainPost.PlatformTwitter:   {"TWITTER_API_KEY", "TWITTER_API_SECRET", "TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_TOKEN_SECRET"},
	domainPost.PlatformInstagram: {"INSTAGRAM_API_KEY", "INSTAGRAM_API_SECRET"},
	domainPost.PlatformFacebook:  {"FACEBOOK_API_KEY", "FACEBOOK_API_SECRET"},
}

type serviceCredential struct {
	creds   map[domainPost.Platform]domainCredential.PlatformCredential
	missing map[domainPost.Platform][]string
}

// NewCredentialService reads every platform's keys from the environment once.
// The snapshot is immutable afterwards; key values are never logged.
func NewCredentialService() domainCredential.ICredentialUsecase {
	service := &serviceCredential{
		creds:   make(map[domainPost.Platform]domainCredential.PlatformCredential),
		missing: make(map[domainPost.Platform][]string),
	}

	for platform, keys := range requiredKeys {
		var missing []string
		for _, key := range keys {
			if envValue(key) == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			service.missing[platform] = missing
			continue
		}

		prefix := strings.ToUpper(string(platform))
		service.creds[platform] = domainCredential.PlatformCredential{
			APIKey:            envValue(prefix + "_API_KEY"),
			APISecret:         envValue(prefix + "_API_SECRET"),
			AccessToken:       envValue(prefix + "_ACCESS_TOKEN"),
			AccessTokenSecret: envValue(prefix + "_ACCESS_TOKEN_SECRET"),
		}
		logrus.WithField("platform", platform).Debug("[CREDENTIAL] Platform configured")
	}

	return service
}

func envValue(key string) string {
	if v := viper.GetString(key); v != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(os.Getenv(key))
}

func (service *serviceCredential) ForPlatform(platform domainPost.Platform) (domainCredential.PlatformCredential, error) {
	if !platform.Valid() {
		return domainCredential.PlatformCredential{}, pkgError.ValidationError(fmt.Sprintf("platform '%s' is not supported", platform))
	}
	if missing, ok := service.missing[platform]; ok {
		return domainCredential.PlatformCredential{}, pkgError.ConfigurationError(fmt.Sprintf(
			"missing credentials for %s: %s", platform, strings.Join(missing, ", "),
		))
	}
	return service.creds[platform], nil
}

func (service *serviceCredential) Configured() []domainPost.Platform {
	var platforms []domainPost.Platform
	for _, platform := range domainPost.Platforms() {
		if _, ok := service.creds[platform]; ok {
			platforms = append(platforms, platform)
		}
	}
	return platforms
}
