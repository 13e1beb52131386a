package credential

import (
	"github.com/Kofidell4545/pluseposter/domains/post"
)

// PlatformCredential holds the vendor keys for one platform. Loaded once per
// process and treated as immutable afterwards.
type PlatformCredential struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

func (c PlatformCredential) Empty() bool {
	return c.APIKey == "" && c.APISecret == "" && c.AccessToken == "" && c.AccessTokenSecret == ""
}

type ICredentialUsecase interface {
	// ForPlatform returns the credentials for platform, or a
	// ConfigurationError naming the missing keys.
	ForPlatform(platform post.Platform) (PlatformCredential, error)
	// Configured lists the platforms with complete credentials.
	Configured() []post.Platform
}
