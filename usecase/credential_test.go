package usecase

import (
	"errors"
	"strings"
	"testing"

	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
)

func TestCredentialService_ForPlatform(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("TWITTER_API_SECRET", "secret")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_TOKEN_SECRET", "token-secret")
	t.Setenv("INSTAGRAM_API_KEY", "")
	t.Setenv("INSTAGRAM_API_SECRET", "")

	svc := NewCredentialService()

	cred, err := svc.ForPlatform(domainPost.PlatformTwitter)
	if err != nil {
		t.Fatalf("ForPlatform(twitter) unexpected error: %v", err)
	}
	if cred.AccessToken != "token" {
		t.Fatalf("ForPlatform(twitter) AccessToken = %q, want %q", cred.AccessToken, "token")
	}

	_, err = svc.ForPlatform(domainPost.PlatformInstagram)
	var configErr pkgError.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("ForPlatform(instagram) expected ConfigurationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "INSTAGRAM_API_KEY") {
		t.Fatalf("ForPlatform(instagram) error should name the missing key, got %q", err.Error())
	}
}

func TestCredentialService_UnknownPlatform(t *testing.T) {
	svc := NewCredentialService()

	if _, err := svc.ForPlatform(domainPost.Platform("myspace")); err == nil {
		t.Fatalf("ForPlatform() expected error for unknown platform, got nil")
	}
}

func TestCredentialService_Configured(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "")
	t.Setenv("TWITTER_API_SECRET", "")
	t.Setenv("TWITTER_ACCESS_TOKEN", "")
	t.Setenv("TWITTER_ACCESS_TOKEN_SECRET", "")
	t.Setenv("FACEBOOK_API_KEY", "fb-key")
	t.Setenv("FACEBOOK_API_SECRET", "fb-secret")
	t.Setenv("INSTAGRAM_API_KEY", "")
	t.Setenv("INSTAGRAM_API_SECRET", "")

	svc := NewCredentialService()

	configured := svc.Configured()
	if len(configured) != 1 || configured[0] != domainPost.PlatformFacebook {
		t.Fatalf("Configured() = %v, want [facebook]", configured)
	}
}
