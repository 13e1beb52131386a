package platform

import (
	"context"
	"fmt"

	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
)

// Adapter translates a generic PostRequest into one vendor-specific call and
// maps vendor failures into the shared error taxonomy.
type Adapter interface {
	Platform() domainPost.Platform
	Post(ctx context.Context, request domainPost.PostRequest) (domainPost.PostResult, error)
	ValidateCredentials(ctx context.Context) error
}

// Factory builds an adapter from platform credentials.
type Factory func(cred domainCredential.PlatformCredential) Adapter

// Registry holds one factory per supported platform. The platform set is
// closed; registration happens once during bootstrap.
type Registry struct {
	factories map[domainPost.Platform]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[domainPost.Platform]Factory)}
}

func (r *Registry) RegisterFactory(platform domainPost.Platform, factory Factory) {
	r.factories[platform] = factory
}

func (r *Registry) Resolve(platform domainPost.Platform, cred domainCredential.PlatformCredential) (Adapter, error) {
	factory, ok := r.factories[platform]
	if !ok {
		return nil, pkgError.NotFoundError(fmt.Sprintf("platform '%s' is not supported", platform))
	}
	return factory(cred), nil
}
