package usecase

import (
	"context"

	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	domainScheduler "github.com/Kofidell4545/pluseposter/domains/scheduler"
	"github.com/Kofidell4545/pluseposter/infrastructure/platform"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/Kofidell4545/pluseposter/validations"
	"github.com/sirupsen/logrus"
)

type servicePost struct {
	credentialService domainCredential.ICredentialUsecase
	registry          *platform.Registry
	schedulerService  domainScheduler.ISchedulerUsecase
}

func NewPostService(credentialService domainCredential.ICredentialUsecase, registry *platform.Registry) domainPost.IPostUsecase {
	return &servicePost{
		credentialService: credentialService,
		registry:          registry,
	}
}

// SetScheduler wires the scheduler after construction; the scheduler itself
// dispatches through this service, so the two are bound late.
func (service *servicePost) SetScheduler(schedulerService domainScheduler.ISchedulerUsecase) {
	service.schedulerService = schedulerService
}

func (service *servicePost) Post(ctx context.Context, request domainPost.PostRequest) (domainPost.PostResult, error) {
	if request.ScheduledAt != nil {
		if service.schedulerService == nil {
			return domainPost.PostResult{}, pkgError.ConfigurationError("no scheduler configured to accept a scheduled_at request")
		}
		_, err := service.schedulerService.Schedule(ctx, request)
		return domainPost.PostResult{}, err
	}
	return service.Dispatch(ctx, request)
}

func (service *servicePost) Dispatch(ctx context.Context, request domainPost.PostRequest) (domainPost.PostResult, error) {
	if err := validations.ValidatePostRequest(ctx, request); err != nil {
		return domainPost.PostResult{}, err
	}

	// Credentials are checked before any network call is attempted.
	cred, err := service.credentialService.ForPlatform(request.Platform)
	if err != nil {
		return domainPost.PostResult{}, err
	}

	adapter, err := service.registry.Resolve(request.Platform, cred)
	if err != nil {
		return domainPost.PostResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"platform":     request.Platform,
		"content_type": request.ContentType,
	}).Debug("[POST] Dispatching request")

	result, err := adapter.Post(ctx, request)
	if err != nil {
		logrus.WithError(err).WithField("platform", request.Platform).Error("[POST] Dispatch failed")
		return domainPost.PostResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"platform": result.Platform,
		"post_id":  result.PostID,
	}).Info("[POST] Content published")

	return result, nil
}
