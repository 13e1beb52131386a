package validations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Kofidell4545/pluseposter/config"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".m4v": true}
)

// ValidatePostRequest checks a request against platform constraints before any
// network round-trip is attempted.
func ValidatePostRequest(ctx context.Context, request domainPost.PostRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Platform, validation.Required, validation.In(
			domainPost.PlatformTwitter, domainPost.PlatformInstagram, domainPost.PlatformFacebook,
		)),
		validation.Field(&request.ContentType, validation.Required, validation.In(
			domainPost.ContentTypeText, domainPost.ContentTypeImage, domainPost.ContentTypeVideo,
		)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.ContentType.IsMedia() {
		if request.FilePath == "" {
			return pkgError.ValidationError("file_path is required for media posts")
		}
		if request.Message != "" {
			return pkgError.ValidationError("message and file_path are mutually exclusive")
		}
		return validateMediaFile(request)
	}

	// Text post
	if request.FilePath != "" {
		return pkgError.ValidationError("file_path is only valid for media posts")
	}
	if request.Message == "" {
		return pkgError.ValidationError("message is required for text posts")
	}
	if request.Platform == domainPost.PlatformInstagram {
		return pkgError.ContentError("instagram does not support text-only posts")
	}
	if request.Platform == domainPost.PlatformTwitter && utf8.RuneCountInString(request.Message) > config.TwitterMaxTextLength {
		return pkgError.ContentError(fmt.Sprintf("text exceeds twitter limit of %d characters", config.TwitterMaxTextLength))
	}

	return nil
}

func validateMediaFile(request domainPost.PostRequest) error {
	info, err := os.Stat(request.FilePath)
	if err != nil {
		return pkgError.ContentError(fmt.Sprintf("file does not exist: %s", request.FilePath))
	}
	if info.IsDir() {
		return pkgError.ContentError(fmt.Sprintf("not a file: %s", request.FilePath))
	}

	ext := strings.ToLower(filepath.Ext(request.FilePath))
	switch request.ContentType {
	case domainPost.ContentTypeImage:
		if !imageExtensions[ext] {
			return pkgError.ContentError(fmt.Sprintf("unsupported image format %s, expected jpg or png", ext))
		}
		if info.Size() > config.MaxImageSize {
			return pkgError.ContentError(fmt.Sprintf(
				"image size %s exceeds limit of %s",
				humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(config.MaxImageSize)),
			))
		}
		return validateImageContent(request)
	case domainPost.ContentTypeVideo:
		if !videoExtensions[ext] {
			return pkgError.ContentError(fmt.Sprintf("unsupported video format %s, expected mp4, mov or m4v", ext))
		}
		if info.Size() > config.MaxVideoSize {
			return pkgError.ContentError(fmt.Sprintf(
				"video size %s exceeds limit of %s",
				humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(config.MaxVideoSize)),
			))
		}
	}

	return nil
}

func validateImageContent(request domainPost.PostRequest) error {
	img, err := imaging.Open(request.FilePath)
	if err != nil {
		return pkgError.ContentError(fmt.Sprintf("unable to decode image: %v", err))
	}

	if request.Platform != domainPost.PlatformInstagram {
		return nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < config.InstagramMinImageDimension || height < config.InstagramMinImageDimension {
		return pkgError.ContentError(fmt.Sprintf(
			"image %dx%d below instagram minimum of %dpx",
			width, height, config.InstagramMinImageDimension,
		))
	}
	if width > config.InstagramMaxImageDimension || height > config.InstagramMaxImageDimension {
		return pkgError.ContentError(fmt.Sprintf(
			"image %dx%d above instagram maximum of %dpx",
			width, height, config.InstagramMaxImageDimension,
		))
	}

	return nil
}

// ValidateScheduleRequest applies the post rules and requires a due time.
func ValidateScheduleRequest(ctx context.Context, request domainPost.PostRequest) error {
	if request.ScheduledAt == nil {
		return pkgError.ValidationError("scheduled_at is required")
	}
	return ValidatePostRequest(ctx, request)
}
