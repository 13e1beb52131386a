package post

import (
	"context"
	"time"
)

type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformTwitter, PlatformInstagram, PlatformFacebook:
		return true
	}
	return false
}

// Platforms returns the closed set of supported platforms.
func Platforms() []Platform {
	return []Platform{PlatformTwitter, PlatformInstagram, PlatformFacebook}
}

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeText, ContentTypeImage, ContentTypeVideo:
		return true
	}
	return false
}

func (c ContentType) IsMedia() bool {
	return c == ContentTypeImage || c == ContentTypeVideo
}

// PostRequest describes one piece of content for one platform.
// Exactly one of Message or FilePath is set: Message for text posts,
// FilePath for image and video posts.
type PostRequest struct {
	Platform    Platform    `json:"platform" form:"platform"`
	ContentType ContentType `json:"content_type" form:"content_type"`
	Message     string      `json:"message,omitempty" form:"message"`
	FilePath    string      `json:"file_path,omitempty" form:"file_path"`
	Caption     string      `json:"caption,omitempty" form:"caption"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty" form:"scheduled_at"`
}

type PostResult struct {
	Platform Platform  `json:"platform"`
	PostID   string    `json:"post_id"`
	Caption  string    `json:"caption,omitempty"`
	PostedAt time.Time `json:"posted_at"`
}

type IPostUsecase interface {
	// Post publishes immediately, or schedules when ScheduledAt is set.
	// A scheduled request returns a zero PostResult; the job carries the
	// outcome once dispatched.
	Post(ctx context.Context, request PostRequest) (PostResult, error)
	// Dispatch publishes immediately regardless of ScheduledAt. The
	// scheduler uses it to fire due jobs.
	Dispatch(ctx context.Context, request PostRequest) (PostResult, error)
}
